package configuration

import (
	"github.com/dustin/go-humanize"
)

// ByteSize is a uint64 byte count that unmarshals from human-friendly string
// representations such as "4 MiB" or "100 kB", as well as from bare numeric
// values.
type ByteSize uint64

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText.
func (s *ByteSize) UnmarshalText(text []byte) error {
	value, err := humanize.ParseBytes(string(text))
	if err != nil {
		return err
	}
	*s = ByteSize(value)
	return nil
}
