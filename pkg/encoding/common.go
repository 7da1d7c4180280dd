package encoding

import (
	"os"

	"github.com/pkg/errors"

	"github.com/capstream-io/capstream/pkg/filesystem"
)

// LoadAndUnmarshal reads the file at the specified path and decodes its
// contents using the specified unmarshaling callback (usually a closure around
// a target value). Non-existence errors are passed through unwrapped so that
// callers can detect them and substitute defaults.
func LoadAndUnmarshal(path string, unmarshal func([]byte) error) error {
	// Read the file contents, passing through non-existence errors.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return errors.Wrap(err, "unable to read file")
	}

	// Decode the contents.
	if err := unmarshal(data); err != nil {
		return errors.Wrap(err, "unable to unmarshal data")
	}

	// Success.
	return nil
}

// MarshalAndSave encodes a value using the specified marshaling callback
// (usually a closure around a source value) and writes the result to the
// specified path using an atomic write. The file is created with read/write
// permissions for the owning user only.
func MarshalAndSave(path string, marshal func() ([]byte, error)) error {
	// Encode the value.
	data, err := marshal()
	if err != nil {
		return errors.Wrap(err, "unable to marshal value")
	}

	// Write the encoded value to disk atomically.
	if err := filesystem.WriteFileAtomic(path, data, 0600); err != nil {
		return errors.Wrap(err, "unable to write data")
	}

	// Success.
	return nil
}
