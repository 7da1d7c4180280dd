package encoding

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes YAML data into the specified structure, rejecting any
// fields not present in the structure. Empty documents are treated as valid
// and leave the structure unmodified.
func UnmarshalYAML(data []byte, value any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(value); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// LoadAndUnmarshalYAML loads data from the specified path and decodes it into
// the specified structure using UnmarshalYAML's semantics.
func LoadAndUnmarshalYAML(path string, value any) error {
	return LoadAndUnmarshal(path, func(data []byte) error {
		return UnmarshalYAML(data, value)
	})
}

// MarshalAndSaveYAML encodes the specified structure and writes the result
// atomically to the specified path.
func MarshalAndSaveYAML(path string, value any) error {
	return MarshalAndSave(path, func() ([]byte, error) {
		return yaml.Marshal(value)
	})
}
