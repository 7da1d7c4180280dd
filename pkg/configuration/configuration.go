package configuration

import (
	"os"

	"github.com/pkg/errors"

	"github.com/capstream-io/capstream/pkg/encoding"
	"github.com/capstream-io/capstream/pkg/logging"
)

// Configuration is the global YAML configuration object type.
type Configuration struct {
	// Log is the logging configuration section.
	Log struct {
		// Level is the log level.
		Level logging.Level `yaml:"level"`
	} `yaml:"log"`
	// Transfer is the transfer configuration section.
	Transfer struct {
		// BufferSize is the copy buffer size. A zero value indicates that the
		// built-in default should be used.
		BufferSize ByteSize `yaml:"bufferSize"`
		// ReadaheadSize is the readahead window size. A zero value indicates
		// that the built-in default should be used.
		ReadaheadSize ByteSize `yaml:"readaheadSize"`
	} `yaml:"transfer"`
}

// loadFromPath is the internal loading function. We keep it separate from Load
// so that we can get full test coverage using temporary files.
func loadFromPath(path string) (*Configuration, error) {
	// Create a configuration that we can decode into. We set any default
	// values here because nothing will be modified in this structure if the
	// configuration file doesn't exist.
	result := &Configuration{}
	result.Log.Level = logging.LevelInfo

	// Attempt to load the configuration from disk. We pass through
	// non-existence since the file is optional.
	if err := encoding.LoadAndUnmarshalYAML(path, result); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	// Success.
	return result, nil
}

// Load loads the global configuration file from disk and populates a
// Configuration structure. If the configuration file does not exist, a
// structure with the default configuration values is returned. The returned
// structure is not re-used, so its members can be freely mutated.
func Load() (*Configuration, error) {
	// Compute the configuration file path.
	path, err := ConfigurationPath()
	if err != nil {
		return nil, errors.Wrap(err, "unable to compute configuration path")
	}

	// Perform loading.
	return loadFromPath(path)
}

// ApplyEnvironmentOverrides applies any configuration overrides present in the
// process environment. Overrides take precedence over values loaded from the
// configuration file.
func (c *Configuration) ApplyEnvironmentOverrides() error {
	// Handle log level overrides.
	if value := os.Getenv("CAPSTREAM_LOG_LEVEL"); value != "" {
		level, ok := logging.NameToLevel(value)
		if !ok {
			return errors.Errorf("unknown log level: %s", value)
		}
		c.Log.Level = level
	}

	// Handle buffer size overrides.
	if value := os.Getenv("CAPSTREAM_BUFFER_SIZE"); value != "" {
		if err := c.Transfer.BufferSize.UnmarshalText([]byte(value)); err != nil {
			return errors.Wrap(err, "invalid buffer size")
		}
	}

	// Handle readahead size overrides.
	if value := os.Getenv("CAPSTREAM_READAHEAD_SIZE"); value != "" {
		if err := c.Transfer.ReadaheadSize.UnmarshalText([]byte(value)); err != nil {
			return errors.Wrap(err, "invalid readahead size")
		}
	}

	// Success.
	return nil
}
