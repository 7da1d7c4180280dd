package configuration

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/capstream-io/capstream/pkg/filesystem"
)

// ConfigurationPath returns the path of the YAML-based global configuration
// file inside the user's home directory. It does not verify that the file
// exists.
func ConfigurationPath() (string, error) {
	homeDirectory, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "unable to compute path to home directory")
	}
	return filepath.Join(homeDirectory, filesystem.GlobalConfigurationName), nil
}
