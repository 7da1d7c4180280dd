package configuration

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// ApplyEnvironmentFile loads a "dotenv" environment variable file from disk
// and applies its contents to the current process' environment, with existing
// process environment variables taking precedence. Interpolation is enabled by
// default for the contents of the environment file. If the target file doesn't
// exist, then it is treated as empty and the process environment is left
// unmodified.
func ApplyEnvironmentFile(path string) error {
	// Load the environment file, if it exists. The godotenv package retains
	// existing process environment variables, which is the precedence that we
	// want.
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "unable to load environment file (%s)", path)
	}

	// Success.
	return nil
}
