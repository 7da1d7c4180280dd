package filesystem

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteFileAtomic writes a file to disk in an atomic fashion by using an
// intermediate temporary file that is swapped in place using a rename
// operation.
func WriteFileAtomic(path string, data []byte, permissions os.FileMode) error {
	// Compute a temporary file name inside the target's parent directory so
	// that the final rename doesn't cross filesystem boundaries.
	name, err := TemporaryName("atomic-write")
	if err != nil {
		return errors.Wrap(err, "unable to compute temporary file name")
	}
	temporary := filepath.Join(filepath.Dir(path), name)

	// Create the temporary file with secure permissions.
	file, err := os.OpenFile(temporary, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return errors.Wrap(err, "unable to create temporary file")
	}

	// Write data.
	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(temporary)
		return errors.Wrap(err, "unable to write data to temporary file")
	}

	// Close out the file.
	if err = file.Close(); err != nil {
		os.Remove(temporary)
		return errors.Wrap(err, "unable to close temporary file")
	}

	// Set the file's permissions.
	if err = os.Chmod(temporary, permissions); err != nil {
		os.Remove(temporary)
		return errors.Wrap(err, "unable to change file permissions")
	}

	// Rename the file into place.
	if err = os.Rename(temporary, path); err != nil {
		os.Remove(temporary)
		return errors.Wrap(err, "unable to rename file")
	}

	// Success.
	return nil
}
