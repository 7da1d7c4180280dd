package filesystem

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// TemporaryNamePrefix is the file name prefix used for all temporary files
	// and directories created by Capstream. It may be suffixed with additional
	// elements if desired.
	TemporaryNamePrefix = ".capstream-temporary-"
)

// TemporaryName generates a unique temporary file name incorporating the
// specified label. The name combines TemporaryNamePrefix, the label, and a
// random UUID.
func TemporaryName(label string) (string, error) {
	// Generate a random UUID to make the name unique.
	randomUUID, err := uuid.NewRandom()
	if err != nil {
		return "", errors.Wrap(err, "unable to generate UUID")
	}

	// Compute the name.
	return TemporaryNamePrefix + label + "-" + randomUUID.String(), nil
}
