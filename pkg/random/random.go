// Package random provides cryptographically secure random data generation.
package random

import (
	"crypto/rand"

	"github.com/pkg/errors"
)

const (
	// CollisionResistantLength is the number of random bytes needed for a
	// generated value to be considered collision-resistant.
	CollisionResistantLength = 32
)

// Bytes returns a buffer of the specified length filled with
// cryptographically secure random data.
func Bytes(length int) ([]byte, error) {
	// Allocate and fill the buffer.
	result := make([]byte, length)
	if _, err := rand.Read(result); err != nil {
		return nil, errors.Wrap(err, "unable to read random data")
	}

	// Success.
	return result, nil
}
