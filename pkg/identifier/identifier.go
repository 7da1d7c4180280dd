package identifier

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/capstream-io/capstream/pkg/encoding"
	"github.com/capstream-io/capstream/pkg/random"
)

const (
	// PrefixTransfer is the prefix used for transfer operation identifiers.
	PrefixTransfer = "xfer"
	// PrefixProbe is the prefix used for probe operation identifiers.
	PrefixProbe = "prob"

	// requiredPrefixLength is the required length for identifier prefixes.
	requiredPrefixLength = 4
	// collisionResistantLength is the number of random bytes used to generate
	// identifiers.
	collisionResistantLength = random.CollisionResistantLength
	// targetBase62Length is the length to which Base62-encoded random values
	// are left-padded in identifiers. It is the minimum length guaranteed to
	// accommodate the encoding of any collisionResistantLength-byte value,
	// and padding to it gives all identifiers a uniform length.
	targetBase62Length = 43
)

// isLowercaseASCII indicates whether or not a string is composed entirely of
// lowercase ASCII letters.
func isLowercaseASCII(value string) bool {
	for _, r := range value {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// isBase62 indicates whether or not a string is composed entirely of
// characters drawn from the Base62 alphabet.
func isBase62(value string) bool {
	for _, r := range value {
		if !strings.ContainsRune(encoding.Base62Alphabet, r) {
			return false
		}
	}
	return true
}

// New generates a new collision-resistant identifier with the specified
// prefix. Identifiers take the form <prefix>_<value>, where value is the
// left-padded Base62 encoding of a cryptographically random value.
func New(prefix string) (string, error) {
	// Validate the prefix.
	if len(prefix) != requiredPrefixLength {
		return "", errors.New("prefix has invalid length")
	} else if !isLowercaseASCII(prefix) {
		return "", errors.New("prefix contains invalid characters")
	}

	// Generate the random value.
	value, err := random.Bytes(collisionResistantLength)
	if err != nil {
		return "", errors.Wrap(err, "unable to generate random value")
	}

	// Encode the random value.
	encoded := encoding.EncodeBase62(value)

	// Compose the identifier, left-padding the encoded value to its target
	// length.
	builder := &strings.Builder{}
	builder.WriteString(prefix)
	builder.WriteByte('_')
	for i := targetBase62Length - len(encoded); i > 0; i-- {
		builder.WriteByte(encoding.Base62Alphabet[0])
	}
	builder.WriteString(encoded)

	// Success.
	return builder.String(), nil
}

// IsValid indicates whether or not a value is a valid identifier.
func IsValid(value string) bool {
	// Verify the length.
	if len(value) != requiredPrefixLength+1+targetBase62Length {
		return false
	}

	// Verify the prefix.
	if !isLowercaseASCII(value[:requiredPrefixLength]) {
		return false
	}

	// Verify the separator.
	if value[requiredPrefixLength] != '_' {
		return false
	}

	// Verify the encoded value.
	return isBase62(value[requiredPrefixLength+1:])
}
