package encoding

import (
	"github.com/eknkc/basex"
)

const (
	// Base62Alphabet is the digit set used for Base62 encoding: decimal digits
	// followed by lowercase and then uppercase letters. The zero digit leads
	// the alphabet so that it can serve as left-padding without affecting
	// decoded values.
	Base62Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// base62 is the shared Base62 encoder. It is stateless after construction and
// safe for concurrent use.
var base62 *basex.Encoding

func init() {
	encoding, err := basex.NewEncoding(Base62Alphabet)
	if err != nil {
		panic("unable to initialize Base62 encoding")
	}
	base62 = encoding
}

// EncodeBase62 encodes a byte slice to a Base62 string.
func EncodeBase62(value []byte) string {
	return base62.Encode(value)
}

// DecodeBase62 decodes a Base62 string to a byte slice. It returns an error if
// the string contains characters outside the Base62 alphabet.
func DecodeBase62(value string) ([]byte, error) {
	return base62.Decode(value)
}
