package identifier

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/capstream-io/capstream/pkg/encoding"
)

const (
	// expectedIdentifierLength is the expected length for identifiers.
	expectedIdentifierLength = requiredPrefixLength + 1 + targetBase62Length
)

// TestLengthRelationships tests the mathematical relationship between
// collisionResistantLength and targetBase62Length.
func TestLengthRelationships(t *testing.T) {
	if targetBase62Length != int(math.Ceil(collisionResistantLength*8*math.Log(2)/math.Log(62))) {
		t.Error("target base62 length incorrect for collision resistant length")
	}
}

// TestIdentifierCreation tests identifier creation.
func TestIdentifierCreation(t *testing.T) {
	// Set up test cases.
	testCases := []string{
		PrefixTransfer,
		PrefixProbe,
	}

	// Process test cases.
	for _, prefix := range testCases {
		// Create an identifier with the specified prefix.
		identifier, err := New(prefix)
		if err != nil {
			t.Fatal("unable to create identifier:", err)
		}

		// Ensure that the prefix is present.
		if !strings.HasPrefix(identifier, prefix+"_") {
			t.Error("identifier does not have correct prefix")
		}

		// Ensure that the length is what's expected.
		if len(identifier) != expectedIdentifierLength {
			t.Error("identifier has unexpected length")
		}

		// Ensure that the identifier validates.
		if !IsValid(identifier) {
			t.Error("created identifier deemed invalid:", identifier)
		}
	}
}

// TestPrefixLengthEnforcement tests that identifier creation fails with an
// invalid prefix length.
func TestPrefixLengthEnforcement(t *testing.T) {
	if _, err := New("xyz"); err == nil {
		t.Error("invalid prefix length accepted")
	}
}

// TestInvalidPrefixCharacter tests that identifier creation fails when a
// prefix contains invalid characters.
func TestInvalidPrefixCharacter(t *testing.T) {
	if _, err := New("XFER"); err == nil {
		t.Error("invalid prefix characters accepted")
	}
}

// TestIsValid tests that IsValid behaves correctly for an assortment of
// values.
func TestIsValid(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		value       string
		expectValid bool
	}{
		{"", false},
		{"abc", false},
		{"xfer", false},
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"75a0fdc4-5c08-4aa4-99b5-154350dea3db", false},
		{"xfer_jndACgB0qejgkorhU21q4oA56QvEfqV1p2yBH9N40h+", false},
		{"xfer_jndACgB0qejgkorhU21q4oA56QvEfqV1p2yBH9N40hK1", false},
		{"xfe9_jndACgB0qejgkorhU21q4oA56QvEfqV1p2yBH9N40hK", false},
		{"XFER_jndACgB0qejgkorhU21q4oA56QvEfqV1p2yBH9N40hK", false},
		{"xferjjndACgB0qejgkorhU21q4oA56QvEfqV1p2yBH9N40hK", false},
		{"xfer_jndACgB0qejgkorhU21q4oA56QvEfqV1p2yBH9N40hK", true},
		{"prob_jndACgB0qejgkorhU21q4oA56QvEfqV1p2yBH9N40hK", true},
	}

	// Process test cases.
	for _, testCase := range testCases {
		if valid := IsValid(testCase.value); valid && !testCase.expectValid {
			t.Error("identifier unexpectedly classified as valid:", testCase.value)
		} else if !valid && testCase.expectValid {
			t.Error("identifier unexpectedly classified as invalid:", testCase.value)
		}
	}
}

// TestLeftPadDecoding tests that left-padding a Base62-encoded value with the
// zero digit doesn't affect the bytes recovered by decoding, which is what
// allows identifiers to carry uniform-length encoded values.
func TestLeftPadDecoding(t *testing.T) {
	// Set up test values, emphasizing leading zero bytes (which yield short
	// encodings that require maximal padding) and boundary values.
	testValues := [][]byte{
		bytes.Repeat([]byte{0x00}, collisionResistantLength),
		append(bytes.Repeat([]byte{0x00}, collisionResistantLength-1), 0x01),
		append([]byte{0x01}, bytes.Repeat([]byte{0x00}, collisionResistantLength-1)...),
		bytes.Repeat([]byte{0xff}, collisionResistantLength),
	}

	// Process test values.
	for _, value := range testValues {
		// Encode the value and verify that it fits within the target length.
		encoded := encoding.EncodeBase62(value)
		if len(encoded) > targetBase62Length {
			t.Fatal("encoded value exceeds target length:", len(encoded))
		}

		// Left-pad the encoded value to the target length, mirroring
		// identifier composition.
		padded := strings.Repeat(string(encoding.Base62Alphabet[0]), targetBase62Length-len(encoded)) + encoded

		// Decode the padded representation and verify that its trailing bytes
		// match the original value.
		decoded, err := encoding.DecodeBase62(padded)
		if err != nil {
			t.Error("unable to decode padded value:", err)
		} else if !bytes.Equal(decoded[len(decoded)-collisionResistantLength:], value) {
			t.Error("decoded bytes do not match original value")
		}
	}
}
