package capstream

import (
	"fmt"
	"strings"
	"testing"
)

// TestVersionString tests that the stringified version has the expected
// structure.
func TestVersionString(t *testing.T) {
	expectedPrefix := fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
	if !strings.HasPrefix(Version, expectedPrefix) {
		t.Error("version string has unexpected prefix:", Version)
	}
	if VersionTag != "" && !strings.HasSuffix(Version, "-"+VersionTag) {
		t.Error("version string missing tag:", Version)
	}
	if strings.Contains(Version, " ") {
		t.Error("version string contains spaces:", Version)
	}
}
