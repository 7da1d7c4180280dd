package capability

import (
	"io"

	"github.com/pkg/errors"

	"github.com/capstream-io/capstream/pkg/stream"
)

// Source is the reading surface shared by read handles, views, and boxes:
// sequential reading plus the optional-capability query for positioning.
type Source interface {
	stream.Reader
	// Seeker returns a positioning accessor if the seek capability was
	// declared.
	Seeker() (stream.Seeker, bool)
}

// skipBufferSize is the chunk size used when skipping by reading.
const skipBufferSize = 8 * 1024

// Skip advances the source by count bytes and returns the number of bytes
// actually skipped. If the source has the seek capability, the skip is a
// single relative seek; otherwise the source is read and discarded in chunks,
// and reaching end of stream early yields stream.ErrUnexpectedEOF alongside
// the number of bytes that were skipped. Skip panics on negative counts:
// moving backward requires the seek capability, and callers that hold it can
// seek directly.
func Skip(source Source, count int64) (int64, error) {
	// Validate the count. A zero-byte skip is trivially complete.
	if count < 0 {
		panic("negative skip count")
	} else if count == 0 {
		return 0, nil
	}

	// If positioning is available, then skip with a single relative seek.
	if seeker, ok := source.Seeker(); ok {
		if _, err := seeker.Seek(count, io.SeekCurrent); err != nil {
			return 0, errors.Wrap(err, "unable to seek past skipped bytes")
		}
		return count, nil
	}

	// Otherwise read and discard until the target is reached.
	buffer := make([]byte, skipBufferSize)
	var skipped int64
	for skipped < count {
		chunk := buffer
		if remaining := count - skipped; remaining < int64(len(chunk)) {
			chunk = chunk[:remaining]
		}
		n, err := stream.ReadFull(source, chunk)
		skipped += int64(n)
		if err != nil {
			return skipped, err
		}
	}

	// Success.
	return skipped, nil
}
