package capability

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/capstream-io/capstream/pkg/stream"
)

// countingStream wraps an in-memory cursor and counts the read and seek
// operations issued against it.
type countingStream struct {
	// cursor is the underlying stream.
	cursor *stream.Cursor
	// reads is the number of read operations issued.
	reads int
	// seeks is the number of seek operations issued.
	seeks int
}

// Read implements stream.Reader.Read.
func (s *countingStream) Read(buffer []byte) (int, error) {
	s.reads++
	return s.cursor.Read(buffer)
}

// Seek implements stream.Seeker.Seek.
func (s *countingStream) Seek(offset int64, whence int) (int64, error) {
	s.seeks++
	return s.cursor.Seek(offset, whence)
}

// skipThenReadAll advances the source past count bytes and returns the
// remaining content.
func skipThenReadAll(source Source, count int64) ([]byte, error) {
	if _, err := Skip(source, count); err != nil {
		return nil, errors.Wrap(err, "unable to skip")
	}
	return stream.ReadAll(source)
}

func TestSkipWithoutSeekCapability(t *testing.T) {
	// Create a handle over a stream that could seek, but don't declare the
	// capability.
	counting := &countingStream{cursor: stream.NewCursor([]byte("Hello, world!"))}
	reader := NewReader(counting)

	// Perform a skipping read and verify the result.
	data, err := skipThenReadAll(reader, 7)
	if err != nil {
		t.Fatal("skipping read failed:", err)
	} else if string(data) != "world!" {
		t.Error("content mismatch:", string(data), "!=", "world!")
	}

	// Verify that the skip fell back to reading.
	if counting.seeks != 0 {
		t.Error("seek performed without declared capability:", counting.seeks)
	}
	if counting.reads == 0 {
		t.Error("expected skip to fall back to reading")
	}
}

func TestSkipWithSeekCapability(t *testing.T) {
	// Create a handle and declare positioning support.
	counting := &countingStream{cursor: stream.NewCursor([]byte("Hello, world!"))}
	reader := NewReader(counting)
	DeclareSeeker(reader)

	// Perform a skipping read and verify the result.
	data, err := skipThenReadAll(reader, 7)
	if err != nil {
		t.Fatal("skipping read failed:", err)
	} else if string(data) != "world!" {
		t.Error("content mismatch:", string(data), "!=", "world!")
	}

	// Verify that the skip was performed with a single seek.
	if counting.seeks != 1 {
		t.Error("seek count mismatch:", counting.seeks, "!=", 1)
	}
}

func TestSkipThroughBoxWithoutDeclarations(t *testing.T) {
	// Convert an undeclared handle and verify that skipping through the box
	// still works by falling back to reading.
	counting := &countingStream{cursor: stream.NewCursor([]byte("Hello, world!"))}
	box := NewReader(counting).Box()
	data, err := skipThenReadAll(box, 7)
	if err != nil {
		t.Fatal("skipping read failed:", err)
	} else if string(data) != "world!" {
		t.Error("content mismatch:", string(data), "!=", "world!")
	}
	if counting.seeks != 0 {
		t.Error("seek performed without declared capability:", counting.seeks)
	}
}

func TestSkipThroughBoxWithSeekCapability(t *testing.T) {
	// Declare positioning before conversion and verify that the box retains
	// the optimized skip path.
	counting := &countingStream{cursor: stream.NewCursor([]byte("Hello, world!"))}
	reader := NewReader(counting)
	DeclareSeeker(reader)
	box := reader.Box()
	data, err := skipThenReadAll(box, 7)
	if err != nil {
		t.Fatal("skipping read failed:", err)
	} else if string(data) != "world!" {
		t.Error("content mismatch:", string(data), "!=", "world!")
	}
	if counting.seeks != 1 {
		t.Error("seek count mismatch:", counting.seeks, "!=", 1)
	}
}

func TestSkipThroughView(t *testing.T) {
	counting := &countingStream{cursor: stream.NewCursor([]byte("Hello, world!"))}
	reader := NewReader(counting)
	DeclareSeeker(reader)
	view := reader.View()
	data, err := skipThenReadAll(view, 7)
	if err != nil {
		t.Fatal("skipping read failed:", err)
	} else if string(data) != "world!" {
		t.Error("content mismatch:", string(data), "!=", "world!")
	}
	if counting.seeks != 1 {
		t.Error("seek count mismatch:", counting.seeks, "!=", 1)
	}
	if err := view.Close(); err != nil {
		t.Fatal("close failed:", err)
	}
}

func TestSkipZero(t *testing.T) {
	counting := &countingStream{cursor: stream.NewCursor([]byte("Hello, world!"))}
	reader := NewReader(counting)
	if skipped, err := Skip(reader, 0); err != nil {
		t.Fatal("skip failed:", err)
	} else if skipped != 0 {
		t.Error("skipped count mismatch:", skipped, "!=", 0)
	}
	if counting.reads != 0 || counting.seeks != 0 {
		t.Error("operations performed for empty skip")
	}
}

func TestSkipPastEnd(t *testing.T) {
	reader := NewReader(stream.NewCursor([]byte("Hello, world!")))
	skipped, err := Skip(reader, 20)
	if !stream.IsUnexpectedEOF(err) {
		t.Error("unexpected error for truncated skip:", err)
	}
	if skipped != 13 {
		t.Error("skipped count mismatch:", skipped, "!=", 13)
	}
}

func TestSkipNegativePanics(t *testing.T) {
	reader := NewReader(stream.NewCursor([]byte("Hello, world!")))
	mustPanic(t, "negative skip count", func() { Skip(reader, -1) })
}

func TestSkipLargerThanChunk(t *testing.T) {
	// Skip across multiple fallback chunks to exercise the chunked loop.
	content := make([]byte, 3*skipBufferSize+11)
	for i := range content {
		content[i] = byte(i)
	}
	counting := &countingStream{cursor: stream.NewCursor(content)}
	reader := NewReader(counting)
	count := int64(3*skipBufferSize + 4)
	if skipped, err := Skip(reader, count); err != nil {
		t.Fatal("skip failed:", err)
	} else if skipped != count {
		t.Error("skipped count mismatch:", skipped, "!=", count)
	}
	if data, err := stream.ReadAll(reader); err != nil {
		t.Fatal("read failed:", err)
	} else if len(data) != 7 {
		t.Error("remainder length mismatch:", len(data), "!=", 7)
	} else if data[0] != byte(count) {
		t.Error("remainder starts at wrong offset")
	}
}
