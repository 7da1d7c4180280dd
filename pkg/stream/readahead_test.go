package stream

import (
	"io"
	"strings"
	"testing"
)

// chunkedReader yields at most chunk bytes per read, forcing consumers to
// perform multiple reads for content of any significant length.
type chunkedReader struct {
	// reader is the underlying reader.
	reader Reader
	// chunk is the maximum read size.
	chunk int
}

// Read implements Reader.Read.
func (r *chunkedReader) Read(buffer []byte) (int, error) {
	if len(buffer) > r.chunk {
		buffer = buffer[:r.chunk]
	}
	return r.reader.Read(buffer)
}

func TestReadaheadFillAndConsume(t *testing.T) {
	reader := NewReadaheadSize(&chunkedReader{reader: strings.NewReader("Hello, world!"), chunk: 5}, 16)

	// The first fill should expose only the first chunk.
	if window, err := reader.Fill(); err != nil {
		t.Fatal("fill failed:", err)
	} else if string(window) != "Hello" {
		t.Error("window mismatch:", string(window), "!=", "Hello")
	}

	// Consuming part of the window should leave the remainder visible without
	// touching the source.
	reader.Consume(2)
	if window, err := reader.Fill(); err != nil {
		t.Fatal("fill failed:", err)
	} else if string(window) != "llo" {
		t.Error("window mismatch:", string(window), "!=", "llo")
	}

	// Draining the window should force the next fill to read a fresh chunk.
	reader.Consume(3)
	if window, err := reader.Fill(); err != nil {
		t.Fatal("fill failed:", err)
	} else if string(window) != ", wor" {
		t.Error("window mismatch:", string(window), "!=", ", wor")
	}
}

func TestReadaheadReadDrainsWindow(t *testing.T) {
	reader := NewReadaheadSize(strings.NewReader("Hello, world!"), 16)
	if window, err := reader.Fill(); err != nil {
		t.Fatal("fill failed:", err)
	} else if string(window) != "Hello, world!" {
		t.Error("window mismatch:", string(window), "!=", "Hello, world!")
	}
	data, err := ReadAll(reader)
	if err != nil {
		t.Fatal("read failed:", err)
	}
	if string(data) != "Hello, world!" {
		t.Error("read content mismatch:", string(data), "!=", "Hello, world!")
	}
	if _, err := reader.Fill(); err != io.EOF {
		t.Error("expected end of stream, got:", err)
	}
}

func TestReadaheadConsumeClamped(t *testing.T) {
	reader := NewReadaheadSize(strings.NewReader("hi"), 16)
	if _, err := reader.Fill(); err != nil {
		t.Fatal("fill failed:", err)
	}
	reader.Consume(100)
	if _, err := reader.Fill(); err != io.EOF {
		t.Error("expected end of stream, got:", err)
	}
}

func TestReadaheadPropagatesInterruption(t *testing.T) {
	reader := NewReadaheadSize(&interruptedReader{reader: strings.NewReader("hi")}, 16)

	// The first fill should surface the interruption with an empty window.
	if _, err := reader.Fill(); !IsInterrupted(err) {
		t.Error("expected interruption, got:", err)
	}

	// A retried fill should succeed.
	if window, err := reader.Fill(); err != nil {
		t.Fatal("fill failed:", err)
	} else if string(window) != "hi" {
		t.Error("window mismatch:", string(window), "!=", "hi")
	}
}
