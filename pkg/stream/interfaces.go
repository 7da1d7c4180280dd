package stream

import (
	"io"
)

// Reader is the sequential read capability. It is an alias for the standard
// io.Reader interface, so any standard reader satisfies it directly.
type Reader = io.Reader

// Writer is the sequential write capability. It is an alias for the standard
// io.Writer interface, so any standard writer satisfies it directly.
type Writer = io.Writer

// Seeker is the random-access positioning capability. It is an alias for the
// standard io.Seeker interface. Positions are specified using the standard
// io.SeekStart, io.SeekCurrent, and io.SeekEnd whence values.
type Seeker = io.Seeker

// Closer is an alias for the standard io.Closer interface.
type Closer = io.Closer

// ReadWriter is an alias for the standard io.ReadWriter interface.
type ReadWriter = io.ReadWriter

// ReadSeeker is an alias for the standard io.ReadSeeker interface.
type ReadSeeker = io.ReadSeeker

// WriteSeeker is an alias for the standard io.WriteSeeker interface.
type WriteSeeker = io.WriteSeeker

// ReadCloser is an alias for the standard io.ReadCloser interface.
type ReadCloser = io.ReadCloser

// WriteCloser is an alias for the standard io.WriteCloser interface.
type WriteCloser = io.WriteCloser

// BufferedReader represents a reader that maintains an internal readahead
// window whose contents can be examined and consumed without copying.
type BufferedReader interface {
	Reader
	// Fill returns the current readahead window, reading from the underlying
	// source only if the window is empty. It returns io.EOF if and only if
	// the window is empty and the source is exhausted, and for other source
	// failures returns the source's error with an empty window. The returned
	// slice is only valid until the next operation on the reader.
	Fill() ([]byte, error)
	// Consume marks n bytes of the readahead window as used, removing them
	// from the window. Counts exceeding the window size consume the entire
	// window. Consume panics if n is negative.
	Consume(n int)
}

// Flusher represents a stream that performs internal buffering that may need
// to be flushed to ensure delivery. Flushing is part of the baseline write
// surface: writers without buffering simply don't implement Flusher, and
// higher layers treat its absence as a successful no-op.
type Flusher interface {
	// Flush forces delivery of any buffered stream data.
	Flush() error
}
