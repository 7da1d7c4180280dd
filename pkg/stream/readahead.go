package stream

import (
	"bufio"
)

// Readahead adapts an arbitrary reader into a BufferedReader by maintaining a
// bounded readahead window over it.
type Readahead struct {
	// buffered is the window-managing reader.
	buffered *bufio.Reader
}

// NewReadahead creates a readahead adapter over the specified reader with the
// default window capacity.
func NewReadahead(r Reader) *Readahead {
	return &Readahead{bufio.NewReader(r)}
}

// NewReadaheadSize creates a readahead adapter over the specified reader with
// a window capacity of at least size bytes.
func NewReadaheadSize(r Reader, size int) *Readahead {
	return &Readahead{bufio.NewReaderSize(r, size)}
}

// Read implements Reader.Read. It drains the readahead window before reading
// from the underlying source.
func (r *Readahead) Read(buffer []byte) (int, error) {
	return r.buffered.Read(buffer)
}

// Fill implements BufferedReader.Fill.
func (r *Readahead) Fill() ([]byte, error) {
	// If the window is empty, then try to populate it. A single-byte peek is
	// sufficient to force a read from the underlying source.
	if r.buffered.Buffered() == 0 {
		if _, err := r.buffered.Peek(1); err != nil {
			return nil, err
		}
	}

	// Return the full window.
	return r.buffered.Peek(r.buffered.Buffered())
}

// Consume implements BufferedReader.Consume.
func (r *Readahead) Consume(n int) {
	if n < 0 {
		panic("negative consumption count")
	}
	if buffered := r.buffered.Buffered(); n > buffered {
		n = buffered
	}
	r.buffered.Discard(n)
}
