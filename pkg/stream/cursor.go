package stream

import (
	"io"

	"github.com/pkg/errors"
)

// Cursor wraps a fixed-size byte buffer with a position, exposing read,
// write, seek, and readahead access relative to that position. Reads and
// writes share the position. The buffer never grows: writes are clamped to
// the space remaining between the position and the end of the buffer.
type Cursor struct {
	// buffer is the underlying storage.
	buffer []byte
	// position is the current offset into buffer. It may exceed the buffer
	// length, in which case reads report end of stream and writes are fully
	// clamped.
	position int64
}

// NewCursor creates a new cursor over the provided buffer with its position
// at the start of the buffer.
func NewCursor(buffer []byte) *Cursor {
	return &Cursor{buffer: buffer}
}

// Bytes returns the underlying buffer.
func (c *Cursor) Bytes() []byte {
	return c.buffer
}

// Position returns the current position.
func (c *Cursor) Position() int64 {
	return c.position
}

// SetPosition sets the current position. Positions beyond the end of the
// buffer are allowed. SetPosition panics if the position is negative.
func (c *Cursor) SetPosition(position int64) {
	if position < 0 {
		panic("negative cursor position")
	}
	c.position = position
}

// Read implements Reader.Read. It copies bytes out of the buffer at the
// current position, advancing the position by the number of bytes read, and
// returns io.EOF once the position reaches the end of the buffer.
func (c *Cursor) Read(buffer []byte) (int, error) {
	if c.position >= int64(len(c.buffer)) {
		return 0, io.EOF
	}
	n := copy(buffer, c.buffer[c.position:])
	c.position += int64(n)
	return n, nil
}

// Write implements Writer.Write. It copies bytes into the buffer at the
// current position, advancing the position by the number of bytes written.
// Writes are clamped to the space remaining in the buffer, so the returned
// count may be less than len(data) (and zero once the buffer is full), always
// with a nil error. WriteAll converts the zero-progress case to ErrWriteZero.
func (c *Cursor) Write(data []byte) (int, error) {
	if c.position >= int64(len(c.buffer)) {
		return 0, nil
	}
	n := copy(c.buffer[c.position:], data)
	c.position += int64(n)
	return n, nil
}

// Seek implements Seeker.Seek. Seeking beyond the end of the buffer is
// allowed. Seeking to a position before the start of the buffer, or to one
// that overflows the position arithmetic, fails with ErrInvalidData and
// leaves the position unchanged.
func (c *Cursor) Seek(offset int64, whence int) (int64, error) {
	// Compute the base position for the seek.
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = c.position
	case io.SeekEnd:
		base = int64(len(c.buffer))
	default:
		return 0, errors.Errorf("invalid seek whence: %d", whence)
	}

	// Compute and validate the target position.
	position := base + offset
	if offset > 0 && position < base {
		return 0, errors.Wrap(ErrInvalidData, "seek position overflows")
	} else if position < 0 {
		return 0, errors.Wrap(ErrInvalidData, "seek before start of buffer")
	}

	// Apply the position.
	c.position = position

	// Success.
	return position, nil
}

// Fill implements BufferedReader.Fill. The window is the unread remainder of
// the buffer.
func (c *Cursor) Fill() ([]byte, error) {
	if c.position >= int64(len(c.buffer)) {
		return nil, io.EOF
	}
	return c.buffer[c.position:], nil
}

// Consume implements BufferedReader.Consume. The position advances by n,
// clamped to the end of the buffer.
func (c *Cursor) Consume(n int) {
	if n < 0 {
		panic("negative consumption count")
	}
	c.position += int64(n)
	if length := int64(len(c.buffer)); c.position > length {
		c.position = length
	}
}
