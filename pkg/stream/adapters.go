package stream

import (
	"io"
)

// Empty is a null source: reads report end of stream immediately. It also
// supports seeking (the position is always zero) and readahead (the window is
// always empty and exhausted), so it can participate in declarations of those
// capabilities.
type Empty struct{}

// Read implements Reader.Read.
func (Empty) Read([]byte) (int, error) {
	return 0, io.EOF
}

// Seek implements Seeker.Seek.
func (Empty) Seek(offset int64, whence int) (int64, error) {
	return 0, nil
}

// Fill implements BufferedReader.Fill.
func (Empty) Fill() ([]byte, error) {
	return nil, io.EOF
}

// Consume implements BufferedReader.Consume.
func (Empty) Consume(n int) {
	if n < 0 {
		panic("negative consumption count")
	}
}

// Repeat is an infinite source that fills every read buffer with a single
// fixed byte.
type Repeat struct {
	// Byte is the byte with which to fill read buffers.
	Byte byte
}

// Read implements Reader.Read.
func (r Repeat) Read(buffer []byte) (int, error) {
	for i := range buffer {
		buffer[i] = r.Byte
	}
	return len(buffer), nil
}

// Discard is a sink that reports success for writes of any length without
// retaining the data.
type Discard struct{}

// Write implements Writer.Write.
func (Discard) Write(data []byte) (int, error) {
	return len(data), nil
}

// Flush implements Flusher.Flush.
func (Discard) Flush() error {
	return nil
}

// LimitedReader reads from R but caps the cumulative number of bytes returned
// at N. Each read updates N to reflect the amount remaining. Once N reaches
// zero, reads report io.EOF without consulting R further.
type LimitedReader struct {
	// R is the underlying reader.
	R Reader
	// N is the maximum number of bytes remaining.
	N int64
}

// LimitReader returns a LimitedReader that reads from r and stops with io.EOF
// after n bytes.
func LimitReader(r Reader, n int64) *LimitedReader {
	return &LimitedReader{r, n}
}

// Read implements Reader.Read.
func (l *LimitedReader) Read(buffer []byte) (int, error) {
	if l.N <= 0 {
		return 0, io.EOF
	}
	if int64(len(buffer)) > l.N {
		buffer = buffer[:l.N]
	}
	n, err := l.R.Read(buffer)
	l.N -= int64(n)
	return n, err
}
