package stream

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	// readAllInitialCapacity is the initial buffer capacity used by ReadAll.
	readAllInitialCapacity = 512
	// defaultCopyBufferSize is the staging buffer size used by Copy.
	defaultCopyBufferSize = 32 * 1024
)

// ReadFull reads exactly len(buffer) bytes from the reader into the buffer.
// It transparently retries reads that fail with KindInterrupted and fails
// with ErrUnexpectedEOF if the reader is exhausted (or stops making progress)
// before the buffer is full. It returns the number of bytes read, which is
// len(buffer) if and only if the error is nil.
func ReadFull(r Reader, buffer []byte) (int, error) {
	// Loop until the buffer is full, tracking progress.
	read := 0
	for read < len(buffer) {
		n, err := r.Read(buffer[read:])
		read += n
		if err != nil {
			if IsInterrupted(err) {
				continue
			} else if errors.Is(err, io.EOF) {
				if read == len(buffer) {
					break
				}
				return read, ErrUnexpectedEOF
			}
			return read, err
		} else if n == 0 {
			return read, ErrUnexpectedEOF
		}
	}

	// Success.
	return read, nil
}

// WriteAll writes all of data to the writer. It transparently retries writes
// that fail with KindInterrupted and fails with ErrWriteZero if the writer
// stops accepting bytes before all of data is written. It returns the number
// of bytes written, which is len(data) if and only if the error is nil.
func WriteAll(w Writer, data []byte) (int, error) {
	// Loop until all data is written, tracking progress.
	written := 0
	for written < len(data) {
		n, err := w.Write(data[written:])
		written += n
		if err != nil {
			if IsInterrupted(err) {
				continue
			}
			return written, err
		} else if n == 0 {
			return written, ErrWriteZero
		}
	}

	// Success.
	return written, nil
}

// ReadAll reads from the reader until end of stream, returning all bytes
// read. It transparently retries reads that fail with KindInterrupted. A
// successful read to end of stream returns a nil error, not io.EOF.
func ReadAll(r Reader) ([]byte, error) {
	result := make([]byte, 0, readAllInitialCapacity)
	for {
		// Ensure that there's spare capacity to read into.
		if len(result) == cap(result) {
			result = append(result, 0)[:len(result)]
		}

		// Read into the spare capacity.
		n, err := r.Read(result[len(result):cap(result)])
		result = result[:len(result)+n]
		if err != nil {
			if IsInterrupted(err) {
				continue
			} else if errors.Is(err, io.EOF) {
				return result, nil
			}
			return result, err
		}
	}
}

// ReadAllString reads from the reader until end of stream and interprets the
// result as UTF-8 text. Streams containing invalid UTF-8 fail with
// ErrInvalidData.
func ReadAllString(r Reader) (string, error) {
	// Read the raw bytes.
	data, err := ReadAll(r)
	if err != nil {
		return "", err
	}

	// Validate the encoding.
	if !utf8.Valid(data) {
		return "", errors.Wrap(ErrInvalidData, "stream did not contain valid UTF-8")
	}

	// Success.
	return string(data), nil
}

// ReadUntil reads from the reader through its readahead window until the
// delimiter is encountered, returning all bytes read up to and including the
// delimiter. It transparently retries window fills that fail with
// KindInterrupted. It returns a non-nil error if and only if the returned
// bytes do not end in the delimiter, with io.EOF indicating that the stream
// ended first.
func ReadUntil(r BufferedReader, delimiter byte) ([]byte, error) {
	var result []byte
	for {
		// Grab the current readahead window.
		window, err := r.Fill()
		if err != nil {
			if IsInterrupted(err) {
				continue
			}
			return result, err
		}

		// If the delimiter is in the window, then consume through it and
		// we're done.
		if index := bytes.IndexByte(window, delimiter); index >= 0 {
			result = append(result, window[:index+1]...)
			r.Consume(index + 1)
			return result, nil
		}

		// Otherwise consume the entire window and continue.
		result = append(result, window...)
		r.Consume(len(window))
	}
}

// ReadLine reads a single line from the reader, including the terminating
// newline if one was present, and interprets it as UTF-8 text. Lines
// containing invalid UTF-8 fail with ErrInvalidData. Like ReadUntil, it
// returns a non-nil error if and only if the returned line is unterminated.
func ReadLine(r BufferedReader) (string, error) {
	// Read through the next newline.
	line, err := ReadUntil(r, '\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	// Validate the encoding.
	if !utf8.Valid(line) {
		return "", errors.Wrap(ErrInvalidData, "line did not contain valid UTF-8")
	}

	// Success, though the line may be unterminated.
	return string(line), err
}

// Copy streams the contents of src into dst until end of stream, retrying
// interrupted reads and writes and failing on the first error of any other
// kind. It returns the number of bytes written to dst.
func Copy(dst Writer, src Reader) (int64, error) {
	return CopyBuffer(dst, src, make([]byte, defaultCopyBufferSize))
}

// CopyBuffer is like Copy, but stages the transfer through the provided
// buffer. It panics if the buffer is empty.
func CopyBuffer(dst Writer, src Reader, buffer []byte) (int64, error) {
	// Verify that the buffer is usable.
	if len(buffer) == 0 {
		panic("empty copy buffer")
	}

	// Loop until end of stream or failure.
	var copied int64
	for {
		n, err := src.Read(buffer)
		if n > 0 {
			written, writeErr := WriteAll(dst, buffer[:n])
			copied += int64(written)
			if writeErr != nil {
				return copied, writeErr
			}
		}
		if err != nil {
			if IsInterrupted(err) {
				continue
			} else if errors.Is(err, io.EOF) {
				return copied, nil
			}
			return copied, err
		}
	}
}
