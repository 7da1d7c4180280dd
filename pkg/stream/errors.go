package stream

import (
	"errors"
	"io"
)

// Kind classifies stream errors into the closed taxonomy understood by the
// composite operations in this package. The zero value is KindOther.
type Kind uint8

const (
	// KindOther represents an error outside of the stream taxonomy.
	KindOther Kind = iota
	// KindWriteZero indicates that a write operation that was required to
	// make progress made none.
	KindWriteZero
	// KindUnexpectedEOF indicates that a stream ended before an operation
	// could complete.
	KindUnexpectedEOF
	// KindInterrupted indicates that an operation was interrupted before it
	// could make progress and is eligible for retry.
	KindInterrupted
	// KindWouldBlock indicates that an operation would need to block to make
	// progress.
	KindWouldBlock
	// KindInvalidData indicates that a stream yielded bytes that are invalid
	// for the requested interpretation.
	KindInvalidData
)

// String provides a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindOther:
		return "other"
	case KindWriteZero:
		return "write zero"
	case KindUnexpectedEOF:
		return "unexpected end of stream"
	case KindInterrupted:
		return "interrupted"
	case KindWouldBlock:
		return "would block"
	case KindInvalidData:
		return "invalid data"
	default:
		return "unknown"
	}
}

var (
	// ErrWriteZero is the sentinel error for KindWriteZero.
	ErrWriteZero = errors.New("write made no progress")
	// ErrUnexpectedEOF is the sentinel error for KindUnexpectedEOF. It is the
	// standard io.ErrUnexpectedEOF value, so classification interoperates
	// with errors produced by the standard library.
	ErrUnexpectedEOF = io.ErrUnexpectedEOF
	// ErrInterrupted is the sentinel error for KindInterrupted.
	ErrInterrupted = errors.New("interrupted")
	// ErrWouldBlock is the sentinel error for KindWouldBlock.
	ErrWouldBlock = errors.New("would block")
	// ErrInvalidData is the sentinel error for KindInvalidData.
	ErrInvalidData = errors.New("invalid data")
)

// Classify maps an error to its Kind by examining the error's wrap chain.
// Errors outside of the taxonomy (including nil) map to KindOther, so wrapped
// sentinels retain their kind while foreign errors pass through unclassified.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindOther
	case errors.Is(err, ErrInterrupted):
		return KindInterrupted
	case errors.Is(err, ErrWouldBlock):
		return KindWouldBlock
	case errors.Is(err, ErrWriteZero):
		return KindWriteZero
	case errors.Is(err, ErrUnexpectedEOF):
		return KindUnexpectedEOF
	case errors.Is(err, ErrInvalidData):
		return KindInvalidData
	default:
		return KindOther
	}
}

// IsInterrupted indicates whether or not an error represents a transient
// interruption eligible for retry.
func IsInterrupted(err error) bool {
	return errors.Is(err, ErrInterrupted)
}

// IsWouldBlock indicates whether or not an error represents an operation that
// would need to block to make progress.
func IsWouldBlock(err error) bool {
	return errors.Is(err, ErrWouldBlock)
}

// IsUnexpectedEOF indicates whether or not an error represents a stream that
// ended before an operation could complete.
func IsUnexpectedEOF(err error) bool {
	return errors.Is(err, ErrUnexpectedEOF)
}
