package fig

import (
	"errors"
	"fmt"
)

// FormatError represents a failure to interpret container bytes. It carries
// structured numeric context so truncation can be diagnosed from the error
// alone, without re-reading the input.
type FormatError struct {
	// Code identifies the failure category.
	Code FormatErrorCode

	// Message is a human-readable description.
	Message string

	// Offset is the byte offset the failure was detected at, where
	// meaningful (chunk errors).
	Offset int

	// Expected and Actual hold the size or count mismatch, where meaningful.
	Expected int
	Actual   int

	// Chunk is the chunk index for per-chunk failures (decompression).
	Chunk int

	// Magic holds the offending header bytes for ErrCodeInvalidMagic.
	Magic []byte

	// Err is the underlying library error, if any (zip, flate).
	Err error
}

// FormatErrorCode categorizes container failures.
type FormatErrorCode string

const (
	// ErrCodeInvalidMagic indicates the 8-byte header matched neither
	// recognized variant.
	ErrCodeInvalidMagic FormatErrorCode = "INVALID_MAGIC"

	// ErrCodeFileTooSmall indicates the buffer cannot hold a header plus the
	// smallest legal chunk set.
	ErrCodeFileTooSmall FormatErrorCode = "FILE_TOO_SMALL"

	// ErrCodeIncompleteChunk indicates a chunk declared more body bytes than
	// remain in the buffer.
	ErrCodeIncompleteChunk FormatErrorCode = "INCOMPLETE_CHUNK"

	// ErrCodeNotEnoughChunks indicates framing succeeded but yielded fewer
	// chunks than downstream consumers require.
	ErrCodeNotEnoughChunks FormatErrorCode = "NOT_ENOUGH_CHUNKS"

	// ErrCodeCanvasNotFound indicates a ZIP container with no canvas entry.
	ErrCodeCanvasNotFound FormatErrorCode = "CANVAS_NOT_FOUND"

	// ErrCodeArchive indicates the ZIP library rejected the archive.
	ErrCodeArchive FormatErrorCode = "ARCHIVE_ERROR"

	// ErrCodeChunkDecompress indicates a correctly framed chunk whose body
	// is not a readable compressed stream. Distinct from framing errors so
	// callers can tell "sized right, unreadable" from "byte count wrong".
	ErrCodeChunkDecompress FormatErrorCode = "CHUNK_DECOMPRESS"
)

// Error implements the error interface.
func (e *FormatError) Error() string {
	switch e.Code {
	case ErrCodeInvalidMagic:
		return fmt.Sprintf("%s: %s (got % x)", e.Code, e.Message, e.Magic)
	case ErrCodeFileTooSmall, ErrCodeNotEnoughChunks:
		return fmt.Sprintf("%s: %s (expected %d, actual %d)", e.Code, e.Message, e.Expected, e.Actual)
	case ErrCodeIncompleteChunk:
		return fmt.Sprintf("%s: %s (offset %d, expected %d, actual %d)", e.Code, e.Message, e.Offset, e.Expected, e.Actual)
	case ErrCodeChunkDecompress:
		return fmt.Sprintf("%s: %s (chunk %d): %v", e.Code, e.Message, e.Chunk, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying library error for errors.Is/As chains.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsFramingError returns true for the errors produced by Frame.
func IsFramingError(err error) bool {
	var fe *FormatError
	if !errors.As(err, &fe) {
		return false
	}
	switch fe.Code {
	case ErrCodeInvalidMagic, ErrCodeFileTooSmall, ErrCodeIncompleteChunk, ErrCodeNotEnoughChunks:
		return true
	}
	return false
}

// IsDecompressError returns true if the error is a chunk decompression
// failure. Uses errors.As to handle wrapped errors.
func IsDecompressError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe) && fe.Code == ErrCodeChunkDecompress
}

// CodeOf extracts the FormatErrorCode from an error, or "" if it is not a
// *FormatError.
func CodeOf(err error) FormatErrorCode {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}
