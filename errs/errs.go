// Package errs defines the sentinel errors returned by elfnote packages.
//
// Callers should compare with errors.Is, since most call sites wrap these
// values with additional context.
package errs

import "errors"

// Payload access errors.
var (
	// ErrOutOfBounds is returned when a typed read or write would touch bytes
	// past the end of a payload buffer.
	ErrOutOfBounds = errors.New("offset out of bounds")
	// ErrTruncatedInput is returned when a stream ends before a declared
	// header, name or payload length is satisfied.
	ErrTruncatedInput = errors.New("truncated input")
)

// Classification and construction errors.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidAlignment    = errors.New("invalid note alignment, must be 4 or 8")
	ErrInvalidByteOrder    = errors.New("invalid byte order")
	ErrUnknownRegister     = errors.New("unknown register")
	ErrFieldTooLong        = errors.New("value does not fit in fixed-size field")
	ErrInvalidNoteIndex    = errors.New("note index out of range")
	ErrTypeMismatch        = errors.New("owner and raw type classify to a different note type")
	ErrContextMismatch     = errors.New("note alignment or byte order differs from the set")
	ErrInvalidExportFormat = errors.New("invalid export format")
)

// Archive errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid archive header size")
	ErrInvalidMagicNumber = errors.New("invalid archive magic number")
	ErrInvalidVersion     = errors.New("unsupported archive version")
	ErrChecksumMismatch   = errors.New("archive checksum mismatch")
	ErrSizeMismatch       = errors.New("archive payload size mismatch")
	ErrSectionTooLarge    = errors.New("note section exceeds the archive size limit")
)
