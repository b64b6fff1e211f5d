package encoding

import (
	"bytes"
	"unsafe"

	"github.com/arloliu/elfnote/endian"
	"github.com/arloliu/elfnote/errs"
)

// Fixed is the set of fixed-width integer types the accessor can read and write.
type Fixed interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64
}

// SizeOf returns the encoded width in bytes of T.
func SizeOf[T Fixed]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

func inBounds(buf []byte, offset, size int) bool {
	return offset >= 0 && size >= 0 && offset <= len(buf) && size <= len(buf)-offset
}

// ReadFixed reads a value of type T at offset using the given byte order.
//
// Returns:
//   - T: Decoded value (zero on failure)
//   - error: errs.ErrOutOfBounds if offset+sizeof(T) exceeds len(buf)
func ReadFixed[T Fixed](engine endian.EndianEngine, buf []byte, offset int) (T, error) {
	var v T

	size := SizeOf[T]()
	if !inBounds(buf, offset, size) {
		return v, errs.ErrOutOfBounds
	}

	switch size {
	case 1:
		v = T(buf[offset])
	case 2:
		v = T(engine.Uint16(buf[offset:]))
	case 4:
		v = T(engine.Uint32(buf[offset:]))
	case 8:
		v = T(engine.Uint64(buf[offset:]))
	}

	return v, nil
}

// WriteFixed overwrites sizeof(T) bytes at offset with value.
//
// The buffer is never grown. On failure it is left untouched.
//
// Returns:
//   - error: errs.ErrOutOfBounds if offset+sizeof(T) exceeds len(buf)
func WriteFixed[T Fixed](engine endian.EndianEngine, buf []byte, offset int, value T) error {
	size := SizeOf[T]()
	if !inBounds(buf, offset, size) {
		return errs.ErrOutOfBounds
	}

	switch size {
	case 1:
		buf[offset] = byte(value)
	case 2:
		engine.PutUint16(buf[offset:], uint16(value))
	case 4:
		engine.PutUint32(buf[offset:], uint32(value))
	case 8:
		engine.PutUint64(buf[offset:], uint64(value))
	}

	return nil
}

// ReadWord reads a 4 or 8 byte unsigned value depending on wordSize.
func ReadWord(engine endian.EndianEngine, buf []byte, offset, wordSize int) (uint64, error) {
	if wordSize == 8 {
		return ReadFixed[uint64](engine, buf, offset)
	}

	v, err := ReadFixed[uint32](engine, buf, offset)

	return uint64(v), err
}

// WriteWord writes value as a 4 or 8 byte unsigned value depending on wordSize.
// 4 byte words keep only the low 32 bits.
func WriteWord(engine endian.EndianEngine, buf []byte, offset, wordSize int, value uint64) error {
	if wordSize == 8 {
		return WriteFixed(engine, buf, offset, value)
	}

	return WriteFixed(engine, buf, offset, uint32(value)) //nolint:gosec
}

// ReadString reads a NUL-terminated string starting at offset.
//
// Reading stops at the first NUL byte, after maxLen bytes, or at the end of the
// buffer, whichever comes first. A maxLen of 0 means no limit.
//
// Returns:
//   - string: Decoded string without the terminator
//   - error: errs.ErrOutOfBounds if offset is not inside buf
func ReadString(buf []byte, offset int, maxLen int) (string, error) {
	if offset < 0 || offset >= len(buf) {
		return "", errs.ErrOutOfBounds
	}

	data := buf[offset:]
	if maxLen > 0 && maxLen < len(data) {
		data = data[:maxLen]
	}

	if idx := bytes.IndexByte(data, 0); idx >= 0 {
		data = data[:idx]
	}

	return string(data), nil
}

// WriteString writes value followed by a NUL terminator at offset.
//
// Returns:
//   - error: errs.ErrOutOfBounds if len(value)+1 bytes do not fit at offset
func WriteString(buf []byte, offset int, value string) error {
	if !inBounds(buf, offset, len(value)+1) {
		return errs.ErrOutOfBounds
	}

	n := copy(buf[offset:], value)
	buf[offset+n] = 0

	return nil
}

// ReadBytes returns a copy of the n bytes starting at offset.
//
// Returns:
//   - []byte: Copied bytes
//   - error: errs.ErrOutOfBounds if offset+n exceeds len(buf)
func ReadBytes(buf []byte, offset, n int) ([]byte, error) {
	if !inBounds(buf, offset, n) {
		return nil, errs.ErrOutOfBounds
	}

	out := make([]byte, n)
	copy(out, buf[offset:offset+n])

	return out, nil
}
