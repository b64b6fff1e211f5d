package encoding

import (
	"github.com/arloliu/elfnote/endian"
	"github.com/arloliu/elfnote/errs"
)

// Reader is a sequential, bounds-checked cursor over a byte slice.
//
// Failed reads return errs.ErrTruncatedInput and leave the cursor where it was,
// so callers can report the position of the truncated record.
//
// Note: The Reader is NOT thread-safe.
type Reader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// NewReader creates a Reader over data decoding integers with engine.
func NewReader(data []byte, engine endian.EndianEngine) *Reader {
	if engine == nil {
		engine = endian.GetLittleEndianEngine()
	}

	return &Reader{data: data, engine: engine}
}

// Engine returns the byte order used by the reader.
func (r *Reader) Engine() endian.EndianEngine {
	return r.engine
}

// Pos returns the current offset from the start of the data.
func (r *Reader) Pos() int {
	return r.pos
}

// Len returns the total length of the underlying data.
func (r *Reader) Len() int {
	return len(r.data)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Seek moves the cursor to an absolute offset.
func (r *Reader) Seek(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return errs.ErrTruncatedInput
	}
	r.pos = pos

	return nil
}

// ReadUint32 reads a uint32 and advances the cursor by 4 bytes.
func (r *Reader) ReadUint32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, errs.ErrTruncatedInput
	}

	v := r.engine.Uint32(r.data[r.pos:])
	r.pos += 4

	return v, nil
}

// ReadUint64 reads a uint64 and advances the cursor by 8 bytes.
func (r *Reader) ReadUint64() (uint64, error) {
	if r.Remaining() < 8 {
		return 0, errs.ErrTruncatedInput
	}

	v := r.engine.Uint64(r.data[r.pos:])
	r.pos += 8

	return v, nil
}

// ReadBytes returns a copy of the next n bytes and advances the cursor.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, errs.ErrTruncatedInput
	}

	out := make([]byte, n)
	copy(out, r.data[r.pos:r.pos+n])
	r.pos += n

	return out, nil
}

// Peek returns the next n bytes without copying or advancing.
func (r *Reader) Peek(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, errs.ErrTruncatedInput
	}

	return r.data[r.pos : r.pos+n], nil
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) error {
	if n < 0 || r.Remaining() < n {
		return errs.ErrTruncatedInput
	}
	r.pos += n

	return nil
}

// Align advances the cursor to the next multiple of unit, clamped to the end
// of the data. Padding cut short by the end of the stream is not an error.
func (r *Reader) Align(unit int) {
	if unit <= 1 {
		return
	}

	next := (r.pos + unit - 1) / unit * unit
	if next > len(r.data) {
		next = len(r.data)
	}
	r.pos = next
}
