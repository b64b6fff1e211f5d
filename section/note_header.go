package section

import (
	"github.com/arloliu/elfnote/endian"
	"github.com/arloliu/elfnote/errs"
)

// NoteHeader represents the fixed-size header at the start of every note record.
type NoteHeader struct {
	// NameSize is the owner name length including its NUL terminator.
	NameSize uint32 // byte offset 0-3
	// DescSize is the payload length before padding.
	DescSize uint32 // byte offset 4-7
	// Type is the raw NT_* type code.
	Type uint32 // byte offset 8-11
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice starting with the header (at least 12 bytes)
//   - engine: Byte order of the containing file
//
// Returns:
//   - error: errs.ErrTruncatedInput if data is shorter than HeaderSize
func (h *NoteHeader) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) < HeaderSize {
		return errs.ErrTruncatedInput
	}

	h.NameSize = engine.Uint32(data[0:4])
	h.DescSize = engine.Uint32(data[4:8])
	h.Type = engine.Uint32(data[8:12])

	return nil
}

// Bytes serializes the header into a new 12-byte slice.
func (h NoteHeader) Bytes(engine endian.EndianEngine) []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize), engine)
}

// AppendTo appends the serialized header to dst.
func (h NoteHeader) AppendTo(dst []byte, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint32(dst, h.NameSize)
	dst = engine.AppendUint32(dst, h.DescSize)
	dst = engine.AppendUint32(dst, h.Type)

	return dst
}

// RecordSize returns the padded size of the record this header describes.
func (h NoteHeader) RecordSize(align int) int {
	return NoteSize(int(h.NameSize), int(h.DescSize), align)
}

// ParseNoteHeader parses a NoteHeader from the start of data.
func ParseNoteHeader(data []byte, engine endian.EndianEngine) (NoteHeader, error) {
	h := NoteHeader{}
	if err := h.Parse(data, engine); err != nil {
		return NoteHeader{}, err
	}

	return h, nil
}
