package section

import (
	"encoding/binary"

	"github.com/arloliu/elfnote/errs"
	"github.com/arloliu/elfnote/format"
)

// ArchiveHeader represents the fixed-size header of a note archive.
//
// The header records the decoding context of the archived section so that the
// same variants are selected when the archive is read back.
type ArchiveHeader struct {
	Version     uint8                  // byte offset 4
	Flags       uint8                  // byte offset 5
	Compression format.CompressionType // byte offset 6
	Alignment   uint8                  // byte offset 7
	Class       format.Class           // byte offset 8
	FileKind    format.FileKind        // byte offset 10-11
	Arch        format.Arch            // byte offset 12-13
	NoteCount   uint32                 // byte offset 16-19
	RawSize     uint32                 // byte offset 20-23
	Checksum    uint64                 // byte offset 24-31
}

// NewArchiveHeader creates a header with the current version and default alignment.
func NewArchiveHeader() *ArchiveHeader {
	return &ArchiveHeader{
		Version:     ArchiveVersion,
		Compression: format.CompressionNone,
		Alignment:   DefaultAlignment,
	}
}

// IsBigEndian reports whether the archived notes are big-endian.
func (h *ArchiveHeader) IsBigEndian() bool {
	return h.Flags&FlagBigEndian != 0
}

// SetBigEndian sets or clears the big-endian flag.
func (h *ArchiveHeader) SetBigEndian(big bool) {
	if big {
		h.Flags |= FlagBigEndian
	} else {
		h.Flags &^= FlagBigEndian
	}
}

// Parse parses the header from a byte slice.
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 32 bytes, ErrInvalidMagicNumber,
//     ErrInvalidVersion, or ErrInvalidAlignment
func (h *ArchiveHeader) Parse(data []byte) error {
	if len(data) != ArchiveHeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	le := binary.LittleEndian
	if le.Uint32(data[0:4]) != ArchiveMagic {
		return errs.ErrInvalidMagicNumber
	}

	h.Version = data[4]
	h.Flags = data[5]
	h.Compression = format.CompressionType(data[6])
	h.Alignment = data[7]
	h.Class = format.Class(data[8])
	h.FileKind = format.FileKind(le.Uint16(data[10:12]))
	h.Arch = format.Arch(le.Uint16(data[12:14]))
	h.NoteCount = le.Uint32(data[16:20])
	h.RawSize = le.Uint32(data[20:24])
	h.Checksum = le.Uint64(data[24:32])

	if h.Version != ArchiveVersion {
		return errs.ErrInvalidVersion
	}

	if !ValidAlignment(int(h.Alignment)) {
		return errs.ErrInvalidAlignment
	}

	return nil
}

// Bytes serializes the ArchiveHeader into a byte slice.
func (h *ArchiveHeader) Bytes() []byte {
	b := make([]byte, ArchiveHeaderSize)

	le := binary.LittleEndian
	le.PutUint32(b[0:4], ArchiveMagic)
	b[4] = h.Version
	b[5] = h.Flags
	b[6] = uint8(h.Compression)
	b[7] = h.Alignment
	b[8] = uint8(h.Class)
	le.PutUint16(b[10:12], uint16(h.FileKind))
	le.PutUint16(b[12:14], uint16(h.Arch))
	le.PutUint32(b[16:20], h.NoteCount)
	le.PutUint32(b[20:24], h.RawSize)
	le.PutUint64(b[24:32], h.Checksum)

	return b
}

// ParseArchiveHeader parses an ArchiveHeader from the start of data.
func ParseArchiveHeader(data []byte) (ArchiveHeader, error) {
	if len(data) < ArchiveHeaderSize {
		return ArchiveHeader{}, errs.ErrInvalidHeaderSize
	}

	h := ArchiveHeader{}
	if err := h.Parse(data[:ArchiveHeaderSize]); err != nil {
		return ArchiveHeader{}, err
	}

	return h, nil
}
