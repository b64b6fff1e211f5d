package section

const (
	HeaderSize        = 12 // fixed note header size in bytes
	ArchiveHeaderSize = 32 // fixed archive header size in bytes

	DefaultAlignment = 4 // alignment of SHT_NOTE sections in most objects
	WideAlignment    = 8 // alignment used by 8-byte aligned note sections

	ArchiveMagic   = 0x544F4E45 // "ENOT" read as a little-endian uint32
	ArchiveVersion = 1

	FlagBigEndian = 0x01 // archive flag: notes are encoded big-endian
)

// ValidAlignment reports whether align is a supported note alignment unit.
func ValidAlignment(align int) bool {
	return align == DefaultAlignment || align == WideAlignment
}

// AlignUp rounds n up to the next multiple of align.
func AlignUp(n, align int) int {
	if align <= 1 {
		return n
	}

	return (n + align - 1) / align * align
}

// DescOffset returns the payload offset from the start of a note record.
func DescOffset(nameSize, align int) int {
	return AlignUp(HeaderSize+nameSize, align)
}

// NoteSize returns the padded on-disk size of a note record.
func NoteSize(nameSize, descSize, align int) int {
	return AlignUp(DescOffset(nameSize, align)+descSize, align)
}
