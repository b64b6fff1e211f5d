// Package section defines the low-level binary structures of ELF notes and of
// the elfnote archive format.
//
// # Note Record Layout
//
// Every note record starts with a fixed 12-byte header followed by the owner
// name and the payload (description):
//
//	┌─────────────────────────────────────────────────────────┐
//	│ NameSize (4 bytes): name length including the NUL       │
//	│ DescSize (4 bytes): payload length before padding       │
//	│ Type     (4 bytes): raw NT_* type code                  │
//	├─────────────────────────────────────────────────────────┤
//	│ Name (NameSize bytes + zero padding)                    │
//	├─────────────────────────────────────────────────────────┤
//	│ Desc (DescSize bytes + zero padding)                    │
//	└─────────────────────────────────────────────────────────┘
//
// Header fields use the byte order of the containing file.
//
// # Alignment
//
// The alignment unit is 4 for most note sections and 8 for sections such as
// .note.gnu.property in 64-bit objects. The payload starts at
//
//	AlignUp(HeaderSize+NameSize, align)
//
// and the next record starts at AlignUp(descOffset+DescSize, align). With a
// unit of 4 this reduces to the classic 12 + pad4(namesz) + pad4(descsz).
// Padding bytes are filled with zeros.
//
// # Archive Header
//
// ArchiveHeader (32 bytes, always little-endian):
//
//	Bytes  | Field       | Type   | Description
//	-------|-------------|--------|----------------------------------
//	0-3    | Magic       | uint32 | "ENOT"
//	4      | Version     | uint8  | Archive format version
//	5      | Flags       | uint8  | Bit 0: notes are big-endian
//	6      | Compression | uint8  | format.CompressionType
//	7      | Alignment   | uint8  | Note alignment unit (4 or 8)
//	8      | Class       | uint8  | format.Class
//	9      | Reserved    | uint8  | Must be 0
//	10-11  | FileKind    | uint16 | format.FileKind
//	12-13  | Arch        | uint16 | format.Arch
//	14-15  | Reserved    | uint16 | Must be 0
//	16-19  | NoteCount   | uint32 | Number of notes in the section
//	20-23  | RawSize     | uint32 | Uncompressed section size
//	24-31  | Checksum    | uint64 | xxHash64 of the uncompressed section
package section
