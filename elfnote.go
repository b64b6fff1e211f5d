// Package elfnote parses, classifies and serializes ELF note records.
//
// ELF notes carry build identifiers, ABI tags, toolchain properties and, in
// core dumps, the register and process state of every thread. Each record is
// a small header (name size, payload size, raw type) followed by an owner
// name and a payload, both padded to the note alignment.
//
// # Core Features
//
//   - Classification of raw NT_* codes into semantic types, owner and file
//     kind aware, with core dump codes resolved independently of the owner
//   - Structured variants for GNU, Go, Android and core dump notes, falling
//     back to an opaque generic note when context is missing
//   - Byte-identical serialization of decoded notes in either byte order and
//     with 4 or 8 byte alignment
//   - Whole section parsing with lookup, iteration and xxHash64 fingerprints
//   - Compressed, checksummed archives and JSON/YAML/CBOR export
//
// # Basic Usage
//
// Decoding the notes of an ELF file:
//
//	sections, err := elfnote.ReadFile("/usr/bin/true")
//	if err != nil {
//	    return err
//	}
//	for _, sec := range sections {
//	    for _, n := range sec.Notes.All() {
//	        fmt.Println(sec.Name, n.Type())
//	    }
//	}
//
// Creating a note:
//
//	n, _ := elfnote.NewNoteFromType(note.TypeGNUBuildID, id)
//	data := n.Bytes()
//
// # Package Structure
//
// This package provides top-level wrappers around the note and noteset
// packages. For fine-grained control use those packages directly.
package elfnote

import (
	"github.com/arloliu/elfnote/internal/hash"
	"github.com/arloliu/elfnote/note"
	"github.com/arloliu/elfnote/noteset"
)

// NewNote creates a note from its raw fields. See note.New.
func NewNote(name string, raw uint32, desc []byte, opts ...note.Option) (note.Note, error) {
	return note.New(name, raw, desc, opts...)
}

// NewNoteFromType creates a note of the given semantic type with its canonical
// owner name. See note.NewFromType.
func NewNoteFromType(typ note.Type, desc []byte, opts ...note.Option) (note.Note, error) {
	return note.NewFromType("", typ, desc, opts...)
}

// ParseNote decodes one note from the start of data.
//
// Returns:
//   - note.Note: Decoded note
//   - int: Bytes consumed, padding included
//   - error: errs.ErrTruncatedInput when data is shorter than the record
func ParseNote(data []byte, opts ...note.Option) (note.Note, int, error) {
	return note.ParseBytes(data, opts...)
}

// ParseNotes decodes every note of a note section.
func ParseNotes(data []byte, opts ...note.Option) ([]note.Note, error) {
	set, err := noteset.Parse(data, opts...)
	if err != nil {
		return nil, err
	}

	notes := make([]note.Note, 0, set.Len())
	for _, n := range set.All() {
		notes = append(notes, n)
	}

	return notes, nil
}

// ParseSection decodes a note section into a set.
func ParseSection(data []byte, opts ...note.Option) (*noteset.Set, error) {
	return noteset.Parse(data, opts...)
}

// Fingerprint returns the xxHash64 of the serialized note.
func Fingerprint(n note.Note) uint64 {
	return hash.Sum(n.Bytes())
}
