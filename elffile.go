package elfnote

import (
	"debug/elf"
	"fmt"
	"io"

	"github.com/arloliu/elfnote/endian"
	"github.com/arloliu/elfnote/format"
	"github.com/arloliu/elfnote/note"
	"github.com/arloliu/elfnote/noteset"
	"github.com/arloliu/elfnote/section"
)

// Section is one note container of an ELF file: an SHT_NOTE section or, for
// files without section headers, a PT_NOTE segment.
type Section struct {
	Name   string
	Offset uint64
	Notes  *noteset.Set
}

// FileOptions returns the note context described by the ELF header of f.
//
// Returns:
//   - []note.Option: File kind, machine, class and byte order of f
//   - error: errs.ErrInvalidByteOrder for an unknown EI_DATA value
func FileOptions(f *elf.File) ([]note.Option, error) {
	engine, err := endian.FromELFData(byte(f.Data))
	if err != nil {
		return nil, err
	}

	return []note.Option{
		note.WithFileKind(format.FileKind(f.Type)),
		note.WithArch(format.Arch(f.Machine)),
		note.WithClass(format.Class(f.Class)),
		note.WithByteOrder(engine),
	}, nil
}

func alignmentOf(align uint64) note.Option {
	if align == section.WideAlignment {
		return note.WithAlignment(section.WideAlignment)
	}

	return note.WithAlignment(section.DefaultAlignment)
}

// ReadFile opens the ELF file at path and decodes all of its notes.
func ReadFile(path string, opts ...note.Option) ([]Section, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadELF(f, opts...)
}

// ReadELF decodes the notes of f.
//
// SHT_NOTE sections are used when the file has any. Otherwise, as with core
// dumps and section-stripped binaries, PT_NOTE segments are read. The context
// comes from the ELF header and the container alignment; opts are applied on
// top, e.g. to attach a logger.
//
// Returns:
//   - []Section: Note containers in file order
//   - error: I/O errors or note decoding errors, wrapped with the container name
func ReadELF(f *elf.File, opts ...note.Option) ([]Section, error) {
	base, err := FileOptions(f)
	if err != nil {
		return nil, err
	}

	var out []Section
	for _, s := range f.Sections {
		if s.Type != elf.SHT_NOTE {
			continue
		}
		data, err := s.Data()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.Name, err)
		}
		set, err := parseContainer(data, s.Addralign, base, opts)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", s.Name, err)
		}
		out = append(out, Section{Name: s.Name, Offset: s.Offset, Notes: set})
	}
	if len(out) > 0 {
		return out, nil
	}

	for i, p := range f.Progs {
		if p.Type != elf.PT_NOTE {
			continue
		}
		name := fmt.Sprintf("PT_NOTE[%d]", i)
		data, err := io.ReadAll(p.Open())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		set, err := parseContainer(data, p.Align, base, opts)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		out = append(out, Section{Name: name, Offset: p.Off, Notes: set})
	}

	return out, nil
}

func parseContainer(data []byte, align uint64, base, extra []note.Option) (*noteset.Set, error) {
	opts := make([]note.Option, 0, len(base)+len(extra)+1)
	opts = append(opts, base...)
	opts = append(opts, alignmentOf(align))
	opts = append(opts, extra...)

	return noteset.Parse(data, opts...)
}
