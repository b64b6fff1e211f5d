package note

import (
	"fmt"
	"strings"

	"github.com/arloliu/elfnote/errs"
)

// MappedFile is one file-backed mapping listed in an NT_FILE note.
type MappedFile struct {
	Start  uint64
	End    uint64
	Offset uint64
	Path   string
}

// CoreFile is the NT_FILE note listing the memory mapped files of the dumped
// process. Layout: count and page size words, count (start, end, file offset)
// word triples, then count NUL-terminated paths.
type CoreFile struct {
	Base
}

var _ Note = (*CoreFile)(nil)

func newCoreFile(b Base) (Note, bool) {
	if b.wordSize() == 0 {
		return nil, false
	}

	return &CoreFile{Base: b}, true
}

func (n *CoreFile) Clone() Note { return &CoreFile{Base: n.clone()} }

// PageSize returns the unit of the file offsets.
func (n *CoreFile) PageSize() (uint64, error) {
	return readWord(&n.Base, n.wordSize())
}

// Files decodes the mapping table. File offsets are returned in pages.
func (n *CoreFile) Files() ([]MappedFile, error) {
	ws := n.wordSize()

	count, err := readWord(&n.Base, 0)
	if err != nil {
		return nil, err
	}
	if count > uint64(len(n.desc)) || 2*ws+int(count)*3*ws > len(n.desc) { //nolint:gosec
		return nil, fmt.Errorf("file table of %d entries: %w", count, errs.ErrOutOfBounds)
	}
	tableEnd := 2*ws + int(count)*3*ws //nolint:gosec

	files := make([]MappedFile, count)
	for i := range files {
		base := 2*ws + i*3*ws
		files[i].Start, _ = readWord(&n.Base, base)
		files[i].End, _ = readWord(&n.Base, base+ws)
		files[i].Offset, _ = readWord(&n.Base, base+2*ws)
	}

	offset := tableEnd
	for i := range files {
		path, err := readStringAt(&n.Base, offset, 0)
		if err != nil {
			return nil, err
		}
		files[i].Path = path
		offset += len(path) + 1
	}

	return files, nil
}

func (n *CoreFile) String() string {
	var sb strings.Builder
	n.dump(&sb)

	if files, err := n.Files(); err == nil {
		for _, f := range files {
			fmt.Fprintf(&sb, "  0x%x-0x%x %d %s\n", f.Start, f.End, f.Offset, f.Path)
		}
	}

	return sb.String()
}
