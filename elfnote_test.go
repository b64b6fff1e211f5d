package elfnote

import (
	"debug/elf"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/elfnote/errs"
	"github.com/arloliu/elfnote/format"
	"github.com/arloliu/elfnote/note"
)

func TestNewAndParse(t *testing.T) {
	n, err := NewNoteFromType(note.TypeGNUBuildID, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	require.Equal(t, note.OwnerGNU, n.Name())

	data := n.Bytes()
	data = append(data, data...)

	got, consumed, err := ParseNote(data, note.WithFileKind(format.KindExec))
	require.NoError(t, err)
	require.Equal(t, len(data)/2, consumed)
	require.IsType(t, &note.BuildID{}, got)
	require.Equal(t, Fingerprint(n), Fingerprint(got))

	notes, err := ParseNotes(data, note.WithFileKind(format.KindExec))
	require.NoError(t, err)
	require.Len(t, notes, 2)

	set, err := ParseSection(data)
	require.NoError(t, err)
	require.Equal(t, data, set.Bytes())

	_, _, err = ParseNote(data[:20])
	require.ErrorIs(t, err, errs.ErrTruncatedInput)
}

func TestNewNote(t *testing.T) {
	n, err := NewNote(note.OwnerCore, note.NTAuxv, make([]byte, 16),
		note.WithFileKind(format.KindCore), note.WithClass(format.Class64))
	require.NoError(t, err)
	require.IsType(t, &note.CoreAuxv{}, n)
}

func TestReadFileSelf(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("test binary is not ELF")
	}

	exe, err := os.Executable()
	require.NoError(t, err)

	f, err := elf.Open(exe)
	require.NoError(t, err)
	defer f.Close()

	opts, err := FileOptions(f)
	require.NoError(t, err)
	require.NotEmpty(t, opts)

	sections, err := ReadFile(exe)
	require.NoError(t, err)
	require.NotEmpty(t, sections)

	var found bool
	for _, sec := range sections {
		if n, ok := sec.Notes.Find(note.TypeGoBuildID); ok {
			id, err := n.(*note.GoBuildID).ID()
			require.NoError(t, err)
			require.NotEmpty(t, id)
			found = true
		}
	}
	require.True(t, found, "go build id note")
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile("/nonexistent/elf")
	require.Error(t, err)
}
