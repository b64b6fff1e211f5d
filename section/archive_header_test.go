package section

import (
	"testing"

	"github.com/arloliu/elfnote/errs"
	"github.com/arloliu/elfnote/format"
	"github.com/stretchr/testify/require"
)

func TestNewArchiveHeader(t *testing.T) {
	h := NewArchiveHeader()

	require.Equal(t, uint8(ArchiveVersion), h.Version)
	require.Equal(t, format.CompressionNone, h.Compression)
	require.Equal(t, uint8(DefaultAlignment), h.Alignment)
	require.False(t, h.IsBigEndian())
}

func TestArchiveHeader_Parse(t *testing.T) {
	t.Run("Valid header", func(t *testing.T) {
		original := NewArchiveHeader()
		original.Compression = format.CompressionZstd
		original.Alignment = WideAlignment
		original.Class = format.Class64
		original.FileKind = format.KindCore
		original.Arch = format.ArchAArch64
		original.NoteCount = 7
		original.RawSize = 4096
		original.Checksum = 0x0123456789abcdef
		original.SetBigEndian(true)

		data := original.Bytes()
		require.Len(t, data, ArchiveHeaderSize)
		require.Equal(t, []byte("ENOT"), data[0:4])

		parsed := &ArchiveHeader{}
		require.NoError(t, parsed.Parse(data))
		require.Equal(t, *original, *parsed)
		require.True(t, parsed.IsBigEndian())

		parsed.SetBigEndian(false)
		require.False(t, parsed.IsBigEndian())
	})

	t.Run("Invalid size", func(t *testing.T) {
		err := (&ArchiveHeader{}).Parse([]byte{1, 2, 3})
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

		_, err = ParseArchiveHeader(make([]byte, ArchiveHeaderSize-1))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("Invalid magic number", func(t *testing.T) {
		data := NewArchiveHeader().Bytes()
		data[0] = 'X'

		_, err := ParseArchiveHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("Invalid version", func(t *testing.T) {
		data := NewArchiveHeader().Bytes()
		data[4] = 99

		_, err := ParseArchiveHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidVersion)
	})

	t.Run("Invalid alignment", func(t *testing.T) {
		data := NewArchiveHeader().Bytes()
		data[7] = 3

		_, err := ParseArchiveHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidAlignment)
	})

	t.Run("Extra data ignored", func(t *testing.T) {
		original := NewArchiveHeader()
		original.NoteCount = 2
		data := append(original.Bytes(), 1, 2, 3)

		parsed, err := ParseArchiveHeader(data)
		require.NoError(t, err)
		require.Equal(t, uint32(2), parsed.NoteCount)
	})
}
