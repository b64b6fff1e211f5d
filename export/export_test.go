package export

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/elfnote/errs"
	"github.com/arloliu/elfnote/format"
	"github.com/arloliu/elfnote/note"
	"github.com/arloliu/elfnote/noteset"
)

func sampleSet(t *testing.T) *noteset.Set {
	t.Helper()

	s, err := noteset.New(note.WithFileKind(format.KindDyn))
	require.NoError(t, err)

	abi := make([]byte, 16)
	binary.LittleEndian.PutUint32(abi[4:], 3)
	binary.LittleEndian.PutUint32(abi[8:], 2)

	for _, tc := range []struct {
		typ  note.Type
		desc []byte
	}{
		{note.TypeGNUABITag, abi},
		{note.TypeGNUBuildID, []byte{0xca, 0xfe, 0xba, 0xbe}},
		{note.TypeGoBuildID, []byte("id/xyz")},
	} {
		n, err := note.NewFromType("", tc.typ, tc.desc, note.WithFileKind(format.KindDyn))
		require.NoError(t, err)
		require.NoError(t, s.Add(n))
	}

	n, err := note.New("vendor", 99, []byte{1})
	require.NoError(t, err)
	require.NoError(t, s.Add(n))

	return s
}

func TestFromSet(t *testing.T) {
	records := FromSet(sampleSet(t))
	require.Len(t, records, 4)

	require.Equal(t, 0, records[0].Index)
	require.Equal(t, "GNU_ABI_TAG", records[0].Type)
	require.Equal(t, ".note.ABI-tag", records[0].Section)
	require.Equal(t, "Linux", records[0].Details["abi"])
	require.Equal(t, "3.2.0", records[0].Details["version"])

	require.Equal(t, "cafebabe", records[1].Description)
	require.Equal(t, "cafebabe", records[1].Details["build_id"])
	require.Equal(t, 20, records[1].Size)

	require.Equal(t, "id/xyz", records[2].Details["go_build_id"])

	require.Equal(t, 3, records[3].Index)
	require.Equal(t, "UNKNOWN", records[3].Type)
	require.Equal(t, uint32(99), records[3].RawType)
	require.Empty(t, records[3].Section)
	require.Nil(t, records[3].Details)
}

func TestFromNoteCore(t *testing.T) {
	desc := make([]byte, 16+24)
	binary.LittleEndian.PutUint64(desc[0:], 1)
	binary.LittleEndian.PutUint64(desc[8:], 4096)
	binary.LittleEndian.PutUint64(desc[16:], 0x1000)
	binary.LittleEndian.PutUint64(desc[24:], 0x2000)
	desc = append(desc, "/bin/sh\x00"...)

	n, err := note.New(note.OwnerCore, note.NTFile, desc,
		note.WithFileKind(format.KindCore), note.WithClass(format.Class64))
	require.NoError(t, err)

	rec := FromNote(n)
	require.Equal(t, "CORE_FILE", rec.Type)
	require.Equal(t, uint64(4096), rec.Details["page_size"])
	files, ok := rec.Details["files"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, files, 1)
	require.Equal(t, "/bin/sh", files[0]["path"])
}

func TestMarshalRoundTrip(t *testing.T) {
	records := FromSet(sampleSet(t))

	for _, f := range []Format{FormatJSON, FormatYAML, FormatCBOR} {
		t.Run(string(f), func(t *testing.T) {
			data, err := Marshal(records, f)
			require.NoError(t, err)
			require.NotEmpty(t, data)

			var got []Record
			require.NoError(t, Unmarshal(data, f, &got))
			require.Len(t, got, len(records))
			for i := range records {
				require.Equal(t, records[i].Name, got[i].Name)
				require.Equal(t, records[i].Type, got[i].Type)
				require.Equal(t, records[i].RawType, got[i].RawType)
				require.Equal(t, records[i].Description, got[i].Description)
				require.Equal(t, records[i].Section, got[i].Section)
			}
		})
	}
}

func TestMarshalCBORDeterministic(t *testing.T) {
	records := FromSet(sampleSet(t))

	first, err := Marshal(records, FormatCBOR)
	require.NoError(t, err)
	for range 10 {
		again, err := Marshal(records, FormatCBOR)
		require.NoError(t, err)
		require.True(t, bytes.Equal(first, again))
	}
}

func TestFormats(t *testing.T) {
	f, err := ParseFormat("yaml")
	require.NoError(t, err)
	require.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	require.ErrorIs(t, err, errs.ErrInvalidExportFormat)

	_, err = Marshal(nil, Format("xml"))
	require.ErrorIs(t, err, errs.ErrInvalidExportFormat)

	var out []Record
	require.ErrorIs(t, Unmarshal(nil, Format("xml"), &out), errs.ErrInvalidExportFormat)
}

func TestMarshalFile(t *testing.T) {
	file := File{
		Path: "/bin/true",
		Sections: []Section{
			{Name: ".note.gnu.build-id", Offset: 0x2c4, Notes: FromSet(sampleSet(t))},
		},
	}

	data, err := Marshal(file, FormatYAML)
	require.NoError(t, err)
	require.Contains(t, string(data), "path: /bin/true")

	var got File
	require.NoError(t, Unmarshal(data, FormatYAML, &got))
	require.Equal(t, file.Path, got.Path)
	require.Len(t, got.Sections, 1)
	require.Len(t, got.Sections[0].Notes, 4)
	require.Equal(t, uint64(0x2c4), got.Sections[0].Offset)
}
