package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/elfnote/errs"
	"github.com/arloliu/elfnote/format"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

// sectionLike returns data resembling a core dump note section: repeated
// headers and owner names with mostly zero payloads.
func sectionLike(records int) []byte {
	var buf bytes.Buffer
	for i := range records {
		buf.Write([]byte{5, 0, 0, 0, 0x50, 0x01, 0, 0, 1, 0, 0, 0})
		buf.WriteString("CORE\x00\x00\x00\x00")
		payload := make([]byte, 336)
		payload[32] = byte(i)
		buf.Write(payload)
	}

	return buf.Bytes()
}

func TestCodecRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42)) //nolint:gosec
	random := make([]byte, 4096)
	_, err := rng.Read(random)
	require.NoError(t, err)

	inputs := map[string][]byte{
		"single byte": {0x42},
		"short text":  []byte("GNU\x00build-id"),
		"section":     sectionLike(64),
		"random":      random,
	}

	for _, typ := range allTypes {
		codec, err := GetCodec(typ)
		require.NoError(t, err)

		for name, data := range inputs {
			t.Run(typ.String()+"/"+name, func(t *testing.T) {
				packed, err := codec.Compress(data)
				require.NoError(t, err)

				unpacked, err := codec.Decompress(packed)
				require.NoError(t, err)
				require.Equal(t, data, unpacked)
			})
		}
	}
}

func TestCodecEmptyInput(t *testing.T) {
	for _, typ := range allTypes {
		codec, err := GetCodec(typ)
		require.NoError(t, err)

		packed, err := codec.Compress(nil)
		require.NoError(t, err)
		require.Empty(t, packed)

		unpacked, err := codec.Decompress(nil)
		require.NoError(t, err)
		require.Empty(t, unpacked)
	}
}

func TestCodecShrinksSections(t *testing.T) {
	data := sectionLike(128)

	for _, typ := range allTypes[1:] {
		out, stats, err := CompressWithStats(typ, data)
		require.NoError(t, err)
		require.Equal(t, typ, stats.Algorithm)
		require.Equal(t, len(data), stats.OriginalSize)
		require.Equal(t, len(out), stats.CompressedSize)
		require.Less(t, stats.Ratio(), 0.5, typ.String())
	}
}

func TestCodecCorruptInput(t *testing.T) {
	garbage := []byte{0xff, 0xfe, 0xfd, 0xfc, 0xfb, 0xfa, 0xf9, 0xf8}

	for _, typ := range []format.CompressionType{format.CompressionZstd, format.CompressionS2} {
		codec, err := GetCodec(typ)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.Error(t, err, typ.String())
	}
}

func TestCodecSectionLimit(t *testing.T) {
	data := sectionLike(16)
	packed := make(map[format.CompressionType][]byte)
	for _, typ := range allTypes {
		codec, err := GetCodec(typ)
		require.NoError(t, err)
		out, err := codec.Compress(data)
		require.NoError(t, err)
		packed[typ] = out
	}

	limit := maxSectionSize
	maxSectionSize = len(data) - 1
	t.Cleanup(func() { maxSectionSize = limit })

	for _, typ := range allTypes {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := GetCodec(typ)
			require.NoError(t, err)

			_, err = codec.Compress(data)
			require.ErrorIs(t, err, errs.ErrSectionTooLarge)

			_, err = codec.Decompress(packed[typ])
			require.ErrorIs(t, err, errs.ErrSectionTooLarge)

			_, err = codec.Compress(data[:len(data)-1])
			require.NoError(t, err)
		})
	}
}

func TestNoOpAliases(t *testing.T) {
	data := []byte{1, 2, 3}
	out, err := NewNoOpCompressor().Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])
}

func TestGetCodecUnsupported(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0))
	require.Error(t, err)

	_, _, err = CompressWithStats(format.CompressionType(99), []byte{1})
	require.Error(t, err)
}

func TestStatsRatio(t *testing.T) {
	require.Zero(t, Stats{}.Ratio())
	require.InDelta(t, 0.25, Stats{OriginalSize: 400, CompressedSize: 100}.Ratio(), 1e-9)
}

func BenchmarkCompress(b *testing.B) {
	data := sectionLike(256)

	for _, typ := range allTypes {
		codec, _ := GetCodec(typ)
		b.Run(typ.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for b.Loop() {
				_, _ = codec.Compress(data)
			}
		})
	}
}
