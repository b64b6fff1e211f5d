package compress

import (
	"fmt"

	"github.com/arloliu/elfnote/errs"
	"github.com/arloliu/elfnote/format"
)

// maxSectionSize bounds the note section a codec accepts or restores. Note
// sections of real binaries and core dumps stay far below it.
var maxSectionSize = 64 * 1024 * 1024

func checkSectionSize(size int) error {
	if size > maxSectionSize {
		return fmt.Errorf("%d bytes, limit %d: %w", size, maxSectionSize, errs.ErrSectionTooLarge)
	}

	return nil
}

// Compressor compresses a serialized note section.
//
// The returned slice is owned by the caller. The input is never modified, but
// NoOpCompressor returns it as is.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores data produced by the matching Compressor.
//
// It returns an error when data is corrupted or was produced by another
// algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// Stats describes one compression run, used for archive logging.
type Stats struct {
	Algorithm      format.CompressionType
	OriginalSize   int
	CompressedSize int
}

// Ratio returns compressed size over original size, or 0 for empty input.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// NoOpCompressor stores sections uncompressed.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a codec that passes data through.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data itself after the size check. The result aliases the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	if err := checkSectionSize(len(data)); err != nil {
		return nil, err
	}

	return data, nil
}

// Decompress returns data itself after the size check. The result aliases the input.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	if err := checkSectionSize(len(data)); err != nil {
		return nil, err
	}

	return data, nil
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in codec for compressionType.
//
// Returns:
//   - Codec: Shared, concurrency safe codec
//   - error: Unsupported compression type
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// CompressWithStats compresses data with the codec for compressionType and
// reports the sizes involved.
func CompressWithStats(compressionType format.CompressionType, data []byte) ([]byte, Stats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, Stats{}, err
	}

	out, err := codec.Compress(data)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%s compress: %w", compressionType, err)
	}

	return out, Stats{Algorithm: compressionType, OriginalSize: len(data), CompressedSize: len(out)}, nil
}
