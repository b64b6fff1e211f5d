package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses with LZ4 block format.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data as a single LZ4 block using a pooled compressor.
//
// Returns:
//   - []byte: Compressed block (nil for empty input)
//   - error: Compression error
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if err := checkSectionSize(len(data)); err != nil {
		return nil, err
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress restores an LZ4 block.
//
// LZ4 blocks do not record their decompressed size, so the output buffer
// starts at four times the input and doubles on short buffer errors up to
// the section size limit.
//
// Returns:
//   - []byte: Decompressed data (nil for empty input)
//   - error: errs.ErrSectionTooLarge past the size limit, or corruption errors
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	for size := min(len(data)*4, maxSectionSize); ; size = min(size*2, maxSectionSize) {
		buf := make([]byte, size)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, err
		}
		if size == maxSectionSize {
			return nil, checkSectionSize(maxSectionSize + 1)
		}
	}
}
