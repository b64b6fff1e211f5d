//go:build cgo && gozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

const gozstdLevel = 3

// Compress compresses data into a zstd frame with libzstd.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if err := checkSectionSize(len(data)); err != nil {
		return nil, err
	}

	return gozstd.CompressLevel(nil, data, gozstdLevel), nil
}

// Decompress decodes a zstd frame with libzstd.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if err := checkZstdFrame(data); err != nil {
		return nil, err
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if err := checkSectionSize(len(out)); err != nil {
		return nil, err
	}

	return out, nil
}
