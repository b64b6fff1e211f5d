package compress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor compresses with Zstandard at the default level. The backing
// implementation is chosen at build time.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// checkZstdFrame validates the leading frame header of data and, when the
// encoder recorded the content size, rejects sections over the limit before
// any output is allocated. Both zstd backends write the content size.
func checkZstdFrame(data []byte) error {
	var hdr zstd.Header
	if err := hdr.Decode(data); err != nil {
		return fmt.Errorf("zstd frame header: %w", err)
	}
	if hdr.HasFCS && hdr.FrameContentSize > uint64(maxSectionSize) {
		return checkSectionSize(maxSectionSize + 1)
	}

	return nil
}
