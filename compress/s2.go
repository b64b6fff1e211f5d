package compress

import "github.com/klauspost/compress/s2"

// S2Compressor compresses with the S2 block format.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates an S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes a section as one S2 block. Empty input yields nil.
//
// Returns:
//   - []byte: Compressed block
//   - error: errs.ErrSectionTooLarge past the section size limit
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if err := checkSectionSize(len(data)); err != nil {
		return nil, err
	}

	return s2.Encode(make([]byte, s2.MaxEncodedLen(len(data))), data), nil
}

// Decompress decodes an S2 block. The decoded length recorded in the block
// header is checked before the output buffer is allocated.
//
// Returns:
//   - []byte: Decompressed section (nil for empty input)
//   - error: errs.ErrSectionTooLarge, or s2 corruption errors
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, err := s2.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if err := checkSectionSize(size); err != nil {
		return nil, err
	}

	return s2.Decode(make([]byte, size), data)
}
