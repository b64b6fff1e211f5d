// Package compress provides the codecs used to shrink archived note sections.
//
// Supported algorithms:
//   - None: data is stored as is
//   - Zstd: best ratio, the default for archives
//   - S2: fast with a good ratio
//   - LZ4: fastest decompression
//
// Zstd uses the pure Go klauspost/compress implementation. Building with
// cgo and the gozstd tag switches it to valyala/gozstd; both produce
// standard zstd frames, so archives are interchangeable.
//
// Codecs are stateless values that are safe for concurrent use. Zstd and LZ4
// pool their encoder state internally.
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//		return err
//	}
//	packed, err := codec.Compress(set.Bytes())
package compress
