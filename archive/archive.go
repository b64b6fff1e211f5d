// Package archive stores a note set as a compact, checksummed snapshot.
//
// An archive is a 32-byte section.ArchiveHeader followed by the serialized
// note section, compressed with one of the compress codecs. The header keeps
// the decoding context (byte order, alignment, class, file kind and machine),
// so a decoded archive yields the same note variants as the original file
// without access to its ELF header.
package archive

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/arloliu/elfnote/compress"
	"github.com/arloliu/elfnote/endian"
	"github.com/arloliu/elfnote/errs"
	"github.com/arloliu/elfnote/format"
	"github.com/arloliu/elfnote/internal/hash"
	"github.com/arloliu/elfnote/internal/options"
	"github.com/arloliu/elfnote/internal/pool"
	"github.com/arloliu/elfnote/note"
	"github.com/arloliu/elfnote/noteset"
	"github.com/arloliu/elfnote/section"
)

type config struct {
	compression format.CompressionType
	logger      *slog.Logger
}

// Option configures Encode and Decode.
type Option = options.Option[*config]

// WithCompression selects the codec used by Encode. The default is Zstd.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *config) error {
		if _, err := compress.GetCodec(c); err != nil {
			return err
		}
		cfg.compression = c

		return nil
	})
}

// WithLogger sets the logger for archive and note decoding events.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	})
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		compression: format.CompressionZstd,
		logger:      slog.New(slog.DiscardHandler),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Encode serializes set into an archive.
//
// Parameters:
//   - set: Notes to archive; its context is stored in the header
//   - opts: Compression and logging options
//
// Returns:
//   - []byte: Archive bytes
//   - error: Option, compression or size errors
func Encode(set *noteset.Set, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	raw := set.Bytes()
	if uint64(len(raw)) > math.MaxUint32 {
		return nil, fmt.Errorf("note section of %d bytes: %w", len(raw), errs.ErrSizeMismatch)
	}

	ctx := set.Context()

	hdr := section.NewArchiveHeader()
	hdr.Compression = cfg.compression
	hdr.Alignment = uint8(ctx.Alignment) //nolint:gosec
	hdr.Class = ctx.Class
	hdr.FileKind = ctx.FileKind
	hdr.Arch = ctx.Arch
	hdr.NoteCount = uint32(set.Len()) //nolint:gosec
	hdr.RawSize = uint32(len(raw))    //nolint:gosec
	hdr.Checksum = hash.Sum(raw)
	hdr.SetBigEndian(endian.IsBigEndian(ctx.Engine))

	packed, stats, err := compress.CompressWithStats(cfg.compression, raw)
	if err != nil {
		return nil, err
	}

	buf := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(buf)

	buf.Grow(section.ArchiveHeaderSize + len(packed))
	buf.MustWrite(hdr.Bytes())
	buf.MustWrite(packed)

	cfg.logger.Debug("encoded note archive",
		slog.Int("notes", set.Len()),
		slog.String("compression", cfg.compression.String()),
		slog.Int("raw_size", stats.OriginalSize),
		slog.Int("compressed_size", stats.CompressedSize),
		slog.Float64("ratio", stats.Ratio()),
	)

	return buf.Clone(), nil
}

// Decode restores the note set stored in data.
//
// Returns:
//   - *noteset.Set: Decoded notes with the archived context
//   - error: errs.ErrInvalidHeaderSize, errs.ErrInvalidMagicNumber,
//     errs.ErrInvalidVersion, errs.ErrSizeMismatch, errs.ErrChecksumMismatch,
//     decompression or note decoding errors
func Decode(data []byte, opts ...Option) (*noteset.Set, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	hdr, err := section.ParseArchiveHeader(data)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(hdr.Compression)
	if err != nil {
		return nil, err
	}

	raw, err := codec.Decompress(data[section.ArchiveHeaderSize:])
	if err != nil {
		return nil, err
	}

	if len(raw) != int(hdr.RawSize) {
		return nil, fmt.Errorf("section is %d bytes, header says %d: %w", len(raw), hdr.RawSize, errs.ErrSizeMismatch)
	}

	if sum := hash.Sum(raw); sum != hdr.Checksum {
		return nil, fmt.Errorf("checksum %016x, header says %016x: %w", sum, hdr.Checksum, errs.ErrChecksumMismatch)
	}

	set, err := noteset.Parse(raw, NoteOptions(hdr, cfg.logger)...)
	if err != nil {
		return nil, err
	}

	if set.Len() != int(hdr.NoteCount) {
		return nil, fmt.Errorf("decoded %d notes, header says %d: %w", set.Len(), hdr.NoteCount, errs.ErrSizeMismatch)
	}

	cfg.logger.Debug("decoded note archive",
		slog.Int("notes", set.Len()),
		slog.String("compression", hdr.Compression.String()),
	)

	return set, nil
}

// NoteOptions returns the note decoding options recorded in hdr.
func NoteOptions(hdr section.ArchiveHeader, logger *slog.Logger) []note.Option {
	engine := endian.GetLittleEndianEngine()
	if hdr.IsBigEndian() {
		engine = endian.GetBigEndianEngine()
	}

	return []note.Option{
		note.WithByteOrder(engine),
		note.WithAlignment(int(hdr.Alignment)),
		note.WithClass(hdr.Class),
		note.WithFileKind(hdr.FileKind),
		note.WithArch(hdr.Arch),
		note.WithLogger(logger),
	}
}

// Header returns the archive header of data without decompressing it.
func Header(data []byte) (section.ArchiveHeader, error) {
	return section.ParseArchiveHeader(data)
}
