package note

import (
	"log/slog"

	"github.com/arloliu/elfnote/endian"
	"github.com/arloliu/elfnote/errs"
	"github.com/arloliu/elfnote/format"
	"github.com/arloliu/elfnote/internal/options"
	"github.com/arloliu/elfnote/section"
)

// Context carries the target parameters supplied by the caller. They are never
// inferred from note contents.
type Context struct {
	FileKind  format.FileKind
	Arch      format.Arch
	Class     format.Class
	Engine    endian.EndianEngine
	Alignment int
	Logger    *slog.Logger
}

// Option configures a Context.
type Option = options.Option[*Context]

// NewContext returns a Context with defaults applied and opts on top.
//
// Defaults: no file kind, arch or class, little-endian, 4-byte alignment and a
// logger that discards everything.
func NewContext(opts ...Option) (*Context, error) {
	ctx := &Context{
		Engine:    endian.GetLittleEndianEngine(),
		Alignment: section.DefaultAlignment,
		Logger:    slog.New(slog.DiscardHandler),
	}

	if err := options.Apply(ctx, opts...); err != nil {
		return nil, err
	}

	return ctx, nil
}

// Options returns the options that reproduce c.
func (c *Context) Options() []Option {
	return []Option{
		WithFileKind(c.FileKind),
		WithArch(c.Arch),
		WithClass(c.Class),
		WithByteOrder(c.Engine),
		WithAlignment(c.Alignment),
		WithLogger(c.Logger),
	}
}

// WithFileKind sets the kind of the containing file.
func WithFileKind(kind format.FileKind) Option {
	return options.NoError(func(c *Context) {
		c.FileKind = kind
	})
}

// WithArch sets the target machine.
func WithArch(arch format.Arch) Option {
	return options.NoError(func(c *Context) {
		c.Arch = arch
	})
}

// WithClass sets the target word size.
func WithClass(class format.Class) Option {
	return options.NoError(func(c *Context) {
		c.Class = class
	})
}

// WithByteOrder sets the byte order of the containing file.
func WithByteOrder(engine endian.EndianEngine) Option {
	return options.New(func(c *Context) error {
		if engine == nil {
			return errs.ErrInvalidByteOrder
		}
		c.Engine = engine

		return nil
	})
}

// WithBigEndian is shorthand for WithByteOrder(endian.GetBigEndianEngine()).
func WithBigEndian() Option {
	return WithByteOrder(endian.GetBigEndianEngine())
}

// WithAlignment sets the note alignment unit. Only 4 and 8 are accepted.
func WithAlignment(align int) Option {
	return options.New(func(c *Context) error {
		if !section.ValidAlignment(align) {
			return errs.ErrInvalidAlignment
		}
		c.Alignment = align

		return nil
	})
}

// WithLogger sets the logger used to report fallbacks to the generic variant.
// A nil logger keeps the current one.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *Context) {
		if logger != nil {
			c.Logger = logger
		}
	})
}
