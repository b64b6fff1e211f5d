package note

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/arloliu/elfnote/encoding"
	"github.com/arloliu/elfnote/errs"
	"github.com/arloliu/elfnote/format"
	"github.com/arloliu/elfnote/section"
)

// constructor wraps a Base into its variant. It returns false when the Base
// lacks the context the variant needs to interpret the payload.
type constructor func(b Base) (Note, bool)

// constructors is the static dispatch table from semantic tag to variant.
// Tags without an entry use Generic.
var constructors = map[Type]constructor{
	TypeGNUABITag:        func(b Base) (Note, bool) { return &ABITag{Base: b}, true },
	TypeGNUHWCap:         func(b Base) (Note, bool) { return &HWCap{Base: b}, true },
	TypeGNUBuildID:       func(b Base) (Note, bool) { return &BuildID{Base: b}, true },
	TypeGNUGoldVersion:   func(b Base) (Note, bool) { return &GoldVersion{Base: b}, true },
	TypeGoBuildID:        func(b Base) (Note, bool) { return &GoBuildID{Base: b}, true },
	TypeGNUPropertyType0: func(b Base) (Note, bool) { return &GNUProperty{Base: b}, true },
	TypeAndroidIdent:     func(b Base) (Note, bool) { return &AndroidIdent{Base: b}, true },
	TypeCoreSigInfo:      func(b Base) (Note, bool) { return &CoreSigInfo{Base: b}, true },
	TypeCorePrStatus:     newCorePrStatus,
	TypeCorePrPsInfo:     newCorePrPsInfo,
	TypeCoreAuxv:         newCoreAuxv,
	TypeCoreFile:         newCoreFile,
	TypeCoreX86XState:    newCoreXState,
	TypeCoreARMSVE:       newCoreSVE,
}

func build(b Base, logger *slog.Logger) Note {
	if ctor, ok := constructors[b.typ]; ok {
		if n, ok := ctor(b); ok {
			return n
		}
		logger.Debug("note context does not match a structured layout, using generic view",
			slog.String("name", b.name),
			slog.String("type", b.typ.String()),
			slog.String("arch", b.arch.String()),
			slog.String("class", b.class.String()),
		)
	}

	return &Generic{Base: b}
}

// New creates a note from its raw fields.
//
// The semantic type is classified from the file kind in opts, raw and name,
// and the matching variant is built. Notes the classifier does not know, or
// whose structured view needs missing context, become Generic.
//
// Returns:
//   - Note: The constructed note
//   - error: Option validation errors only
func New(name string, raw uint32, desc []byte, opts ...Option) (Note, error) {
	ctx, err := NewContext(opts...)
	if err != nil {
		return nil, err
	}

	typ := Classify(ctx.FileKind, raw, name)

	return build(newBase(name, typ, raw, desc, ctx), ctx.Logger), nil
}

// NewFromType creates a note of the given semantic type.
//
// The raw code comes from RawType(typ). An empty name is replaced with
// Owner(typ). Core types imply a core dump file kind when none is set. The
// semantic type is then classified from the file kind, raw code and name as in
// New, and must equal typ so that decoding the note yields the same type.
//
// Returns:
//   - Note: The constructed note
//   - error: errs.ErrNotFound when typ has no raw code, or when name is empty
//     and typ has no canonical owner; errs.ErrTypeMismatch when name or the
//     file kind classify the raw code as another type; option validation errors
func NewFromType(name string, typ Type, desc []byte, opts ...Option) (Note, error) {
	ctx, err := NewContext(opts...)
	if err != nil {
		return nil, err
	}

	raw, err := RawType(typ)
	if err != nil {
		return nil, fmt.Errorf("raw type for %s: %w", typ, err)
	}

	if name == "" {
		if name, err = Owner(typ); err != nil {
			return nil, fmt.Errorf("owner for %s: %w", typ, err)
		}
	}

	if typ.IsCore() && ctx.FileKind == format.KindNone {
		ctx.FileKind = format.KindCore
	}

	if got := Classify(ctx.FileKind, raw, name); got != typ {
		return nil, fmt.Errorf("%s from owner %q in %s file is %s: %w",
			typ, name, ctx.FileKind, got, errs.ErrTypeMismatch)
	}

	return build(newBase(name, typ, raw, desc, ctx), ctx.Logger), nil
}

// Parse decodes one note record from r.
//
// The reader must be positioned at the start of a record. On success the
// reader is left at the start of the next record; trailing padding cut short by
// the end of the stream is tolerated. The reader's byte order takes precedence
// over WithByteOrder.
//
// Returns:
//   - Note: The decoded note
//   - error: errs.ErrTruncatedInput if the stream ends before the declared
//     header, name or payload; no partial note is returned
func Parse(r *encoding.Reader, opts ...Option) (Note, error) {
	ctx, err := NewContext(opts...)
	if err != nil {
		return nil, err
	}
	ctx.Engine = r.Engine()

	start := r.Pos()

	raw, err := r.Peek(section.HeaderSize)
	if err != nil {
		return nil, fmt.Errorf("note header at offset %d: %w", start, err)
	}

	var hdr section.NoteHeader
	if err := hdr.Parse(raw, ctx.Engine); err != nil {
		return nil, fmt.Errorf("note header at offset %d: %w", start, err)
	}

	nameSize := int(hdr.NameSize)
	descSize := int(hdr.DescSize)
	descOffset := section.DescOffset(nameSize, ctx.Alignment)

	need := section.HeaderSize + nameSize
	if descSize > 0 {
		need = descOffset + descSize
	}
	if r.Remaining() < need {
		return nil, fmt.Errorf("note at offset %d declares %d bytes, %d remaining: %w",
			start, need, r.Remaining(), errs.ErrTruncatedInput)
	}

	if err := r.Skip(section.HeaderSize); err != nil {
		return nil, err
	}

	nameBytes, err := r.ReadBytes(nameSize)
	if err != nil {
		return nil, err
	}
	name := string(bytes.TrimRight(nameBytes, "\x00"))

	var desc []byte
	if descSize > 0 {
		if err := r.Seek(start + descOffset); err != nil {
			return nil, err
		}
		if desc, err = r.ReadBytes(descSize); err != nil {
			return nil, err
		}
	}

	end := start + section.NoteSize(nameSize, descSize, ctx.Alignment)
	if end > r.Len() {
		end = r.Len()
	}
	if err := r.Seek(end); err != nil {
		return nil, err
	}

	typ := Classify(ctx.FileKind, hdr.Type, name)

	return build(newBase(name, typ, hdr.Type, desc, ctx), ctx.Logger), nil
}

// ParseBytes decodes one note record from the start of data.
//
// Returns:
//   - Note: The decoded note
//   - int: Number of bytes consumed, padding included
//   - error: errs.ErrTruncatedInput if data is shorter than the record declares
func ParseBytes(data []byte, opts ...Option) (Note, int, error) {
	ctx, err := NewContext(opts...)
	if err != nil {
		return nil, 0, err
	}

	r := encoding.NewReader(data, ctx.Engine)
	n, err := Parse(r, opts...)
	if err != nil {
		return nil, 0, err
	}

	return n, r.Pos(), nil
}
