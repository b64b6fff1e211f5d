package note

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/arloliu/elfnote/encoding"
	"github.com/arloliu/elfnote/endian"
	"github.com/arloliu/elfnote/errs"
	"github.com/arloliu/elfnote/format"
	"github.com/arloliu/elfnote/internal/pool"
	"github.com/arloliu/elfnote/section"
)

// dumpHexLimit bounds the number of payload bytes rendered by String.
const dumpHexLimit = 64

// Note is an ELF note record: owner name, semantic type, raw type and payload.
//
// The set of implementations is closed. Every variant embeds Base and only adds
// accessors that interpret the payload; Generic is the opaque case used for
// unrecognized notes and for notes whose structured view needs context the
// caller did not supply.
type Note interface {
	// Name returns the owner name of the note.
	Name() string
	// SetName changes the owner name. The semantic type is not re-derived.
	SetName(name string)
	// Type returns the semantic tag resolved at construction.
	Type() Type
	// RawType returns the raw NT_* code exactly as encoded.
	RawType() uint32
	// Description returns a copy of the payload.
	Description() []byte
	// SetDescription replaces the payload in whole.
	SetDescription(desc []byte)
	// Alignment returns the note alignment unit (4 or 8).
	Alignment() int
	// ByteOrder returns the byte order used to encode the note.
	ByteOrder() endian.EndianEngine
	// Size returns the padded on-disk size of the record.
	Size() int
	// Bytes serializes the record.
	Bytes() []byte
	// AppendTo appends the serialized record to dst.
	AppendTo(dst []byte) []byte
	// String renders a human-readable dump.
	String() string
	// Clone returns a deep copy that keeps the concrete variant.
	Clone() Note

	base() *Base
}

// Base holds the fields shared by every note variant.
type Base struct {
	name    string
	typ     Type
	rawType uint32
	desc    []byte

	align  int
	engine endian.EndianEngine
	kind   format.FileKind
	arch   format.Arch
	class  format.Class
}

func newBase(name string, typ Type, raw uint32, desc []byte, ctx *Context) Base {
	owned := make([]byte, len(desc))
	copy(owned, desc)

	return Base{
		name:    name,
		typ:     typ,
		rawType: raw,
		desc:    owned,
		align:   ctx.Alignment,
		engine:  ctx.Engine,
		kind:    ctx.FileKind,
		arch:    ctx.Arch,
		class:   ctx.Class,
	}
}

func (b *Base) base() *Base { return b }

func (b *Base) Name() string { return b.name }

func (b *Base) SetName(name string) { b.name = name }

func (b *Base) Type() Type { return b.typ }

func (b *Base) RawType() uint32 { return b.rawType }

func (b *Base) Alignment() int { return b.align }

func (b *Base) ByteOrder() endian.EndianEngine { return b.engine }

// FileKind returns the file kind the note was created for.
func (b *Base) FileKind() format.FileKind { return b.kind }

// Arch returns the target machine the note was created for.
func (b *Base) Arch() format.Arch { return b.arch }

// Class returns the target word size the note was created for.
func (b *Base) Class() format.Class { return b.class }

func (b *Base) Description() []byte {
	out := make([]byte, len(b.desc))
	copy(out, b.desc)

	return out
}

func (b *Base) SetDescription(desc []byte) {
	owned := make([]byte, len(desc))
	copy(owned, desc)
	b.desc = owned
}

// Size returns the padded size: header, name with its NUL terminator and the
// payload, each padded to the alignment unit.
func (b *Base) Size() int {
	return section.NoteSize(len(b.name)+1, len(b.desc), b.align)
}

func (b *Base) AppendTo(dst []byte) []byte {
	start := len(dst)
	nameSize := len(b.name) + 1

	hdr := section.NoteHeader{
		NameSize: uint32(nameSize),    //nolint:gosec
		DescSize: uint32(len(b.desc)), //nolint:gosec
		Type:     b.rawType,
	}
	dst = hdr.AppendTo(dst, b.engine)
	dst = append(dst, b.name...)
	dst = append(dst, 0)
	dst = padTo(dst, start+section.DescOffset(nameSize, b.align))
	dst = append(dst, b.desc...)
	dst = padTo(dst, start+section.NoteSize(nameSize, len(b.desc), b.align))

	return dst
}

func (b *Base) Bytes() []byte {
	buf := pool.GetNoteBuffer()
	defer pool.PutNoteBuffer(buf)

	buf.Grow(b.Size())
	buf.B = b.AppendTo(buf.B)

	return buf.Clone()
}

func (b *Base) String() string {
	var sb strings.Builder
	b.dump(&sb)

	return sb.String()
}

func (b *Base) dump(sb *strings.Builder) {
	fmt.Fprintf(sb, "Name:        %s\n", b.name)
	fmt.Fprintf(sb, "Type:        %s (0x%x)\n", b.typ, b.rawType)
	fmt.Fprintf(sb, "Description: %d bytes\n", len(b.desc))
	if len(b.desc) == 0 {
		return
	}

	shown := b.desc
	if len(shown) > dumpHexLimit {
		shown = shown[:dumpHexLimit]
	}
	for line := range strings.SplitSeq(strings.TrimRight(hex.Dump(shown), "\n"), "\n") {
		fmt.Fprintf(sb, "  %s\n", line)
	}
	if len(b.desc) > dumpHexLimit {
		fmt.Fprintf(sb, "  ... %d more bytes\n", len(b.desc)-dumpHexLimit)
	}
}

func (b *Base) clone() Base {
	c := *b
	c.desc = make([]byte, len(b.desc))
	copy(c.desc, b.desc)

	return c
}

func (b *Base) wordSize() int {
	return b.class.WordSize()
}

func readAt[T encoding.Fixed](b *Base, offset int) (T, error) {
	return encoding.ReadFixed[T](b.engine, b.desc, offset)
}

func writeAt[T encoding.Fixed](b *Base, offset int, value T) error {
	return encoding.WriteFixed(b.engine, b.desc, offset, value)
}

func readWord(b *Base, offset int) (uint64, error) {
	return encoding.ReadWord(b.engine, b.desc, offset, b.wordSize())
}

func readWordSized(b *Base, offset, wordSize int) (uint64, error) {
	return encoding.ReadWord(b.engine, b.desc, offset, wordSize)
}

func writeWord(b *Base, offset int, value uint64) error {
	return encoding.WriteWord(b.engine, b.desc, offset, b.wordSize(), value)
}

func writeWordSized(b *Base, offset, wordSize int, value uint64) error {
	return encoding.WriteWord(b.engine, b.desc, offset, wordSize, value)
}

func readBytesAt(b *Base, offset, n int) ([]byte, error) {
	return encoding.ReadBytes(b.desc, offset, n)
}

func readStringAt(b *Base, offset, maxLen int) (string, error) {
	return encoding.ReadString(b.desc, offset, maxLen)
}

// writeFixedString writes value into a NUL-terminated field of size bytes.
func writeFixedString(b *Base, offset, size int, value string) error {
	if len(value)+1 > size {
		return fmt.Errorf("%q exceeds %d byte field: %w", value, size, errs.ErrFieldTooLong)
	}

	if _, err := readBytesAt(b, offset, size); err != nil {
		return err
	}
	clear(b.desc[offset : offset+size])

	return encoding.WriteString(b.desc, offset, value)
}

func padTo(dst []byte, end int) []byte {
	for len(dst) < end {
		dst = append(dst, 0)
	}

	return dst
}

// Generic is the opaque note variant.
type Generic struct {
	Base
}

var _ Note = (*Generic)(nil)

func (n *Generic) Clone() Note {
	return &Generic{Base: n.clone()}
}

// Dump writes the human-readable rendering of n to w.
func Dump(w io.Writer, n Note) error {
	_, err := io.WriteString(w, n.String())
	return err
}
