package noteset

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/arloliu/elfnote/encoding"
	"github.com/arloliu/elfnote/endian"
	"github.com/arloliu/elfnote/errs"
	"github.com/arloliu/elfnote/internal/hash"
	"github.com/arloliu/elfnote/internal/pool"
	"github.com/arloliu/elfnote/note"
	"github.com/arloliu/elfnote/section"
)

// Set is an ordered collection of notes sharing one decoding context.
type Set struct {
	ctx   *note.Context
	notes []note.Note
}

// New creates an empty set for the given context.
//
// Returns:
//   - *Set: Empty set
//   - error: Option validation error
func New(opts ...note.Option) (*Set, error) {
	ctx, err := note.NewContext(opts...)
	if err != nil {
		return nil, err
	}

	return &Set{ctx: ctx}, nil
}

// Parse decodes every note record in data.
//
// Records are decoded back to back. Trailing bytes shorter than a note header
// are treated as section padding and ignored.
//
// Parameters:
//   - data: Raw contents of a note section or segment
//   - opts: Decoding context
//
// Returns:
//   - *Set: Decoded notes in file order
//   - error: errs.ErrTruncatedInput if a record is cut short, option errors
func Parse(data []byte, opts ...note.Option) (*Set, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}

	r := encoding.NewReader(data, s.ctx.Engine)
	for r.Remaining() >= section.HeaderSize {
		n, err := note.Parse(r, opts...)
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", len(s.notes), err)
		}
		s.notes = append(s.notes, n)
	}

	s.ctx.Logger.Debug("parsed note section",
		slog.Int("notes", len(s.notes)),
		slog.Int("bytes", len(data)),
		slog.Int("ignored", r.Remaining()),
	)

	return s, nil
}

// Context returns the decoding context shared by the notes of the set.
func (s *Set) Context() note.Context {
	return *s.ctx
}

// Options returns the options that reproduce the set's context.
func (s *Set) Options() []note.Option {
	return s.ctx.Options()
}

// Add appends n to the set.
//
// The note must have been built with the set's alignment and byte order,
// otherwise the serialized set could not be parsed back with Options.
//
// Returns:
//   - error: errs.ErrContextMismatch if n was built for another layout
func (s *Set) Add(n note.Note) error {
	if n.Alignment() != s.ctx.Alignment || endian.IsBigEndian(n.ByteOrder()) != endian.IsBigEndian(s.ctx.Engine) {
		return fmt.Errorf("add %s note %q: %w", n.Type(), n.Name(), errs.ErrContextMismatch)
	}
	s.notes = append(s.notes, n)

	return nil
}

// Remove deletes the note at index i.
//
// Returns:
//   - error: errs.ErrInvalidNoteIndex if i is out of range
func (s *Set) Remove(i int) error {
	if i < 0 || i >= len(s.notes) {
		return fmt.Errorf("remove %d of %d: %w", i, len(s.notes), errs.ErrInvalidNoteIndex)
	}
	s.notes = slices.Delete(s.notes, i, i+1)

	return nil
}

// Len returns the number of notes.
func (s *Set) Len() int {
	return len(s.notes)
}

// At returns the note at index i.
func (s *Set) At(i int) (note.Note, bool) {
	if i < 0 || i >= len(s.notes) {
		return nil, false
	}

	return s.notes[i], true
}

// All iterates over the notes in order.
func (s *Set) All() iter.Seq2[int, note.Note] {
	return func(yield func(int, note.Note) bool) {
		for i, n := range s.notes {
			if !yield(i, n) {
				return
			}
		}
	}
}

// Find returns the first note of semantic type typ.
func (s *Set) Find(typ note.Type) (note.Note, bool) {
	for _, n := range s.notes {
		if n.Type() == typ {
			return n, true
		}
	}

	return nil, false
}

// FindAll returns every note of semantic type typ, in order.
func (s *Set) FindAll(typ note.Type) []note.Note {
	var out []note.Note
	for _, n := range s.notes {
		if n.Type() == typ {
			out = append(out, n)
		}
	}

	return out
}

// ByName returns every note whose owner name is exactly owner.
func (s *Set) ByName(owner string) []note.Note {
	var out []note.Note
	for _, n := range s.notes {
		if n.Name() == owner {
			out = append(out, n)
		}
	}

	return out
}

// Size returns the serialized size of the set.
func (s *Set) Size() int {
	size := 0
	for _, n := range s.notes {
		size += n.Size()
	}

	return size
}

// Bytes serializes every note back to back.
func (s *Set) Bytes() []byte {
	buf := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(buf)

	buf.Grow(s.Size())
	for _, n := range s.notes {
		buf.B = n.AppendTo(buf.B)
	}

	return buf.Clone()
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	ctx := *s.ctx
	c := &Set{ctx: &ctx, notes: make([]note.Note, len(s.notes))}
	for i, n := range s.notes {
		c.notes[i] = n.Clone()
	}

	return c
}

// Fingerprint returns the xxHash64 of the serialized set. Two sets with the same
// fingerprint serialize to the same bytes with overwhelming probability.
func (s *Set) Fingerprint() uint64 {
	parts := make([][]byte, 0, len(s.notes))
	for _, n := range s.notes {
		parts = append(parts, n.Bytes())
	}

	return hash.SumAll(parts...)
}
