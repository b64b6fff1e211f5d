// Package noteset holds the notes of one ELF note section or PT_NOTE segment.
//
// A Set decodes a whole section with the note factory, keeps the notes in file
// order and serializes them back to a byte-identical section when nothing was
// modified. All notes of a set share the decoding context: byte order,
// alignment, file kind, machine and class.
//
// Example:
//
//	set, err := noteset.Parse(data, note.WithFileKind(format.KindCore), note.WithClass(format.Class64))
//	if err != nil {
//		return err
//	}
//	for i, n := range set.All() {
//		fmt.Println(i, n.Type())
//	}
package noteset
