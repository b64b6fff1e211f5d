// Package encoding provides bounds-checked access to fixed-width integers and
// strings inside note payloads.
//
// All readers and writers take an explicit endian.EndianEngine, so the same
// code decodes little-endian and big-endian objects. Offsets are byte offsets
// into the buffer; an access that would cross the end of the buffer fails with
// errs.ErrOutOfBounds and never panics. Writers overwrite in place and never
// grow the buffer.
//
// # Fixed-width Values
//
//	engine := endian.GetLittleEndianEngine()
//	pid, err := encoding.ReadFixed[int32](engine, desc, 32)
//	err = encoding.WriteFixed(engine, desc, 32, int32(4242))
//
// ReadWord and WriteWord access 4 or 8 byte target words, as used by
// structures whose layout depends on the ELF class.
//
// # Strings
//
// ReadString stops at the first NUL, at maxLen bytes or at the end of the
// buffer. WriteString writes the value followed by one NUL.
//
// # Sequential Reads
//
// Reader walks a note section record by record and reports
// errs.ErrTruncatedInput when fewer bytes remain than requested.
package encoding
