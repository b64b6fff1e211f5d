// Package pool provides pooled byte buffers for note and archive serialization.
package pool

import "sync"

const (
	NoteBufferDefaultSize     = 256             // typical note record
	NoteBufferMaxThreshold    = 1024 * 64       // 64KiB
	SectionBufferDefaultSize  = 1024 * 16       // 16KiB
	SectionBufferMaxThreshold = 1024 * 1024 * 8 // 8MiB
)

type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Grow ensures the buffer can hold n more bytes without reallocating.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+n)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// MustWrite appends data to the buffer.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Clone returns a copy of the buffer contents that is safe to keep after the
// buffer is returned to its pool.
func (bb *ByteBuffer) Clone() []byte {
	out := make([]byte, len(bb.B))
	copy(out, bb.B)

	return out
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// Buffers that grew past maxThreshold are dropped instead of being pooled.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	noteDefaultPool    = NewByteBufferPool(NoteBufferDefaultSize, NoteBufferMaxThreshold)
	sectionDefaultPool = NewByteBufferPool(SectionBufferDefaultSize, SectionBufferMaxThreshold)
)

// GetNoteBuffer retrieves a ByteBuffer sized for a single note record.
func GetNoteBuffer() *ByteBuffer {
	return noteDefaultPool.Get()
}

// PutNoteBuffer returns a ByteBuffer to the note pool.
func PutNoteBuffer(bb *ByteBuffer) {
	noteDefaultPool.Put(bb)
}

// GetSectionBuffer retrieves a ByteBuffer sized for a whole note section.
func GetSectionBuffer() *ByteBuffer {
	return sectionDefaultPool.Get()
}

// PutSectionBuffer returns a ByteBuffer to the section pool.
func PutSectionBuffer(bb *ByteBuffer) {
	sectionDefaultPool.Put(bb)
}
