package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer(t *testing.T) {
	bb := NewByteBuffer(8)
	require.Equal(t, 0, bb.Len())

	bb.MustWrite([]byte("GNU\x00"))
	bb.MustWrite([]byte{1, 0, 0, 0})
	require.Equal(t, 8, bb.Len())
	require.Equal(t, []byte("GNU\x00\x01\x00\x00\x00"), bb.Bytes())

	clone := bb.Clone()
	bb.B[0] = 'X'
	require.Equal(t, byte('G'), clone[0])

	bb.Reset()
	require.Equal(t, 0, bb.Len())
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(2)
	bb.MustWrite([]byte{1, 2})
	bb.Grow(10)
	require.GreaterOrEqual(t, cap(bb.B)-len(bb.B), 10)
	require.Equal(t, []byte{1, 2}, bb.Bytes())
}

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(16, 32)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("data"))
	p.Put(bb)

	again := p.Get()
	require.Equal(t, 0, again.Len())

	big := NewByteBuffer(64)
	p.Put(big)
	p.Put(nil)
}

func TestDefaultPools(t *testing.T) {
	nb := GetNoteBuffer()
	require.NotNil(t, nb)
	PutNoteBuffer(nb)

	sb := GetSectionBuffer()
	require.NotNil(t, sb)
	PutSectionBuffer(sb)
}
