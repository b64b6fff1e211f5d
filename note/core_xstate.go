package note

import (
	"fmt"
	"strings"

	"github.com/arloliu/elfnote/format"
)

// x86 XSAVE area offsets.
const (
	xsaveFCWOffset      = 0
	xsaveMXCSROffset    = 24
	xsaveXCR0Offset     = 464
	xsaveXStateBVOffset = 512
)

// CoreXState is the NT_X86_XSTATE note holding the XSAVE area of a thread.
type CoreXState struct {
	Base
}

var _ Note = (*CoreXState)(nil)

func newCoreXState(b Base) (Note, bool) {
	if b.arch != format.Arch386 && b.arch != format.ArchX86_64 {
		return nil, false
	}

	return &CoreXState{Base: b}, true
}

func (n *CoreXState) Clone() Note { return &CoreXState{Base: n.clone()} }

// FCW returns the x87 control word.
func (n *CoreXState) FCW() (uint16, error) { return readAt[uint16](&n.Base, xsaveFCWOffset) }

// MXCSR returns the SSE control and status register.
func (n *CoreXState) MXCSR() (uint32, error) { return readAt[uint32](&n.Base, xsaveMXCSROffset) }

// XCR0 returns the enabled feature mask saved by the kernel.
func (n *CoreXState) XCR0() (uint64, error) { return readAt[uint64](&n.Base, xsaveXCR0Offset) }

// XStateBV returns the XSAVE header state component bitmap.
func (n *CoreXState) XStateBV() (uint64, error) {
	return readAt[uint64](&n.Base, xsaveXStateBVOffset)
}

func (n *CoreXState) String() string {
	var sb strings.Builder
	n.dump(&sb)

	if v, err := n.XCR0(); err == nil {
		fmt.Fprintf(&sb, "XCR0:        0x%x\n", v)
	}
	if v, err := n.XStateBV(); err == nil {
		fmt.Fprintf(&sb, "XSTATE_BV:   0x%x\n", v)
	}

	return sb.String()
}

// SVEHeader is the user_sve_header that starts an NT_ARM_SVE note.
type SVEHeader struct {
	Size     uint32
	MaxSize  uint32
	VL       uint16
	MaxVL    uint16
	Flags    uint16
	Reserved uint16
}

// CoreSVE is the NT_ARM_SVE note holding the AArch64 SVE register state.
type CoreSVE struct {
	Base
}

var _ Note = (*CoreSVE)(nil)

func newCoreSVE(b Base) (Note, bool) {
	if b.arch != format.ArchAArch64 {
		return nil, false
	}

	return &CoreSVE{Base: b}, true
}

func (n *CoreSVE) Clone() Note { return &CoreSVE{Base: n.clone()} }

// Header decodes the SVE header.
func (n *CoreSVE) Header() (SVEHeader, error) {
	var h SVEHeader
	if _, err := readBytesAt(&n.Base, 0, 16); err != nil {
		return h, err
	}

	h.Size, _ = readAt[uint32](&n.Base, 0)
	h.MaxSize, _ = readAt[uint32](&n.Base, 4)
	h.VL, _ = readAt[uint16](&n.Base, 8)
	h.MaxVL, _ = readAt[uint16](&n.Base, 10)
	h.Flags, _ = readAt[uint16](&n.Base, 12)
	h.Reserved, _ = readAt[uint16](&n.Base, 14)

	return h, nil
}

func (n *CoreSVE) String() string {
	var sb strings.Builder
	n.dump(&sb)

	if h, err := n.Header(); err == nil {
		fmt.Fprintf(&sb, "Vector len:  %d (max %d)\n", h.VL, h.MaxVL)
	}

	return sb.String()
}
