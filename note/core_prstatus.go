package note

import (
	"fmt"
	"strings"

	"github.com/arloliu/elfnote/errs"
)

// Timeval is a seconds/microseconds pair from a prstatus note.
type Timeval struct {
	Sec  uint64
	Usec uint64
}

// PrStatus is the process status block of an NT_PRSTATUS note.
type PrStatus struct {
	SigNo   int32
	SigCode int32
	SigErr  int32
	CurSig  uint16
	SigPend uint64
	SigHold uint64
	PID     int32
	PPID    int32
	PGrp    int32
	SID     int32
	UTime   Timeval
	STime   Timeval
	CUTime  Timeval
	CSTime  Timeval
}

// Register is one named general purpose register value.
type Register struct {
	Name  string
	Value uint64
}

// prstatusOffsets holds field offsets that move with the word size.
type prstatusOffsets struct {
	sigPend int
	sigHold int
	pid     int
	times   int
	regs    int
}

var (
	prstatusOffsets32 = prstatusOffsets{sigPend: 16, sigHold: 20, pid: 24, times: 40, regs: 72}
	prstatusOffsets64 = prstatusOffsets{sigPend: 16, sigHold: 24, pid: 32, times: 48, regs: 112}
)

// CorePrStatus is the NT_PRSTATUS note of a core dump, one per thread. It
// needs the target arch and class to locate the register block.
type CorePrStatus struct {
	Base
	layout *registerLayout
}

var _ Note = (*CorePrStatus)(nil)

func newCorePrStatus(b Base) (Note, bool) {
	layout := lookupLayout(b.arch, b.class)
	if layout == nil {
		return nil, false
	}

	return &CorePrStatus{Base: b, layout: layout}, true
}

func (n *CorePrStatus) Clone() Note {
	return &CorePrStatus{Base: n.clone(), layout: n.layout}
}

func (n *CorePrStatus) offsets() prstatusOffsets {
	if n.layout.wordSize == 8 {
		return prstatusOffsets64
	}

	return prstatusOffsets32
}

func (n *CorePrStatus) word(offset int) (uint64, error) {
	return readWordSized(&n.Base, offset, n.layout.wordSize)
}

// Status decodes the process status fields preceding the register block.
func (n *CorePrStatus) Status() (PrStatus, error) {
	var (
		st  PrStatus
		err error
	)

	off := n.offsets()
	ws := n.layout.wordSize

	if _, err = readBytesAt(&n.Base, 0, off.regs); err != nil {
		return PrStatus{}, err
	}

	st.SigNo, _ = readAt[int32](&n.Base, 0)
	st.SigCode, _ = readAt[int32](&n.Base, 4)
	st.SigErr, _ = readAt[int32](&n.Base, 8)
	st.CurSig, _ = readAt[uint16](&n.Base, 12)
	st.SigPend, _ = n.word(off.sigPend)
	st.SigHold, _ = n.word(off.sigHold)
	st.PID, _ = readAt[int32](&n.Base, off.pid)
	st.PPID, _ = readAt[int32](&n.Base, off.pid+4)
	st.PGrp, _ = readAt[int32](&n.Base, off.pid+8)
	st.SID, _ = readAt[int32](&n.Base, off.pid+12)

	times := []*Timeval{&st.UTime, &st.STime, &st.CUTime, &st.CSTime}
	for i, tv := range times {
		base := off.times + i*2*ws
		tv.Sec, _ = n.word(base)
		tv.Usec, _ = n.word(base + ws)
	}

	return st, nil
}

// Registers decodes the general purpose registers in layout order.
func (n *CorePrStatus) Registers() ([]Register, error) {
	regs := make([]Register, 0, len(n.layout.names))
	for i, name := range n.layout.names {
		v, err := n.word(n.registerOffset(i))
		if err != nil {
			return nil, err
		}
		regs = append(regs, Register{Name: name, Value: v})
	}

	return regs, nil
}

func (n *CorePrStatus) registerOffset(idx int) int {
	return n.offsets().regs + idx*n.layout.wordSize
}

// Register returns the value of the named register.
//
// Returns:
//   - uint64: Register value
//   - error: errs.ErrUnknownRegister if the layout has no such register,
//     errs.ErrOutOfBounds if the payload is too short
func (n *CorePrStatus) Register(name string) (uint64, error) {
	idx := n.layout.index(strings.ToUpper(name))
	if idx < 0 {
		return 0, fmt.Errorf("%s: %w", name, errs.ErrUnknownRegister)
	}

	return n.word(n.registerOffset(idx))
}

// SetRegister overwrites the named register in place.
func (n *CorePrStatus) SetRegister(name string, value uint64) error {
	idx := n.layout.index(strings.ToUpper(name))
	if idx < 0 {
		return fmt.Errorf("%s: %w", name, errs.ErrUnknownRegister)
	}

	return writeWordSized(&n.Base, n.registerOffset(idx), n.layout.wordSize, value)
}

// PC returns the program counter.
func (n *CorePrStatus) PC() (uint64, error) { return n.Register(n.layout.pc) }

// SP returns the stack pointer.
func (n *CorePrStatus) SP() (uint64, error) { return n.Register(n.layout.sp) }

// ReturnValue returns the register holding function return values.
func (n *CorePrStatus) ReturnValue() (uint64, error) { return n.Register(n.layout.ret) }

func (n *CorePrStatus) String() string {
	var sb strings.Builder
	n.dump(&sb)

	if st, err := n.Status(); err == nil {
		fmt.Fprintf(&sb, "PID:         %d (ppid %d, signal %d)\n", st.PID, st.PPID, st.CurSig)
	}
	if regs, err := n.Registers(); err == nil {
		for _, r := range regs {
			fmt.Fprintf(&sb, "  %-8s 0x%0*x\n", r.Name, n.layout.wordSize*2, r.Value)
		}
	}

	return sb.String()
}
