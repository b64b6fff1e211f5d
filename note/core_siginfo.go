package note

import (
	"fmt"
	"strings"
)

// CoreSigInfo is the NT_SIGINFO note holding the siginfo_t of the signal that
// killed the process. Only the leading signo, errno and code fields are exposed,
// in siginfo_t order. NT_PRSTATUS embeds elf_siginfo, which swaps errno and code.
type CoreSigInfo struct {
	Base
}

var _ Note = (*CoreSigInfo)(nil)

func (n *CoreSigInfo) Clone() Note { return &CoreSigInfo{Base: n.clone()} }

// SigNo returns the signal number.
func (n *CoreSigInfo) SigNo() (int32, error) { return readAt[int32](&n.Base, 0) }

// SigCode returns the signal code.
func (n *CoreSigInfo) SigCode() (int32, error) { return readAt[int32](&n.Base, 8) }

// SigErrNo returns the errno value associated with the signal.
func (n *CoreSigInfo) SigErrNo() (int32, error) { return readAt[int32](&n.Base, 4) }

func (n *CoreSigInfo) SetSigNo(v int32) error { return writeAt(&n.Base, 0, v) }

func (n *CoreSigInfo) SetSigCode(v int32) error { return writeAt(&n.Base, 8, v) }

func (n *CoreSigInfo) SetSigErrNo(v int32) error { return writeAt(&n.Base, 4, v) }

func (n *CoreSigInfo) String() string {
	var sb strings.Builder
	n.dump(&sb)

	signo, err1 := n.SigNo()
	code, err2 := n.SigCode()
	errno, err3 := n.SigErrNo()
	if err1 == nil && err2 == nil && err3 == nil {
		fmt.Fprintf(&sb, "Signal:      %d (code %d, errno %d)\n", signo, code, errno)
	}

	return sb.String()
}
