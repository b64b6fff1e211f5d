package note

import (
	"fmt"
	"strings"
)

const (
	prpsFileNameSize = 16
	prpsArgsSize     = 80
)

// PrPsInfo is the process information block of an NT_PRPSINFO note.
type PrPsInfo struct {
	State    uint8
	StateTag byte
	Zombie   uint8
	Nice     int8
	Flag     uint64
	UID      uint32
	GID      uint32
	PID      int32
	PPID     int32
	PGrp     int32
	SID      int32
	FileName string
	Args     string
}

type prpsinfoOffsets struct {
	flag     int
	uid      int
	gid      int
	pid      int
	fileName int
	args     int
}

var (
	prpsinfoOffsets32 = prpsinfoOffsets{flag: 4, uid: 8, gid: 10, pid: 12, fileName: 28, args: 44}
	prpsinfoOffsets64 = prpsinfoOffsets{flag: 8, uid: 16, gid: 20, pid: 24, fileName: 40, args: 56}
)

// CorePrPsInfo is the NT_PRPSINFO note of a core dump. Field widths of uid,
// gid and flag depend on the class, which must be known.
type CorePrPsInfo struct {
	Base
}

var _ Note = (*CorePrPsInfo)(nil)

func newCorePrPsInfo(b Base) (Note, bool) {
	if b.wordSize() == 0 {
		return nil, false
	}

	return &CorePrPsInfo{Base: b}, true
}

func (n *CorePrPsInfo) Clone() Note { return &CorePrPsInfo{Base: n.clone()} }

func (n *CorePrPsInfo) offsets() prpsinfoOffsets {
	if n.wordSize() == 8 {
		return prpsinfoOffsets64
	}

	return prpsinfoOffsets32
}

// Info decodes the process information.
func (n *CorePrPsInfo) Info() (PrPsInfo, error) {
	var info PrPsInfo

	off := n.offsets()
	if _, err := readBytesAt(&n.Base, 0, off.args+prpsArgsSize); err != nil {
		return PrPsInfo{}, err
	}

	info.State, _ = readAt[uint8](&n.Base, 0)
	info.StateTag, _ = readAt[uint8](&n.Base, 1)
	info.Zombie, _ = readAt[uint8](&n.Base, 2)
	info.Nice, _ = readAt[int8](&n.Base, 3)
	info.Flag, _ = readWord(&n.Base, off.flag)

	if n.wordSize() == 8 {
		info.UID, _ = readAt[uint32](&n.Base, off.uid)
		info.GID, _ = readAt[uint32](&n.Base, off.gid)
	} else {
		uid, _ := readAt[uint16](&n.Base, off.uid)
		gid, _ := readAt[uint16](&n.Base, off.gid)
		info.UID, info.GID = uint32(uid), uint32(gid)
	}

	info.PID, _ = readAt[int32](&n.Base, off.pid)
	info.PPID, _ = readAt[int32](&n.Base, off.pid+4)
	info.PGrp, _ = readAt[int32](&n.Base, off.pid+8)
	info.SID, _ = readAt[int32](&n.Base, off.pid+12)
	info.FileName, _ = readStringAt(&n.Base, off.fileName, prpsFileNameSize)
	info.Args, _ = readStringAt(&n.Base, off.args, prpsArgsSize)

	return info, nil
}

// SetPID overwrites the process id in place.
func (n *CorePrPsInfo) SetPID(pid int32) error {
	return writeAt(&n.Base, n.offsets().pid, pid)
}

// SetFileName overwrites the 16-byte executable name field.
func (n *CorePrPsInfo) SetFileName(name string) error {
	return writeFixedString(&n.Base, n.offsets().fileName, prpsFileNameSize, name)
}

// SetArgs overwrites the 80-byte argument string field.
func (n *CorePrPsInfo) SetArgs(args string) error {
	return writeFixedString(&n.Base, n.offsets().args, prpsArgsSize, args)
}

func (n *CorePrPsInfo) String() string {
	var sb strings.Builder
	n.dump(&sb)

	if info, err := n.Info(); err == nil {
		fmt.Fprintf(&sb, "Process:     %s (pid %d, ppid %d, uid %d)\n", info.FileName, info.PID, info.PPID, info.UID)
		fmt.Fprintf(&sb, "Args:        %s\n", info.Args)
	}

	return sb.String()
}
