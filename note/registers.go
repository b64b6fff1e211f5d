package note

import (
	"fmt"

	"github.com/arloliu/elfnote/format"
)

// registerLayout describes the general purpose register block of a prstatus
// note for one machine.
type registerLayout struct {
	names    []string
	wordSize int
	pc       string
	sp       string
	ret      string
}

func (l *registerLayout) index(name string) int {
	for i, n := range l.names {
		if n == name {
			return i
		}
	}

	return -1
}

func numbered(prefix string, from, to int) []string {
	names := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		names = append(names, fmt.Sprintf("%s%d", prefix, i))
	}

	return names
}

var (
	layout386 = &registerLayout{
		names: []string{
			"EBX", "ECX", "EDX", "ESI", "EDI", "EBP", "EAX", "DS", "ES", "FS", "GS",
			"ORIG_EAX", "EIP", "CS", "EFLAGS", "ESP", "SS",
		},
		wordSize: 4,
		pc:       "EIP",
		sp:       "ESP",
		ret:      "EAX",
	}

	layoutX86_64 = &registerLayout{
		names: []string{
			"R15", "R14", "R13", "R12", "RBP", "RBX", "R11", "R10", "R9", "R8",
			"RAX", "RCX", "RDX", "RSI", "RDI", "ORIG_RAX", "RIP", "CS", "EFLAGS",
			"RSP", "SS", "FS_BASE", "GS_BASE", "DS", "ES", "FS", "GS",
		},
		wordSize: 8,
		pc:       "RIP",
		sp:       "RSP",
		ret:      "RAX",
	}

	layoutARM = &registerLayout{
		names:    append(numbered("R", 0, 15), "CPSR", "ORIG_R0"),
		wordSize: 4,
		pc:       "R15",
		sp:       "R13",
		ret:      "R0",
	}

	layoutAArch64 = &registerLayout{
		names:    append(numbered("X", 0, 30), "SP", "PC", "PSTATE"),
		wordSize: 8,
		pc:       "PC",
		sp:       "SP",
		ret:      "X0",
	}

	riscvNames = concat(
		[]string{"PC", "RA", "SP", "GP", "TP"},
		numbered("T", 0, 2),
		numbered("S", 0, 1),
		numbered("A", 0, 7),
		numbered("S", 2, 11),
		numbered("T", 3, 6),
	)

	layoutRISCV32 = &registerLayout{names: riscvNames, wordSize: 4, pc: "PC", sp: "SP", ret: "A0"}
	layoutRISCV64 = &registerLayout{names: riscvNames, wordSize: 8, pc: "PC", sp: "SP", ret: "A0"}
)

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}

	return out
}

// lookupLayout returns the register layout for arch and class, or nil when
// the pair has none.
func lookupLayout(arch format.Arch, class format.Class) *registerLayout {
	var l *registerLayout
	switch arch {
	case format.Arch386:
		l = layout386
	case format.ArchX86_64:
		l = layoutX86_64
	case format.ArchARM:
		l = layoutARM
	case format.ArchAArch64:
		l = layoutAArch64
	case format.ArchRISCV:
		if class == format.Class32 {
			return layoutRISCV32
		}
		if class == format.Class64 {
			return layoutRISCV64
		}

		return nil
	default:
		return nil
	}

	if l.wordSize != class.WordSize() {
		return nil
	}

	return l
}
