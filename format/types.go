// Package format defines the context enumerations shared by elfnote packages.
//
// FileKind, Arch and Class carry the raw ELF header values (e_type, e_machine
// and EI_CLASS) so values from any ELF reader convert with a plain cast.
package format

import (
	"fmt"
	"strings"
)

type (
	FileKind        uint16
	Arch            uint16
	Class           uint8
	CompressionType uint8
)

const (
	KindNone FileKind = 0 // KindNone represents an unspecified file kind.
	KindRel  FileKind = 1 // KindRel represents a relocatable object.
	KindExec FileKind = 2 // KindExec represents an executable.
	KindDyn  FileKind = 3 // KindDyn represents a shared object or PIE.
	KindCore FileKind = 4 // KindCore represents a core dump.
)

const (
	ArchNone    Arch = 0   // ArchNone represents an unspecified machine.
	ArchSPARC   Arch = 2   // ArchSPARC represents SPARC.
	Arch386     Arch = 3   // Arch386 represents Intel 80386.
	ArchMIPS    Arch = 8   // ArchMIPS represents MIPS.
	ArchPPC     Arch = 20  // ArchPPC represents 32-bit PowerPC.
	ArchPPC64   Arch = 21  // ArchPPC64 represents 64-bit PowerPC.
	ArchS390    Arch = 22  // ArchS390 represents IBM S/390.
	ArchARM     Arch = 40  // ArchARM represents 32-bit ARM.
	ArchX86_64  Arch = 62  // ArchX86_64 represents AMD x86-64.
	ArchAArch64 Arch = 183 // ArchAArch64 represents 64-bit ARM.
	ArchRISCV   Arch = 243 // ArchRISCV represents RISC-V.
)

const (
	ClassNone Class = 0 // ClassNone represents an unspecified word size.
	Class32   Class = 1 // Class32 represents 32-bit objects.
	Class64   Class = 2 // Class64 represents 64-bit objects.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (k FileKind) String() string {
	switch k {
	case KindNone:
		return "NONE"
	case KindRel:
		return "REL"
	case KindExec:
		return "EXEC"
	case KindDyn:
		return "DYN"
	case KindCore:
		return "CORE"
	default:
		return fmt.Sprintf("FileKind(%d)", uint16(k))
	}
}

func (a Arch) String() string {
	switch a {
	case ArchNone:
		return "NONE"
	case ArchSPARC:
		return "SPARC"
	case Arch386:
		return "386"
	case ArchMIPS:
		return "MIPS"
	case ArchPPC:
		return "PPC"
	case ArchPPC64:
		return "PPC64"
	case ArchS390:
		return "S390"
	case ArchARM:
		return "ARM"
	case ArchX86_64:
		return "X86_64"
	case ArchAArch64:
		return "AARCH64"
	case ArchRISCV:
		return "RISCV"
	default:
		return fmt.Sprintf("Arch(%d)", uint16(a))
	}
}

func (c Class) String() string {
	switch c {
	case ClassNone:
		return "NONE"
	case Class32:
		return "ELF32"
	case Class64:
		return "ELF64"
	default:
		return fmt.Sprintf("Class(%d)", uint8(c))
	}
}

// WordSize returns the size in bytes of a native word for the class, or 0
// when the class is unspecified.
func (c Class) WordSize() int {
	switch c {
	case Class32:
		return 4
	case Class64:
		return 8
	default:
		return 0
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a case-sensitive lowercase name ("none", "zstd", "s2",
// "lz4") to a CompressionType.
func ParseCompression(name string) (CompressionType, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", name)
	}
}

// ParseFileKind maps a kind name ("none", "rel", "exec", "dyn", "core", any
// case) to a FileKind.
func ParseFileKind(name string) (FileKind, error) {
	switch strings.ToLower(name) {
	case "none", "":
		return KindNone, nil
	case "rel":
		return KindRel, nil
	case "exec":
		return KindExec, nil
	case "dyn":
		return KindDyn, nil
	case "core":
		return KindCore, nil
	default:
		return 0, fmt.Errorf("unknown file kind %q", name)
	}
}
