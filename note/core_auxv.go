package note

import (
	"fmt"
	"strings"
)

// AuxType is the a_type of an auxiliary vector entry.
type AuxType uint64

const (
	AuxNull          AuxType = 0
	AuxIgnore        AuxType = 1
	AuxExecFD        AuxType = 2
	AuxPHdr          AuxType = 3
	AuxPHEnt         AuxType = 4
	AuxPHNum         AuxType = 5
	AuxPageSize      AuxType = 6
	AuxBase          AuxType = 7
	AuxFlags         AuxType = 8
	AuxEntry         AuxType = 9
	AuxNotELF        AuxType = 10
	AuxUID           AuxType = 11
	AuxEUID          AuxType = 12
	AuxGID           AuxType = 13
	AuxEGID          AuxType = 14
	AuxPlatform      AuxType = 15
	AuxHWCap         AuxType = 16
	AuxClkTck        AuxType = 17
	AuxSecure        AuxType = 23
	AuxBasePlatform  AuxType = 24
	AuxRandom        AuxType = 25
	AuxHWCap2        AuxType = 26
	AuxExecFn        AuxType = 31
	AuxSysInfo       AuxType = 32
	AuxSysInfoEHdr   AuxType = 33
	AuxMinSigStkSize AuxType = 51
)

var auxNames = map[AuxType]string{
	AuxNull:          "AT_NULL",
	AuxIgnore:        "AT_IGNORE",
	AuxExecFD:        "AT_EXECFD",
	AuxPHdr:          "AT_PHDR",
	AuxPHEnt:         "AT_PHENT",
	AuxPHNum:         "AT_PHNUM",
	AuxPageSize:      "AT_PAGESZ",
	AuxBase:          "AT_BASE",
	AuxFlags:         "AT_FLAGS",
	AuxEntry:         "AT_ENTRY",
	AuxNotELF:        "AT_NOTELF",
	AuxUID:           "AT_UID",
	AuxEUID:          "AT_EUID",
	AuxGID:           "AT_GID",
	AuxEGID:          "AT_EGID",
	AuxPlatform:      "AT_PLATFORM",
	AuxHWCap:         "AT_HWCAP",
	AuxClkTck:        "AT_CLKTCK",
	AuxSecure:        "AT_SECURE",
	AuxBasePlatform:  "AT_BASE_PLATFORM",
	AuxRandom:        "AT_RANDOM",
	AuxHWCap2:        "AT_HWCAP2",
	AuxExecFn:        "AT_EXECFN",
	AuxSysInfo:       "AT_SYSINFO",
	AuxSysInfoEHdr:   "AT_SYSINFO_EHDR",
	AuxMinSigStkSize: "AT_MINSIGSTKSZ",
}

func (a AuxType) String() string {
	if name, ok := auxNames[a]; ok {
		return name
	}

	return fmt.Sprintf("AT_%d", uint64(a))
}

// AuxvEntry is one (type, value) pair of the auxiliary vector.
type AuxvEntry struct {
	Type  AuxType
	Value uint64
}

// CoreAuxv is the NT_AUXV note: the auxiliary vector handed to the process by
// the kernel, as word-sized pairs terminated by AT_NULL.
type CoreAuxv struct {
	Base
}

var _ Note = (*CoreAuxv)(nil)

func newCoreAuxv(b Base) (Note, bool) {
	if b.wordSize() == 0 {
		return nil, false
	}

	return &CoreAuxv{Base: b}, true
}

func (n *CoreAuxv) Clone() Note { return &CoreAuxv{Base: n.clone()} }

// Entries decodes the vector up to, not including, the AT_NULL terminator.
// A payload without a terminator yields every complete pair.
func (n *CoreAuxv) Entries() ([]AuxvEntry, error) {
	ws := n.wordSize()

	var entries []AuxvEntry
	for offset := 0; offset+2*ws <= len(n.desc); offset += 2 * ws {
		typ, err := readWord(&n.Base, offset)
		if err != nil {
			return nil, err
		}
		if AuxType(typ) == AuxNull {
			break
		}
		val, err := readWord(&n.Base, offset+ws)
		if err != nil {
			return nil, err
		}
		entries = append(entries, AuxvEntry{Type: AuxType(typ), Value: val})
	}

	return entries, nil
}

// Value returns the value of the first entry of type typ.
func (n *CoreAuxv) Value(typ AuxType) (uint64, bool) {
	entries, err := n.Entries()
	if err != nil {
		return 0, false
	}
	for _, e := range entries {
		if e.Type == typ {
			return e.Value, true
		}
	}

	return 0, false
}

// SetEntries rewrites the whole payload from entries and appends the AT_NULL
// terminator.
func (n *CoreAuxv) SetEntries(entries []AuxvEntry) error {
	ws := n.wordSize()
	buf := make([]byte, (len(entries)+1)*2*ws)

	tmp := Base{engine: n.engine, class: n.class, desc: buf}
	for i, e := range entries {
		if err := writeWord(&tmp, i*2*ws, uint64(e.Type)); err != nil {
			return err
		}
		if err := writeWord(&tmp, i*2*ws+ws, e.Value); err != nil {
			return err
		}
	}
	n.desc = buf

	return nil
}

func (n *CoreAuxv) String() string {
	var sb strings.Builder
	n.dump(&sb)

	if entries, err := n.Entries(); err == nil {
		for _, e := range entries {
			fmt.Fprintf(&sb, "  %-16s 0x%x\n", e.Type, e.Value)
		}
	}

	return sb.String()
}
