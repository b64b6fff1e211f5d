package note

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ABI is the operating system identifier stored in NT_GNU_ABI_TAG notes.
type ABI uint32

const (
	ABILinux    ABI = 0
	ABIHurd     ABI = 1
	ABISolaris  ABI = 2
	ABIFreeBSD  ABI = 3
	ABINetBSD   ABI = 4
	ABISyllable ABI = 5
	ABINaCl     ABI = 6
)

func (a ABI) String() string {
	switch a {
	case ABILinux:
		return "Linux"
	case ABIHurd:
		return "GNU/Hurd"
	case ABISolaris:
		return "Solaris"
	case ABIFreeBSD:
		return "FreeBSD"
	case ABINetBSD:
		return "NetBSD"
	case ABISyllable:
		return "Syllable"
	case ABINaCl:
		return "NaCl"
	default:
		return fmt.Sprintf("ABI(%d)", uint32(a))
	}
}

// ABITag is the NT_GNU_ABI_TAG note found in .note.ABI-tag. Its payload is four
// 32-bit words: OS identifier, then the major, minor and patch version of the
// earliest compatible kernel.
type ABITag struct {
	Base
}

var _ Note = (*ABITag)(nil)

func (n *ABITag) Clone() Note { return &ABITag{Base: n.clone()} }

// ABI returns the operating system identifier.
func (n *ABITag) ABI() (ABI, error) {
	v, err := readAt[uint32](&n.Base, 0)
	return ABI(v), err
}

// Version returns the major, minor and patch version.
func (n *ABITag) Version() ([3]uint32, error) {
	var version [3]uint32
	for i := range version {
		v, err := readAt[uint32](&n.Base, 4+4*i)
		if err != nil {
			return [3]uint32{}, err
		}
		version[i] = v
	}

	return version, nil
}

// SetABI overwrites the operating system identifier in place.
func (n *ABITag) SetABI(abi ABI) error {
	return writeAt(&n.Base, 0, uint32(abi))
}

// SetVersion overwrites the version in place.
func (n *ABITag) SetVersion(version [3]uint32) error {
	if _, err := readAt[uint32](&n.Base, 12); err != nil {
		return err
	}
	for i, v := range version {
		if err := writeAt(&n.Base, 4+4*i, v); err != nil {
			return err
		}
	}

	return nil
}

func (n *ABITag) String() string {
	var sb strings.Builder
	n.dump(&sb)

	abi, err := n.ABI()
	if err != nil {
		return sb.String()
	}
	fmt.Fprintf(&sb, "ABI:         %s", abi)
	if v, err := n.Version(); err == nil {
		fmt.Fprintf(&sb, " %d.%d.%d", v[0], v[1], v[2])
	}
	sb.WriteByte('\n')

	return sb.String()
}

// HWCapEntry is one named capability bit of an NT_GNU_HWCAP note.
type HWCapEntry struct {
	Bit  uint8
	Name string
}

// HWCap is the NT_GNU_HWCAP note. Its payload is a 32-bit entry count, a
// 32-bit mask of enabled entries and then, for each entry, a bit number byte
// followed by a NUL-terminated name.
type HWCap struct {
	Base
}

var _ Note = (*HWCap)(nil)

func (n *HWCap) Clone() Note { return &HWCap{Base: n.clone()} }

// Count returns the number of declared capability entries.
func (n *HWCap) Count() (uint32, error) {
	return readAt[uint32](&n.Base, 0)
}

// Mask returns the mask of enabled capabilities.
func (n *HWCap) Mask() (uint32, error) {
	return readAt[uint32](&n.Base, 4)
}

// Capabilities decodes the capability entries.
func (n *HWCap) Capabilities() ([]HWCapEntry, error) {
	count, err := n.Count()
	if err != nil {
		return nil, err
	}

	entries := make([]HWCapEntry, 0, min(int(count), len(n.desc)))
	offset := 8
	for range count {
		bit, err := readAt[uint8](&n.Base, offset)
		if err != nil {
			return nil, err
		}
		name, err := readStringAt(&n.Base, offset+1, 0)
		if err != nil {
			return nil, err
		}
		entries = append(entries, HWCapEntry{Bit: bit, Name: name})
		offset += 1 + len(name) + 1
	}

	return entries, nil
}

func (n *HWCap) String() string {
	var sb strings.Builder
	n.dump(&sb)

	if caps, err := n.Capabilities(); err == nil {
		mask, _ := n.Mask()
		for _, c := range caps {
			state := "off"
			if c.Bit < 32 && mask&(1<<c.Bit) != 0 {
				state = "on"
			}
			fmt.Fprintf(&sb, "HWCap:       %s (bit %d, %s)\n", c.Name, c.Bit, state)
		}
	}

	return sb.String()
}

// BuildID is the NT_GNU_BUILD_ID note. The whole payload is the identifier,
// usually a 20-byte SHA-1 or a 16-byte MD5/UUID.
type BuildID struct {
	Base
}

var _ Note = (*BuildID)(nil)

func (n *BuildID) Clone() Note { return &BuildID{Base: n.clone()} }

// ID returns a copy of the build identifier bytes.
func (n *BuildID) ID() []byte {
	return n.Description()
}

// Hex returns the build identifier as a lowercase hex string.
func (n *BuildID) Hex() string {
	return hex.EncodeToString(n.ID())
}

func (n *BuildID) String() string {
	var sb strings.Builder
	n.dump(&sb)
	fmt.Fprintf(&sb, "Build ID:    %s\n", n.Hex())

	return sb.String()
}

// GoldVersion is the NT_GNU_GOLD_VERSION note holding the gold linker version string.
type GoldVersion struct {
	Base
}

var _ Note = (*GoldVersion)(nil)

func (n *GoldVersion) Clone() Note { return &GoldVersion{Base: n.clone()} }

// Version returns the linker version string.
func (n *GoldVersion) Version() (string, error) {
	return readStringAt(&n.Base, 0, 0)
}

func (n *GoldVersion) String() string {
	var sb strings.Builder
	n.dump(&sb)
	if v, err := n.Version(); err == nil {
		fmt.Fprintf(&sb, "Version:     %s\n", v)
	}

	return sb.String()
}

// GoBuildID is the "Go" owner build ID note written by the Go linker.
type GoBuildID struct {
	Base
}

var _ Note = (*GoBuildID)(nil)

func (n *GoBuildID) Clone() Note { return &GoBuildID{Base: n.clone()} }

// ID returns the Go build ID string.
func (n *GoBuildID) ID() (string, error) {
	return readStringAt(&n.Base, 0, 0)
}

func (n *GoBuildID) String() string {
	var sb strings.Builder
	n.dump(&sb)
	if id, err := n.ID(); err == nil {
		fmt.Fprintf(&sb, "Go build ID: %s\n", id)
	}

	return sb.String()
}
