package note

import (
	"fmt"
	"strings"

	"github.com/arloliu/elfnote/encoding"
	"github.com/arloliu/elfnote/format"
)

// PropertyType is the pr_type of a GNU program property.
type PropertyType uint32

const (
	PropertyStackSize          PropertyType = 1
	PropertyNoCopyOnProtected  PropertyType = 2
	PropertyAArch64Feature1And PropertyType = 0xc0000000
	PropertyX86Feature1And     PropertyType = 0xc0000002
	PropertyX86Feature2Used    PropertyType = 0xc0010001
	PropertyX86ISA1Needed      PropertyType = 0xc0008002
	PropertyX86ISA1Used        PropertyType = 0xc0010002
)

// AArch64 GNU_PROPERTY_AARCH64_FEATURE_1_AND bits.
const (
	AArch64FeatureBTI uint32 = 1 << 0
	AArch64FeaturePAC uint32 = 1 << 1
	AArch64FeatureGCS uint32 = 1 << 2
)

// x86 GNU_PROPERTY_X86_FEATURE_1_AND bits.
const (
	X86FeatureIBT   uint32 = 1 << 0
	X86FeatureSHSTK uint32 = 1 << 1
)

func (p PropertyType) String() string {
	switch p {
	case PropertyStackSize:
		return "STACK_SIZE"
	case PropertyNoCopyOnProtected:
		return "NO_COPY_ON_PROTECTED"
	case PropertyAArch64Feature1And:
		return "AARCH64_FEATURE_1_AND"
	case PropertyX86Feature1And:
		return "X86_FEATURE_1_AND"
	case PropertyX86Feature2Used:
		return "X86_FEATURE_2_USED"
	case PropertyX86ISA1Needed:
		return "X86_ISA_1_NEEDED"
	case PropertyX86ISA1Used:
		return "X86_ISA_1_USED"
	default:
		return fmt.Sprintf("PROPERTY(0x%x)", uint32(p))
	}
}

// Property is one entry of an NT_GNU_PROPERTY_TYPE_0 note.
type Property struct {
	Type PropertyType
	Data []byte
}

// GNUProperty is the NT_GNU_PROPERTY_TYPE_0 note stored in .note.gnu.property.
// It carries security hardening properties such as BTI/PAC or IBT/SHSTK.
//
// The payload is an array of (pr_type, pr_datasz, pr_data) entries whose data
// is padded to 8 bytes in 64-bit objects and to 4 bytes in 32-bit objects.
type GNUProperty struct {
	Base
}

var _ Note = (*GNUProperty)(nil)

func (n *GNUProperty) Clone() Note { return &GNUProperty{Base: n.clone()} }

func (n *GNUProperty) propertyAlign() int {
	switch n.class {
	case format.Class64:
		return 8
	case format.Class32:
		return 4
	default:
		return n.align
	}
}

// Properties decodes every property entry.
func (n *GNUProperty) Properties() ([]Property, error) {
	var props []Property

	align := n.propertyAlign()
	offset := 0
	for offset < len(n.desc) {
		typ, err := readAt[uint32](&n.Base, offset)
		if err != nil {
			return nil, err
		}
		size, err := readAt[uint32](&n.Base, offset+4)
		if err != nil {
			return nil, err
		}
		data, err := readBytesAt(&n.Base, offset+8, int(size))
		if err != nil {
			return nil, err
		}
		props = append(props, Property{Type: PropertyType(typ), Data: data})

		offset += 8 + (int(size)+align-1)/align*align
	}

	return props, nil
}

// Find returns the first property of type typ.
func (n *GNUProperty) Find(typ PropertyType) (Property, bool) {
	props, err := n.Properties()
	if err != nil {
		return Property{}, false
	}
	for _, p := range props {
		if p.Type == typ {
			return p, true
		}
	}

	return Property{}, false
}

func (n *GNUProperty) featureBits(typ PropertyType) (uint32, bool) {
	p, ok := n.Find(typ)
	if !ok {
		return 0, false
	}
	v, err := encoding.ReadFixed[uint32](n.engine, p.Data, 0)
	if err != nil {
		return 0, false
	}

	return v, true
}

// AArch64Features returns the GNU_PROPERTY_AARCH64_FEATURE_1_AND bits.
func (n *GNUProperty) AArch64Features() (uint32, bool) {
	return n.featureBits(PropertyAArch64Feature1And)
}

// X86Features returns the GNU_PROPERTY_X86_FEATURE_1_AND bits.
func (n *GNUProperty) X86Features() (uint32, bool) {
	return n.featureBits(PropertyX86Feature1And)
}

// StackSize returns the GNU_PROPERTY_STACK_SIZE value.
func (n *GNUProperty) StackSize() (uint64, bool) {
	p, ok := n.Find(PropertyStackSize)
	if !ok {
		return 0, false
	}
	v, err := encoding.ReadWord(n.engine, p.Data, 0, len(p.Data))
	if err != nil {
		return 0, false
	}

	return v, true
}

// FeatureNames renders the hardening features advertised by the note.
func (n *GNUProperty) FeatureNames() []string {
	var names []string
	if bits, ok := n.AArch64Features(); ok {
		if bits&AArch64FeatureBTI != 0 {
			names = append(names, "BTI")
		}
		if bits&AArch64FeaturePAC != 0 {
			names = append(names, "PAC")
		}
		if bits&AArch64FeatureGCS != 0 {
			names = append(names, "GCS")
		}
	}
	if bits, ok := n.X86Features(); ok {
		if bits&X86FeatureIBT != 0 {
			names = append(names, "IBT")
		}
		if bits&X86FeatureSHSTK != 0 {
			names = append(names, "SHSTK")
		}
	}

	return names
}

func (n *GNUProperty) String() string {
	var sb strings.Builder
	n.dump(&sb)

	props, err := n.Properties()
	if err != nil {
		return sb.String()
	}
	for _, p := range props {
		fmt.Fprintf(&sb, "Property:    %s (%d bytes)\n", p.Type, len(p.Data))
	}
	if names := n.FeatureNames(); len(names) > 0 {
		fmt.Fprintf(&sb, "Features:    %s\n", strings.Join(names, ", "))
	}

	return sb.String()
}
