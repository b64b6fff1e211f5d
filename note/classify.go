package note

import (
	"maps"
	"slices"

	"github.com/arloliu/elfnote/errs"
	"github.com/arloliu/elfnote/format"
)

// coreTypes maps raw codes to tags inside core dumps regardless of owner.
var coreTypes = map[uint32]Type{
	NTPrStatus:      TypeCorePrStatus,
	NTPrFPReg:       TypeCoreFPRegSet,
	NTPrPsInfo:      TypeCorePrPsInfo,
	NTTaskStruct:    TypeCoreTaskStruct,
	NTAuxv:          TypeCoreAuxv,
	NTPStatus:       TypeCorePStatus,
	NTFPRegs:        TypeCoreFPRegs,
	NTPsInfo:        TypeCorePsInfo,
	NTLWPStatus:     TypeCoreLWPStatus,
	NTLWPSInfo:      TypeCoreLWPSInfo,
	NTWin32PStatus:  TypeCoreWin32PStatus,
	NTFile:          TypeCoreFile,
	NTPrXFPReg:      TypeCorePrXFPReg,
	NTSigInfo:       TypeCoreSigInfo,
	NTX86TLS:        TypeCoreX86TLS,
	NTX86IOPerm:     TypeCoreX86IOPerm,
	NTX86XState:     TypeCoreX86XState,
	NTX86CET:        TypeCoreX86CET,
	NTARMVFP:        TypeCoreARMVFP,
	NTARMTLS:        TypeCoreARMTLS,
	NTARMHWBreak:    TypeCoreARMHWBreak,
	NTARMHWWatch:    TypeCoreARMHWWatch,
	NTARMSystemCall: TypeCoreARMSystemCall,
	NTARMSVE:        TypeCoreARMSVE,
	NTARMPACMask:    TypeCoreARMPACMask,
	NTARMPACAKeys:   TypeCoreARMPACAKeys,
	NTARMPACGKeys:   TypeCoreARMPACGKeys,
	NTARMTaggedAddr: TypeCoreTaggedAddrCtrl,
	NTARMPACEnabled: TypeCorePACEnabledKeys,
}

// ownerTypes maps an exact owner name to its raw code table.
var ownerTypes = map[string]map[uint32]Type{
	OwnerGNU: {
		NTGNUABITag:             TypeGNUABITag,
		NTGNUHWCap:              TypeGNUHWCap,
		NTGNUBuildID:            TypeGNUBuildID,
		NTGNUGoldVersion:        TypeGNUGoldVersion,
		NTGNUPropertyType0:      TypeGNUPropertyType0,
		NTGNUBuildAttributeOpen: TypeGNUBuildAttributeOpen,
		NTGNUBuildAttributeFunc: TypeGNUBuildAttributeFunc,
	},
	OwnerAndroid: {
		NTAndroidIdent:  TypeAndroidIdent,
		NTAndroidKuser:  TypeAndroidKuser,
		NTAndroidMemtag: TypeAndroidMemtag,
	},
	OwnerGo: {
		NTGoBuildID: TypeGoBuildID,
	},
	OwnerStapSDT: {
		NTStapSDT: TypeStapSDT,
	},
	OwnerCrashpad: {
		NTCrashpad: TypeCrashpad,
	},
}

var sectionNames = map[Type]string{
	TypeGNUABITag:             ".note.ABI-tag",
	TypeGNUHWCap:              ".note.gnu.hwcap",
	TypeGNUBuildID:            ".note.gnu.build-id",
	TypeGNUGoldVersion:        ".note.gnu.gold-version",
	TypeGNUPropertyType0:      ".note.gnu.property",
	TypeGNUBuildAttributeOpen: ".gnu.build.attributes",
	TypeGNUBuildAttributeFunc: ".gnu.build.attributes",
	TypeAndroidIdent:          ".note.android.ident",
	TypeAndroidMemtag:         ".note.android.memtag",
	TypeAndroidKuser:          ".note.android.kuser",
	TypeGoBuildID:             ".note.go.buildid",
	TypeStapSDT:               ".note.stapsdt",
	TypeCrashpad:              ".note.crashpad.info",
}

// owners and rawTypes are derived from the tables above at init.
var (
	owners   = map[Type]string{}
	rawTypes = map[Type]uint32{}
)

// linuxCoreTypes are written by the kernel under the "LINUX" owner. All other
// Linux core notes use "CORE".
var linuxCoreTypes = map[Type]struct{}{
	TypeCorePrXFPReg:       {},
	TypeCoreX86TLS:         {},
	TypeCoreX86IOPerm:      {},
	TypeCoreX86XState:      {},
	TypeCoreX86CET:         {},
	TypeCoreARMVFP:         {},
	TypeCoreARMTLS:         {},
	TypeCoreARMHWBreak:     {},
	TypeCoreARMHWWatch:     {},
	TypeCoreARMSystemCall:  {},
	TypeCoreARMSVE:         {},
	TypeCoreARMPACMask:     {},
	TypeCoreARMPACAKeys:    {},
	TypeCoreARMPACGKeys:    {},
	TypeCoreTaggedAddrCtrl: {},
	TypeCorePACEnabledKeys: {},
}

// Solaris and Cygwin core notes have no single owner.
var ownerlessCoreTypes = map[Type]struct{}{
	TypeCorePStatus:      {},
	TypeCoreFPRegs:       {},
	TypeCorePsInfo:       {},
	TypeCoreLWPStatus:    {},
	TypeCoreLWPSInfo:     {},
	TypeCoreWin32PStatus: {},
}

func init() {
	for owner, table := range ownerTypes {
		for raw, typ := range table {
			owners[typ] = owner
			rawTypes[typ] = raw
		}
	}

	for raw, typ := range coreTypes {
		rawTypes[typ] = raw
		if _, ok := ownerlessCoreTypes[typ]; ok {
			continue
		}
		if _, ok := linuxCoreTypes[typ]; ok {
			owners[typ] = OwnerLinux
		} else {
			owners[typ] = OwnerCore
		}
	}
}

// Classify resolves the semantic Type of a note.
//
// Inside a core dump (kind == format.KindCore) the owner independent core
// table is consulted first and wins on a hit. Otherwise the owner name is
// matched exactly and the raw code selects the tag within that owner.
// Classify never fails: unrecognized combinations yield TypeUnknown.
func Classify(kind format.FileKind, raw uint32, owner string) Type {
	if kind == format.KindCore {
		if typ, ok := coreTypes[raw]; ok {
			return typ
		}
	}

	if table, ok := ownerTypes[owner]; ok {
		if typ, ok := table[raw]; ok {
			return typ
		}
	}

	return TypeUnknown
}

// SectionName returns the conventional section name for notes of type typ.
//
// Returns:
//   - string: Section name such as ".note.gnu.build-id"
//   - error: errs.ErrNotFound for types without a fixed section (core notes, TypeUnknown)
func SectionName(typ Type) (string, error) {
	if name, ok := sectionNames[typ]; ok {
		return name, nil
	}

	return "", errs.ErrNotFound
}

// Owner returns the canonical owner name used when creating a note of type typ.
//
// Returns:
//   - string: Owner name such as "GNU" or "CORE"
//   - error: errs.ErrNotFound for TypeUnknown and types with no single owner
func Owner(typ Type) (string, error) {
	if owner, ok := owners[typ]; ok {
		return owner, nil
	}

	return "", errs.ErrNotFound
}

// RawType returns the representative raw NT_* code for typ.
//
// Returns:
//   - uint32: Raw type code
//   - error: errs.ErrNotFound for TypeUnknown
func RawType(typ Type) (uint32, error) {
	if raw, ok := rawTypes[typ]; ok {
		return raw, nil
	}

	return 0, errs.ErrNotFound
}

// Owners returns the owner names the classifier recognizes outside core
// dumps, sorted.
func Owners() []string {
	return slices.Sorted(maps.Keys(ownerTypes))
}
