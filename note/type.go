package note

import "fmt"

// Type is the semantic classification of a note. It is derived from the owner
// name, the raw type code and the file kind, and is distinct from the raw
// NT_* value returned by Note.RawType.
type Type uint16

const (
	TypeUnknown Type = iota

	TypeGNUABITag             // NT_GNU_ABI_TAG: OS ABI information
	TypeGNUHWCap              // NT_GNU_HWCAP: synthetic hardware capabilities
	TypeGNUBuildID            // NT_GNU_BUILD_ID: unique build identifier
	TypeGNUGoldVersion        // NT_GNU_GOLD_VERSION: gold linker version
	TypeGNUPropertyType0      // NT_GNU_PROPERTY_TYPE_0: program properties
	TypeGNUBuildAttributeOpen // NT_GNU_BUILD_ATTRIBUTE_OPEN
	TypeGNUBuildAttributeFunc // NT_GNU_BUILD_ATTRIBUTE_FUNC

	TypeCrashpad // Chromium Crashpad information block

	TypeCorePrStatus     // NT_PRSTATUS: elf_prstatus
	TypeCoreFPRegSet     // NT_PRFPREG: floating point registers
	TypeCorePrPsInfo     // NT_PRPSINFO: elf_prpsinfo
	TypeCoreTaskStruct   // NT_TASKSTRUCT
	TypeCoreAuxv         // NT_AUXV: auxiliary vector
	TypeCorePStatus      // NT_PSTATUS (Solaris)
	TypeCoreFPRegs       // NT_FPREGS (Solaris)
	TypeCorePsInfo       // NT_PSINFO (Solaris)
	TypeCoreLWPStatus    // NT_LWPSTATUS (Solaris)
	TypeCoreLWPSInfo     // NT_LWPSINFO (Solaris)
	TypeCoreWin32PStatus // NT_WIN32PSTATUS (Cygwin)
	TypeCoreFile         // NT_FILE: mapped files
	TypeCorePrXFPReg     // NT_PRXFPREG: user_fxsr_struct
	TypeCoreSigInfo      // NT_SIGINFO: siginfo_t

	TypeCoreARMVFP         // NT_ARM_VFP
	TypeCoreARMTLS         // NT_ARM_TLS
	TypeCoreARMHWBreak     // NT_ARM_HW_BREAK
	TypeCoreARMHWWatch     // NT_ARM_HW_WATCH
	TypeCoreARMSystemCall  // NT_ARM_SYSTEM_CALL
	TypeCoreARMSVE         // NT_ARM_SVE: scalable vector extension state
	TypeCoreARMPACMask     // NT_ARM_PAC_MASK
	TypeCoreARMPACAKeys    // NT_ARM_PACA_KEYS
	TypeCoreARMPACGKeys    // NT_ARM_PACG_KEYS
	TypeCoreTaggedAddrCtrl // NT_ARM_TAGGED_ADDR_CTRL
	TypeCorePACEnabledKeys // NT_ARM_PAC_ENABLED_KEYS
	TypeCoreX86TLS         // NT_386_TLS
	TypeCoreX86IOPerm      // NT_386_IOPERM
	TypeCoreX86XState      // NT_X86_XSTATE: XSAVE area
	TypeCoreX86CET         // NT_X86_SHSTK: CET shadow stack state
	TypeAndroidIdent       // NT_ANDROID_TYPE_IDENT: SDK and NDK versions
	TypeAndroidMemtag      // NT_ANDROID_TYPE_MEMTAG
	TypeAndroidKuser       // NT_ANDROID_TYPE_KUSER
	TypeGoBuildID          // Go toolchain build ID
	TypeStapSDT            // SystemTap static probe

	typeCount // sentinel, keep last
)

var typeNames = [...]string{
	TypeUnknown:               "UNKNOWN",
	TypeGNUABITag:             "GNU_ABI_TAG",
	TypeGNUHWCap:              "GNU_HWCAP",
	TypeGNUBuildID:            "GNU_BUILD_ID",
	TypeGNUGoldVersion:        "GNU_GOLD_VERSION",
	TypeGNUPropertyType0:      "GNU_PROPERTY_TYPE_0",
	TypeGNUBuildAttributeOpen: "GNU_BUILD_ATTRIBUTE_OPEN",
	TypeGNUBuildAttributeFunc: "GNU_BUILD_ATTRIBUTE_FUNC",
	TypeCrashpad:              "CRASHPAD",
	TypeCorePrStatus:          "CORE_PRSTATUS",
	TypeCoreFPRegSet:          "CORE_FPREGSET",
	TypeCorePrPsInfo:          "CORE_PRPSINFO",
	TypeCoreTaskStruct:        "CORE_TASKSTRUCT",
	TypeCoreAuxv:              "CORE_AUXV",
	TypeCorePStatus:           "CORE_PSTATUS",
	TypeCoreFPRegs:            "CORE_FPREGS",
	TypeCorePsInfo:            "CORE_PSINFO",
	TypeCoreLWPStatus:         "CORE_LWPSTATUS",
	TypeCoreLWPSInfo:          "CORE_LWPSINFO",
	TypeCoreWin32PStatus:      "CORE_WIN32PSTATUS",
	TypeCoreFile:              "CORE_FILE",
	TypeCorePrXFPReg:          "CORE_PRXFPREG",
	TypeCoreSigInfo:           "CORE_SIGINFO",
	TypeCoreARMVFP:            "CORE_ARM_VFP",
	TypeCoreARMTLS:            "CORE_ARM_TLS",
	TypeCoreARMHWBreak:        "CORE_ARM_HW_BREAK",
	TypeCoreARMHWWatch:        "CORE_ARM_HW_WATCH",
	TypeCoreARMSystemCall:     "CORE_ARM_SYSTEM_CALL",
	TypeCoreARMSVE:            "CORE_ARM_SVE",
	TypeCoreARMPACMask:        "CORE_ARM_PAC_MASK",
	TypeCoreARMPACAKeys:       "CORE_ARM_PACA_KEYS",
	TypeCoreARMPACGKeys:       "CORE_ARM_PACG_KEYS",
	TypeCoreTaggedAddrCtrl:    "CORE_TAGGED_ADDR_CTRL",
	TypeCorePACEnabledKeys:    "CORE_PAC_ENABLED_KEYS",
	TypeCoreX86TLS:            "CORE_X86_TLS",
	TypeCoreX86IOPerm:         "CORE_X86_IOPERM",
	TypeCoreX86XState:         "CORE_X86_XSTATE",
	TypeCoreX86CET:            "CORE_X86_CET",
	TypeAndroidIdent:          "ANDROID_IDENT",
	TypeAndroidMemtag:         "ANDROID_MEMTAG",
	TypeAndroidKuser:          "ANDROID_KUSER",
	TypeGoBuildID:             "GO_BUILDID",
	TypeStapSDT:               "STAPSDT",
}

func (t Type) String() string {
	if t < typeCount {
		return typeNames[t]
	}

	return fmt.Sprintf("Type(%d)", uint16(t))
}

// IsCore reports whether t is only meaningful inside a core dump.
func (t Type) IsCore() bool {
	return t >= TypeCorePrStatus && t <= TypeCoreX86CET
}

// Types returns every defined Type, TypeUnknown included, in declaration order.
func Types() []Type {
	out := make([]Type, 0, typeCount)
	for t := TypeUnknown; t < typeCount; t++ {
		out = append(out, t)
	}

	return out
}
