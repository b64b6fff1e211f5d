package note

// Well-known note owner names.
const (
	OwnerGNU      = "GNU"
	OwnerAndroid  = "Android"
	OwnerGo       = "Go"
	OwnerStapSDT  = "stapsdt"
	OwnerCrashpad = "Crashpad"
	OwnerCore     = "CORE"
	OwnerLinux    = "LINUX"
)

// Raw NT_* codes of GNU notes.
const (
	NTGNUABITag             uint32 = 1
	NTGNUHWCap              uint32 = 2
	NTGNUBuildID            uint32 = 3
	NTGNUGoldVersion        uint32 = 4
	NTGNUPropertyType0      uint32 = 5
	NTGNUBuildAttributeOpen uint32 = 0x100
	NTGNUBuildAttributeFunc uint32 = 0x101
)

// Raw codes of other toolchain and platform notes.
const (
	NTAndroidIdent  uint32 = 1
	NTAndroidKuser  uint32 = 3
	NTAndroidMemtag uint32 = 4
	NTGoBuildID     uint32 = 4
	NTStapSDT       uint32 = 3
	NTCrashpad      uint32 = 0x4f464e49 // "INFO"
)

// Raw codes of core dump notes. These are owner independent.
const (
	NTPrStatus      uint32 = 1
	NTPrFPReg       uint32 = 2
	NTPrPsInfo      uint32 = 3
	NTTaskStruct    uint32 = 4
	NTAuxv          uint32 = 6
	NTPStatus       uint32 = 10
	NTFPRegs        uint32 = 12
	NTPsInfo        uint32 = 13
	NTLWPStatus     uint32 = 16
	NTLWPSInfo      uint32 = 17
	NTWin32PStatus  uint32 = 18
	NTX86TLS        uint32 = 0x200
	NTX86IOPerm     uint32 = 0x201
	NTX86XState     uint32 = 0x202
	NTX86CET        uint32 = 0x204
	NTARMVFP        uint32 = 0x400
	NTARMTLS        uint32 = 0x401
	NTARMHWBreak    uint32 = 0x402
	NTARMHWWatch    uint32 = 0x403
	NTARMSystemCall uint32 = 0x404
	NTARMSVE        uint32 = 0x405
	NTARMPACMask    uint32 = 0x406
	NTARMPACAKeys   uint32 = 0x407
	NTARMPACGKeys   uint32 = 0x408
	NTARMTaggedAddr uint32 = 0x409
	NTARMPACEnabled uint32 = 0x40a
	NTFile          uint32 = 0x46494c45 // "FILE"
	NTPrXFPReg      uint32 = 0x46e62b7f
	NTSigInfo       uint32 = 0x53494749 // "SIGI"
)
