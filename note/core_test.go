package note

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/elfnote/errs"
	"github.com/arloliu/elfnote/format"
)

func coreOpts(arch format.Arch, class format.Class) []Option {
	return []Option{WithFileKind(format.KindCore), WithArch(arch), WithClass(class)}
}

func TestCorePrStatusX86_64(t *testing.T) {
	le := binary.LittleEndian
	desc := make([]byte, 112+27*8+8)
	le.PutUint32(desc[0:], 11)
	le.PutUint16(desc[12:], 11)
	le.PutUint32(desc[32:], 4242)
	le.PutUint32(desc[36:], 1)
	le.PutUint64(desc[48:], 7)
	le.PutUint64(desc[112+10*8:], 0xdead)   // RAX
	le.PutUint64(desc[112+16*8:], 0x401000) // RIP
	le.PutUint64(desc[112+19*8:], 0x7ffe0000)

	n, err := New(OwnerCore, NTPrStatus, desc, coreOpts(format.ArchX86_64, format.Class64)...)
	require.NoError(t, err)
	ps, ok := n.(*CorePrStatus)
	require.True(t, ok)

	st, err := ps.Status()
	require.NoError(t, err)
	require.Equal(t, int32(11), st.SigNo)
	require.Equal(t, uint16(11), st.CurSig)
	require.Equal(t, int32(4242), st.PID)
	require.Equal(t, int32(1), st.PPID)
	require.Equal(t, uint64(7), st.UTime.Sec)

	pc, err := ps.PC()
	require.NoError(t, err)
	require.Equal(t, uint64(0x401000), pc)

	sp, err := ps.SP()
	require.NoError(t, err)
	require.Equal(t, uint64(0x7ffe0000), sp)

	ret, err := ps.ReturnValue()
	require.NoError(t, err)
	require.Equal(t, uint64(0xdead), ret)

	regs, err := ps.Registers()
	require.NoError(t, err)
	require.Len(t, regs, 27)
	require.Equal(t, "R15", regs[0].Name)
	require.Equal(t, "GS", regs[26].Name)

	require.NoError(t, ps.SetRegister("rip", 0x402000))
	pc, _ = ps.PC()
	require.Equal(t, uint64(0x402000), pc)

	_, err = ps.Register("X0")
	require.ErrorIs(t, err, errs.ErrUnknownRegister)
	require.ErrorIs(t, ps.SetRegister("X0", 1), errs.ErrUnknownRegister)
}

func TestCorePrStatusLayouts(t *testing.T) {
	tests := []struct {
		name  string
		arch  format.Arch
		class format.Class
		regs  int
		pc    string
		base  int
		ws    int
	}{
		{"i386", format.Arch386, format.Class32, 17, "EIP", 72, 4},
		{"arm", format.ArchARM, format.Class32, 18, "R15", 72, 4},
		{"aarch64", format.ArchAArch64, format.Class64, 34, "PC", 112, 8},
		{"riscv64", format.ArchRISCV, format.Class64, 32, "PC", 112, 8},
		{"riscv32", format.ArchRISCV, format.Class32, 32, "PC", 72, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := make([]byte, tt.base+tt.regs*tt.ws+8)
			n, err := New(OwnerCore, NTPrStatus, desc, coreOpts(tt.arch, tt.class)...)
			require.NoError(t, err)
			ps, ok := n.(*CorePrStatus)
			require.True(t, ok)

			regs, err := ps.Registers()
			require.NoError(t, err)
			require.Len(t, regs, tt.regs)

			require.NoError(t, ps.SetRegister(tt.pc, 0x1234))
			pc, err := ps.PC()
			require.NoError(t, err)
			require.Equal(t, uint64(0x1234), pc)
		})
	}
}

func TestCorePrStatusFallback(t *testing.T) {
	tests := []struct {
		name  string
		arch  format.Arch
		class format.Class
	}{
		{"no arch", format.ArchNone, format.Class64},
		{"unsupported arch", format.ArchMIPS, format.Class32},
		{"class mismatch", format.ArchX86_64, format.Class32},
		{"riscv without class", format.ArchRISCV, format.ClassNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := New(OwnerCore, NTPrStatus, make([]byte, 400), coreOpts(tt.arch, tt.class)...)
			require.NoError(t, err)
			require.Equal(t, TypeCorePrStatus, n.Type())
			require.IsType(t, &Generic{}, n)
		})
	}
}

func TestCorePrPsInfo(t *testing.T) {
	t.Run("64-bit", func(t *testing.T) {
		desc := make([]byte, 136)
		desc[0] = 3
		desc[1] = 'R'
		binary.LittleEndian.PutUint32(desc[16:], 1000)
		binary.LittleEndian.PutUint32(desc[24:], 99)
		copy(desc[40:], "bash")
		copy(desc[56:], "bash -c true")

		n, err := New(OwnerCore, NTPrPsInfo, desc, coreOpts(format.ArchX86_64, format.Class64)...)
		require.NoError(t, err)
		ps := n.(*CorePrPsInfo)

		info, err := ps.Info()
		require.NoError(t, err)
		require.Equal(t, uint8(3), info.State)
		require.Equal(t, byte('R'), info.StateTag)
		require.Equal(t, uint32(1000), info.UID)
		require.Equal(t, int32(99), info.PID)
		require.Equal(t, "bash", info.FileName)
		require.Equal(t, "bash -c true", info.Args)

		require.NoError(t, ps.SetPID(7))
		require.NoError(t, ps.SetFileName("zsh"))
		require.NoError(t, ps.SetArgs("zsh -l"))
		info, _ = ps.Info()
		require.Equal(t, int32(7), info.PID)
		require.Equal(t, "zsh", info.FileName)
		require.Equal(t, "zsh -l", info.Args)

		require.ErrorIs(t, ps.SetFileName("a-file-name-longer-than-16"), errs.ErrFieldTooLong)
	})

	t.Run("32-bit", func(t *testing.T) {
		desc := make([]byte, 124)
		binary.BigEndian.PutUint16(desc[8:], 500)
		binary.BigEndian.PutUint32(desc[12:], 321)
		copy(desc[28:], "init")

		opts := append(coreOpts(format.ArchPPC, format.Class32), WithBigEndian())
		n, err := New(OwnerCore, NTPrPsInfo, desc, opts...)
		require.NoError(t, err)

		info, err := n.(*CorePrPsInfo).Info()
		require.NoError(t, err)
		require.Equal(t, uint32(500), info.UID)
		require.Equal(t, int32(321), info.PID)
		require.Equal(t, "init", info.FileName)
	})

	t.Run("without class", func(t *testing.T) {
		n, err := New(OwnerCore, NTPrPsInfo, make([]byte, 136), WithFileKind(format.KindCore))
		require.NoError(t, err)
		require.IsType(t, &Generic{}, n)
	})
}

func TestCoreAuxv(t *testing.T) {
	n, err := New(OwnerCore, NTAuxv, nil, coreOpts(format.ArchARM, format.Class32)...)
	require.NoError(t, err)
	auxv := n.(*CoreAuxv)

	entries := []AuxvEntry{
		{Type: AuxPageSize, Value: 4096},
		{Type: AuxEntry, Value: 0x10000},
		{Type: AuxType(99), Value: 1},
	}
	require.NoError(t, auxv.SetEntries(entries))
	require.Len(t, auxv.Description(), 4*8)

	got, err := auxv.Entries()
	require.NoError(t, err)
	require.Equal(t, entries, got)

	v, ok := auxv.Value(AuxEntry)
	require.True(t, ok)
	require.Equal(t, uint64(0x10000), v)

	_, ok = auxv.Value(AuxRandom)
	require.False(t, ok)

	require.Equal(t, "AT_PAGESZ", AuxPageSize.String())
	require.Equal(t, "AT_99", AuxType(99).String())
	require.Contains(t, auxv.String(), "AT_ENTRY")
}

func TestCoreFile(t *testing.T) {
	le := binary.LittleEndian
	desc := make([]byte, 16+2*24)
	le.PutUint64(desc[0:], 2)
	le.PutUint64(desc[8:], 4096)
	le.PutUint64(desc[16:], 0x400000)
	le.PutUint64(desc[24:], 0x401000)
	le.PutUint64(desc[32:], 0)
	le.PutUint64(desc[40:], 0x7f0000)
	le.PutUint64(desc[48:], 0x7f2000)
	le.PutUint64(desc[56:], 3)
	desc = append(desc, "/bin/true\x00/lib/libc.so.6\x00"...)

	n, err := New(OwnerCore, NTFile, desc, coreOpts(format.ArchX86_64, format.Class64)...)
	require.NoError(t, err)
	cf := n.(*CoreFile)

	page, err := cf.PageSize()
	require.NoError(t, err)
	require.Equal(t, uint64(4096), page)

	files, err := cf.Files()
	require.NoError(t, err)
	require.Equal(t, []MappedFile{
		{Start: 0x400000, End: 0x401000, Offset: 0, Path: "/bin/true"},
		{Start: 0x7f0000, End: 0x7f2000, Offset: 3, Path: "/lib/libc.so.6"},
	}, files)

	le.PutUint64(desc[0:], 1<<40)
	huge, err := New(OwnerCore, NTFile, desc, coreOpts(format.ArchX86_64, format.Class64)...)
	require.NoError(t, err)
	_, err = huge.(*CoreFile).Files()
	require.ErrorIs(t, err, errs.ErrOutOfBounds)
}

func TestCoreSigInfo(t *testing.T) {
	n, err := NewFromType("", TypeCoreSigInfo, make([]byte, 128))
	require.NoError(t, err)
	si := n.(*CoreSigInfo)

	require.NoError(t, si.SetSigNo(11))
	require.NoError(t, si.SetSigCode(1))
	require.NoError(t, si.SetSigErrNo(0))

	signo, err := si.SigNo()
	require.NoError(t, err)
	require.Equal(t, int32(11), signo)
	code, _ := si.SigCode()
	require.Equal(t, int32(1), code)
	require.Contains(t, si.String(), "Signal:      11")
}

func TestCoreSigInfoLayout(t *testing.T) {
	le := binary.LittleEndian

	// SIGSEGV with SEGV_MAPERR as written by the kernel.
	desc := make([]byte, 128)
	le.PutUint32(desc[0:], 11)
	le.PutUint32(desc[4:], 14)
	le.PutUint32(desc[8:], 1)

	n, err := New(OwnerCore, NTSigInfo, desc, coreOpts(format.ArchX86_64, format.Class64)...)
	require.NoError(t, err)
	si, ok := n.(*CoreSigInfo)
	require.True(t, ok)

	signo, _ := si.SigNo()
	errno, _ := si.SigErrNo()
	code, _ := si.SigCode()
	require.Equal(t, int32(11), signo)
	require.Equal(t, int32(14), errno)
	require.Equal(t, int32(1), code)
	require.Contains(t, si.String(), "Signal:      11 (code 1, errno 14)")

	require.NoError(t, si.SetSigCode(2))
	require.Equal(t, uint32(2), le.Uint32(si.Description()[8:]))
	require.Equal(t, uint32(14), le.Uint32(si.Description()[4:]))
}

func TestCoreXStateAndSVE(t *testing.T) {
	le := binary.LittleEndian

	desc := make([]byte, 576)
	le.PutUint16(desc[0:], 0x37f)
	le.PutUint32(desc[24:], 0x1f80)
	le.PutUint64(desc[464:], 0x7)
	le.PutUint64(desc[512:], 0x3)

	n, err := New(OwnerLinux, NTX86XState, desc, coreOpts(format.ArchX86_64, format.Class64)...)
	require.NoError(t, err)
	xs, ok := n.(*CoreXState)
	require.True(t, ok)

	fcw, _ := xs.FCW()
	mxcsr, _ := xs.MXCSR()
	xcr0, _ := xs.XCR0()
	bv, _ := xs.XStateBV()
	require.Equal(t, uint16(0x37f), fcw)
	require.Equal(t, uint32(0x1f80), mxcsr)
	require.Equal(t, uint64(7), xcr0)
	require.Equal(t, uint64(3), bv)

	arm, err := New(OwnerLinux, NTX86XState, desc, coreOpts(format.ArchAArch64, format.Class64)...)
	require.NoError(t, err)
	require.IsType(t, &Generic{}, arm)

	sveDesc := make([]byte, 16)
	le.PutUint32(sveDesc[0:], 16)
	le.PutUint32(sveDesc[4:], 8192)
	le.PutUint16(sveDesc[8:], 32)
	le.PutUint16(sveDesc[10:], 256)

	n, err = New(OwnerLinux, NTARMSVE, sveDesc, coreOpts(format.ArchAArch64, format.Class64)...)
	require.NoError(t, err)
	sve, ok := n.(*CoreSVE)
	require.True(t, ok)

	h, err := sve.Header()
	require.NoError(t, err)
	require.Equal(t, SVEHeader{Size: 16, MaxSize: 8192, VL: 32, MaxVL: 256}, h)

	x86, err := New(OwnerLinux, NTARMSVE, sveDesc, coreOpts(format.ArchX86_64, format.Class64)...)
	require.NoError(t, err)
	require.IsType(t, &Generic{}, x86)
}
