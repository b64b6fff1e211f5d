package note

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/elfnote/errs"
	"github.com/arloliu/elfnote/format"
)

func TestABITag(t *testing.T) {
	desc := make([]byte, 16)
	binary.LittleEndian.PutUint32(desc[4:], 2)
	binary.LittleEndian.PutUint32(desc[8:], 6)
	binary.LittleEndian.PutUint32(desc[12:], 32)

	n := mustNew(t, OwnerGNU, NTGNUABITag, desc).(*ABITag)

	abi, err := n.ABI()
	require.NoError(t, err)
	require.Equal(t, ABILinux, abi)
	require.Equal(t, "Linux", abi.String())

	version, err := n.Version()
	require.NoError(t, err)
	require.Equal(t, [3]uint32{2, 6, 32}, version)
	require.Contains(t, n.String(), "Linux 2.6.32")

	require.NoError(t, n.SetABI(ABIFreeBSD))
	require.NoError(t, n.SetVersion([3]uint32{14, 1, 0}))
	abi, _ = n.ABI()
	require.Equal(t, ABIFreeBSD, abi)
	version, _ = n.Version()
	require.Equal(t, [3]uint32{14, 1, 0}, version)

	short := mustNew(t, OwnerGNU, NTGNUABITag, make([]byte, 8)).(*ABITag)
	_, err = short.Version()
	require.ErrorIs(t, err, errs.ErrOutOfBounds)
	require.ErrorIs(t, short.SetVersion([3]uint32{1, 2, 3}), errs.ErrOutOfBounds)
	require.Equal(t, make([]byte, 8), short.Description())

	require.Equal(t, "ABI(42)", ABI(42).String())
}

func TestHWCap(t *testing.T) {
	desc := make([]byte, 8)
	binary.LittleEndian.PutUint32(desc[0:], 2)
	binary.LittleEndian.PutUint32(desc[4:], 1<<3)
	desc = append(desc, 3)
	desc = append(desc, "sse2\x00"...)
	desc = append(desc, 5)
	desc = append(desc, "avx\x00"...)

	n := mustNew(t, OwnerGNU, NTGNUHWCap, desc).(*HWCap)

	count, err := n.Count()
	require.NoError(t, err)
	require.Equal(t, uint32(2), count)

	caps, err := n.Capabilities()
	require.NoError(t, err)
	require.Equal(t, []HWCapEntry{{Bit: 3, Name: "sse2"}, {Bit: 5, Name: "avx"}}, caps)
	require.Contains(t, n.String(), "sse2 (bit 3, on)")
	require.Contains(t, n.String(), "avx (bit 5, off)")

	binary.LittleEndian.PutUint32(desc[0:], 9)
	broken := mustNew(t, OwnerGNU, NTGNUHWCap, desc).(*HWCap)
	_, err = broken.Capabilities()
	require.ErrorIs(t, err, errs.ErrOutOfBounds)
}

func TestGoldAndGoBuildID(t *testing.T) {
	gold := mustNew(t, OwnerGNU, NTGNUGoldVersion, []byte("gold 1.16\x00\x00\x00")).(*GoldVersion)
	v, err := gold.Version()
	require.NoError(t, err)
	require.Equal(t, "gold 1.16", v)

	goid := mustNew(t, OwnerGo, NTGoBuildID, []byte("xyz/abc")).(*GoBuildID)
	id, err := goid.ID()
	require.NoError(t, err)
	require.Equal(t, "xyz/abc", id)
	require.Contains(t, goid.String(), "Go build ID: xyz/abc")

	empty := mustNew(t, OwnerGo, NTGoBuildID, nil).(*GoBuildID)
	_, err = empty.ID()
	require.ErrorIs(t, err, errs.ErrOutOfBounds)
}

func property(order binary.ByteOrder, typ PropertyType, data []byte, align int) []byte {
	out := make([]byte, 8)
	order.PutUint32(out[0:], uint32(typ))
	order.PutUint32(out[4:], uint32(len(data)))
	out = append(out, data...)
	for len(out)%align != 0 {
		out = append(out, 0)
	}

	return out
}

func TestGNUProperty(t *testing.T) {
	le := binary.LittleEndian

	t.Run("aarch64 64-bit", func(t *testing.T) {
		bits := make([]byte, 4)
		le.PutUint32(bits, AArch64FeatureBTI|AArch64FeaturePAC)
		desc := property(le, PropertyAArch64Feature1And, bits, 8)

		n := mustNew(t, OwnerGNU, NTGNUPropertyType0, desc,
			WithClass(format.Class64), WithAlignment(8)).(*GNUProperty)

		props, err := n.Properties()
		require.NoError(t, err)
		require.Len(t, props, 1)
		require.Equal(t, PropertyAArch64Feature1And, props[0].Type)

		features, ok := n.AArch64Features()
		require.True(t, ok)
		require.Equal(t, AArch64FeatureBTI|AArch64FeaturePAC, features)
		require.Equal(t, []string{"BTI", "PAC"}, n.FeatureNames())

		_, ok = n.X86Features()
		require.False(t, ok)
		require.Contains(t, n.String(), "AARCH64_FEATURE_1_AND")
	})

	t.Run("x86 32-bit with stack size", func(t *testing.T) {
		bits := make([]byte, 4)
		le.PutUint32(bits, X86FeatureIBT|X86FeatureSHSTK)
		stack := make([]byte, 4)
		le.PutUint32(stack, 0x800000)

		desc := property(le, PropertyStackSize, stack, 4)
		desc = append(desc, property(le, PropertyX86Feature1And, bits, 4)...)
		desc = append(desc, property(le, PropertyX86ISA1Needed, []byte{1, 0, 0, 0}, 4)...)

		n := mustNew(t, OwnerGNU, NTGNUPropertyType0, desc, WithClass(format.Class32)).(*GNUProperty)

		props, err := n.Properties()
		require.NoError(t, err)
		require.Len(t, props, 3)

		size, ok := n.StackSize()
		require.True(t, ok)
		require.Equal(t, uint64(0x800000), size)

		features, ok := n.X86Features()
		require.True(t, ok)
		require.Equal(t, X86FeatureIBT|X86FeatureSHSTK, features)
		require.Equal(t, []string{"IBT", "SHSTK"}, n.FeatureNames())

		_, ok = n.Find(PropertyNoCopyOnProtected)
		require.False(t, ok)
	})

	t.Run("truncated entry", func(t *testing.T) {
		desc := make([]byte, 8)
		le.PutUint32(desc[0:], uint32(PropertyX86Feature1And))
		le.PutUint32(desc[4:], 4)

		n := mustNew(t, OwnerGNU, NTGNUPropertyType0, desc).(*GNUProperty)
		_, err := n.Properties()
		require.ErrorIs(t, err, errs.ErrOutOfBounds)
	})

	require.Equal(t, "PROPERTY(0x99)", PropertyType(0x99).String())
}

func TestAndroidIdent(t *testing.T) {
	desc := make([]byte, 132)
	binary.LittleEndian.PutUint32(desc, 30)
	copy(desc[4:], "r25c")
	copy(desc[68:], "8775105")

	n := mustNew(t, OwnerAndroid, NTAndroidIdent, desc).(*AndroidIdent)

	sdk, err := n.SDKVersion()
	require.NoError(t, err)
	require.Equal(t, uint32(30), sdk)

	ndk, err := n.NDKVersion()
	require.NoError(t, err)
	require.Equal(t, "r25c", ndk)

	build, err := n.NDKBuildNumber()
	require.NoError(t, err)
	require.Equal(t, "8775105", build)

	require.NoError(t, n.SetSDKVersion(33))
	require.NoError(t, n.SetNDKVersion("r26"))
	require.NoError(t, n.SetNDKBuildNumber("10909125"))

	sdk, _ = n.SDKVersion()
	ndk, _ = n.NDKVersion()
	build, _ = n.NDKBuildNumber()
	require.Equal(t, uint32(33), sdk)
	require.Equal(t, "r26", ndk)
	require.Equal(t, "10909125", build)
	require.Len(t, n.Description(), 132)

	long := make([]byte, 64)
	for i := range long {
		long[i] = 'x'
	}
	require.ErrorIs(t, n.SetNDKVersion(string(long)), errs.ErrFieldTooLong)
}
