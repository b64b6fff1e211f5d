package note

import (
	"fmt"
	"strings"
)

const (
	androidSDKOffset      = 0
	androidNDKOffset      = 4
	androidNDKBuildOffset = androidNDKOffset + androidFieldSize
	androidFieldSize      = 64
)

// AndroidIdent is the NT_ANDROID_TYPE_IDENT note stamped by the NDK into
// .note.android.ident. Layout: 32-bit SDK version, a 64-byte NDK version string
// and a 64-byte NDK build number string.
type AndroidIdent struct {
	Base
}

var _ Note = (*AndroidIdent)(nil)

func (n *AndroidIdent) Clone() Note { return &AndroidIdent{Base: n.clone()} }

// SDKVersion returns the target Android API level.
func (n *AndroidIdent) SDKVersion() (uint32, error) {
	return readAt[uint32](&n.Base, androidSDKOffset)
}

// SetSDKVersion overwrites the target API level in place.
func (n *AndroidIdent) SetSDKVersion(v uint32) error {
	return writeAt(&n.Base, androidSDKOffset, v)
}

// NDKVersion returns the NDK version string, e.g. "r25c".
func (n *AndroidIdent) NDKVersion() (string, error) {
	return readStringAt(&n.Base, androidNDKOffset, androidFieldSize)
}

// SetNDKVersion overwrites the NDK version field.
func (n *AndroidIdent) SetNDKVersion(v string) error {
	return writeFixedString(&n.Base, androidNDKOffset, androidFieldSize, v)
}

// NDKBuildNumber returns the NDK build number string.
func (n *AndroidIdent) NDKBuildNumber() (string, error) {
	return readStringAt(&n.Base, androidNDKBuildOffset, androidFieldSize)
}

// SetNDKBuildNumber overwrites the NDK build number field.
func (n *AndroidIdent) SetNDKBuildNumber(v string) error {
	return writeFixedString(&n.Base, androidNDKBuildOffset, androidFieldSize, v)
}

func (n *AndroidIdent) String() string {
	var sb strings.Builder
	n.dump(&sb)

	if sdk, err := n.SDKVersion(); err == nil {
		fmt.Fprintf(&sb, "SDK:         %d\n", sdk)
	}
	if ndk, err := n.NDKVersion(); err == nil {
		fmt.Fprintf(&sb, "NDK:         %s\n", ndk)
	}
	if build, err := n.NDKBuildNumber(); err == nil {
		fmt.Fprintf(&sb, "NDK build:   %s\n", build)
	}

	return sb.String()
}
