// Package endian provides byte order utilities for note encoding and decoding.
//
// ELF notes are stored in the byte order of the containing file, which is not
// necessarily the host order. This package combines the ByteOrder and
// AppendByteOrder interfaces of encoding/binary into a single EndianEngine so
// readers and writers can carry one value for both directions.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	v := engine.Uint32(buf[0:4])
//	buf = engine.AppendUint32(buf, v)
//
// Engines can also be selected from the ELF identification byte:
//
//	engine, err := endian.FromELFData(ident[elf.EI_DATA])
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"

	"github.com/arloliu/elfnote/errs"
)

// ELF EI_DATA values.
const (
	ELFDataNone = 0 // ELFDataNone is an invalid data encoding.
	ELFData2LSB = 1 // ELFData2LSB is two's complement, little-endian.
	ELFData2MSB = 2 // ELFData2MSB is two's complement, big-endian.
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsBigEndian reports whether engine encodes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}

// FromELFData returns the engine for an ELF EI_DATA identification byte.
func FromELFData(data byte) (EndianEngine, error) {
	switch data {
	case ELFData2LSB:
		return binary.LittleEndian, nil
	case ELFData2MSB:
		return binary.BigEndian, nil
	default:
		return nil, errs.ErrInvalidByteOrder
	}
}

// Name returns "big" for big-endian engines and "little" otherwise.
func Name(engine EndianEngine) string {
	if IsBigEndian(engine) {
		return "big"
	}

	return "little"
}
