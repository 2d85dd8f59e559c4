// Package endian provides byte order utilities for the blob header.
//
// This package combines the ByteOrder and AppendByteOrder interfaces of
// encoding/binary into a single EndianEngine interface, so header code can both
// read fixed-width fields and append them without a temporary buffer.
//
// The sequence payloads themselves are byte oriented and do not depend on the
// engine: GroupBinary stores deltas little-endian by definition and SimpleUnary
// has no multi-byte fields. Only the blob header fields follow the engine.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
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

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}
