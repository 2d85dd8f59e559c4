// Package simd provides the 16-byte shuffle kernel used by the GroupBinary decoder.
//
// On amd64 with SSSE3 the kernel is a single PSHUFB instruction; every other
// platform, or a build with the purego tag, uses ShuffleGeneric.
package simd

import "encoding/binary"

// Shuffle rearranges the first 16 bytes of src according to mask and returns
// the result as four little-endian 32-bit lanes.
//
// Output byte i is src[mask[i]&0x0F], or zero when the high bit of mask[i] is set.
// This mirrors the semantics of the x86 PSHUFB instruction.
//
// Parameters:
//   - src: Source bytes, must hold at least 16 bytes
//   - mask: Shuffle control bytes
//
// Returns:
//   - [4]uint32: The shuffled bytes composed into four lanes
//
// Shuffle panics if len(src) < 16.
func Shuffle(src []byte, mask *[16]byte) [4]uint32 {
	_ = src[15]

	return shuffle(src, mask)
}

// ShuffleGeneric is the portable implementation of Shuffle.
//
// It panics if len(src) < 16.
func ShuffleGeneric(src []byte, mask *[16]byte) [4]uint32 {
	_ = src[15]

	var out [16]byte
	for i, idx := range mask {
		if idx&0x80 == 0 {
			out[i] = src[idx&0x0F]
		}
	}

	return [4]uint32{
		binary.LittleEndian.Uint32(out[0:4]),
		binary.LittleEndian.Uint32(out[4:8]),
		binary.LittleEndian.Uint32(out[8:12]),
		binary.LittleEndian.Uint32(out[12:16]),
	}
}

// HasSSSE3 reports whether Shuffle runs on the SSSE3 assembly kernel.
func HasSSSE3() bool {
	return hasSSSE3
}
