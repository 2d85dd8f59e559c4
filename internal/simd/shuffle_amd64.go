//go:build amd64 && !purego

package simd

import "golang.org/x/sys/cpu"

var hasSSSE3 = cpu.X86.HasSSSE3

func shuffle(src []byte, mask *[16]byte) [4]uint32 {
	if !hasSSSE3 {
		return ShuffleGeneric(src, mask)
	}

	var out [4]uint32
	shuffleSSSE3(&src[0], mask, &out)

	return out
}

// shuffleSSSE3 loads 16 bytes from src, applies PSHUFB with mask and stores the result to dst.
// The caller guarantees that src points to at least 16 readable bytes.
//
//go:noescape
func shuffleSSSE3(src *byte, mask *[16]byte, dst *[4]uint32)
