//go:build !amd64 || purego

package simd

const hasSSSE3 = false

func shuffle(src []byte, mask *[16]byte) [4]uint32 {
	return ShuffleGeneric(src, mask)
}
