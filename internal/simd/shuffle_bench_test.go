package simd

import "testing"

var benchSink [4]uint32

func BenchmarkShuffle(b *testing.B) {
	src := sequentialSource()
	mask := groupMask(0b11_10_01_00)

	b.Run("dispatch", func(b *testing.B) {
		for b.Loop() {
			benchSink = Shuffle(src, &mask)
		}
	})

	b.Run("generic", func(b *testing.B) {
		for b.Loop() {
			benchSink = ShuffleGeneric(src, &mask)
		}
	})
}
