package compress

import "testing"

var benchBytesSink []byte

func BenchmarkAllCodecs_Compress(b *testing.B) {
	data := groupLikePayload(64 * 1024)

	for name, codec := range getAllCodecs() {
		b.Run(name, func(b *testing.B) {
			dst := make([]byte, 0, len(data)*2)
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for b.Loop() {
				benchBytesSink, _ = codec.Compress(dst[:0], data)
			}
		})
	}
}

func BenchmarkAllCodecs_Decompress(b *testing.B) {
	data := groupLikePayload(64 * 1024)

	for name, codec := range getAllCodecs() {
		compressed, err := codec.Compress(nil, data)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for b.Loop() {
				benchBytesSink, _ = codec.Decompress(compressed, len(data))
			}
		})
	}
}
