// Package compress provides the payload codecs of the sequence blob container.
//
// A sealed SimpleUnary or GroupBinary payload is already a dense delta encoding.
// Compression is an optional second stage applied by the blob package before the
// payload is checksummed and stored.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): payload stored as is, the default
//   - Zstd (format.CompressionZstd): best ratio, moderate speed
//   - S2 (format.CompressionS2): balanced speed and ratio
//   - LZ4 (format.CompressionLZ4): fastest decompression
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(dst, src []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(src []byte, rawLen int) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	    Type() format.CompressionType
//	}
//
// Compress appends to dst so the blob writer can compress straight into its
// pooled output buffer after the header. Decompress receives the raw payload
// length recorded in the header, allocates the output exactly once and rejects
// streams that decode to a different length.
//
// # Zstd Build Variants
//
// The default build uses github.com/klauspost/compress/zstd with pooled encoders
// and decoders. Building with cgo enabled and the gozstd tag switches to
// github.com/valyala/gozstd:
//
//	go build -tags gozstd ./...
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionS2)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(nil, seq.Bytes())
//	...
//	payload, err := codec.Decompress(compressed, seq.Size())
package compress
