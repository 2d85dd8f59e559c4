package compress

import (
	"fmt"

	"github.com/arloliu/varseq/errs"
	"github.com/arloliu/varseq/format"
)

// Compressor compresses an encoded sequence payload.
type Compressor interface {
	// Compress appends the compressed form of src to dst and returns the extended slice.
	//
	// Memory management:
	//   - src is not modified
	//   - dst may be reallocated; use the returned slice
	//   - Implementations may reuse internal state across calls
	Compress(dst, src []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
type Decompressor interface {
	// Decompress decompresses src into a new slice of exactly rawLen bytes.
	//
	// rawLen is the payload length recorded before compression. It bounds the
	// allocation and is verified against the decompressed size.
	//
	// Returns:
	//   - []byte: Decompressed payload owned by the caller
	//   - error: Decompression error, or errs.ErrPayloadLengthMismatch
	Decompress(src []byte, rawLen int) ([]byte, error)
}

// Codec combines compression and decompression of one algorithm.
//
// All built-in codecs are stateless values and safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
	// Type returns the compression type recorded in the blob header.
	Type() format.CompressionType
}

// CreateCodec creates a Codec for the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: errs.ErrUnsupportedCompression for unknown types
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the shared built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

// checkRawLength verifies that a decompressed payload has the recorded length.
func checkRawLength(out []byte, rawLen int) ([]byte, error) {
	if len(out) != rawLen {
		return nil, fmt.Errorf("%w: decompressed %d bytes, expected %d", errs.ErrPayloadLengthMismatch, len(out), rawLen)
	}

	return out, nil
}
