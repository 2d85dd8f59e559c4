package compress

import "github.com/arloliu/varseq/format"

// NoOpCompressor stores payloads uncompressed.
//
// SimpleUnary and GroupBinary payloads are already dense; NoOpCompressor is the
// default and is usually the right choice for short sequences.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Type returns format.CompressionNone.
func (c NoOpCompressor) Type() format.CompressionType {
	return format.CompressionNone
}

// Compress appends src to dst unchanged.
func (c NoOpCompressor) Compress(dst, src []byte) ([]byte, error) {
	return append(dst, src...), nil
}

// Decompress returns src itself without copying.
//
// The returned slice shares memory with src.
func (c NoOpCompressor) Decompress(src []byte, rawLen int) ([]byte, error) {
	return checkRawLength(src, rawLen)
}
