package compress

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/varseq/format"
)

// lz4CompressorPool pools lz4.Compressor instances, which keep a reusable hash table.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses payloads with LZ4 block compression.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Type returns format.CompressionLZ4.
func (c LZ4Compressor) Type() format.CompressionType {
	return format.CompressionLZ4
}

// Compress appends the LZ4 block encoding of src to dst.
//
// Uses a pooled lz4.Compressor.
func (c LZ4Compressor) Compress(dst, src []byte) ([]byte, error) {
	if len(src) == 0 {
		return dst, nil
	}

	bound := lz4.CompressBlockBound(len(src))
	n := len(dst)
	if cap(dst)-n < bound {
		grown := make([]byte, n, n+bound)
		copy(grown, dst)
		dst = grown
	}

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	written, err := lc.CompressBlock(src, dst[n:n+bound])
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:n+written], nil
}

// Decompress decodes an LZ4 block of rawLen bytes.
//
// The recorded raw length sizes the output buffer exactly, so no adaptive
// resizing is needed.
func (c LZ4Compressor) Decompress(src []byte, rawLen int) ([]byte, error) {
	if len(src) == 0 {
		return checkRawLength(nil, rawLen)
	}

	out := make([]byte, rawLen)
	n, err := lz4.UncompressBlock(src, out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}

	return checkRawLength(out[:n], rawLen)
}
