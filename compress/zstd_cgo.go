//go:build cgo && gozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

const zstdCompressionLevel = 3

// Compress appends the zstd frame of src to dst using libzstd.
func (c ZstdCompressor) Compress(dst, src []byte) ([]byte, error) {
	return gozstd.CompressLevel(dst, src, zstdCompressionLevel), nil
}

// Decompress decodes a zstd frame of rawLen bytes using libzstd.
func (c ZstdCompressor) Decompress(src []byte, rawLen int) ([]byte, error) {
	if len(src) == 0 {
		return checkRawLength(nil, rawLen)
	}

	out, err := gozstd.Decompress(make([]byte, 0, rawLen), src)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return checkRawLength(out, rawLen)
}
