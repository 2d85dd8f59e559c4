package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/varseq/errs"
	"github.com/arloliu/varseq/format"
)

// S2Compressor compresses payloads with S2, a faster Snappy extension.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Type returns format.CompressionS2.
func (c S2Compressor) Type() format.CompressionType {
	return format.CompressionS2
}

// Compress appends the S2 block encoding of src to dst.
func (c S2Compressor) Compress(dst, src []byte) ([]byte, error) {
	if len(src) == 0 {
		return dst, nil
	}

	bound := s2.MaxEncodedLen(len(src))
	if bound < 0 {
		return nil, fmt.Errorf("s2 compression: payload of %d bytes is too large", len(src))
	}

	n := len(dst)
	if cap(dst)-n < bound {
		grown := make([]byte, n, n+bound)
		copy(grown, dst)
		dst = grown
	}

	encoded := s2.Encode(dst[n:n+bound], src)

	return dst[:n+len(encoded)], nil
}

// Decompress decodes an S2 block of rawLen bytes.
func (c S2Compressor) Decompress(src []byte, rawLen int) ([]byte, error) {
	if len(src) == 0 {
		return checkRawLength(nil, rawLen)
	}

	decodedLen, err := s2.DecodedLen(src)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if decodedLen != rawLen {
		return nil, fmt.Errorf("%w: s2 block holds %d bytes, expected %d", errs.ErrPayloadLengthMismatch, decodedLen, rawLen)
	}

	out, err := s2.Decode(make([]byte, rawLen), src)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return checkRawLength(out, rawLen)
}
