// Package varseq encodes strictly increasing sequences of uint32 values, such
// as posting lists, into compact byte buffers that decode with a single forward scan.
//
// Two encodings are provided:
//
//   - SimpleUnary: each value takes 1 to 5 bytes, the gap to the previous value
//     minus one split into base-128 digits with a high-bit continuation flag.
//   - GroupBinary: values are packed four at a time behind a descriptor byte
//     holding each gap's byte width, and decoded with one 16-byte shuffle per group
//     (PSHUFB on amd64 with SSSE3, a portable fallback elsewhere).
//
// # Core Features
//
//   - Fail-fast ordering checks on push, before any buffer mutation
//   - Zero-allocation iteration through iter.Seq
//   - Immutable sealed sequences, safe for concurrent readers
//   - Self-describing checksummed blobs with optional Zstd, S2 or LZ4 compression
//   - Conversion from and to roaring bitmaps
//
// # Basic Usage
//
//	seq, err := varseq.Encode(format.CodecGroupBinary, []uint32{3, 9, 27, 81})
//	if err != nil {
//	    return err
//	}
//	for v := range seq.All() {
//	    fmt.Println(v)
//	}
//
// Incremental encoding with a factory:
//
//	f := varseq.NewSimpleUnaryFactory()
//	for _, id := range ids {
//	    if err := f.Push(id); err != nil {
//	        return err // errs.ErrOrderingViolation
//	    }
//	}
//	seq := f.Finalize()
//
// Persisting a sequence:
//
//	data, err := varseq.Marshal(seq, blob.WithCompression(format.CompressionZstd))
//	...
//	restored, err := varseq.Unmarshal(data)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the encoding and
// blob packages. For iterators over whole groups or custom descriptor tables,
// use the encoding package directly.
package varseq

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/arloliu/varseq/blob"
	"github.com/arloliu/varseq/encoding"
	"github.com/arloliu/varseq/errs"
	"github.com/arloliu/varseq/format"
	"github.com/arloliu/varseq/internal/pool"
)

// NewSimpleUnaryFactory creates an empty SimpleUnary factory.
func NewSimpleUnaryFactory() *encoding.SimpleUnaryFactory {
	return encoding.NewSimpleUnaryFactory()
}

// NewGroupBinaryFactory creates an empty GroupBinary factory.
func NewGroupBinaryFactory() *encoding.GroupBinaryFactory {
	return encoding.NewGroupBinaryFactory()
}

// NewFactory creates an empty factory for the given codec.
//
// Returns:
//   - encoding.Factory: The new factory
//   - error: errs.ErrUnsupportedCodec for unknown codecs
func NewFactory(codec format.CodecType) (encoding.Factory, error) {
	switch codec {
	case format.CodecSimpleUnary:
		return encoding.NewSimpleUnaryFactory(), nil
	case format.CodecGroupBinary:
		return encoding.NewGroupBinaryFactory(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCodec, codec)
	}
}

// Encode encodes values with the given codec.
//
// Repeats of the previous value are skipped with PushIfNotTop, so a sorted
// slice with duplicates encodes as its distinct values. For SimpleUnary a
// leading 0 is skipped as well.
//
// Parameters:
//   - codec: format.CodecSimpleUnary or format.CodecGroupBinary
//   - values: Non-decreasing values
//
// Returns:
//   - encoding.Sequence: The sealed sequence
//   - error: errs.ErrUnsupportedCodec, or errs.ErrOrderingViolation for unsorted input
//
// Example:
//
//	seq, err := varseq.Encode(format.CodecSimpleUnary, []uint32{200, 17003})
func Encode(codec format.CodecType, values []uint32) (encoding.Sequence, error) {
	f, err := NewFactory(codec)
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		if err := f.PushIfNotTop(v); err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
	}

	return f.Seal(), nil
}

// Decode returns every value of seq in a new slice.
func Decode(seq encoding.Sequence) []uint32 {
	return seq.AppendTo(make([]uint32, 0, seq.Len()))
}

// FromBitmap encodes the members of bm in ascending order.
//
// Returns:
//   - encoding.Sequence: The sealed sequence holding bm's members
//   - error: errs.ErrUnsupportedCodec, or errs.ErrValueNotRepresentable when
//     bm contains 0 and codec is SimpleUnary
func FromBitmap(codec format.CodecType, bm *roaring.Bitmap) (encoding.Sequence, error) {
	if codec == format.CodecSimpleUnary && bm.Contains(0) {
		return nil, fmt.Errorf("%w: SimpleUnary cannot store 0", errs.ErrValueNotRepresentable)
	}

	f, err := NewFactory(codec)
	if err != nil {
		return nil, err
	}

	it := bm.Iterator()
	for it.HasNext() {
		if err := f.Push(it.Next()); err != nil {
			return nil, err
		}
	}

	return f.Seal(), nil
}

// ToBitmap decodes seq into a new roaring bitmap.
func ToBitmap(seq encoding.Sequence) *roaring.Bitmap {
	values, cleanup := pool.GetUint32Slice(seq.Len())
	defer cleanup()

	values = seq.AppendTo(values)

	bm := roaring.New()
	bm.AddMany(values)
	bm.RunOptimize()

	return bm
}

// Marshal serializes seq into a checksummed blob; see blob.Marshal.
func Marshal(seq encoding.Sequence, opts ...blob.Option) ([]byte, error) {
	return blob.Marshal(seq, opts...)
}

// Unmarshal validates a blob and returns the sequence it holds; see blob.Unmarshal.
func Unmarshal(data []byte, opts ...blob.Option) (encoding.Sequence, error) {
	return blob.Unmarshal(data, opts...)
}
