package encoding

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/arloliu/varseq/errs"
	"github.com/arloliu/varseq/format"
	"github.com/arloliu/varseq/internal/pool"
)

const (
	// SimpleUnaryMaxEntryLen is the maximum encoded size of one SimpleUnary entry.
	SimpleUnaryMaxEntryLen = 5

	simpleUnaryMaxEscapes = SimpleUnaryMaxEntryLen - 1
)

// SimpleUnaryFactory encodes a strictly increasing sequence of uint32 values
// using the SimpleUnary format.
//
// Each value is stored as the gap to the previous value minus one, split into
// base-128 digits. Every digit except the last carries the high bit, and each
// continuation digit is biased so that the encoding of a given gap is unique:
//   - Gaps 1-128: 1 byte
//   - Gaps 129-16512: 2 bytes
//   - Gaps up to 2^32-1: at most 5 bytes
//
// Since the first gap is taken from 0, the value 0 cannot be stored: pushing it
// into an empty factory is a no-op like any other repeat of the top.
//
// Internal state:
//   - buf: Output buffer accumulating encoded entries
//   - top: Last pushed value, the base of the next gap
//   - count: Number of encoded values
type SimpleUnaryFactory struct {
	buf   *pool.ByteBuffer
	top   uint32
	count int
}

var _ Factory = (*SimpleUnaryFactory)(nil)

// NewSimpleUnaryFactory creates an empty SimpleUnary factory.
//
// Returns:
//   - *SimpleUnaryFactory: A new factory ready for pushes
//
// Example:
//
//	f := NewSimpleUnaryFactory()
//	_ = f.Push(200)
//	_ = f.Push(17003)
//	seq := f.Finalize() // payload: C7 00 A2 82 00
func NewSimpleUnaryFactory() *SimpleUnaryFactory {
	return &SimpleUnaryFactory{
		buf: pool.NewByteBuffer(pool.SequenceBufferDefaultSize),
	}
}

// Push encodes x.
//
// Pushing the current top again is a silent no-op. Pushing a value smaller than
// the top returns errs.ErrOrderingViolation and leaves the factory unchanged.
//
// Parameters:
//   - x: Value to encode, must not be smaller than Top()
//
// Returns:
//   - error: errs.ErrOrderingViolation if x < Top()
func (f *SimpleUnaryFactory) Push(x uint32) error {
	if x == f.top {
		return nil
	}

	if x < f.top {
		return fmt.Errorf("%w: %d after %d", errs.ErrOrderingViolation, x, f.top)
	}

	f.buf.Grow(SimpleUnaryMaxEntryLen)
	f.buf.B = appendSimpleUnaryEntry(f.buf.B, x-f.top-1)
	f.top = x
	f.count++

	return nil
}

// PushIfNotTop encodes x unless it equals the top.
//
// SimpleUnary already ignores repeats of the top, so this is the same as Push.
func (f *SimpleUnaryFactory) PushIfNotTop(x uint32) error {
	return f.Push(x)
}

// PushSlice pushes values in order and stops at the first error.
func (f *SimpleUnaryFactory) PushSlice(values []uint32) error {
	f.buf.Grow(len(values))

	for _, v := range values {
		if err := f.Push(v); err != nil {
			return err
		}
	}

	return nil
}

// Top returns the last pushed value, or 0 when nothing was pushed.
func (f *SimpleUnaryFactory) Top() uint32 {
	return f.top
}

// Len returns the number of encoded values.
func (f *SimpleUnaryFactory) Len() int {
	return f.count
}

// Size returns the encoded size in bytes.
func (f *SimpleUnaryFactory) Size() int {
	return f.buf.Len()
}

// Reset discards every pushed value and keeps the buffer capacity.
func (f *SimpleUnaryFactory) Reset() {
	f.buf.Reset()
	f.top = 0
	f.count = 0
}

// Finalize transfers the encoded buffer into a sealed sequence.
//
// The factory is left empty with a top of 0, so a second Finalize without
// further pushes yields an empty sequence.
//
// Returns:
//   - *SimpleUnary: The sealed sequence owning the encoded buffer
func (f *SimpleUnaryFactory) Finalize() *SimpleUnary {
	seq := &SimpleUnary{
		data:  f.buf.Detach(),
		count: f.count,
	}
	f.top = 0
	f.count = 0

	return seq
}

// Seal implements Factory.
func (f *SimpleUnaryFactory) Seal() Sequence {
	return f.Finalize()
}

// appendSimpleUnaryEntry appends the entry of a biased gap (gap - 1).
func appendSimpleUnaryEntry(dst []byte, delta uint32) []byte {
	for range simpleUnaryMaxEscapes {
		if delta < 128 {
			break
		}
		dst = append(dst, byte(128+delta%128))
		delta = delta/128 - 1
	}

	// four escapes always leave delta below 128 for any uint32 input
	return append(dst, byte(delta))
}

// decodeSimpleUnaryEntry decodes the entry at the start of data.
//
// It returns the gap to the previous value and the entry length in bytes.
// n is 0 when data ends before the entry is complete. The gap is returned
// as uint64 so that malformed entries can be detected by the caller.
func decodeSimpleUnaryEntry(data []byte) (gap uint64, n int) {
	p := uint64(1)
	for n < len(data) {
		b := uint64(data[n])
		if b < 128 || n == simpleUnaryMaxEscapes {
			return gap + (b+1)*p, n + 1
		}
		gap += (b - 127) * p
		p *= 128
		n++
	}

	return 0, 0
}

// SimpleUnary is a sealed SimpleUnary sequence.
//
// It is immutable and safe for concurrent use.
type SimpleUnary struct {
	data  []byte
	count int
}

var _ Sequence = (*SimpleUnary)(nil)

// LoadSimpleUnary wraps an externally produced SimpleUnary payload.
//
// The payload is validated before it is accepted: it must contain exactly count
// entries, no entry may be longer than 5 bytes, and the decoded values must fit
// in uint32. data is not copied; the caller must not modify it afterwards.
//
// Parameters:
//   - data: Encoded SimpleUnary payload
//   - count: Number of values encoded in data
//
// Returns:
//   - *SimpleUnary: The sealed sequence backed by data
//   - error: errs.ErrBufferExhausted if data is truncated, errs.ErrMalformedSequence otherwise
func LoadSimpleUnary(data []byte, count int) (*SimpleUnary, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative count %d", errs.ErrMalformedSequence, count)
	}

	var last uint64
	pos := 0
	for i := range count {
		gap, n := decodeSimpleUnaryEntry(data[pos:])
		if n == 0 {
			return nil, fmt.Errorf("%w: entry %d of %d at offset %d", errs.ErrBufferExhausted, i, count, pos)
		}

		last += gap
		if last > math.MaxUint32 {
			return nil, fmt.Errorf("%w: entry %d at offset %d exceeds uint32", errs.ErrMalformedSequence, i, pos)
		}
		pos += n
	}

	if pos != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes after %d entries", errs.ErrMalformedSequence, len(data)-pos, count)
	}

	return &SimpleUnary{data: data, count: count}, nil
}

// Codec returns format.CodecSimpleUnary.
func (s *SimpleUnary) Codec() format.CodecType {
	return format.CodecSimpleUnary
}

// Len returns the number of encoded values.
func (s *SimpleUnary) Len() int {
	return s.count
}

// Size returns the encoded size in bytes.
func (s *SimpleUnary) Size() int {
	return len(s.data)
}

// Bytes returns the encoded payload. The caller must not modify it.
func (s *SimpleUnary) Bytes() []byte {
	return s.data
}

// All returns an iterator over the decoded values.
//
// The iterator yields at most Len() values and stops early if the payload ends
// in the middle of an entry.
func (s *SimpleUnary) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		data := s.data
		var last uint32
		for range s.count {
			gap, n := decodeSimpleUnaryEntry(data)
			if n == 0 {
				return
			}

			last += uint32(gap) //nolint:gosec
			data = data[n:]

			if !yield(last) {
				return
			}
		}
	}
}

// At returns the value at index by scanning from the start of the payload.
func (s *SimpleUnary) At(index int) (uint32, bool) {
	if index < 0 || index >= s.count {
		return 0, false
	}

	i := 0
	for v := range s.All() {
		if i == index {
			return v, true
		}
		i++
	}

	return 0, false
}

// AppendTo appends every decoded value to dst.
func (s *SimpleUnary) AppendTo(dst []uint32) []uint32 {
	dst = slices.Grow(dst, s.count)
	for v := range s.All() {
		dst = append(dst, v)
	}

	return dst
}
