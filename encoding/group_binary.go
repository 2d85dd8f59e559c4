package encoding

import (
	"encoding/binary"
	"fmt"
	"iter"
	"math"
	"math/bits"
	"slices"

	"github.com/arloliu/varseq/errs"
	"github.com/arloliu/varseq/format"
	"github.com/arloliu/varseq/internal/pool"
	"github.com/arloliu/varseq/internal/simd"
)

const (
	// GroupSize is the number of values sharing one descriptor byte.
	GroupSize = 4

	// GroupMaxLen is the maximum encoded size of a group: one descriptor and four 4-byte gaps.
	GroupMaxLen = 1 + 4*GroupSize

	// groupGuard is the distance from the buffer end below which a group is
	// decoded by the scalar path, one descriptor plus one 16-byte load.
	groupGuard = 17
)

// GroupBinaryFactory encodes a non-decreasing sequence of uint32 values using
// the GroupBinary format.
//
// Values are stored as gaps to the previous value in groups of four. The gap
// width is the number of significant little-endian bytes:
//   - Gaps 0-255: 1 byte
//   - Gaps 256-65535: 2 bytes
//   - Gaps 65536-16777215: 3 bytes
//   - Larger gaps: 4 bytes
//
// Unlike SimpleUnary a gap of 0 is legal, so Push stores repeated values and 0
// can be the first value. Use PushIfNotTop to skip repeats.
//
// Internal state:
//   - buf: Output buffer accumulating groups
//   - top: Last pushed value, the base of the next gap
//   - count: Number of encoded values
//   - slot: Slot index (0-3) of the next value inside the current group
//   - groupLen: Payload bytes written to the current group so far
//   - groups: Number of groups started
type GroupBinaryFactory struct {
	buf      *pool.ByteBuffer
	top      uint32
	count    int
	slot     int
	groupLen int
	groups   int
}

var _ Factory = (*GroupBinaryFactory)(nil)

// NewGroupBinaryFactory creates an empty GroupBinary factory.
//
// Returns:
//   - *GroupBinaryFactory: A new factory ready for pushes
//
// Example:
//
//	f := NewGroupBinaryFactory()
//	_ = f.PushSlice([]uint32{1, 2, 3, 4, 300})
//	seq := f.Finalize() // payload: 00 01 01 01 01 | 01 28 01
func NewGroupBinaryFactory() *GroupBinaryFactory {
	return &GroupBinaryFactory{
		buf: pool.NewByteBuffer(pool.SequenceBufferDefaultSize),
	}
}

// Push encodes x.
//
// Parameters:
//   - x: Value to encode, must not be smaller than Top()
//
// Returns:
//   - error: errs.ErrOrderingViolation if x < Top(), errs.ErrCountOverflow
//     once the sequence holds math.MaxUint32 values
func (f *GroupBinaryFactory) Push(x uint32) error {
	if x < f.top {
		return fmt.Errorf("%w: %d after %d", errs.ErrOrderingViolation, x, f.top)
	}

	if uint64(f.count) >= math.MaxUint32 {
		return fmt.Errorf("%w: %d values", errs.ErrCountOverflow, f.count)
	}

	delta := x - f.top
	width := deltaWidth(delta)

	f.buf.Grow(1 + 4)
	if f.slot == 0 {
		f.buf.B = append(f.buf.B, 0)
		f.groupLen = 0
		f.groups++
	}

	descPos := len(f.buf.B) - 1 - f.groupLen
	f.buf.B[descPos] ^= byte(width-1) << (2 * f.slot) //nolint:gosec

	n := len(f.buf.B)
	f.buf.B = binary.LittleEndian.AppendUint32(f.buf.B, delta)[:n+width]

	f.groupLen += width
	f.slot = (f.slot + 1) % GroupSize
	f.top = x
	f.count++

	return nil
}

// PushIfNotTop encodes x unless a value was pushed and x equals it.
//
// A leading 0 is stored, since no value precedes it.
func (f *GroupBinaryFactory) PushIfNotTop(x uint32) error {
	if f.count > 0 && x == f.top {
		return nil
	}

	return f.Push(x)
}

// PushSlice pushes values in order and stops at the first error.
func (f *GroupBinaryFactory) PushSlice(values []uint32) error {
	f.buf.Grow(len(values) + len(values)/GroupSize + 1)

	for _, v := range values {
		if err := f.Push(v); err != nil {
			return err
		}
	}

	return nil
}

// Top returns the last pushed value, or 0 when nothing was pushed.
func (f *GroupBinaryFactory) Top() uint32 {
	return f.top
}

// Len returns the number of encoded values.
func (f *GroupBinaryFactory) Len() int {
	return f.count
}

// Size returns the encoded size in bytes.
func (f *GroupBinaryFactory) Size() int {
	return f.buf.Len()
}

// Groups returns the number of groups started so far.
func (f *GroupBinaryFactory) Groups() int {
	return f.groups
}

// Reset discards every pushed value and keeps the buffer capacity.
func (f *GroupBinaryFactory) Reset() {
	f.buf.Reset()
	f.resetState()
}

// Finalize transfers the encoded buffer into a sealed sequence.
//
// The factory is left empty, so a second Finalize without further pushes
// yields an empty sequence.
//
// Returns:
//   - *GroupBinary: The sealed sequence owning the encoded buffer
func (f *GroupBinaryFactory) Finalize() *GroupBinary {
	seq := &GroupBinary{
		data:  f.buf.Detach(),
		count: f.count,
	}
	f.resetState()

	return seq
}

// Seal implements Factory.
func (f *GroupBinaryFactory) Seal() Sequence {
	return f.Finalize()
}

func (f *GroupBinaryFactory) resetState() {
	f.top = 0
	f.count = 0
	f.slot = 0
	f.groupLen = 0
	f.groups = 0
}

// deltaWidth returns the number of little-endian bytes needed for delta, at least 1.
func deltaWidth(delta uint32) int {
	return max(1, (bits.Len32(delta)+7)/8)
}

// decodeGroupSafe decodes the slots of one group from src, the bytes following
// the descriptor, reading exactly SlotLength bytes per slot.
//
// It returns the raw gaps and the number of slots read before src ran out;
// the lanes of unread slots are zero.
func decodeGroupSafe(src []byte, desc byte) ([4]uint32, int) {
	var out [4]uint32
	off := 0
	for slot := range GroupSize {
		width := SlotLength(desc, slot)
		if off+width > len(src) {
			return out, slot
		}

		var v uint32
		for i := range width {
			v |= uint32(src[off+i]) << (8 * i)
		}
		out[slot] = v
		off += width
	}

	return out, GroupSize
}

// GroupBinary is a sealed GroupBinary sequence.
//
// It is immutable and safe for concurrent use.
type GroupBinary struct {
	data  []byte
	count int
}

var _ Sequence = (*GroupBinary)(nil)

// LoadGroupBinary wraps an externally produced GroupBinary payload.
//
// The payload is validated before it is accepted: walking the groups must
// reach exactly the end of data after ceil(count/4) groups, the unused
// descriptor fields of a partial final group must be zero, and the decoded
// values must fit in uint32. data is not copied; the caller must not modify
// it afterwards.
//
// Parameters:
//   - data: Encoded GroupBinary payload
//   - count: Number of values encoded in data
//
// Returns:
//   - *GroupBinary: The sealed sequence backed by data
//   - error: errs.ErrBufferExhausted if data is truncated, errs.ErrMalformedSequence otherwise
func LoadGroupBinary(data []byte, count int) (*GroupBinary, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative count %d", errs.ErrMalformedSequence, count)
	}

	var last uint64
	pos := 0
	for remaining := count; remaining > 0; remaining -= GroupSize {
		if pos >= len(data) {
			return nil, fmt.Errorf("%w: missing descriptor at offset %d", errs.ErrBufferExhausted, pos)
		}

		desc := data[pos]
		slots := min(remaining, GroupSize)
		if slots < GroupSize && desc>>(2*slots) != 0 {
			return nil, fmt.Errorf("%w: descriptor %08b sets unused slots of the final group", errs.ErrMalformedSequence, desc)
		}

		length := 0
		for slot := range slots {
			length += SlotLength(desc, slot)
		}

		payload := data[pos+1:]
		if len(payload) < length {
			return nil, fmt.Errorf("%w: group at offset %d needs %d payload bytes, %d left",
				errs.ErrBufferExhausted, pos, length, len(payload))
		}

		gaps, _ := decodeGroupSafe(payload[:length], desc)
		for _, gap := range gaps[:slots] {
			last += uint64(gap)
		}
		if last > math.MaxUint32 {
			return nil, fmt.Errorf("%w: group at offset %d exceeds uint32", errs.ErrMalformedSequence, pos)
		}

		pos += 1 + length
	}

	if pos != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes after %d values", errs.ErrMalformedSequence, len(data)-pos, count)
	}

	return &GroupBinary{data: data, count: count}, nil
}

// Codec returns format.CodecGroupBinary.
func (s *GroupBinary) Codec() format.CodecType {
	return format.CodecGroupBinary
}

// Len returns the number of encoded values.
func (s *GroupBinary) Len() int {
	return s.count
}

// Size returns the encoded size in bytes.
func (s *GroupBinary) Size() int {
	return len(s.data)
}

// Bytes returns the encoded payload. The caller must not modify it.
func (s *GroupBinary) Bytes() []byte {
	return s.data
}

// Iter returns a group iterator positioned at the first group.
//
// A nil table selects DefaultDescriptorTable.
func (s *GroupBinary) Iter(table *DescriptorTable) *GroupIterator {
	if table == nil {
		table = DefaultDescriptorTable()
	}

	return &GroupIterator{
		data:      s.data,
		table:     table,
		remaining: s.count,
	}
}

// All returns an iterator over the decoded values using DefaultDescriptorTable.
func (s *GroupBinary) All() iter.Seq[uint32] {
	return s.AllWith(nil)
}

// AllWith returns an iterator over the decoded values using table.
//
// The iterator yields at most Len() values and stops early if the payload is truncated.
func (s *GroupBinary) AllWith(table *DescriptorTable) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.Iter(table)
		for {
			values, n, ok := it.Next()
			if !ok {
				return
			}

			for _, v := range values[:n] {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// At returns the value at index by decoding groups from the start of the payload.
func (s *GroupBinary) At(index int) (uint32, bool) {
	if index < 0 || index >= s.count {
		return 0, false
	}

	it := s.Iter(nil)
	target := index / GroupSize
	for g := 0; ; g++ {
		values, n, ok := it.Next()
		if !ok {
			return 0, false
		}

		if g == target {
			lane := index % GroupSize
			if lane >= n {
				return 0, false
			}

			return values[lane], true
		}
	}
}

// AppendTo appends every decoded value to dst using DefaultDescriptorTable.
func (s *GroupBinary) AppendTo(dst []uint32) []uint32 {
	return s.AppendToWith(dst, nil)
}

// AppendToWith appends every decoded value to dst using table.
func (s *GroupBinary) AppendToWith(dst []uint32, table *DescriptorTable) []uint32 {
	dst = slices.Grow(dst, s.count)

	it := s.Iter(table)
	for {
		values, n, ok := it.Next()
		if !ok {
			return dst
		}
		dst = append(dst, values[:n]...)
	}
}

// GroupIterator decodes a GroupBinary payload one group at a time.
//
// A GroupIterator is not safe for concurrent use, but any number of iterators
// may read the same sequence concurrently.
type GroupIterator struct {
	data      []byte
	table     *DescriptorTable
	pos       int
	remaining int
	lastTop   uint32
}

// Next decodes the next group.
//
// Groups that end more than 17 bytes before the payload end are decoded with a
// single 16-byte shuffle; the rest are decoded slot by slot with bounds checks.
//
// Returns:
//   - values: The absolute values of the group; lanes at or beyond n are unspecified
//   - n: Number of valid lanes, 4 except for the final group
//   - ok: false once every value was returned or the payload was exhausted
func (it *GroupIterator) Next() (values [4]uint32, n int, ok bool) {
	if it.remaining <= 0 || it.pos >= len(it.data) {
		return values, 0, false
	}

	desc := it.data[it.pos]
	entry := it.table.Entry(desc)
	n = min(it.remaining, GroupSize)

	if it.pos+groupGuard < len(it.data) {
		values = simd.Shuffle(it.data[it.pos+1:], &entry.ShuffleMask)
	} else {
		var complete int
		values, complete = decodeGroupSafe(it.data[it.pos+1:], desc)
		if complete < n {
			// truncated payload, iteration ends after the complete slots
			n = complete
			it.remaining = n
		}
	}

	values[0] += it.lastTop
	values[1] += values[0]
	values[2] += values[1]
	values[3] += values[2]
	it.lastTop = values[3]

	it.pos += 1 + int(entry.Length)
	it.remaining -= n

	return values, n, n > 0
}
