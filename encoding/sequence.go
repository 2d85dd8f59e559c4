package encoding

import (
	"iter"

	"github.com/arloliu/varseq/format"
)

// Sequence is a sealed, immutable encoded sequence of strictly increasing uint32 values.
//
// A Sequence owns its byte buffer. All methods are safe for concurrent use.
type Sequence interface {
	// Codec returns the encoding of the sequence payload.
	Codec() format.CodecType

	// Len returns the number of encoded values.
	Len() int

	// Size returns the size in bytes of the encoded payload.
	Size() int

	// Bytes returns the encoded payload.
	// The caller must not modify the returned slice.
	Bytes() []byte

	// All returns an iterator that yields every value in push order.
	//
	// Each call starts a fresh scan from the beginning of the payload. If the payload
	// ends in the middle of an entry the iterator stops early.
	All() iter.Seq[uint32]

	// At returns the value at the given index.
	//
	// Both encodings are delta based, so At scans forward from the first value.
	// The boolean is false when index is out of range.
	At(index int) (uint32, bool)

	// AppendTo appends every decoded value to dst and returns the extended slice.
	AppendTo(dst []uint32) []uint32
}

// Factory accumulates pushed values into an encoded buffer.
//
// A Factory is not safe for concurrent use; callers sharing one must synchronise externally.
type Factory interface {
	// Push encodes v.
	//
	// It returns errs.ErrOrderingViolation, leaving the factory unchanged,
	// when v is smaller than Top.
	Push(v uint32) error

	// PushIfNotTop encodes v unless it equals the last pushed value.
	PushIfNotTop(v uint32) error

	// PushSlice pushes values in order and stops at the first error.
	// Values pushed before the failing one are kept.
	PushSlice(values []uint32) error

	// Top returns the last pushed value, or 0 when nothing was pushed.
	Top() uint32

	// Len returns the number of pushed values.
	Len() int

	// Size returns the size in bytes of the encoded buffer.
	Size() int

	// Reset discards every pushed value.
	Reset()

	// Seal transfers the encoded buffer into a Sequence and resets the factory.
	Seal() Sequence
}
