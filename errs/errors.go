// Package errs defines the sentinel errors shared by the varseq packages.
//
// Errors returned by varseq are either one of these sentinels or wrap one of
// them with additional context, so callers should match with errors.Is:
//
//	if err := factory.Push(v); errors.Is(err, errs.ErrOrderingViolation) {
//	    // v was not greater than the previously pushed value
//	}
package errs

import "errors"

// Encoding errors.
var (
	// ErrOrderingViolation is returned when a pushed value is smaller than the
	// last value pushed into a factory. The factory is left unchanged.
	ErrOrderingViolation = errors.New("value is smaller than the sequence top")
	// ErrValueNotRepresentable is returned when a value cannot be stored by the
	// chosen codec, such as 0 in a SimpleUnary sequence.
	ErrValueNotRepresentable = errors.New("value not representable by codec")
)

// Decoding and validation errors.
var (
	// ErrBufferExhausted is returned when an encoded buffer ends before the
	// expected number of integers has been decoded.
	ErrBufferExhausted = errors.New("encoded buffer exhausted")
	// ErrMalformedSequence is returned when an encoded buffer does not follow
	// the grammar of its codec.
	ErrMalformedSequence = errors.New("malformed encoded sequence")
	// ErrCountOverflow is returned when a count does not fit the blob header.
	ErrCountOverflow = errors.New("sequence count overflow")
)

// Blob container errors.
var (
	ErrInvalidHeaderSize      = errors.New("invalid blob header size")
	ErrInvalidHeaderFlags     = errors.New("invalid blob header flags")
	ErrInvalidMagicNumber     = errors.New("invalid blob magic number")
	ErrUnsupportedCodec       = errors.New("unsupported sequence codec")
	ErrUnsupportedCompression = errors.New("unsupported payload compression")
	ErrChecksumMismatch       = errors.New("blob payload checksum mismatch")
	ErrPayloadLengthMismatch  = errors.New("blob payload length mismatch")
)
