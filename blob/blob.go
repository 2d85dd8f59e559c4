package blob

import (
	"fmt"

	"github.com/arloliu/varseq/compress"
	"github.com/arloliu/varseq/encoding"
	"github.com/arloliu/varseq/errs"
	"github.com/arloliu/varseq/format"
	"github.com/arloliu/varseq/internal/hash"
	"github.com/arloliu/varseq/internal/pool"
	"github.com/arloliu/varseq/section"
)

// Marshal serializes a sealed sequence into a blob.
//
// The payload is compressed with the configured codec (none by default) into a
// pooled buffer, then checksummed. The returned slice is newly allocated and
// owned by the caller.
//
// Parameters:
//   - seq: Sealed SimpleUnary or GroupBinary sequence
//   - opts: WithCompression, WithBigEndian, WithLittleEndian
//
// Returns:
//   - []byte: The serialized blob
//   - error: errs.ErrUnsupportedCodec, errs.ErrCountOverflow, option or compression errors
//
// Example:
//
//	data, err := blob.Marshal(seq, blob.WithCompression(format.CompressionS2))
func Marshal(seq encoding.Sequence, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	if !seq.Codec().IsValid() {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCodec, seq.Codec())
	}

	if uint64(seq.Len()) > section.MaxSequenceCount || uint64(seq.Size()) > section.MaxPayloadLength {
		return nil, fmt.Errorf("%w: %d values in %d bytes", errs.ErrCountOverflow, seq.Len(), seq.Size())
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	header := section.NewHeader(seq.Codec(), cfg.compression)
	if cfg.bigEndian {
		header.Flag.WithBigEndian()
	}

	bb := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(bb)

	// reserve the header, it is written once the payload is known
	bb.Grow(section.HeaderSize + seq.Size())
	bb.B = bb.B[:section.HeaderSize]

	stored, err := codec.Compress(bb.B, seq.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress %s payload: %w", cfg.compression, err)
	}
	bb.B = stored

	payload := stored[section.HeaderSize:]
	if uint64(len(payload)) > section.MaxPayloadLength {
		return nil, fmt.Errorf("%w: stored payload of %d bytes", errs.ErrCountOverflow, len(payload))
	}

	header.Count = uint32(seq.Len())           //nolint:gosec
	header.RawLength = uint32(seq.Size())      //nolint:gosec
	header.StoredLength = uint32(len(payload)) //nolint:gosec
	header.Checksum = hash.Checksum(payload)
	header.AppendTo(bb.B[:0])

	out := make([]byte, bb.Len())
	copy(out, bb.B)

	return out, nil
}

// Unmarshal parses and validates a blob and returns the sealed sequence it holds.
//
// Validation runs in order: header size and flags, stored payload length,
// checksum, decompression to the recorded raw length, and payload structure.
// The first failure is returned and, when a logger is configured, logged at
// debug level.
//
// For uncompressed blobs the returned sequence shares memory with data; the
// caller must not modify data afterwards.
//
// Parameters:
//   - data: Serialized blob produced by Marshal
//   - opts: WithLogger, WithMaxRawLength
//
// Returns:
//   - encoding.Sequence: *encoding.SimpleUnary or *encoding.GroupBinary
//   - error: Header errors from the section package, errs.ErrPayloadLengthMismatch,
//     errs.ErrChecksumMismatch, errs.ErrMalformedSequence or errs.ErrBufferExhausted
func Unmarshal(data []byte, opts ...Option) (encoding.Sequence, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	seq, err := unmarshal(data, cfg.maxRawLength)
	if err != nil {
		cfg.logger.Debug("rejected sequence blob", "size", len(data), "error", err)

		return nil, err
	}

	return seq, nil
}

func unmarshal(data []byte, maxRawLength int) (encoding.Sequence, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	payload := data[section.HeaderSize:]
	if uint64(len(payload)) != uint64(header.StoredLength) {
		return nil, fmt.Errorf("%w: header records %d stored bytes, blob holds %d",
			errs.ErrPayloadLengthMismatch, header.StoredLength, len(payload))
	}

	if !hash.Verify(payload, header.Checksum) {
		return nil, fmt.Errorf("%w: expected %016x", errs.ErrChecksumMismatch, header.Checksum)
	}

	if err := checkRawLength(header, maxRawLength); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(header.Flag.CompressionType())
	if err != nil {
		return nil, err
	}

	raw, err := codec.Decompress(payload, int(header.RawLength))
	if err != nil {
		return nil, fmt.Errorf("decompress %s payload: %w", codec.Type(), err)
	}

	count := int(header.Count)
	switch header.Flag.CodecType() {
	case format.CodecSimpleUnary:
		seq, err := encoding.LoadSimpleUnary(raw, count)
		if err != nil {
			return nil, err
		}

		return seq, nil
	case format.CodecGroupBinary:
		seq, err := encoding.LoadGroupBinary(raw, count)
		if err != nil {
			return nil, err
		}

		return seq, nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCodec, header.Flag.CodecType())
	}
}

// checkRawLength rejects raw lengths that no payload of header.Count values can
// have, and raw lengths above the configured limit.
func checkRawLength(header section.Header, maxRawLength int) error {
	count := uint64(header.Count)
	rawLen := uint64(header.RawLength)

	if rawLen > uint64(maxRawLength) { //nolint:gosec
		return fmt.Errorf("%w: raw payload of %d bytes exceeds limit %d", errs.ErrPayloadLengthMismatch, rawLen, maxRawLength)
	}

	// every value takes 1 to 5 bytes in both encodings
	if rawLen < count || rawLen > count*encoding.SimpleUnaryMaxEntryLen {
		return fmt.Errorf("%w: %d raw bytes cannot hold %d values", errs.ErrMalformedSequence, rawLen, count)
	}

	return nil
}
