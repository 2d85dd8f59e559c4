package section

import (
	"github.com/arloliu/varseq/errs"
	"github.com/arloliu/varseq/format"
)

// Header represents the fixed-size header section at the start of a sequence blob.
type Header struct {
	// Flag is a packed field for the magic number, byte order, codec and compression.
	Flag Flag // byte offset 0-3
	// Count is the number of integers in the sealed sequence.
	Count uint32 // byte offset 4-7
	// RawLength is the length of the encoded sequence payload before compression.
	RawLength uint32 // byte offset 8-11
	// StoredLength is the length of the payload as stored after the header.
	StoredLength uint32 // byte offset 12-15
	// Checksum is the xxHash64 of the stored payload bytes.
	Checksum uint64 // byte offset 16-23
}

// NewHeader creates a new little-endian Header.
// The count, lengths and checksum are filled in by the blob writer.
func NewHeader(codec format.CodecType, compression format.CompressionType) *Header {
	return &Header{
		Flag: NewFlag(codec, compression),
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly HeaderSize bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not HeaderSize bytes, or flag validation errors
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// The flag word itself is always little-endian
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.Codec = data[2]
	h.Flag.Compression = data[3]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()
	h.Count = engine.Uint32(data[CountOffset:RawLengthOffset])
	h.RawLength = engine.Uint32(data[RawLengthOffset:StoredLengthOffset])
	h.StoredLength = engine.Uint32(data[StoredLengthOffset:ChecksumOffset])
	h.Checksum = engine.Uint64(data[ChecksumOffset:HeaderSize])

	return nil
}

// AppendTo appends the serialized header to dst and returns the extended slice.
func (h *Header) AppendTo(dst []byte) []byte {
	engine := h.Flag.GetEndianEngine()

	dst = append(dst, byte(h.Flag.Options), byte(h.Flag.Options>>8), h.Flag.Codec, h.Flag.Compression)
	dst = engine.AppendUint32(dst, h.Count)
	dst = engine.AppendUint32(dst, h.RawLength)
	dst = engine.AppendUint32(dst, h.StoredLength)
	dst = engine.AppendUint64(dst, h.Checksum)

	return dst
}

// Bytes serializes the Header into a new byte slice.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// ParseHeader parses a Header from the start of a byte slice.
//
// Parameters:
//   - data: Byte slice starting with a header (must be at least HeaderSize bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidHeaderSize or flag validation errors
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
