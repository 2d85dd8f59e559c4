package section

import (
	"fmt"

	"github.com/arloliu/varseq/endian"
	"github.com/arloliu/varseq/errs"
	"github.com/arloliu/varseq/format"
)

// Flag represents the packed flag fields at the start of the header.
type Flag struct {
	// Options is a packed field for various options.
	// Bit 0 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bit 1-3 are reserved for future use, must be set to 0.
	// Bit 4-15 are the magic number identifying the blob format:
	//   - 0x5E10 (0b0101_1110_0001_0000): sequence blob format v1
	Options uint16

	// Codec is the format.CodecType of the payload.
	Codec uint8
	// Compression is the format.CompressionType applied to the payload.
	Compression uint8
}

// NewFlag creates a new little-endian Flag for the given codec and compression.
func NewFlag(codec format.CodecType, compression format.CompressionType) Flag {
	flag := Flag{
		Options:     MagicSequenceV1Opt,
		Codec:       uint8(codec),
		Compression: uint8(compression),
	}
	flag.WithLittleEndian()

	return flag
}

// IsLittleEndian returns whether the header fields are little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the header fields are big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// IsValidMagicNumber checks if the magic number is valid.
func (f Flag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicSequenceV1Opt
}

// CodecType returns the payload codec.
func (f Flag) CodecType() format.CodecType {
	return format.CodecType(f.Codec)
}

// CompressionType returns the payload compression.
func (f Flag) CompressionType() format.CompressionType {
	return format.CompressionType(f.Compression)
}

// Validate checks if the flag fields contain valid values.
func (f Flag) Validate() error {
	if !f.IsValidMagicNumber() {
		return fmt.Errorf("%w: 0x%04x", errs.ErrInvalidMagicNumber, f.GetMagicNumber())
	}

	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved bits set in 0x%04x", errs.ErrInvalidHeaderFlags, f.Options)
	}

	if !f.CodecType().IsValid() {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedCodec, f.Codec)
	}

	if !f.CompressionType().IsValid() {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedCompression, f.Compression)
	}

	return nil
}

// GetEndianEngine returns the appropriate endian engine based on the flag.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
