package format

import "strings"

type (
	CodecType       uint8
	CompressionType uint8
)

const (
	CodecSimpleUnary CodecType = 0x1 // CodecSimpleUnary represents the per-integer biased varint format.
	CodecGroupBinary CodecType = 0x2 // CodecGroupBinary represents the four-integer descriptor-byte format.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CodecType) String() string {
	switch c {
	case CodecSimpleUnary:
		return "SimpleUnary"
	case CodecGroupBinary:
		return "GroupBinary"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is a known codec.
func (c CodecType) IsValid() bool {
	return c == CodecSimpleUnary || c == CodecGroupBinary
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is a known compression type.
func (c CompressionType) IsValid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

// ParseCompressionType maps a case-insensitive name ("none", "zstd", "s2", "lz4")
// to its CompressionType. An empty name means CompressionNone.
// The second result is false for unknown names.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch strings.ToLower(name) {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
