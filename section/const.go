package section

const (
	// Bit masks of the flag options word
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0), 1 means big-endian
	ReservedBitsMask = 0x000E // Mask for reserved bits (bits 1-3), must be zero
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicSequenceV1Opt is the version 1 magic number of the sequence blob format.
	MagicSequenceV1Opt = 0x5E10
)

// offset and section sizes in the blob
const (
	HeaderSize         = 24 // fixed header size in bytes
	CountOffset        = 4
	RawLengthOffset    = 8
	StoredLengthOffset = 12
	ChecksumOffset     = 16
	PayloadOffset      = HeaderSize
	MaxSequenceCount   = 1<<32 - 1 // count is stored as uint32
	MaxPayloadLength   = 1<<32 - 1 // lengths are stored as uint32
)
