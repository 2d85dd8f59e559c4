package encoding

import "sync"

// ShuffleZeroLane is the shuffle mask index that produces a zero output byte.
//
// It has the high bit set, which PSHUFB treats as zero, and is at least 16,
// which the portable shuffle also treats as zero.
const ShuffleZeroLane = 0xFF

// DescriptorEntry holds the decode parameters of one GroupBinary descriptor byte.
type DescriptorEntry struct {
	// ShuffleMask moves the packed slot bytes into four 4-byte little-endian lanes.
	ShuffleMask [16]byte
	// Length is the total payload length of a full group, 4 to 16 bytes.
	Length uint8
}

// DescriptorTable maps every descriptor byte to its DescriptorEntry.
//
// A DescriptorTable is never modified after construction and is safe to share
// across any number of concurrent decoders.
type DescriptorTable struct {
	entries [256]DescriptorEntry
}

var defaultDescriptorTable = sync.OnceValue(NewDescriptorTable)

// NewDescriptorTable builds a caller-owned table covering all 256 descriptors.
func NewDescriptorTable() *DescriptorTable {
	t := &DescriptorTable{}
	for d := range 256 {
		t.entries[d] = DescriptorEntry{
			ShuffleMask: ShuffleMask(byte(d)),
			Length:      uint8(TotalLength(byte(d))), //nolint:gosec
		}
	}

	return t
}

// DefaultDescriptorTable returns the process-wide table, building it on first use.
func DefaultDescriptorTable() *DescriptorTable {
	return defaultDescriptorTable()
}

// Entry returns the entry of descriptor d. The caller must not modify it.
func (t *DescriptorTable) Entry(d byte) *DescriptorEntry {
	return &t.entries[d]
}

// SlotLength returns the byte width of slot i (0-3) recorded in descriptor d.
func SlotLength(d byte, i int) int {
	return int((d>>(2*i))&0b11) + 1
}

// TotalLength returns the payload length of a full group with descriptor d.
func TotalLength(d byte) int {
	return SlotLength(d, 0) + SlotLength(d, 1) + SlotLength(d, 2) + SlotLength(d, 3)
}

// ShuffleMask computes the shuffle mask of descriptor d.
//
// Slot bytes are assigned consecutive source indices in slot order; the padding
// bytes that complete each 4-byte lane are set to ShuffleZeroLane.
func ShuffleMask(d byte) [16]byte {
	var mask [16]byte
	src := byte(0)
	for slot := range 4 {
		width := SlotLength(d, slot)
		for b := range 4 {
			if b < width {
				mask[slot*4+b] = src
				src++
			} else {
				mask[slot*4+b] = ShuffleZeroLane
			}
		}
	}

	return mask
}
