// Package encoding implements two binary encodings for strictly increasing
// sequences of unsigned 32-bit integers, such as posting lists.
//
// Both encodings store the gap between consecutive values rather than the
// values themselves, and both are decoded by a single forward scan.
//
// # SimpleUnary
//
// SimpleUnary stores each integer as 1 to 5 bytes. The gap to the previous
// value is biased by one, so the smallest legal increment encodes as byte 0x00.
// Every byte except the last of an entry has its high bit set:
//
//	entry := continuation_byte* final_byte
//	continuation_byte := 0b1XXXXXXX   // 128 + (chunk mod 128)
//	final_byte := 0b0XXXXXXX          // or any byte when it is the fifth
//
// Because the gap is biased, a SimpleUnary sequence can never hold the value 0,
// and pushing the current top again is a silent no-op.
//
// # GroupBinary
//
// GroupBinary packs integers in groups of four. Each group starts with a
// descriptor byte holding the byte width of each slot, followed by the
// little-endian gap bytes with trailing zero bytes stripped:
//
//	group := descriptor payload
//	descriptor := bits [7:6]=len(slot3)-1, [5:4]=len(slot2)-1, [3:2]=len(slot1)-1, [1:0]=len(slot0)-1
//	payload := bytes(delta0) bytes(delta1) bytes(delta2) bytes(delta3)
//
// Decoding looks the descriptor up in a DescriptorTable and rearranges the 16
// bytes after it into four 32-bit lanes with one byte shuffle. Groups that lie
// within 17 bytes of the buffer end are decoded by a bounds-checked scalar path
// so the 16-byte load never reads past the buffer.
//
// # Usage
//
//	f := encoding.NewGroupBinaryFactory()
//	for _, v := range []uint32{3, 7, 7, 1000} {
//	    if err := f.PushIfNotTop(v); err != nil {
//	        return err
//	    }
//	}
//	seq := f.Finalize()
//	for v := range seq.All() {
//	    fmt.Println(v)
//	}
//
// Factories are not safe for concurrent use. Sealed sequences and descriptor
// tables are immutable and may be shared by any number of goroutines.
package encoding
