// Package blob serializes sealed sequences into a self-describing, checksummed container.
//
// A blob is a fixed 24-byte header followed by the stored payload:
//
//	0-1   flag word (little-endian): magic number, header byte order, reserved bits
//	2     codec type (format.CodecType)
//	3     compression type (format.CompressionType)
//	4-7   value count
//	8-11  raw payload length
//	12-15 stored payload length
//	16-23 xxHash64 of the stored payload
//	24-   stored payload
//
// The stored payload is the sequence's encoded bytes, optionally compressed with
// one of the compress package codecs. Unmarshal validates the header, the payload
// length and the checksum, decompresses, and finally validates the structure of
// the payload before returning a usable sequence, so blobs received from outside
// the process can be decoded safely.
//
// # Usage
//
//	f := encoding.NewGroupBinaryFactory()
//	_ = f.PushSlice(docIDs)
//	data, err := blob.Marshal(f.Finalize(), blob.WithCompression(format.CompressionZstd))
//	if err != nil {
//	    return err
//	}
//
//	seq, err := blob.Unmarshal(data)
//	if err != nil {
//	    return err
//	}
//	for id := range seq.All() {
//	    ...
//	}
package blob
