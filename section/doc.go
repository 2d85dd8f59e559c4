// Package section defines the fixed-size header that precedes a sealed
// sequence payload inside a blob.
//
// # Header Layout
//
// The header is HeaderSize (24) bytes long:
//
//	offset  size  field
//	0       2     flag options, always little-endian (magic number, endianness)
//	2       1     codec type (format.CodecType)
//	3       1     compression type (format.CompressionType)
//	4       4     integer count
//	8       4     raw payload length (before compression)
//	12      4     stored payload length (after compression)
//	16      8     xxHash64 of the stored payload
//
// Fields after the flag word use the byte order selected by the endianness bit.
package section
