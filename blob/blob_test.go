package blob

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/arloliu/varseq/encoding"
	"github.com/arloliu/varseq/errs"
	"github.com/arloliu/varseq/format"
	"github.com/arloliu/varseq/internal/hash"
	"github.com/arloliu/varseq/section"
	"github.com/stretchr/testify/require"
)

var allCompressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func testValues(n int) []uint32 {
	rng := rand.New(rand.NewPCG(3, 5))
	values := make([]uint32, 0, n)
	v := uint32(0)
	for range n {
		v += 1 + rng.Uint32N(1000)
		values = append(values, v)
	}

	return values
}

func sealed(t *testing.T, codec format.CodecType, values []uint32) encoding.Sequence {
	t.Helper()

	var f encoding.Factory
	switch codec {
	case format.CodecSimpleUnary:
		f = encoding.NewSimpleUnaryFactory()
	case format.CodecGroupBinary:
		f = encoding.NewGroupBinaryFactory()
	default:
		t.Fatalf("unknown codec %s", codec)
	}
	require.NoError(t, f.PushSlice(values))

	return f.Seal()
}

// === Round Trip Tests ===

func TestMarshalUnmarshal_RoundTrip(t *testing.T) {
	for _, codec := range []format.CodecType{format.CodecSimpleUnary, format.CodecGroupBinary} {
		for _, compression := range allCompressions {
			for _, n := range []int{0, 1, 5, 1000} {
				name := fmt.Sprintf("%s/%s/%d", codec, compression, n)
				t.Run(name, func(t *testing.T) {
					values := testValues(n)
					seq := sealed(t, codec, values)

					data, err := Marshal(seq, WithCompression(compression))
					require.NoError(t, err)

					got, err := Unmarshal(data)
					require.NoError(t, err)
					require.Equal(t, codec, got.Codec())
					require.Equal(t, n, got.Len())
					require.Equal(t, seq.Bytes(), got.Bytes())
					require.Equal(t, slices.Collect(seq.All()), slices.Collect(got.All()))
				})
			}
		}
	}
}

func TestMarshal_Header(t *testing.T) {
	seq := sealed(t, format.CodecGroupBinary, testValues(10))

	t.Run("little-endian default", func(t *testing.T) {
		data, err := Marshal(seq)
		require.NoError(t, err)
		require.Len(t, data, section.HeaderSize+seq.Size())

		header, err := section.ParseHeader(data)
		require.NoError(t, err)
		require.True(t, header.Flag.IsLittleEndian())
		require.Equal(t, format.CodecGroupBinary, header.Flag.CodecType())
		require.Equal(t, format.CompressionNone, header.Flag.CompressionType())
		require.Equal(t, uint32(10), header.Count)
		require.Equal(t, uint32(seq.Size()), header.RawLength)
		require.Equal(t, uint32(seq.Size()), header.StoredLength)
		require.Equal(t, hash.Checksum(seq.Bytes()), header.Checksum)
		require.Equal(t, seq.Bytes(), data[section.PayloadOffset:])
	})

	t.Run("big-endian", func(t *testing.T) {
		data, err := Marshal(seq, WithBigEndian())
		require.NoError(t, err)

		require.Equal(t, uint32(10), binary.BigEndian.Uint32(data[section.CountOffset:]))

		got, err := Unmarshal(data)
		require.NoError(t, err)
		require.Equal(t, slices.Collect(seq.All()), slices.Collect(got.All()))
	})

	t.Run("last endianness option wins", func(t *testing.T) {
		data, err := Marshal(seq, WithBigEndian(), WithLittleEndian())
		require.NoError(t, err)

		header, err := section.ParseHeader(data)
		require.NoError(t, err)
		require.True(t, header.Flag.IsLittleEndian())
	})
}

func TestMarshal_InvalidCompression(t *testing.T) {
	seq := sealed(t, format.CodecSimpleUnary, testValues(3))

	_, err := Marshal(seq, WithCompression(format.CompressionType(0x7F)))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestMarshal_DoesNotAliasPool(t *testing.T) {
	first, err := Marshal(sealed(t, format.CodecSimpleUnary, []uint32{1, 2, 3}))
	require.NoError(t, err)
	snapshot := slices.Clone(first)

	_, err = Marshal(sealed(t, format.CodecSimpleUnary, []uint32{9, 99, 999}))
	require.NoError(t, err)

	require.Equal(t, snapshot, first)
}

// === Rejection Tests ===

func TestUnmarshal_Rejects(t *testing.T) {
	seq := sealed(t, format.CodecGroupBinary, testValues(50))
	valid, err := Marshal(seq)
	require.NoError(t, err)

	corrupt := func(fn func(data []byte) []byte) []byte {
		return fn(slices.Clone(valid))
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", valid[:section.HeaderSize-1], errs.ErrInvalidHeaderSize},
		{"bad magic", corrupt(func(d []byte) []byte { d[1] ^= 0xFF; return d }), errs.ErrInvalidMagicNumber},
		{"reserved bits", corrupt(func(d []byte) []byte { d[0] |= 0x02; return d }), errs.ErrInvalidHeaderFlags},
		{"unknown codec", corrupt(func(d []byte) []byte { d[2] = 0x09; return d }), errs.ErrUnsupportedCodec},
		{"unknown compression", corrupt(func(d []byte) []byte { d[3] = 0x09; return d }), errs.ErrUnsupportedCompression},
		{"truncated payload", valid[:len(valid)-1], errs.ErrPayloadLengthMismatch},
		{"trailing bytes", append(slices.Clone(valid), 0x00), errs.ErrPayloadLengthMismatch},
		{"flipped payload byte", corrupt(func(d []byte) []byte { d[len(d)-1] ^= 0x01; return d }), errs.ErrChecksumMismatch},
		{"raw length mismatch", corrupt(func(d []byte) []byte {
			binary.LittleEndian.PutUint32(d[section.RawLengthOffset:], uint32(seq.Size()+1))
			return d
		}), errs.ErrPayloadLengthMismatch},
		{"count too large", corrupt(func(d []byte) []byte {
			binary.LittleEndian.PutUint32(d[section.CountOffset:], 60)
			return d
		}), errs.ErrBufferExhausted},
		{"count beyond raw length", corrupt(func(d []byte) []byte {
			binary.LittleEndian.PutUint32(d[section.CountOffset:], uint32(seq.Size()+1))
			return d
		}), errs.ErrMalformedSequence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unmarshal(tt.data)
			require.ErrorIs(t, err, tt.want)
			require.Nil(t, got)
		})
	}
}

func TestUnmarshal_RejectsMalformedPayloadWithValidChecksum(t *testing.T) {
	// a SimpleUnary payload with a trailing byte, checksummed correctly
	payload := []byte{0x00, 0x00, 0x00}
	header := section.NewHeader(format.CodecSimpleUnary, format.CompressionNone)
	header.Count = 2
	header.RawLength = uint32(len(payload))
	header.StoredLength = uint32(len(payload))
	header.Checksum = hash.Checksum(payload)
	data := append(header.Bytes(), payload...)

	_, err := Unmarshal(data)
	require.ErrorIs(t, err, errs.ErrMalformedSequence)
}

func TestUnmarshal_WithMaxRawLength(t *testing.T) {
	seq := sealed(t, format.CodecSimpleUnary, testValues(100))
	data, err := Marshal(seq, WithCompression(format.CompressionZstd))
	require.NoError(t, err)

	_, err = Unmarshal(data, WithMaxRawLength(seq.Size()-1))
	require.ErrorIs(t, err, errs.ErrPayloadLengthMismatch)

	got, err := Unmarshal(data, WithMaxRawLength(seq.Size()))
	require.NoError(t, err)
	require.Equal(t, seq.Len(), got.Len())

	_, err = Unmarshal(data, WithMaxRawLength(-1))
	require.Error(t, err)
}

func TestUnmarshal_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Unmarshal([]byte{1, 2, 3}, WithLogger(logger))
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	require.Contains(t, buf.String(), "rejected sequence blob")
	require.Contains(t, buf.String(), "size=3")

	buf.Reset()
	data, err := Marshal(sealed(t, format.CodecSimpleUnary, []uint32{4}))
	require.NoError(t, err)
	_, err = Unmarshal(data, WithLogger(logger))
	require.NoError(t, err)
	require.Empty(t, buf.String(), "accepted blobs are not logged")
}

func TestUnmarshal_NilLoggerKeepsDefault(t *testing.T) {
	_, err := Unmarshal(nil, WithLogger(nil))
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}

// === Fuzz Tests ===

func FuzzUnmarshal(f *testing.F) {
	for _, compression := range allCompressions {
		for _, codec := range []format.CodecType{format.CodecSimpleUnary, format.CodecGroupBinary} {
			var factory encoding.Factory = encoding.NewGroupBinaryFactory()
			if codec == format.CodecSimpleUnary {
				factory = encoding.NewSimpleUnaryFactory()
			}
			_ = factory.PushSlice([]uint32{1, 5, 300, 70000, 70001})

			data, err := Marshal(factory.Seal(), WithCompression(compression))
			if err != nil {
				f.Fatal(err)
			}
			f.Add(data)
		}
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		seq, err := Unmarshal(data, WithMaxRawLength(1<<20))
		if err != nil {
			return
		}

		values := seq.AppendTo(nil)
		require.Len(t, values, seq.Len())
		require.True(t, slices.IsSorted(values))
	})
}
