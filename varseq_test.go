package varseq

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/varseq/blob"
	"github.com/arloliu/varseq/errs"
	"github.com/arloliu/varseq/format"
)

var allCodecs = []format.CodecType{format.CodecSimpleUnary, format.CodecGroupBinary}

func TestNewFactory(t *testing.T) {
	for _, codec := range allCodecs {
		f, err := NewFactory(codec)
		require.NoError(t, err)
		require.Equal(t, codec, f.Seal().Codec())
	}

	_, err := NewFactory(format.CodecType(0))
	require.ErrorIs(t, err, errs.ErrUnsupportedCodec)
}

func TestEncodeDecode(t *testing.T) {
	values := []uint32{1, 2, 3, 4, 5, 6, 7, 8, 65537, 65538, 65539, 65540, 65541}

	for _, codec := range allCodecs {
		t.Run(codec.String(), func(t *testing.T) {
			seq, err := Encode(codec, values)
			require.NoError(t, err)
			require.Equal(t, codec, seq.Codec())
			require.Equal(t, values, Decode(seq))
		})
	}
}

func TestEncode_SkipsDuplicates(t *testing.T) {
	for _, codec := range allCodecs {
		seq, err := Encode(codec, []uint32{4, 4, 9, 9, 9, 12})
		require.NoError(t, err)
		require.Equal(t, []uint32{4, 9, 12}, Decode(seq))
	}
}

func TestEncode_LeadingZero(t *testing.T) {
	seq, err := Encode(format.CodecGroupBinary, []uint32{0, 1})
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1}, Decode(seq))

	seq, err = Encode(format.CodecSimpleUnary, []uint32{0, 1})
	require.NoError(t, err)
	require.Equal(t, []uint32{1}, Decode(seq))
}

func TestEncode_Unsorted(t *testing.T) {
	for _, codec := range allCodecs {
		_, err := Encode(codec, []uint32{5, 3})
		require.ErrorIs(t, err, errs.ErrOrderingViolation)
	}
}

func TestEncode_Empty(t *testing.T) {
	for _, codec := range allCodecs {
		seq, err := Encode(codec, nil)
		require.NoError(t, err)
		require.Equal(t, 0, seq.Len())
		require.Empty(t, Decode(seq))
	}
}

func TestEncode_MaxUint32(t *testing.T) {
	values := []uint32{1, math.MaxUint32 - 1, math.MaxUint32}

	for _, codec := range allCodecs {
		seq, err := Encode(codec, values)
		require.NoError(t, err)
		require.Equal(t, values, Decode(seq))
	}
}

// === Bitmap Tests ===

func TestBitmapRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(17, 19))
	bm := roaring.New()
	for range 5000 {
		bm.Add(1 + rng.Uint32N(1<<24))
	}
	bm.AddRange(1<<25, 1<<25+1000)

	for _, codec := range allCodecs {
		t.Run(codec.String(), func(t *testing.T) {
			seq, err := FromBitmap(codec, bm)
			require.NoError(t, err)
			require.Equal(t, int(bm.GetCardinality()), seq.Len())
			require.Equal(t, bm.ToArray(), Decode(seq))

			restored := ToBitmap(seq)
			require.Equal(t, bm.GetCardinality(), restored.GetCardinality())
			require.Equal(t, bm.ToArray(), restored.ToArray())
		})
	}
}

func TestFromBitmap_Zero(t *testing.T) {
	bm := roaring.BitmapOf(0, 10, 20)

	_, err := FromBitmap(format.CodecSimpleUnary, bm)
	require.ErrorIs(t, err, errs.ErrValueNotRepresentable)

	seq, err := FromBitmap(format.CodecGroupBinary, bm)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 10, 20}, Decode(seq))
}

func TestFromBitmap_Empty(t *testing.T) {
	for _, codec := range allCodecs {
		seq, err := FromBitmap(codec, roaring.New())
		require.NoError(t, err)
		require.Equal(t, 0, seq.Len())
		require.True(t, ToBitmap(seq).IsEmpty())
	}
}

// === Blob Tests ===

func TestMarshalUnmarshal(t *testing.T) {
	values := []uint32{10, 20, 30, 1 << 20, 1 << 30}

	for _, codec := range allCodecs {
		seq, err := Encode(codec, values)
		require.NoError(t, err)

		data, err := Marshal(seq, blob.WithCompression(format.CompressionS2), blob.WithBigEndian())
		require.NoError(t, err)

		got, err := Unmarshal(data)
		require.NoError(t, err)
		require.Equal(t, codec, got.Codec())
		require.Equal(t, values, slices.Collect(got.All()))
	}
}

func TestUnmarshal_Corrupted(t *testing.T) {
	seq, err := Encode(format.CodecGroupBinary, []uint32{1, 2, 3})
	require.NoError(t, err)

	data, err := Marshal(seq)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xFF

	_, err = Unmarshal(data)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}
