package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodecType_String(t *testing.T) {
	require.Equal(t, "SimpleUnary", CodecSimpleUnary.String())
	require.Equal(t, "GroupBinary", CodecGroupBinary.String())
	require.Equal(t, "Unknown", CodecType(0).String())
	require.True(t, CodecGroupBinary.IsValid())
	require.False(t, CodecType(9).IsValid())
}

func TestCompressionType_String(t *testing.T) {
	tests := []struct {
		c    CompressionType
		want string
	}{
		{CompressionNone, "None"},
		{CompressionZstd, "Zstd"},
		{CompressionS2, "S2"},
		{CompressionLZ4, "LZ4"},
		{CompressionType(0), "Unknown"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, tt.c.String())
	}

	require.False(t, CompressionType(0).IsValid())
	require.False(t, CompressionType(5).IsValid())
}

func TestParseCompressionType(t *testing.T) {
	for _, name := range []string{"zstd", "ZSTD", "Zstd"} {
		c, ok := ParseCompressionType(name)
		require.True(t, ok)
		require.Equal(t, CompressionZstd, c)
	}

	c, ok := ParseCompressionType("")
	require.True(t, ok)
	require.Equal(t, CompressionNone, c)

	_, ok = ParseCompressionType("brotli")
	require.False(t, ok)
}
