package compression

import (
	"bytes"
	stdzlib "compress/zlib"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressorRoundTrip(t *testing.T) {
	c, err := NewCompressor(BestSpeed)
	require.NoError(t, err)

	data := bytes.Repeat([]byte("blob 11\x00hello world"), 64)
	compressed, err := c.Compress(data)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(data))

	out, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestCompressedOutputReadableByStandardInflater(t *testing.T) {
	c, err := NewCompressor(BestSpeed)
	require.NoError(t, err)

	compressed, err := c.Compress([]byte("blob 5\x00hello"))
	require.NoError(t, err)

	zr, err := stdzlib.NewReader(bytes.NewReader(compressed))
	require.NoError(t, err)
	defer zr.Close()

	out, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, []byte("blob 5\x00hello"), out)
}

func TestCompressEmpty(t *testing.T) {
	c, err := NewCompressor(DefaultCompression)
	require.NoError(t, err)

	compressed, err := c.Compress(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, compressed)

	out, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestNewCompressorRejectsBadLevel(t *testing.T) {
	_, err := NewCompressor(42)
	assert.Error(t, err)
}

func TestDecompressGarbage(t *testing.T) {
	c, err := NewCompressor(BestSpeed)
	require.NoError(t, err)

	_, err = c.Decompress([]byte("not zlib"))
	assert.Error(t, err)
}
