package object

import (
	"crypto/sha1"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame(t *testing.T) {
	assert.Equal(t, []byte("blob 2\x00hi"), Frame([]byte("hi")))
	assert.Equal(t, []byte("blob 0\x00"), Frame(nil))
}

func TestSumHashesFramedBytes(t *testing.T) {
	content := []byte("hi")

	want := sha1.Sum([]byte("blob 2\x00hi"))
	assert.Equal(t, Hash(want), Sum(content))
	assert.NotEqual(t, Hash(sha1.Sum(content)), Sum(content))
}

func TestSumKnownBlob(t *testing.T) {
	// Same address git assigns to a blob containing "hello\n".
	assert.Equal(t, "ce013625030ba8dba906f756967f9e9ca394464a", Sum([]byte("hello\n")).String())
	// Empty blob.
	assert.Equal(t, "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391", Sum(nil).String())
}

func TestHashPrefixSuffix(t *testing.T) {
	h := Sum([]byte("hello\n"))
	assert.Equal(t, "ce", h.Prefix())
	assert.Equal(t, "013625030ba8dba906f756967f9e9ca394464a", h.Suffix())
	assert.Len(t, h.Suffix(), 38)
}

func TestParseHash(t *testing.T) {
	h := Sum([]byte("round trip"))

	parsed, err := ParseHash(h.String())
	require.NoError(t, err)
	assert.Equal(t, h, parsed)

	for _, bad := range []string{"", "abc", h.String()[:39] + "z", h.String() + "00"} {
		_, err := ParseHash(bad)
		assert.ErrorIs(t, err, ErrInvalidHash, bad)
	}
}

func TestUnframe(t *testing.T) {
	content, err := Unframe(Frame([]byte("payload")))
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), content)

	tests := map[string][]byte{
		"no terminator": []byte("blob 3abc"),
		"no space":      []byte("blob3\x00abc"),
		"wrong type":    []byte("tree 3\x00abc"),
		"bad size":      []byte("blob x\x00abc"),
		"short":         []byte("blob 4\x00abc"),
		"long":          []byte("blob 2\x00abc"),
	}
	for name, framed := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Unframe(framed)
			assert.ErrorIs(t, err, ErrInvalidFrame)
		})
	}
}
