package index

import (
	"crypto/sha1"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yuiki/rgit/internal/object"
)

func newTestFile(t *testing.T, opts ...Option) *File {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewFile(filepath.Join(t.TempDir(), "index"), append([]Option{WithLogger(logger)}, opts...)...)
}

func TestLoadMissingIndex(t *testing.T) {
	f := newTestFile(t)

	x, err := f.Load()
	require.NoError(t, err)
	assert.Zero(t, x.Len())
	assert.NoFileExists(t, f.Path())
}

func TestStageCreatesIndex(t *testing.T) {
	f := newTestFile(t)
	e := testEntry("a.txt")

	staged, err := f.Stage("dir/sub/a.txt", e.Hash, e.FileStat)
	require.NoError(t, err)
	assert.True(t, staged)

	x, err := f.Load()
	require.NoError(t, err)
	require.Equal(t, 1, x.Len())
	assert.Equal(t, e, x.Entries()[0])
}

func TestStageChecksum(t *testing.T) {
	f := newTestFile(t)

	for _, name := range []string{"one", "two", "three"} {
		e := testEntry(name)
		_, err := f.Stage(name, e.Hash, e.FileStat)
		require.NoError(t, err)

		data, err := os.ReadFile(f.Path())
		require.NoError(t, err)
		sum := sha1.Sum(data[:len(data)-20])
		assert.Equal(t, sum[:], data[len(data)-20:])
	}
	assert.NoError(t, f.Verify())
}

func TestStageDuplicateContentIsNoop(t *testing.T) {
	f := newTestFile(t)
	hash := object.Sum([]byte("same bytes"))

	staged, err := f.Stage("a.txt", hash, testEntry("a.txt").FileStat)
	require.NoError(t, err)
	require.True(t, staged)

	before, err := os.ReadFile(f.Path())
	require.NoError(t, err)

	staged, err = f.Stage("other/b.txt", hash, testEntry("b.txt").FileStat)
	require.NoError(t, err)
	assert.False(t, staged)

	after, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)

	x, err := f.Load()
	require.NoError(t, err)
	require.Equal(t, 1, x.Len())
	assert.Equal(t, "a.txt", x.Entries()[0].Name)
}

func TestStageAppendsInOrder(t *testing.T) {
	f := newTestFile(t)

	names := []string{"c.go", "a.go", "b.go"}
	for _, name := range names {
		e := testEntry(name)
		_, err := f.Stage(name, e.Hash, e.FileStat)
		require.NoError(t, err)
	}

	x, err := f.Load()
	require.NoError(t, err)
	var got []string
	for _, e := range x.Entries() {
		got = append(got, e.Name)
	}
	assert.Equal(t, names, got)
}

func TestStageLeavesNoTempFiles(t *testing.T) {
	f := newTestFile(t)
	e := testEntry("x")
	_, err := f.Stage("x", e.Hash, e.FileStat)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(f.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "index", entries[0].Name())
}

func TestStageFailureKeepsPreviousIndex(t *testing.T) {
	f := newTestFile(t)
	e := testEntry("kept")
	_, err := f.Stage("kept", e.Hash, e.FileStat)
	require.NoError(t, err)

	before, err := os.ReadFile(f.Path())
	require.NoError(t, err)

	long := strings.Repeat("n", 1<<16)
	_, err = f.Stage(long, object.Sum([]byte(long)), FileStat{})
	assert.ErrorIs(t, err, ErrNameTooLong)

	after, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLoadVerify(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index")

	e := testEntry("a")
	_, err := NewFile(path).Stage("a", e.Hash, e.FileStat)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xff
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = NewFile(path).Load()
	assert.NoError(t, err)

	_, err = NewFile(path, WithVerify(true)).Load()
	assert.ErrorIs(t, err, ErrCorruptIndex)

	assert.ErrorIs(t, NewFile(path).Verify(), ErrCorruptIndex)
}

func TestLoadTruncatedIndex(t *testing.T) {
	f := newTestFile(t)
	e := testEntry("a")
	_, err := f.Stage("a", e.Hash, e.FileStat)
	require.NoError(t, err)

	data, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(f.Path(), data[:40], 0o644))

	_, err = f.Load()
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = f.Stage("b", object.Sum([]byte("b")), FileStat{})
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestVerifyMissingIndex(t *testing.T) {
	assert.NoError(t, newTestFile(t).Verify())
}
