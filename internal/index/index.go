// Package index implements the staging index: a binary file recording which
// files are staged, the content hash of each, and a snapshot of the stat
// metadata taken when it was staged.
//
// File layout, all integers big-endian:
//
//	"DIRC" | version (4) | entry count (4) | entries... | SHA-1 of all preceding bytes (20)
//
// Each entry is ten 32-bit stat fields, the 20-byte content hash, a 2-byte
// name length, the name, and ((8 - len%8) + 2) % 8 bytes of zero padding.
package index

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"slices"

	"github.com/Yuiki/rgit/internal/object"
)

const (
	// Magic identifies an index file.
	Magic = "DIRC"
	// Version is the only format version read and written.
	Version uint32 = 2
)

const headerSize = 12

var (
	ErrBadMagic     = errors.New("index: bad signature")
	ErrBadVersion   = errors.New("index: unsupported version")
	ErrTruncated    = errors.New("index: truncated")
	ErrCorruptIndex = errors.New("index: checksum mismatch")
	ErrNameTooLong  = errors.New("index: name too long")
)

// Index is the in-memory form of the staging index. Entries keep insertion
// order and no two entries share a content hash.
type Index struct {
	entries []Entry
}

// New returns an empty index.
func New() *Index {
	return &Index{}
}

// Len returns the number of entries.
func (x *Index) Len() int {
	return len(x.entries)
}

// Entries returns a copy of the entries in insertion order.
func (x *Index) Entries() []Entry {
	return slices.Clone(x.entries)
}

// Find returns the entry whose content hash is hash.
func (x *Index) Find(hash object.Hash) (Entry, bool) {
	i := slices.IndexFunc(x.entries, func(e Entry) bool { return e.Hash == hash })
	if i < 0 {
		return Entry{}, false
	}
	return x.entries[i], true
}

// Add appends e unless an entry with the same content hash is present, in
// which case the index is left as is and Add returns false.
func (x *Index) Add(e Entry) bool {
	if _, ok := x.Find(e.Hash); ok {
		return false
	}
	x.entries = append(x.entries, e)
	return true
}

// MarshalBinary serializes the index including the trailing checksum.
func (x *Index) MarshalBinary() ([]byte, error) {
	size := headerSize + object.HashSize
	for _, e := range x.entries {
		size += e.EncodedLen()
	}

	buf := make([]byte, 0, size)
	buf = append(buf, Magic...)
	buf = binary.BigEndian.AppendUint32(buf, Version)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(x.entries)))

	var err error
	for i, e := range x.entries {
		if buf, err = e.AppendBinary(buf); err != nil {
			return nil, fmt.Errorf("encode entry %d (%s): %w", i, e.Name, err)
		}
	}

	sum := object.Digest(buf)
	return append(buf, sum[:]...), nil
}

// UnmarshalBinary decodes data without checking the trailing checksum.
func (x *Index) UnmarshalBinary(data []byte) error {
	entries, _, err := decode(data)
	if err != nil {
		return err
	}
	x.entries = entries
	return nil
}

// Decode parses data. When verify is set the trailing checksum must match
// the digest of the preceding bytes.
func Decode(data []byte, verify bool) (*Index, error) {
	entries, end, err := decode(data)
	if err != nil {
		return nil, err
	}
	if verify {
		if err := verifyChecksum(data, end); err != nil {
			return nil, err
		}
	}
	return &Index{entries: entries}, nil
}

// decode parses the header and entries and returns the offset where the
// checksum starts. Bytes past the entries are not inspected.
func decode(data []byte) ([]Entry, int, error) {
	d := &decoder{data: data}

	magic, err := d.next(len(Magic))
	if err != nil {
		return nil, 0, err
	}
	if string(magic) != Magic {
		return nil, 0, fmt.Errorf("%w: %q", ErrBadMagic, magic)
	}

	version, err := d.uint32()
	if err != nil {
		return nil, 0, err
	}
	if version != Version {
		return nil, 0, fmt.Errorf("%w: %d", ErrBadVersion, version)
	}

	count, err := d.uint32()
	if err != nil {
		return nil, 0, err
	}

	// Every entry takes at least 64 bytes; don't trust count for the allocation.
	entries := make([]Entry, 0, min(int(count), len(data)/(entryFixedSize+2)))
	for i := uint32(0); i < count; i++ {
		e, err := d.entry()
		if err != nil {
			return nil, 0, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, d.off, nil
}

func verifyChecksum(data []byte, end int) error {
	if len(data)-end != object.HashSize {
		return fmt.Errorf("%w: expected %d checksum bytes at offset %d, have %d",
			ErrCorruptIndex, object.HashSize, end, len(data)-end)
	}
	want := object.Digest(data[:end])
	if !bytes.Equal(want[:], data[end:]) {
		return fmt.Errorf("%w: want %s", ErrCorruptIndex, want)
	}
	return nil
}
