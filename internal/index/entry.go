package index

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Yuiki/rgit/internal/object"
)

const (
	// statSize is the ten 32-bit stat fields at the head of an entry.
	statSize = 10 * 4
	// entryFixedSize is stat fields + hash + 2-byte name length.
	entryFixedSize = statSize + object.HashSize + 2
)

// FileStat is the filesystem metadata captured when a file is staged.
// Every field is truncated to 32 bits as the on-disk format requires.
type FileStat struct {
	CtimeSec  uint32
	CtimeNsec uint32
	MtimeSec  uint32
	MtimeNsec uint32
	Dev       uint32
	Ino       uint32
	Mode      uint32
	UID       uint32
	GID       uint32
	Size      uint32
}

// Entry is one staged file.
type Entry struct {
	FileStat

	Hash object.Hash
	// Name is the base name of the staged path.
	Name string
}

// padding returns the number of zero bytes that follow a name of length n.
func padding(n int) int {
	return ((8 - n%8) + 2) % 8
}

// EncodedLen returns the serialized size of the entry.
func (e Entry) EncodedLen() int {
	return entryFixedSize + len(e.Name) + padding(len(e.Name))
}

// AppendBinary appends the serialized entry to b.
func (e Entry) AppendBinary(b []byte) ([]byte, error) {
	if len(e.Name) > math.MaxUint16 {
		return b, fmt.Errorf("%w: %d bytes", ErrNameTooLong, len(e.Name))
	}

	for _, v := range [...]uint32{
		e.CtimeSec, e.CtimeNsec,
		e.MtimeSec, e.MtimeNsec,
		e.Dev, e.Ino, e.Mode,
		e.UID, e.GID, e.Size,
	} {
		b = binary.BigEndian.AppendUint32(b, v)
	}
	b = append(b, e.Hash[:]...)
	b = binary.BigEndian.AppendUint16(b, uint16(len(e.Name)))
	b = append(b, e.Name...)
	return append(b, make([]byte, padding(len(e.Name)))...), nil
}

// MarshalBinary returns the serialized entry.
func (e Entry) MarshalBinary() ([]byte, error) {
	return e.AppendBinary(make([]byte, 0, e.EncodedLen()))
}

// UnmarshalBinary decodes a single entry occupying all of data.
func (e *Entry) UnmarshalBinary(data []byte) error {
	d := &decoder{data: data}
	entry, err := d.entry()
	if err != nil {
		return err
	}
	if d.off != len(data) {
		return fmt.Errorf("index: %d trailing bytes after entry", len(data)-d.off)
	}
	*e = entry
	return nil
}

// decoder reads big-endian fields from an index buffer and reports the
// offset of the first short read.
type decoder struct {
	data []byte
	off  int
}

func (d *decoder) next(n int) ([]byte, error) {
	if len(d.data)-d.off < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrTruncated, n, d.off, len(d.data)-d.off)
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *decoder) uint32() (uint32, error) {
	b, err := d.next(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (d *decoder) uint16() (uint16, error) {
	b, err := d.next(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (d *decoder) entry() (Entry, error) {
	var e Entry

	for _, field := range [...]*uint32{
		&e.CtimeSec, &e.CtimeNsec,
		&e.MtimeSec, &e.MtimeNsec,
		&e.Dev, &e.Ino, &e.Mode,
		&e.UID, &e.GID, &e.Size,
	} {
		v, err := d.uint32()
		if err != nil {
			return Entry{}, err
		}
		*field = v
	}

	hash, err := d.next(object.HashSize)
	if err != nil {
		return Entry{}, err
	}
	copy(e.Hash[:], hash)

	n, err := d.uint16()
	if err != nil {
		return Entry{}, err
	}
	name, err := d.next(int(n))
	if err != nil {
		return Entry{}, err
	}
	e.Name = string(name)

	if _, err := d.next(padding(int(n))); err != nil {
		return Entry{}, err
	}
	return e, nil
}
