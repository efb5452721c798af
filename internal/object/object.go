// Package object defines content hashes and the framing used to address
// stored blobs.
//
// A blob is stored as the framed byte sequence
//
//	"blob " + decimal(len(content)) + "\x00" + content
//
// and its identity is the SHA-1 digest of that exact sequence.
package object

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
)

// HashSize is the length of a raw content hash in bytes.
const HashSize = sha1.Size

const blobType = "blob"

var (
	ErrInvalidHash  = errors.New("object: invalid hash")
	ErrInvalidFrame = errors.New("object: invalid frame")
)

// Hash is the 160-bit content address of a framed object.
type Hash [HashSize]byte

// ZeroHash is the hash with every byte set to zero.
var ZeroHash Hash

// String returns the lowercase hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether h is the zero hash.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// Prefix returns the 2-character directory name of the hash.
func (h Hash) Prefix() string {
	return h.String()[:2]
}

// Suffix returns the remaining 38 characters used as the object file name.
func (h Hash) Suffix() string {
	return h.String()[2:]
}

// ParseHash decodes a 40-character hex string.
func ParseHash(s string) (Hash, error) {
	var h Hash
	if len(s) != hex.EncodedLen(HashSize) {
		return h, fmt.Errorf("%w: %q", ErrInvalidHash, s)
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return h, fmt.Errorf("%w: %q", ErrInvalidHash, s)
	}
	return h, nil
}

// Frame returns the framed byte sequence for content.
func Frame(content []byte) []byte {
	size := strconv.Itoa(len(content))
	buf := make([]byte, 0, len(blobType)+1+len(size)+1+len(content))
	buf = append(buf, blobType...)
	buf = append(buf, ' ')
	buf = append(buf, size...)
	buf = append(buf, 0)
	return append(buf, content...)
}

// Sum returns the content address of content. The digest covers the framed
// sequence, not the raw content.
func Sum(content []byte) Hash {
	return Digest(Frame(content))
}

// Unframe splits a framed sequence and returns its content. The header must
// name a blob and its declared size must match the remaining bytes.
func Unframe(framed []byte) ([]byte, error) {
	nul := bytes.IndexByte(framed, 0)
	if nul < 0 {
		return nil, fmt.Errorf("%w: missing header terminator", ErrInvalidFrame)
	}

	typ, size, ok := bytes.Cut(framed[:nul], []byte{' '})
	if !ok {
		return nil, fmt.Errorf("%w: malformed header %q", ErrInvalidFrame, framed[:nul])
	}
	if string(typ) != blobType {
		return nil, fmt.Errorf("%w: unsupported type %q", ErrInvalidFrame, typ)
	}

	n, err := strconv.Atoi(string(size))
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: bad size %q", ErrInvalidFrame, size)
	}

	content := framed[nul+1:]
	if len(content) != n {
		return nil, fmt.Errorf("%w: declared %d bytes, got %d", ErrInvalidFrame, n, len(content))
	}
	return content, nil
}

// Digest returns the hash of an already framed sequence.
func Digest(framed []byte) Hash {
	return sha1.Sum(framed)
}
