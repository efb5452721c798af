// Package store implements the object store: framed blobs kept under
// git-style content addresses on the local filesystem.
//
// Layout:
//
//	objects/
//	  ab/cdef0123...  (zlib-compressed "blob <size>\x00<content>")
//
// An object is written at most once. Later writes of the same content find
// the file in place and return without touching it.
package store

import (
	"context"
	"errors"

	"github.com/Yuiki/rgit/internal/object"
)

var (
	ErrNotFound      = errors.New("store: object not found")
	ErrCorruptObject = errors.New("store: corrupt object")
)

// Store handles content-addressed object storage.
type Store interface {
	// Put stores content and returns its address.
	Put(ctx context.Context, content []byte) (object.Hash, error)

	// Get returns the content stored under hash.
	Get(ctx context.Context, hash object.Hash) ([]byte, error)

	// Has checks if an object exists.
	Has(ctx context.Context, hash object.Hash) (bool, error)

	// Path returns the filesystem location of an object.
	Path(hash object.Hash) string
}
