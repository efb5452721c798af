package rgit

import (
	"github.com/Yuiki/rgit/internal/index"
	"github.com/Yuiki/rgit/internal/object"
	"github.com/Yuiki/rgit/internal/store"
)

// Hash is the SHA-1 content address of a stored object.
type Hash = object.Hash

// Entry is a staged file as recorded in the index.
type Entry = index.Entry

// FileStat is the metadata snapshot kept in an Entry.
type FileStat = index.FileStat

// Index is a loaded staging index.
type Index = index.Index

// ObjectStore is the content-addressed storage used by a Repository.
// Re-exported from internal/store for convenience.
type ObjectStore = store.Store

// StagingIndex is the persisted staging area used by a Repository.
type StagingIndex interface {
	Load() (*Index, error)
	Stage(path string, hash Hash, stat FileStat) (bool, error)
	Verify() error
	Path() string
}

// ParseHash decodes a 40-character hex object name.
func ParseHash(s string) (Hash, error) {
	return object.ParseHash(s)
}

// HashContent returns the address content would be stored under.
func HashContent(content []byte) Hash {
	return object.Sum(content)
}
