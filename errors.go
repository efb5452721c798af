package rgit

import (
	"errors"

	"github.com/Yuiki/rgit/internal/index"
	"github.com/Yuiki/rgit/internal/object"
	"github.com/Yuiki/rgit/internal/store"
)

var (
	ErrNotInitialized = errors.New("rgit: not a repository")
	ErrIsDirectory    = errors.New("rgit: is a directory")

	ErrNotFound      = store.ErrNotFound
	ErrCorruptObject = store.ErrCorruptObject
	ErrCorruptIndex  = index.ErrCorruptIndex
	ErrInvalidHash   = object.ErrInvalidHash
)
