package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/Yuiki/rgit/internal/compression"
	"github.com/Yuiki/rgit/internal/object"
)

const (
	dirPerm    = 0o755
	objectPerm = 0o444
)

var _ Store = (*LocalStore)(nil)

// LocalStore implements Store on the local filesystem.
type LocalStore struct {
	dir        string
	compressor *compression.Compressor
	log        logrus.FieldLogger
}

// NewLocalStore returns a store rooted at dir. The directory itself is
// created by repository initialization, not here.
func NewLocalStore(dir string, compressor *compression.Compressor, log logrus.FieldLogger) *LocalStore {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LocalStore{
		dir:        dir,
		compressor: compressor,
		log:        log.WithField("component", "store"),
	}
}

// Dir returns the objects root.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Put stores content and returns its hash.
func (s *LocalStore) Put(ctx context.Context, content []byte) (object.Hash, error) {
	if err := ctx.Err(); err != nil {
		return object.ZeroHash, err
	}

	// 1. Frame and hash
	framed := object.Frame(content)
	hash := object.Digest(framed)
	log := s.log.WithField("hash", hash.String())

	// 2. Ensure the prefix directory; the objects root must already exist
	dir := filepath.Join(s.dir, hash.Prefix())
	if err := os.Mkdir(dir, dirPerm); err != nil && !errors.Is(err, fs.ErrExist) {
		return object.ZeroHash, fmt.Errorf("create object directory %s: %w", dir, err)
	}

	// 3. Check if already exists
	path := s.Path(hash)
	if _, err := os.Stat(path); err == nil {
		log.Debug("object exists")
		return hash, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return object.ZeroHash, fmt.Errorf("stat object: %w", err)
	}

	// 4. Write to disk
	if err := s.write(dir, path, framed); err != nil {
		return object.ZeroHash, err
	}

	log.WithField("size", len(content)).Debug("object written")
	return hash, nil
}

// write compresses framed into a temp file next to path and renames it into
// place, so path is either absent or complete.
func (s *LocalStore) write(dir, path string, framed []byte) (err error) {
	tmp, err := os.CreateTemp(dir, "tmp_obj_*")
	if err != nil {
		return fmt.Errorf("create temp object: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := s.compressor.CompressTo(tmp, framed); err != nil {
		return fmt.Errorf("compress object: %w", err)
	}
	if err := tmp.Chmod(objectPerm); err != nil {
		return fmt.Errorf("chmod object: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close object: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write object: %w", err)
	}
	return nil
}

// Get reads, inflates and validates an object.
func (s *LocalStore) Get(ctx context.Context, hash object.Hash) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path(hash))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, hash)
		}
		return nil, fmt.Errorf("open object: %w", err)
	}
	defer f.Close()

	framed, err := s.compressor.DecompressFrom(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptObject, hash, err)
	}
	if got := object.Digest(framed); got != hash {
		return nil, fmt.Errorf("%w: %s: content hashes to %s", ErrCorruptObject, hash, got)
	}

	content, err := object.Unframe(framed)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptObject, hash, err)
	}
	return content, nil
}

// Has checks if an object exists.
func (s *LocalStore) Has(ctx context.Context, hash object.Hash) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := os.Stat(s.Path(hash))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Path returns the filesystem path for an object hash.
// Git-style sharding: objects/ab/cd123...
func (s *LocalStore) Path(hash object.Hash) string {
	return filepath.Join(s.dir, hash.Prefix(), hash.Suffix())
}
