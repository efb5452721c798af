package index

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/Yuiki/rgit/internal/object"
)

const filePerm = 0o644

// File is the staging index persisted at a fixed path. It holds no entries
// between calls: every operation reads the file, and every mutation
// rewrites it in full.
type File struct {
	path   string
	verify bool
	log    logrus.FieldLogger
}

// Option configures a File.
type Option func(*File)

// WithVerify makes Load reject an index whose trailing checksum does not
// match its contents.
func WithVerify(verify bool) Option {
	return func(f *File) { f.verify = verify }
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(f *File) {
		if log != nil {
			f.log = log
		}
	}
}

// NewFile returns the index stored at path. The file need not exist.
func NewFile(path string, opts ...Option) *File {
	f := &File{path: path, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(f)
	}
	f.log = f.log.WithField("component", "index")
	return f
}

// Path returns the index file location.
func (f *File) Path() string {
	return f.path
}

// Load reads the index. A missing file is an empty index.
func (f *File) Load() (*Index, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("read index: %w", err)
	}

	x, err := Decode(data, f.verify)
	if err != nil {
		return nil, fmt.Errorf("parse index %s: %w", f.path, err)
	}
	return x, nil
}

// Stage records path as staged with content hash and metadata stat. When an
// entry with the same content hash already exists under any name, the index
// is not rewritten and Stage returns false.
func (f *File) Stage(path string, hash object.Hash, stat FileStat) (bool, error) {
	x, err := f.Load()
	if err != nil {
		return false, err
	}

	log := f.log.WithFields(logrus.Fields{"path": path, "hash": hash.String()})

	entry := Entry{FileStat: stat, Hash: hash, Name: filepath.Base(path)}
	if !x.Add(entry) {
		log.Debug("content already staged")
		return false, nil
	}

	if err := f.Write(x); err != nil {
		return false, err
	}

	log.WithField("entries", x.Len()).Debug("entry staged")
	return true, nil
}

// Write replaces the index file with the serialized form of x. The new
// content is written to a temp file in the same directory and renamed over
// the old one, so a failed write leaves the previous index intact.
func (f *File) Write(x *Index) (err error) {
	data, err := x.MarshalBinary()
	if err != nil {
		return fmt.Errorf("serialize index: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), "tmp_index_*")
	if err != nil {
		return fmt.Errorf("create temp index: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		return fmt.Errorf("chmod index: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace index: %w", err)
	}
	return nil
}

// Verify checks the trailing checksum regardless of WithVerify. A missing
// index is valid.
func (f *File) Verify() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read index: %w", err)
	}
	if _, err := Decode(data, true); err != nil {
		return fmt.Errorf("verify index %s: %w", f.path, err)
	}
	return nil
}
