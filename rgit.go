package rgit

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"github.com/Yuiki/rgit/internal/compression"
	"github.com/Yuiki/rgit/internal/index"
	"github.com/Yuiki/rgit/internal/store"
)

const (
	objectsDir = "objects"
	indexFile  = "index"
)

// Repository is an object store and staging index sharing one root
// directory:
//
//	root/
//	  objects/ab/cd123...  (content-addressed objects)
//	  index                (staging index)
type Repository struct {
	root    string
	objects ObjectStore
	index   StagingIndex
	opts    *Options
	log     logrus.FieldLogger
}

// Staged reports the outcome of adding one path.
type Staged struct {
	Path string
	Hash Hash
	// New is false when the content was already staged under some name.
	New bool
}

// Init creates the repository layout under root, including missing parents,
// and opens it. Initializing an existing repository is a no-op.
func Init(root string, opts ...Option) (*Repository, error) {
	dir := filepath.Join(root, objectsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create objects dir: %w", err)
	}
	return Open(root, opts...)
}

// Open opens an initialized repository rooted at root.
func Open(root string, opts ...Option) (*Repository, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	dir := filepath.Join(root, objectsDir)
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotInitialized, root)
		}
		return nil, fmt.Errorf("stat objects dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotInitialized, dir)
	}

	compressor, err := compression.NewCompressor(options.CompressionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create compressor: %w", err)
	}

	log := options.Logger.WithField("root", root)
	return &Repository{
		root:    root,
		objects: store.NewLocalStore(dir, compressor, log),
		index: index.NewFile(filepath.Join(root, indexFile),
			index.WithVerify(options.VerifyIndex),
			index.WithLogger(log),
		),
		opts: options,
		log:  log,
	}, nil
}

func (r *Repository) Root() string         { return r.root }
func (r *Repository) Objects() ObjectStore { return r.objects }
func (r *Repository) Index() StagingIndex  { return r.index }
func (r *Repository) IndexPath() string    { return r.index.Path() }
func (r *Repository) ObjectsDir() string   { return filepath.Join(r.root, objectsDir) }

// Add stores the content of each path and stages it. Paths that do not
// exist are skipped. Objects are written in parallel; index updates happen
// one path at a time in argument order, each a full read and rewrite of the
// index file.
func (r *Repository) Add(ctx context.Context, paths ...string) ([]Staged, error) {
	stored := make([]*storedFile, len(paths))

	p := pool.New().
		WithMaxGoroutines(r.opts.Concurrency).
		WithContext(ctx).
		WithCancelOnError()

	for i, path := range paths {
		i, path := i, path
		p.Go(func(ctx context.Context) error {
			f, err := r.storeFile(ctx, path)
			if err != nil {
				return fmt.Errorf("add %s: %w", path, err)
			}
			stored[i] = f
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	result := make([]Staged, 0, len(paths))
	for _, f := range stored {
		if f == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		isNew, err := r.index.Stage(f.path, f.hash, f.stat)
		if err != nil {
			return result, fmt.Errorf("stage %s: %w", f.path, err)
		}
		result = append(result, Staged{Path: f.path, Hash: f.hash, New: isNew})
	}
	return result, nil
}

type storedFile struct {
	path string
	hash Hash
	stat FileStat
}

// storeFile writes the content of path to the object store. It returns nil
// when path does not exist.
func (r *Repository) storeFile(ctx context.Context, path string) (*storedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.log.WithField("path", path).Debug("path does not exist, skipping")
			return nil, nil
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	hash, err := r.objects.Put(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("store object: %w", err)
	}

	stat, err := index.StatFile(path)
	if err != nil {
		return nil, err
	}

	return &storedFile{path: path, hash: hash, stat: stat}, nil
}

// HashObject returns the address of content, storing it when write is set.
func (r *Repository) HashObject(ctx context.Context, content []byte, write bool) (Hash, error) {
	if !write {
		return HashContent(content), nil
	}
	return r.objects.Put(ctx, content)
}

// CatFile returns the content stored under hash.
func (r *Repository) CatFile(ctx context.Context, hash Hash) ([]byte, error) {
	return r.objects.Get(ctx, hash)
}

// Entries returns the staged entries in index order.
func (r *Repository) Entries() ([]Entry, error) {
	x, err := r.index.Load()
	if err != nil {
		return nil, err
	}
	return x.Entries(), nil
}

// Verify checks the index checksum.
func (r *Repository) Verify() error {
	return r.index.Verify()
}
