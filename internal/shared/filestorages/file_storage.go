package filestorages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrFileNotFound      = errors.New("file not found")
	ErrFileAlreadyExists = errors.New("file already exists")
	ErrInvalidKey        = errors.New("invalid file key")
	ErrInvalidRootDir    = errors.New("invalid root directory")
)

const tempPrefix = ".tmp-"

// PutResult is returned by a successful Put.
type PutResult struct {
	FileKey string
}

type PutOptions struct {
	// AllowOverwrite replaces an existing file. Without it Put is create-if-not-exists,
	// which is what makes raw batch idempotency keys work.
	AllowOverwrite bool
}

// FileStorage is a key/value blob store rooted at a local directory. Keys are
// slash-separated relative paths that must stay inside the root. Writes go through a
// synced temp file, so readers never observe a partial file.
//
//go:generate mockgen -source=file_storage.go -destination=./mocks/file_storage_mock.go -package=mocks
type FileStorage interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (*PutResult, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// List returns the keys of the files directly under prefix, sorted. A missing prefix
	// lists nothing.
	List(ctx context.Context, prefix string) ([]string, error)
}

type fileStorage struct {
	dir string
}

func NewFileStorage(rootDir string) (FileStorage, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("%w: root directory cannot be empty", ErrInvalidRootDir)
	}

	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve absolute path: %w", ErrInvalidRootDir, err)
	}

	return &fileStorage{dir: absRootDir}, nil
}

func (s *fileStorage) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (*PutResult, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpPath, err := s.writeTemp(ctx, filepath.Dir(fullPath), r)
	if err != nil {
		return nil, err
	}
	// after Link the final name still points at the inode, after Rename this is a no-op
	defer func() { _ = os.Remove(tmpPath) }()

	if opts.AllowOverwrite {
		if err := os.Rename(tmpPath, fullPath); err != nil {
			return nil, err
		}
		return &PutResult{FileKey: key}, nil
	}

	if err := os.Link(tmpPath, fullPath); err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, ErrFileAlreadyExists
		}
		return nil, err
	}
	return &PutResult{FileKey: key}, nil
}

func (s *fileStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return file, nil
}

func (s *fileStorage) List(ctx context.Context, prefix string) ([]string, error) {
	fullPath, err := s.resolve(prefix)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	base := strings.TrimSuffix(filepath.ToSlash(filepath.Clean(prefix)), "/")
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}
		keys = append(keys, base+"/"+entry.Name())
	}
	sort.Strings(keys)
	return keys, nil
}

// resolve maps key to an absolute path inside the root directory.
func (s *fileStorage) resolve(key string) (string, error) {
	if key == "" || filepath.IsAbs(key) {
		return "", ErrInvalidKey
	}
	clean := filepath.Clean(key)
	if clean == "." {
		return "", ErrInvalidKey
	}

	fullPath := filepath.Join(s.dir, clean)
	rel, err := filepath.Rel(s.dir, fullPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}
	return fullPath, nil
}

// writeTemp copies r into a synced temp file inside dir and returns its path.
// The caller owns removing the temp file.
func (s *fileStorage) writeTemp(ctx context.Context, dir string, r io.Reader) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()

	fail := func(err error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}

	if _, err := io.Copy(tmp, r); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	return tmpPath, nil
}
