package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

type localBackend struct {
	root string
}

// NewLocalBackend stores objects as files under root.
func NewLocalBackend(root string) (Backend, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, ioError("resolve storage root", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, ioError("create storage root", err)
	}
	return &localBackend{root: abs}, nil
}

func (b *localBackend) full(key string) string {
	return filepath.Join(b.root, filepath.FromSlash(key))
}

func (b *localBackend) Create(ctx context.Context, key, _ string, r io.Reader) error {
	full := b.full(key)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return ioError("create category dir", err)
	}
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return ioError("create "+key, err)
	}
	_, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = os.Remove(full)
		return copyErr
	}
	return nil
}

func (b *localBackend) Open(_ context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(b.full(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Code: CodeNotFound, Detail: key}
		}
		return nil, ioError("open "+key, err)
	}
	return f, nil
}

func (b *localBackend) Delete(_ context.Context, key string) error {
	if err := os.Remove(b.full(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ioError("delete "+key, err)
	}
	return nil
}
