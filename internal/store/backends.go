package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Memory keeps the blob in process. The zero value is ready to use.
type Memory struct {
	mu   sync.Mutex
	blob []byte
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.blob...), nil
}

func (m *Memory) Save(ctx context.Context, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = append([]byte(nil), blob...)
	return nil
}

func (m *Memory) Close() error { return nil }

// File keeps the blob in a JSON file, replaced atomically on save.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile returns a backend writing to path. Parent directories are created
// on first save.
func NewFile(path string) *File { return &File{path: path} }

func (f *File) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (f *File) Save(ctx context.Context, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".state-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

func (f *File) Close() error { return nil }

// Open returns the backend named by kind: memory, file (dsn is a path),
// sqlite (dsn is a path) or postgres (dsn is a connection URL).
func Open(ctx context.Context, kind, dsn string) (Backend, error) {
	switch kind {
	case "", "memory":
		return NewMemory(), nil
	case "file":
		if dsn == "" {
			return nil, fmt.Errorf("file store needs a path")
		}
		return NewFile(dsn), nil
	case "sqlite":
		if dsn == "" {
			return nil, fmt.Errorf("sqlite store needs a path")
		}
		lite, err := OpenSQLite(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return lite, nil
	case "postgres":
		if dsn == "" {
			return nil, fmt.Errorf("postgres store needs a connection URL")
		}
		pg, err := ConnectPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return pg, nil
	default:
		return nil, &UnknownBackendError{Kind: kind}
	}
}
