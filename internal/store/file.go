package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File keeps every entry in one JSON object on disk, rewritten atomically
// on each change. An unreadable or corrupt file starts out empty.
type File struct {
	path string

	mu sync.Mutex
	m  map[string]string
}

// OpenFile loads path if it exists. Parent directories are created on write.
func OpenFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("file store: empty path")
	}
	f := &File{path: path, m: make(map[string]string)}
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("file store: %w", err)
	}
	if err := json.Unmarshal(b, &f.m); err != nil || f.m == nil {
		f.m = make(map[string]string)
	}
	return f, nil
}

func (f *File) Path() string { return f.path }

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.m[key]
	return v, ok, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev, had := f.m[key]
	f.m[key] = value
	if err := f.flush(); err != nil {
		if had {
			f.m[key] = prev
		} else {
			delete(f.m, key)
		}
		return err
	}
	return nil
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.m[key]; !ok {
		return nil
	}
	delete(f.m, key)
	return f.flush()
}

func (f *File) Close() error { return nil }

// flush must be called with f.mu held.
func (f *File) flush() error {
	b, err := json.MarshalIndent(f.m, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("file store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("file store: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("file store: %w", err)
	}
	return nil
}
