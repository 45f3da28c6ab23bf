package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
)

// fileStore persists the snapshot as a snappy-compressed file. Writes go
// through a temp file and rename so a crash never leaves a torn snapshot.
type fileStore struct {
	path string
}

func newFileStore(path string) (*fileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot file path is required")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory %s: %w", dir, err)
	}

	return &fileStore{path: path}, nil
}

func (f *fileStore) Save(_ context.Context, data []byte) error {
	compressed := snappy.Encode(nil, data)

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, compressed, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	return nil
}

func (f *fileStore) Load(_ context.Context) ([]byte, error) {
	compressed, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("snapshot decompress failed: %w", err)
	}

	return data, nil
}

func (f *fileStore) Close() error {
	return nil
}
