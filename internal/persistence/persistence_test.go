package persistence

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/trendwatch/trendwatch/internal/config"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot before any save, got %v", err)
	}

	payload := []byte(`{"keywords":{}}`)
	if err := store.Save(ctx, payload); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("expected %q, got %q", payload, got)
	}

	// The stored copy must be isolated from the caller's slice
	payload[0] = 'X'
	got2, _ := store.Load(ctx)
	if got2[0] == 'X' {
		t.Error("stored snapshot aliases the caller's buffer")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snapshot.bin")
	store, err := newFileStore(path)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot for missing file, got %v", err)
	}

	payload := []byte(`{"keywords":{"pumpkin spice":{}}}`)
	if err := store.Save(ctx, payload); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("round trip mismatch: got %q", got)
	}

	// Overwrite replaces, not appends
	second := []byte(`{"keywords":{"eggnog":{}}}`)
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !bytes.Equal(got, second) {
		t.Errorf("expected second payload, got %q", got)
	}
}

func TestFileStoreRequiresPath(t *testing.T) {
	if _, err := newFileStore(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestNewSnapshotStore(t *testing.T) {
	store, err := NewSnapshotStore(config.PersistenceConfig{})
	if err != nil {
		t.Fatalf("default backend: %v", err)
	}
	if _, ok := store.(*memoryStore); !ok {
		t.Errorf("expected memory store by default, got %T", store)
	}

	path := filepath.Join(t.TempDir(), "snap.bin")
	store, err = NewSnapshotStore(config.PersistenceConfig{Backend: "file", Path: path})
	if err != nil {
		t.Fatalf("file backend: %v", err)
	}
	if _, ok := store.(*fileStore); !ok {
		t.Errorf("expected file store, got %T", store)
	}

	if _, err := NewSnapshotStore(config.PersistenceConfig{Backend: "cassandra"}); err == nil {
		t.Error("expected error for unsupported backend")
	}
}
