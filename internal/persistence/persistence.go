// Package persistence stores serialized series snapshots behind a
// config-selected backend. The only contract is an exact byte round-trip.
package persistence

import (
	"context"
	"errors"
)

// ErrNoSnapshot is returned by Load when no snapshot has been saved yet
var ErrNoSnapshot = errors.New("no snapshot available")

// SnapshotStore persists one opaque snapshot blob
type SnapshotStore interface {
	// Save replaces the stored snapshot
	Save(ctx context.Context, data []byte) error

	// Load returns the stored snapshot, or ErrNoSnapshot
	Load(ctx context.Context) ([]byte, error)

	// Close releases backend resources
	Close() error
}
