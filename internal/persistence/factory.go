package persistence

import (
	"fmt"
	"strings"

	"github.com/trendwatch/trendwatch/internal/config"
)

// NewSnapshotStore creates a SnapshotStore based on configuration.
// Default is the in-memory backend if type is not specified.
func NewSnapshotStore(cfg config.PersistenceConfig) (SnapshotStore, error) {
	backend := strings.ToLower(cfg.Backend)

	switch backend {
	case "", "memory":
		return newMemoryStore(), nil

	case "file":
		return newFileStore(cfg.Path)

	case "redis":
		return newRedisStore(cfg.RedisURL, cfg.RedisKey)

	default:
		return nil, fmt.Errorf("unsupported persistence backend: %s (supported: memory, file, redis)", backend)
	}
}
