package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketresume/rocket/pkg/config"
)

// ErrNotFound is returned by Get for keys that do not exist.
var ErrNotFound = errors.New("object not found")

// ErrInvalidKey is returned for keys that escape the backend's
// namespace, e.g. through ".." segments.
var ErrInvalidKey = errors.New("invalid storage key")

// Backend stores and retrieves uploaded files by key. Keys are
// slash-separated relative paths generated by the server, never raw
// client input.
type Backend interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// FromConfig builds the backend selected by storage_backend.
func FromConfig(ctx context.Context, cfg *config.RocketConfig) (Backend, error) {
	switch cfg.StorageBackend {
	case "", "local":
		return NewLocal(cfg.StorageDir)
	case "s3":
		return NewS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
}
