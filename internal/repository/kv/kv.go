package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/timedeck/internal/config"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("key not found")

// errUnknownDriver is returned by Open for unsupported drivers.
var errUnknownDriver = errors.New("unknown storage driver")

// Store is a minimal key/value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open creates the store selected by the storage settings.
func Open(cfg config.Storage) (Store, error) {
	switch cfg.Driver {
	case config.StorageFile, "":
		return NewFileStore(cfg.Path), nil
	case config.StorageSQLite:
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownDriver, cfg.Driver)
	}
}
