// Package store persists the wishlist snapshot between rounds.
//
// Every backend rewrites the whole snapshot on Save. A backend that holds no
// state yet loads as an empty snapshot; only an unreadable medium is an error.
package store

import (
	"context"

	"sjsage522/wishlistwatcher/config"
	"sjsage522/wishlistwatcher/internal/wishlist"
	"sjsage522/wishlistwatcher/pkg/errors"
)

// Store represents a snapshot persistence backend
type Store interface {
	// Load returns the persisted snapshot, empty when nothing was saved yet
	Load(ctx context.Context) (wishlist.Snapshot, error)

	// Save replaces the persisted snapshot as a whole
	Save(ctx context.Context, snapshot wishlist.Snapshot) error

	// Close releases the backend
	Close() error
}

// Open creates the store selected by the configuration
func Open(cfg *config.Config) (Store, error) {
	switch cfg.StateBackend {
	case config.BackendFile:
		return NewFileStore(cfg.StateFile), nil
	case config.BackendRedis:
		return NewRedisStore(cfg.RedisAddr, cfg.RedisDB, cfg.RedisStateKey), nil
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	default:
		return nil, errors.NewConfiguration("unknown STATE_BACKEND "+cfg.StateBackend, nil)
	}
}
