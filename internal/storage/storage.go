// Package storage uploads media payloads to object storage and returns the
// URL under which they are published.
package storage

import (
	"context"
	"errors"
	"fmt"

	"chagual/internal/config"
)

// ErrUpstream marks every object storage failure.
var ErrUpstream = errors.New("error al subir archivo al almacenamiento")

// ObjectStore stores one object and returns its public URL.
type ObjectStore interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
}

func upstream(err error) error {
	if err == nil || errors.Is(err, ErrUpstream) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}

// New builds the configured store behind a circuit breaker.
func New(ctx context.Context, cfg config.StorageConfig) (ObjectStore, error) {
	var (
		store ObjectStore
		err   error
	)
	switch cfg.Provider {
	case config.ProviderLocal:
		store = NewLocalStore(cfg.LocalDir, cfg.LocalURL)
	case config.ProviderDrive:
		store, err = NewDriveStoreFromConfig(ctx, cfg)
	default:
		err = fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return NewBreaker(cfg.Provider, store), nil
}
