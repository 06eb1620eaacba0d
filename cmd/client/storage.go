package main

import (
	"context"
	"fmt"

	"github.com/iudanet/marmitaria/internal/client/storage"
	"github.com/iudanet/marmitaria/internal/client/storage/boltdb"
	"github.com/iudanet/marmitaria/internal/client/storage/memory"
	"github.com/iudanet/marmitaria/internal/client/storage/sqlite"
	"github.com/iudanet/marmitaria/internal/config"
	"github.com/iudanet/marmitaria/internal/crypto"
)

// openStorage выбирает драйвер по storage.driver
func openStorage(ctx context.Context, cfg config.StorageConfig) (storage.AuthStorage, error) {
	switch cfg.Driver {
	case config.DriverBolt:
		st, err := boltdb.New(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return st, nil
	case config.DriverSQLite:
		st, err := sqlite.New(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return st, nil
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownDriver, cfg.Driver)
	}
}

// newSealer возвращает nil без пароля: значения хранятся открыто
func newSealer(cfg config.StorageConfig) (*crypto.Sealer, error) {
	if cfg.Passphrase == "" {
		return nil, nil
	}
	sealer, err := crypto.NewSealerFromPassphrase(cfg.Passphrase, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to derive storage key: %w", err)
	}
	return sealer, nil
}
