package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/marmitaria/internal/client/storage"
)

// Get retrieves the value stored under key
func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	if s.db == nil {
		return "", storage.ErrStorageClosed
	}

	query := `SELECT value FROM auth_kv WHERE key = ?`

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrAuthNotFound
		}
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}

	return value, nil
}

// Put stores all values in one transaction
func (s *Storage) Put(ctx context.Context, values map[string]string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	query := `
		INSERT INTO auth_kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	return s.inTx(ctx, func(tx *sql.Tx) error {
		now := time.Now().UTC()
		for key, value := range values {
			if _, err := tx.ExecContext(ctx, query, key, value, now); err != nil {
				return fmt.Errorf("failed to save %s: %w", key, err)
			}
		}
		return nil
	})
}

// Delete removes keys in one transaction; missing keys are ignored
func (s *Storage) Delete(ctx context.Context, keys ...string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	query := `DELETE FROM auth_kv WHERE key = ?`

	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, key := range keys {
			if _, err := tx.ExecContext(ctx, query, key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
		}
		return nil
	})
}

// inTx выполняет fn в транзакции, откатывая её при ошибке
func (s *Storage) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
