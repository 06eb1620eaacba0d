package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/marmitaria/internal/client/storage"
)

// Get retrieves the value stored under key
func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	if s.db == nil {
		return "", storage.ErrStorageClosed
	}

	var value string
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrAuthNotFound
		}

		// bbolt-слайс валиден только внутри транзакции, копируем
		value = string(data)
		return nil
	})
	if err != nil {
		return "", err
	}

	return value, nil
}

// Put stores all values in one transaction
func (s *Storage) Put(ctx context.Context, values map[string]string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		for key, value := range values {
			if err := bucket.Put([]byte(key), []byte(value)); err != nil {
				return fmt.Errorf("failed to save %s: %w", key, err)
			}
		}

		return nil
	})
}

// Delete removes keys in one transaction (logout)
func (s *Storage) Delete(ctx context.Context, keys ...string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		// Delete по отсутствующему ключу в bbolt не ошибка
		for _, key := range keys {
			if err := bucket.Delete([]byte(key)); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
		}

		return nil
	})
}
