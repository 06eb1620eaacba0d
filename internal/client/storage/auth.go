package storage

import (
	"context"
)

// Ключи постоянного хранилища. Других ключей клиент не хранит.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
)

// AuthKeys перечисляет все ключи сессии. Выход из системы удаляет их разом.
var AuthKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUser}

// AuthStorage defines durable key-value storage for the client session.
// This is the lowest storage layer: values are stored as-is (sealing, if any,
// happens in auth.TokenStore).
//
// Implementations must apply Put and Delete atomically so that the access and
// refresh tokens are never left partially present.
type AuthStorage interface {
	// Get returns the value stored under key or ErrAuthNotFound
	Get(ctx context.Context, key string) (string, error)

	// Put writes all values in a single transaction
	Put(ctx context.Context, values map[string]string) error

	// Delete removes all keys in a single transaction; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error

	// Close releases the underlying resources
	Close() error
}
