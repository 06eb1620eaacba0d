package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/marmitaria/internal/client/api"
	"github.com/iudanet/marmitaria/internal/client/storage"
	"github.com/iudanet/marmitaria/internal/crypto"
)

// TokenStore is the encryption layer between the session logic and storage.
// With a sealer every value is encrypted before it reaches the driver.
type TokenStore struct {
	storage storage.AuthStorage
	sealer  *crypto.Sealer
}

// Compile-time check that TokenStore implements api.Credentials
var _ api.Credentials = (*TokenStore)(nil)

// NewTokenStore creates a TokenStore; sealer may be nil for plaintext storage
func NewTokenStore(st storage.AuthStorage, sealer *crypto.Sealer) *TokenStore {
	return &TokenStore{
		storage: st,
		sealer:  sealer,
	}
}

// Sealed reports whether values are encrypted at rest
func (s *TokenStore) Sealed() bool {
	return s.sealer != nil
}

// AccessToken returns the stored access token or "" when absent
func (s *TokenStore) AccessToken(ctx context.Context) (string, error) {
	return s.token(ctx, storage.KeyAccessToken)
}

// RefreshToken returns the stored refresh token or "" when absent
func (s *TokenStore) RefreshToken(ctx context.Context) (string, error) {
	return s.token(ctx, storage.KeyRefreshToken)
}

// SaveTokens сохраняет оба токена одной транзакцией
func (s *TokenStore) SaveTokens(ctx context.Context, access, refresh string) error {
	sealedAccess, err := s.seal(access)
	if err != nil {
		return fmt.Errorf("failed to encrypt access token: %w", err)
	}
	sealedRefresh, err := s.seal(refresh)
	if err != nil {
		return fmt.Errorf("failed to encrypt refresh token: %w", err)
	}

	return s.storage.Put(ctx, map[string]string{
		storage.KeyAccessToken:  sealedAccess,
		storage.KeyRefreshToken: sealedRefresh,
	})
}

// SaveSession сохраняет сериализованную сессию под ключом user
func (s *TokenStore) SaveSession(ctx context.Context, raw string) error {
	sealed, err := s.seal(raw)
	if err != nil {
		return fmt.Errorf("failed to encrypt session: %w", err)
	}
	return s.storage.Put(ctx, map[string]string{storage.KeyUser: sealed})
}

// LoadSession returns the serialized session.
// ErrNoSession when absent, ErrSessionCorrupt when it cannot be decrypted.
func (s *TokenStore) LoadSession(ctx context.Context) (string, error) {
	value, err := s.storage.Get(ctx, storage.KeyUser)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("failed to read session: %w", err)
	}

	raw, err := s.open(value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSessionCorrupt, err)
	}
	return raw, nil
}

// DeleteSession удаляет только ключ user
func (s *TokenStore) DeleteSession(ctx context.Context) error {
	return s.storage.Delete(ctx, storage.KeyUser)
}

// Clear удаляет оба токена и сессию одной транзакцией
func (s *TokenStore) Clear(ctx context.Context) error {
	return s.storage.Delete(ctx, storage.AuthKeys...)
}

// token читает токен; отсутствие и нерасшифровываемое значение дают ""
func (s *TokenStore) token(ctx context.Context, key string) (string, error) {
	value, err := s.storage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}

	token, err := s.open(value)
	if err != nil {
		// Чужой или испорченный шифртекст: токена нет
		return "", nil
	}
	return token, nil
}

func (s *TokenStore) seal(value string) (string, error) {
	if s.sealer == nil {
		return value, nil
	}
	return s.sealer.Seal(value)
}

func (s *TokenStore) open(value string) (string, error) {
	if s.sealer == nil {
		return value, nil
	}
	return s.sealer.Open(value)
}
