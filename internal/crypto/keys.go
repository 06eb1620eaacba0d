// Package crypto seals locally stored session values with a key derived from a user passphrase.
package crypto

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/crypto/argon2"
)

// Параметры Argon2id
const (
	// Argon2Time - количество итераций (time cost)
	Argon2Time = 1
	// Argon2Memory - объем памяти в KB (64MB)
	Argon2Memory = 64 * 1024
	// Argon2Threads - количество параллельных потоков
	Argon2Threads = 4
	// KeyLen - длина ключа AES-256
	KeyLen = 32
)

// ErrEmptyPassphrase is returned when sealing is requested without a passphrase
var ErrEmptyPassphrase = errors.New("storage passphrase cannot be empty")

// StorageSalt returns a deterministic salt bound to the storage location.
// The same passphrase opens the same file, a copy under another path does not.
func StorageSalt(storagePath string) []byte {
	abs, err := filepath.Abs(storagePath)
	if err != nil {
		abs = storagePath
	}
	sum := sha256.Sum256([]byte("marmitaria-storage:" + abs))
	return sum[:]
}

// DeriveStorageKey derives the AES key that protects the session storage
func DeriveStorageKey(passphrase, storagePath string) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	if storagePath == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}

	salt := StorageSalt(storagePath)
	return argon2.IDKey([]byte(passphrase), salt, Argon2Time, Argon2Memory, Argon2Threads, KeyLen), nil
}
