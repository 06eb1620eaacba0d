package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSealer(t *testing.T) *Sealer {
	t.Helper()
	key := make([]byte, KeyLen)
	_, err := rand.Read(key)
	require.NoError(t, err)

	s, err := NewSealer(key)
	require.NoError(t, err)
	return s
}

func TestNewSealer_KeyLength(t *testing.T) {
	_, err := NewSealer(make([]byte, 16))
	assert.ErrorContains(t, err, "encryption key must be 32 bytes")
}

func TestSealer_SealOpen(t *testing.T) {
	s := newTestSealer(t)

	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "token", plaintext: "eyJhbGciOiJIUzI1NiJ9.payload.sig"},
		{name: "json", plaintext: `{"username":"alice","isAdmin":false}`},
		{name: "empty", plaintext: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := s.Seal(tt.plaintext)
			require.NoError(t, err)
			if tt.plaintext != "" {
				assert.NotContains(t, sealed, tt.plaintext)
			}

			opened, err := s.Open(sealed)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, opened)
		})
	}
}

func TestSealer_RandomNonce(t *testing.T) {
	s := newTestSealer(t)

	a, err := s.Seal("same")
	require.NoError(t, err)
	b, err := s.Seal("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSealer_OpenErrors(t *testing.T) {
	s := newTestSealer(t)
	other := newTestSealer(t)

	sealed, err := s.Seal("value")
	require.NoError(t, err)

	_, err = other.Open(sealed)
	assert.ErrorIs(t, err, ErrOpenFailed, "чужой ключ")

	_, err = s.Open("not base64 !!")
	assert.ErrorContains(t, err, "failed to decode base64")

	_, err = s.Open(base64.StdEncoding.EncodeToString([]byte("short")))
	assert.ErrorContains(t, err, "too short")

	raw, _ := base64.StdEncoding.DecodeString(sealed)
	raw[len(raw)-1] ^= 0xff
	_, err = s.Open(base64.StdEncoding.EncodeToString(raw))
	assert.ErrorIs(t, err, ErrOpenFailed, "подмена данных")
}

func TestNewSealerFromPassphrase(t *testing.T) {
	path := t.TempDir() + "/client.db"

	s1, err := NewSealerFromPassphrase("segredo", path)
	require.NoError(t, err)
	s2, err := NewSealerFromPassphrase("segredo", path)
	require.NoError(t, err)

	sealed, err := s1.Seal("tok")
	require.NoError(t, err)
	opened, err := s2.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "tok", opened)

	_, err = NewSealerFromPassphrase("", path)
	assert.ErrorIs(t, err, ErrEmptyPassphrase)
}
