package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/marmitaria/internal/client/storage"
)

func TestStorage(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Get(ctx, storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)

	require.NoError(t, s.Put(ctx, map[string]string{
		storage.KeyAccessToken:  "a",
		storage.KeyRefreshToken: "r",
	}))
	assert.Equal(t, 2, s.Len())

	v, err := s.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	require.NoError(t, s.Delete(ctx, storage.AuthKeys...))
	assert.Equal(t, 0, s.Len())

	require.NoError(t, s.Close())
	_, err = s.Get(ctx, storage.KeyAccessToken)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
