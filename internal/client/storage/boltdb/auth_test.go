package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/marmitaria/internal/client/storage"
)

// создаём тестовое BoltDB хранилище с auth bucket
func createTestAuthStorage(t *testing.T) *Storage {
	dbPath := filepath.Join(t.TempDir(), "auth_test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func TestStorage_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := createTestAuthStorage(t)

	// До сохранения ключа нет
	_, err := store.Get(ctx, storage.KeyAccessToken)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)

	err = store.Put(ctx, map[string]string{
		storage.KeyAccessToken:  "a.b.c",
		storage.KeyRefreshToken: "r.s.t",
	})
	require.NoError(t, err)

	access, err := store.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", access)

	refresh, err := store.Get(ctx, storage.KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "r.s.t", refresh)

	// Перезапись одного ключа не трогает остальные
	require.NoError(t, store.Put(ctx, map[string]string{storage.KeyAccessToken: "new"}))
	access, err = store.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "new", access)
	refresh, err = store.Get(ctx, storage.KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "r.s.t", refresh)

	// Удаляем все ключи сессии, включая отсутствующий "user"
	require.NoError(t, store.Delete(ctx, storage.AuthKeys...))
	for _, key := range storage.AuthKeys {
		_, err = store.Get(ctx, key)
		assert.ErrorIs(t, err, storage.ErrAuthNotFound, key)
	}

	// Повторное удаление идемпотентно
	assert.NoError(t, store.Delete(ctx, storage.AuthKeys...))
}

func TestStorage_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, map[string]string{storage.KeyUser: `{"username":"alice"}`}))
	require.NoError(t, store.Close())

	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	user, err := reopened.Get(ctx, storage.KeyUser)
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"alice"}`, user)
}

func TestStorage_ClosedStorage(t *testing.T) {
	ctx := context.Background()
	store, err := New(ctx, filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.Get(ctx, storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, store.Put(ctx, map[string]string{"k": "v"}), storage.ErrStorageClosed)
	assert.ErrorIs(t, store.Delete(ctx, "k"), storage.ErrStorageClosed)
}

func TestStorage_Delete_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store := createTestAuthStorage(t)

	// Для теста удалим bucket auth напрямую
	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketAuth)
	})
	require.NoError(t, err)

	err = store.Delete(ctx, storage.KeyUser)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth bucket not found")

	_, err = store.Get(ctx, storage.KeyUser)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth bucket not found")
}
