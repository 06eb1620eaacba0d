package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/marmitaria/internal/client/iocli"
	"github.com/iudanet/marmitaria/internal/client/storage"
	"github.com/iudanet/marmitaria/internal/config"
)

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	code := run(context.Background(), []string{"--version"}, iocli.NewStdioFrom(strings.NewReader(""), &out), io.Discard)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Version:    dev")
}

func TestRun_BadFlags(t *testing.T) {
	var stderr bytes.Buffer
	code := run(context.Background(), []string{"--driver", "redis", "status"}, iocli.NewStdioFrom(strings.NewReader(""), io.Discard), &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "unknown storage driver")
}

// Вход и статус в двух запусках разделяют сессию через bolt-файл
func TestRun_LoginThenStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token/":
			_, _ = w.Write([]byte(`{"access":"a.b.c","refresh":"r.s.t"}`))
		case "/api/user/":
			_, _ = w.Write([]byte(`{"id":7,"username":"alice","is_caixa":true}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	dbPath := filepath.Join(t.TempDir(), "session.db")
	base := []string{"--server", server.URL + "/api/", "--db", dbPath}

	var out bytes.Buffer
	term := iocli.NewStdioFrom(strings.NewReader("alice\nsecret\n"), &out)
	code := run(context.Background(), append(base, "login"), term, io.Discard)
	require.Equal(t, 0, code, out.String())

	out.Reset()
	code = run(context.Background(), append(base, "status"), iocli.NewStdioFrom(strings.NewReader(""), &out), io.Discard)
	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Status: autenticado")
	assert.Contains(t, out.String(), "Usuário: alice")
}

func TestRun_NoCommand(t *testing.T) {
	var out bytes.Buffer
	code := run(context.Background(), []string{"--driver", "memory"}, iocli.NewStdioFrom(strings.NewReader(""), &out), io.Discard)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "Comandos:")
}

func TestOpenStorage(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, driver := range []string{config.DriverBolt, config.DriverSQLite, config.DriverMemory} {
		st, err := openStorage(ctx, config.StorageConfig{Driver: driver, Path: filepath.Join(dir, driver+".db")})
		require.NoError(t, err, driver)

		require.NoError(t, st.Put(ctx, map[string]string{storage.KeyUser: "{}"}), driver)
		v, err := st.Get(ctx, storage.KeyUser)
		require.NoError(t, err, driver)
		assert.Equal(t, "{}", v)
		require.NoError(t, st.Close())
	}

	_, err := openStorage(ctx, config.StorageConfig{Driver: "redis"})
	assert.ErrorIs(t, err, storage.ErrUnknownDriver)
}

func TestNewSealer(t *testing.T) {
	sealer, err := newSealer(config.StorageConfig{Path: "x.db"})
	require.NoError(t, err)
	assert.Nil(t, sealer)

	sealer, err = newSealer(config.StorageConfig{Path: "x.db", Passphrase: "segredo"})
	require.NoError(t, err)
	assert.NotNil(t, sealer)
}
