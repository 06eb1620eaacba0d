package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/marmitaria/internal/client/api"
	"github.com/iudanet/marmitaria/internal/client/errmsg"
	"github.com/iudanet/marmitaria/internal/client/storage"
	"github.com/iudanet/marmitaria/internal/client/storage/memory"
	"github.com/iudanet/marmitaria/internal/models"
	"github.com/iudanet/marmitaria/internal/validation"
	pkgapi "github.com/iudanet/marmitaria/pkg/api"
)

// testEnv хранилище в памяти, настоящий API клиент и тестовый бэкенд
type testEnv struct {
	mem     *memory.Storage
	tokens  *TokenStore
	client  *api.Client
	session *SessionStore
}

func newTestEnv(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	mem := memory.New()
	tokens := NewTokenStore(mem, nil)
	client := api.NewClient(server.URL, tokens)

	return &testEnv{
		mem:     mem,
		tokens:  tokens,
		client:  client,
		session: NewSessionStore(client, tokens, nil),
	}
}

func (e *testEnv) stored(t *testing.T, key string) (string, bool) {
	t.Helper()
	v, err := e.mem.Get(context.Background(), key)
	if err != nil {
		require.ErrorIs(t, err, storage.ErrAuthNotFound)
		return "", false
	}
	return v, true
}

func TestSessionStore_Login(t *testing.T) {
	var userAuth string
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token/":
			var req pkgapi.TokenRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, pkgapi.TokenRequest{Username: "alice", Password: "secret"}, req)
			_, _ = w.Write([]byte(`{"access":"a.b.c","refresh":"r.s.t"}`))
		case "/user/":
			userAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"id":7,"username":"alice","is_admin":false,"is_caixa":true}`))
		default:
			http.NotFound(w, r)
		}
	})

	result := env.session.Login(context.Background(), "alice", "secret")

	require.True(t, result.Success, result.Error)
	assert.Empty(t, result.Warning)
	assert.Equal(t, "Bearer a.b.c", userAuth, "токены сохранены до запроса /user/")

	want := &models.Session{Username: "alice", UserID: 7, IsAdmin: false, IsCaixa: true, Groups: []string{}}
	assert.Equal(t, want, result.Session)
	assert.Equal(t, want, env.session.Current())
	assert.False(t, env.session.IsAdmin())
	assert.True(t, env.session.IsCaixa())

	access, _ := env.stored(t, storage.KeyAccessToken)
	refresh, _ := env.stored(t, storage.KeyRefreshToken)
	user, _ := env.stored(t, storage.KeyUser)
	assert.Equal(t, "a.b.c", access)
	assert.Equal(t, "r.s.t", refresh)
	assert.JSONEq(t, `{"username":"alice","userId":7,"isAdmin":false,"isCaixa":true}`, user)
}

func TestSessionStore_Login_WrappedTokens(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token/":
			_, _ = w.Write([]byte(`{"success":true,"data":{"access":"a.b.c","refresh":"r.s.t"}}`))
		case "/user/":
			_, _ = w.Write([]byte(`{"success":true,"data":{"id":2,"username":"gerente","is_admin":true,"groups":["Admin"]}}`))
		}
	})

	result := env.session.Login(context.Background(), "gerente", "secret")
	require.True(t, result.Success, result.Error)
	assert.True(t, env.session.IsAdmin())
	assert.Equal(t, []string{"Admin"}, env.session.Current().Groups)
}

func TestSessionStore_Login_DegradedFromClaims(t *testing.T) {
	access := mintToken(t, jwt.MapClaims{"token_type": "access", "user_id": 1})

	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token/":
			_ = json.NewEncoder(w).Encode(map[string]string{"access": access, "refresh": "r.s.t"})
		case "/user/":
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	result := env.session.Login(context.Background(), "maria", "secret")

	require.True(t, result.Success)
	assert.True(t, result.Session.IsAdmin, "user_id 1")
	assert.False(t, result.Session.IsCaixa)
	assert.True(t, result.Session.Degraded)
	assert.Equal(t, int64(1), result.Session.UserID)
	assert.Equal(t, "maria", result.Session.Username)

	user, ok := env.stored(t, storage.KeyUser)
	require.True(t, ok, "деградированная сессия тоже сохраняется")
	assert.Contains(t, user, `"isAdmin":true`)
}

func TestSessionStore_Login_DegradedUsernameOnly(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		wantAdmin bool
	}{
		{name: "admin name", username: "ADMIN", wantAdmin: true},
		{name: "regular name", username: "caixa1", wantAdmin: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/token/":
					// Непрозрачные токены: декодировать нечего
					_, _ = w.Write([]byte(`{"access":"opaque","refresh":"opaque-r"}`))
				case "/user/":
					w.WriteHeader(http.StatusBadGateway)
				}
			})

			result := env.session.Login(context.Background(), tt.username, "secret")
			require.True(t, result.Success)
			assert.Equal(t, tt.wantAdmin, result.Session.IsAdmin)
			assert.Equal(t, !tt.wantAdmin, result.Session.IsCaixa)
			assert.Equal(t, tt.username, result.Session.Username)
			assert.Zero(t, result.Session.UserID)
			assert.True(t, result.Session.Degraded)
		})
	}
}

func TestSessionStore_Login_Failures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantError string
	}{
		{name: "invalid credentials", status: http.StatusUnauthorized, body: `{"detail":"No active account"}`, wantError: MsgInvalidCredentials},
		{name: "bad request", status: http.StatusBadRequest, body: `{"password":["Este campo é obrigatório."]}`, wantError: errmsg.MsgGeneric},
		{name: "server error", status: http.StatusInternalServerError, body: ``, wantError: errmsg.MsgServer},
		{name: "missing tokens", status: http.StatusOK, body: `{"access":"only"}`, wantError: MsgTokensMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			result := env.session.Login(context.Background(), "alice", "secret")
			assert.False(t, result.Success)
			assert.Equal(t, tt.wantError, result.Error)
			assert.Nil(t, env.session.Current())

			_, ok := env.stored(t, storage.KeyAccessToken)
			assert.False(t, ok)
		})
	}

	t.Run("empty input", func(t *testing.T) {
		env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		})
		result := env.session.Login(context.Background(), "", "")
		assert.False(t, result.Success)
		assert.Equal(t, validation.MsgFixForm, result.Error)
	})

	t.Run("backend unreachable", func(t *testing.T) {
		tokens := NewTokenStore(memory.New(), nil)
		client := api.NewClient("http://127.0.0.1:1", tokens)
		result := NewSessionStore(client, tokens, nil).Login(context.Background(), "alice", "secret")
		assert.Equal(t, errmsg.MsgConnection, result.Error)
	})
}

// userWriteFailing отказывает в записи ключа user, токены пишутся как обычно
type userWriteFailing struct {
	*memory.Storage
}

func (s userWriteFailing) Put(ctx context.Context, values map[string]string) error {
	if _, ok := values[storage.KeyUser]; ok {
		return errors.New("disk full")
	}
	return s.Storage.Put(ctx, values)
}

func TestSessionStore_Login_SessionNotSaved(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token/":
			_, _ = w.Write([]byte(`{"access":"a.b.c","refresh":"r.s.t"}`))
		case "/user/":
			_, _ = w.Write([]byte(`{"id":7,"username":"alice","is_caixa":true}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	mem := memory.New()
	tokens := NewTokenStore(userWriteFailing{mem}, nil)
	client := api.NewClient(server.URL, tokens)
	store := NewSessionStore(client, tokens, nil)

	result := store.Login(context.Background(), "alice", "secret")

	require.True(t, result.Success)
	assert.Equal(t, MsgSessionNotSaved, result.Warning)
	assert.Equal(t, "alice", store.Current().Username)

	_, err := mem.Get(context.Background(), storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)
}

func TestSessionStore_Logout(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token/":
			_, _ = w.Write([]byte(`{"access":"a.b.c","refresh":"r.s.t"}`))
		case "/user/":
			_, _ = w.Write([]byte(`{"id":1,"username":"admin","is_admin":true}`))
		default:
			t.Errorf("logout must not call the backend: %s", r.URL.Path)
		}
	})

	ctx := context.Background()
	require.True(t, env.session.Login(ctx, "admin", "secret").Success)
	require.True(t, env.session.IsAdmin())

	require.NoError(t, env.session.Logout(ctx))

	assert.Equal(t, 0, env.mem.Len())
	assert.Nil(t, env.session.Current())
	assert.False(t, env.session.IsAdmin())
	assert.False(t, env.session.IsCaixa())
}

func TestSessionStore_Init(t *testing.T) {
	ctx := context.Background()

	t.Run("restores persisted session", func(t *testing.T) {
		mem := memory.New()
		require.NoError(t, mem.Put(ctx, map[string]string{
			storage.KeyAccessToken:  "a",
			storage.KeyRefreshToken: "r",
			storage.KeyUser:         `{"username":"alice","userId":7,"isAdmin":false,"isCaixa":true}`,
		}))
		tokens := NewTokenStore(mem, nil)
		s := NewSessionStore(api.NewClient("http://127.0.0.1:1", tokens), tokens, nil)

		assert.True(t, s.Loading())
		require.NoError(t, s.Init(ctx))
		assert.False(t, s.Loading())
		assert.Equal(t, "alice", s.Current().Username)
		assert.True(t, s.IsCaixa())
	})

	t.Run("corrupt session drops only user key", func(t *testing.T) {
		mem := memory.New()
		require.NoError(t, mem.Put(ctx, map[string]string{
			storage.KeyAccessToken:  "a",
			storage.KeyRefreshToken: "r",
			storage.KeyUser:         `{not json`,
		}))
		tokens := NewTokenStore(mem, nil)
		s := NewSessionStore(api.NewClient("http://127.0.0.1:1", tokens), tokens, nil)

		require.NoError(t, s.Init(ctx))
		assert.False(t, s.Loading())
		assert.Nil(t, s.Current())

		_, err := mem.Get(ctx, storage.KeyUser)
		assert.ErrorIs(t, err, storage.ErrAuthNotFound)
		access, err := mem.Get(ctx, storage.KeyAccessToken)
		require.NoError(t, err)
		assert.Equal(t, "a", access)
	})

	t.Run("empty storage", func(t *testing.T) {
		tokens := NewTokenStore(memory.New(), nil)
		s := NewSessionStore(api.NewClient("http://127.0.0.1:1", tokens), tokens, nil)
		require.NoError(t, s.Init(ctx))
		assert.Nil(t, s.Current())
		assert.False(t, s.IsAdmin())
	})
}

func TestSessionStore_ForcedLogoutClearsMemory(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token/":
			_, _ = w.Write([]byte(`{"access":"a.b.c","refresh":"r.s.t"}`))
		case "/user/":
			_, _ = w.Write([]byte(`{"id":7,"username":"alice","is_caixa":true}`))
		case "/token/refresh/":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Token is blacklisted"}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	})

	ctx := context.Background()
	require.True(t, env.session.Login(ctx, "alice", "secret").Success)
	require.NotNil(t, env.session.Current())

	_, err := env.client.ListOrders(ctx, pkgapi.OrderFilter{})
	require.Error(t, err)

	assert.Nil(t, env.session.Current(), "сессия в памяти сброшена конвейером")
	assert.Equal(t, 0, env.mem.Len())
}

func TestSessionStore_Register(t *testing.T) {
	var called bool
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, "/register/", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"message":"Usuário criado com sucesso!","data":{"username":"joao"}}`))
	})

	ctx := context.Background()

	_, err := env.session.Register(ctx, pkgapi.RegisterRequest{Username: "jo", Password: "123", PasswordConfirm: "321"})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "username")
	assert.Contains(t, verrs, "password")
	assert.Contains(t, verrs, "password_confirm")
	assert.False(t, called, "форма с ошибками не отправляется")

	resp, err := env.session.Register(ctx, pkgapi.RegisterRequest{
		Username: "joao", Email: "joao@example.com", Password: "segredo", PasswordConfirm: "segredo",
	})
	require.NoError(t, err)
	assert.Equal(t, "joao", resp.Username)
	assert.Equal(t, "Usuário criado com sucesso!", resp.Message)
}
