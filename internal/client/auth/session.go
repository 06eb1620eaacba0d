package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/iudanet/marmitaria/internal/client/api"
	"github.com/iudanet/marmitaria/internal/client/errmsg"
	"github.com/iudanet/marmitaria/internal/models"
	"github.com/iudanet/marmitaria/internal/validation"
	pkgapi "github.com/iudanet/marmitaria/pkg/api"
)

// Сообщения входа
const (
	MsgInvalidCredentials = "Usuário ou senha incorretos. Verifique suas credenciais e tente novamente."
	MsgTokensMissing      = "Tokens de autenticação não recebidos do servidor"
	MsgStorageFailed      = "Não foi possível salvar a sessão localmente."
	MsgSessionNotSaved    = "Login realizado, mas o perfil não foi salvo localmente; o próximo comando pedirá login novamente."
)

// Backend is the part of the API client the session store needs
type Backend interface {
	ObtainToken(ctx context.Context, username, password string) (*api.Response, error)
	CurrentUser(ctx context.Context) (*pkgapi.UserInfo, error)
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error)
	OnSessionEnd(fn func())
}

// LoginResult содержит результат входа. Login никогда не возвращает error.
// Warning заполняется, когда вход успешен, но сессия не сохранилась.
type LoginResult struct {
	Session *models.Session
	Error   string
	Warning string
	Success bool
}

// SessionStore владеет состоянием аутентификации процесса:
// текущая сессия и флаг загрузки. Меняется только своими методами.
type SessionStore struct {
	backend Backend
	tokens  *TokenStore
	logger  *slog.Logger
	session *models.Session
	loading bool
	mu      sync.RWMutex
}

// NewSessionStore создает хранилище сессии и подписывается на принудительный
// выход из конвейера API
func NewSessionStore(backend Backend, tokens *TokenStore, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &SessionStore{
		backend: backend,
		tokens:  tokens,
		logger:  logger,
		loading: true,
	}
	backend.OnSessionEnd(s.reset)
	return s
}

// Init восстанавливает сессию из хранилища без сетевых вызовов.
// Нечитаемая запись user удаляется, токены не трогаются.
func (s *SessionStore) Init(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	raw, err := s.tokens.LoadSession(ctx)
	switch {
	case errors.Is(err, ErrNoSession):
		return nil
	case errors.Is(err, ErrSessionCorrupt):
		s.logger.Warn("discarding unreadable session", "error", err)
		return s.tokens.DeleteSession(ctx)
	case err != nil:
		return fmt.Errorf("failed to load session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		s.logger.Warn("discarding corrupt session", "error", err)
		return s.tokens.DeleteSession(ctx)
	}

	s.mu.Lock()
	s.session = &session
	s.mu.Unlock()
	return nil
}

// Login выполняет вход: токены, сохранение, идентичность
func (s *SessionStore) Login(ctx context.Context, username, password string) LoginResult {
	if err := validation.ValidateLogin(username, password); err != nil {
		return LoginResult{Error: validation.MsgFixForm}
	}

	// 1. Получаем пару токенов
	resp, err := s.backend.ObtainToken(ctx, username, password)
	if err != nil {
		if api.IsStatus(err, http.StatusUnauthorized) {
			return LoginResult{Error: MsgInvalidCredentials}
		}
		return LoginResult{Error: errmsg.Message(err)}
	}

	// 2. Извлекаем токены из {access, refresh} или {data: {access, refresh}}
	access, refresh, err := extractTokens(resp.Body)
	if err != nil {
		s.logger.Error("token response without tokens", "error", err)
		return LoginResult{Error: MsgTokensMissing}
	}

	// 3. Сохраняем токены до любого следующего запроса
	if err := s.tokens.SaveTokens(ctx, access, refresh); err != nil {
		s.logger.Error("failed to save tokens", "error", err)
		return LoginResult{Error: MsgStorageFailed}
	}

	// 4. Каноническая идентичность
	var session *models.Session
	info, err := s.backend.CurrentUser(ctx)
	if err == nil {
		session = sessionFromUserInfo(info)
	} else {
		// 5. Деградированный режим: данные из токена без проверки подписи
		s.logger.Warn("user info unavailable, using degraded identity", "error", err)
		session = degradedSession(access, username)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return LoginResult{Error: MsgStorageFailed}
	}
	result := LoginResult{Success: true, Session: session.Clone()}
	if err := s.tokens.SaveSession(ctx, string(data)); err != nil {
		s.logger.Error("failed to save session", "error", err)
		result.Warning = MsgSessionNotSaved
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	return result
}

// Logout удаляет ключи и сессию локально, без обращения к серверу
func (s *SessionStore) Logout(ctx context.Context) error {
	s.reset()
	if err := s.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// Register проверяет форму и регистрирует пользователя.
// Ошибка формы: validation.Errors, ошибка сервера: *api.ResponseError.
func (s *SessionStore) Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error) {
	if err := validation.ValidateSignup(req); err != nil {
		return nil, err
	}
	return s.backend.Register(ctx, req)
}

// Current returns a copy of the session, nil when logged out
func (s *SessionStore) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Clone()
}

// IsAdmin is false without a session
func (s *SessionStore) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil && s.session.IsAdmin
}

// IsCaixa is false without a session
func (s *SessionStore) IsCaixa() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil && s.session.IsCaixa
}

// Loading is true until Init completes
func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *SessionStore) reset() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
}

func extractTokens(body []byte) (string, string, error) {
	var direct pkgapi.TokenPair
	if err := json.Unmarshal(body, &direct); err == nil && direct.Access != "" && direct.Refresh != "" {
		return direct.Access, direct.Refresh, nil
	}

	var wrapped struct {
		Data pkgapi.TokenPair `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Data.Access != "" && wrapped.Data.Refresh != "" {
		return wrapped.Data.Access, wrapped.Data.Refresh, nil
	}

	return "", "", ErrTokensMissing
}

func sessionFromUserInfo(info *pkgapi.UserInfo) *models.Session {
	groups := info.Groups
	if groups == nil {
		groups = []string{}
	}
	return &models.Session{
		Username: info.Username,
		UserID:   info.ID,
		Email:    info.Email,
		IsAdmin:  info.IsAdmin,
		IsCaixa:  info.IsCaixa,
		Groups:   groups,
	}
}

// degradedSession собирает сессию только из токена или только из введённого username,
// источники не смешиваются
func degradedSession(access, username string) *models.Session {
	identity, err := DecodeUnverifiedClaims(access)
	if err != nil {
		isAdmin := models.LooksLikeAdmin(0, username)
		return &models.Session{
			Username: username,
			IsAdmin:  isAdmin,
			IsCaixa:  !isAdmin,
			Degraded: true,
		}
	}

	name := identity.Username
	if name == "" {
		name = username
	}
	isAdmin := models.LooksLikeAdmin(identity.UserID, username)
	return &models.Session{
		Username: name,
		UserID:   identity.UserID,
		Email:    identity.Email,
		IsAdmin:  isAdmin,
		IsCaixa:  !isAdmin,
		Groups:   []string{},
		Degraded: true,
	}
}
