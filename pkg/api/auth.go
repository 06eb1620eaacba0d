package api

// TokenRequest представляет запрос на выдачу пары токенов (POST /token/)
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair представляет ответ эндпоинта выдачи токенов.
// Эндпоинт никогда не оборачивается в envelope, но клиент допускает
// и обёрнутую форму {"data": {...}} (см. auth.SessionStore.Login).
type TokenPair struct {
	Access  string `json:"access"`  // короткоживущий access token (JWT)
	Refresh string `json:"refresh"` // долгоживущий refresh token
}

// RefreshRequest представляет запрос на обновление access token (POST /token/refresh/)
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse представляет ответ на обновление токена.
// Refresh заполнен только если сервер ротирует refresh token.
type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// RegisterRequest представляет запрос на регистрацию (POST /register/)
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// RegisterResponse представляет данные, возвращаемые после регистрации
type RegisterResponse struct {
	Username string `json:"username"`
	Message  string `json:"message,omitempty"`
}

// UserInfo каноническая идентичность текущего пользователя (GET /user/)
type UserInfo struct {
	Email       string   `json:"email"`
	Username    string   `json:"username"`
	Groups      []string `json:"groups"`
	ID          int64    `json:"id"`
	IsSuperuser bool     `json:"is_superuser"`
	IsAdmin     bool     `json:"is_admin"`
	IsCaixa     bool     `json:"is_caixa"`
}
