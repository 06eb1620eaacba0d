package api

import "time"

// User представляет учётную запись в админской выборке (GET /users/)
type User struct {
	DateJoined  time.Time  `json:"date_joined"`
	LastLogin   *time.Time `json:"last_login"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	FullName    string     `json:"full_name"`
	Groups      []string   `json:"groups"`
	ID          int64      `json:"id"`
	IsActive    bool       `json:"is_active"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
	IsAdmin     bool       `json:"is_admin"`
	IsCaixa     bool       `json:"is_caixa"`
}

// UserCreateRequest создание пользователя администратором
type UserCreateRequest struct {
	Username        string   `json:"username"`
	Email           string   `json:"email"`
	FirstName       string   `json:"first_name,omitempty"`
	LastName        string   `json:"last_name,omitempty"`
	Password        string   `json:"password"`
	PasswordConfirm string   `json:"password_confirm"`
	Groups          []string `json:"groups,omitempty"`
	IsActive        bool     `json:"is_active"`
}

// UserUpdateRequest обновление пользователя (PUT целиком, PATCH частично).
// Пустой пароль сервер игнорирует.
type UserUpdateRequest struct {
	Username  *string  `json:"username,omitempty"`
	Email     *string  `json:"email,omitempty"`
	FirstName *string  `json:"first_name,omitempty"`
	LastName  *string  `json:"last_name,omitempty"`
	Password  *string  `json:"password,omitempty"`
	IsActive  *bool    `json:"is_active,omitempty"`
	Groups    []string `json:"groups,omitempty"`
}

// Group names known to the backend.
const (
	GroupAdmin = "Admin"
	GroupCaixa = "Caixa"
)
