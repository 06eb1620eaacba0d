// Package validation checks form input before it reaches the backend.
// Errors are field maps shaped like the backend's, so the CLI prints both the same way.
package validation

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/iudanet/marmitaria/pkg/api"
)

// UsernamePattern повторяет валидатор username бэкенда: буквы, цифры и @.+-_
var UsernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// EmailPattern форма "что-то@домен.зона"
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 3
	// MaxUsernameLen максимальная длина username (ограничение бэкенда)
	MaxUsernameLen = 150
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 6
)

// Сообщения ошибок полей
const (
	MsgRequired         = "Este campo é obrigatório."
	MsgUsernameTooShort = "Usuário deve ter pelo menos 3 caracteres"
	MsgUsernameTooLong  = "Usuário deve ter no máximo 150 caracteres"
	MsgUsernameInvalid  = "Usuário pode conter apenas letras, números e @/./+/-/_"
	MsgEmailInvalid     = "Email inválido"
	MsgPasswordTooShort = "Senha deve ter pelo menos 6 caracteres"
	MsgPasswordMismatch = "As senhas não coincidem"
	MsgFixForm          = "Por favor, corrija os erros no formulário"
)

// Errors is a field-keyed validation failure
type Errors map[string][]string

// Error implements error
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e[field], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a message to field
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Err returns nil when there are no errors
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ValidateUsername проверяет username по правилам бэкенда
func ValidateUsername(username string) string {
	n := utf8.RuneCountInString(username)
	switch {
	case n == 0:
		return MsgRequired
	case n < MinUsernameLen:
		return MsgUsernameTooShort
	case n > MaxUsernameLen:
		return MsgUsernameTooLong
	case !UsernamePattern.MatchString(username):
		return MsgUsernameInvalid
	}
	return ""
}

// ValidateLogin требует непустые username и пароль
func ValidateLogin(username, password string) error {
	errs := Errors{}
	if strings.TrimSpace(username) == "" {
		errs.Add("username", MsgRequired)
	}
	if password == "" {
		errs.Add("password", MsgRequired)
	}
	return errs.Err()
}

// ValidateSignup проверяет форму регистрации.
// Email необязателен, но если задан, должен быть похож на адрес.
func ValidateSignup(req api.RegisterRequest) error {
	errs := Errors{}

	if msg := ValidateUsername(req.Username); msg != "" {
		errs.Add("username", msg)
	}
	if req.Email != "" && !EmailPattern.MatchString(req.Email) {
		errs.Add("email", MsgEmailInvalid)
	}
	if utf8.RuneCountInString(req.Password) < MinPasswordLen {
		errs.Add("password", MsgPasswordTooShort)
	}
	if req.Password != req.PasswordConfirm {
		errs.Add("password_confirm", MsgPasswordMismatch)
	}

	return errs.Err()
}
