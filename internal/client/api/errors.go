package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iudanet/marmitaria/pkg/api"
)

// Sentinel errors
var (
	// ErrNoRefreshToken means a 401 arrived while no refresh token was stored
	ErrNoRefreshToken = errors.New("no refresh token stored")
	// ErrNoAccessToken means the refresh endpoint answered without an access token
	ErrNoAccessToken = errors.New("refresh response carries no access token")
)

// DefaultErrorMessage fills the error field when the backend gave neither detail nor message
const DefaultErrorMessage = "Ocorreu um erro"

// ResponseError is a backend response with a non-2xx status.
// Body holds the normalized error envelope {success:false, error, errors}.
type ResponseError struct {
	Method     string
	Path       string
	RequestID  string
	Body       []byte
	StatusCode int
}

func newResponseError(method, path, requestID string, status int, raw []byte) *ResponseError {
	return &ResponseError{
		Method:     method,
		Path:       path,
		RequestID:  requestID,
		Body:       normalizeErrorBody(raw),
		StatusCode: status,
	}
}

func (e *ResponseError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Message returns the error field of the normalized body, if any
func (e *ResponseError) Message() string {
	var body struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return ""
	}
	if s, ok := body.Error.(string); ok {
		return s
	}
	return ""
}

// IsStatus reports whether err is a ResponseError with the given status
func IsStatus(err error, status int) bool {
	var respErr *ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == status
}

// normalizeErrorBody оборачивает тело ошибки в {success:false, error, errors},
// если бэкенд не вернул ни success, ни error. Пустое тело остаётся пустым.
func normalizeErrorBody(raw []byte) []byte {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var original json.RawMessage = raw
	var fields map[string]any

	if json.Valid(raw) {
		if err := json.Unmarshal(raw, &fields); err == nil {
			if truthy(fields["success"]) || truthy(fields["error"]) {
				return raw
			}
		}
	} else {
		// HTML страница прокси и т.п. сохраняем как JSON строку
		original, _ = json.Marshal(string(raw))
	}

	msg := DefaultErrorMessage
	for _, key := range []string{"detail", "message"} {
		if s, ok := fields[key].(string); ok && s != "" {
			msg = s
			break
		}
	}

	normalized, err := json.Marshal(api.ErrorBody{
		Error:   msg,
		Errors:  original,
		Success: false,
	})
	if err != nil {
		return raw
	}
	return normalized
}

// truthy повторяет проверку "поле задано и не пустое"
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}
