package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// loggingTransport логирует каждый HTTP запрос клиента.
// Логирует метод, путь, статус, время выполнения.
// НЕ логирует sensitive данные (токены, пароли, тела запросов)
type loggingTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

func newLoggingTransport(next http.RoundTripper, logger *slog.Logger) *loggingTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{next: next, logger: logger}
}

// RoundTrip implements http.RoundTripper
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)
	attrs := []any{
		"method", req.Method,
		"path", sanitizePath(req.URL.Path),
		"request_id", req.Header.Get("X-Request-ID"),
		"duration_ms", duration.Milliseconds(),
	}

	if err != nil {
		t.logger.Log(req.Context(), slog.LevelWarn, "HTTP request failed", append(attrs, "error", err)...)
		return nil, err
	}

	// Определяем уровень логирования на основе статуса
	logLevel := slog.LevelDebug
	if resp.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if resp.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}

	t.logger.Log(req.Context(), logLevel, "HTTP request", append(attrs, "status", resp.StatusCode)...)

	return resp, nil
}

// sanitizePath заменяет числовые идентификаторы на :id,
// чтобы строки лога группировались по эндпоинту
// Например: /api/orders/42/add_item/ -> /api/orders/:id/add_item/
func sanitizePath(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if part != "" && strings.Trim(part, "0123456789") == "" {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}
