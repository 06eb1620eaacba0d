package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/iudanet/marmitaria/pkg/api"
)

// refreshSession обновляет access token после 401.
// Параллельные 401 ждут один общий запрос к /token/refresh/.
// При неудаче хранилище очищается, навигатор уводит на /login.
// Общий запрос не зависит от отмены контекста вызывающего: его ограничивает
// таймаут http.Client. Отменённый вызывающий просто перестаёт ждать.
func (c *Client) refreshSession(ctx context.Context) error {
	shared := context.WithoutCancel(ctx)

	ch := c.refreshes.DoChan("refresh", func() (any, error) {
		return nil, c.doRefresh(shared)
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.logger.Debug("joined in-flight token refresh")
		}
		return res.Err
	}
}

func (c *Client) doRefresh(ctx context.Context) error {
	refresh, err := c.creds.RefreshToken(ctx)
	if err != nil {
		c.logger.Warn("failed to read refresh token", "error", err)
	}
	if refresh == "" {
		c.endSession(ctx)
		return ErrNoRefreshToken
	}

	pair, err := c.requestRefresh(ctx, refresh)
	if err != nil {
		c.logger.Info("token refresh failed, ending session", "error", err)
		c.endSession(ctx)
		return err
	}

	// Сервер может не ротировать refresh token
	if pair.Refresh == "" {
		pair.Refresh = refresh
	}
	if err := c.creds.SaveTokens(ctx, pair.Access, pair.Refresh); err != nil {
		c.endSession(ctx)
		return fmt.Errorf("failed to save refreshed tokens: %w", err)
	}

	c.logger.Debug("access token refreshed")
	return nil
}

// requestRefresh отдельный вызов /token/refresh/ мимо конвейера:
// без Authorization, без нормализации, без повторного refresh
func (c *Client) requestRefresh(ctx context.Context, refresh string) (*api.RefreshResponse, error) {
	requestID := uuid.NewString()

	jsonData, err := json.Marshal(api.RefreshRequest{Refresh: refresh})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pathRefresh, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("POST %s: request failed: %w", pathRefresh, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("POST %s: failed to read response body: %w", pathRefresh, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newResponseError(http.MethodPost, pathRefresh, requestID, resp.StatusCode, body)
	}

	var pair api.RefreshResponse
	if err := json.Unmarshal(body, &pair); err != nil {
		return nil, fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if pair.Access == "" {
		// Допускаем обёрнутую форму {"data": {"access": ...}}
		var env struct {
			Data api.RefreshResponse `json:"data"`
		}
		if err := json.Unmarshal(body, &env); err == nil {
			pair = env.Data
		}
	}
	if pair.Access == "" {
		return nil, ErrNoAccessToken
	}

	return &pair, nil
}

// endSession очищает все три ключа, уводит на /login и оповещает подписчиков
func (c *Client) endSession(ctx context.Context) {
	if err := c.creds.Clear(ctx); err != nil {
		c.logger.Error("failed to clear stored credentials", "error", err)
	}

	if nav := c.navigator(); nav != nil && nav.Location() != RouteLogin {
		nav.Redirect(RouteLogin)
	}

	for _, fn := range c.sessionListeners() {
		fn()
	}
}
