package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iudanet/marmitaria/pkg/api"
)

// ObtainToken вызывает POST /token/. Тело ответа возвращается как есть.
func (c *Client) ObtainToken(ctx context.Context, username, password string) (*Response, error) {
	resp, err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   pathToken,
		Body:   api.TokenRequest{Username: username, Password: password},
		Schema: SchemaRaw,
		Public: true,
	})
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	return resp, nil
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	resp, err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/register/",
		Body:   req,
		Schema: SchemaJSON,
		Public: true,
	})
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}

	var out api.RegisterResponse
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	if out.Message == "" {
		out.Message = resp.Message()
	}
	if out.Username == "" {
		out.Username = req.Username
	}
	return &out, nil
}

// CurrentUser возвращает каноническую идентичность (GET /user/)
func (c *Client) CurrentUser(ctx context.Context) (*api.UserInfo, error) {
	var user api.UserInfo
	if _, err := c.call(ctx, http.MethodGet, "/user/", nil, nil, &user); err != nil {
		return nil, fmt.Errorf("get current user failed: %w", err)
	}
	return &user, nil
}
