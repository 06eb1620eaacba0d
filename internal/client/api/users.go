package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iudanet/marmitaria/pkg/api"
)

const pathUsers = "/users/"

func (c *Client) ListUsers(ctx context.Context) ([]api.User, error) {
	var users []api.User
	if _, err := c.call(ctx, http.MethodGet, pathUsers, nil, nil, &users); err != nil {
		return nil, fmt.Errorf("list users failed: %w", err)
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*api.User, error) {
	var user api.User
	if _, err := c.call(ctx, http.MethodGet, itemPath(pathUsers, id), nil, nil, &user); err != nil {
		return nil, fmt.Errorf("get user %d failed: %w", id, err)
	}
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, req api.UserCreateRequest) (*api.User, error) {
	var user api.User
	if _, err := c.call(ctx, http.MethodPost, pathUsers, nil, req, &user); err != nil {
		return nil, fmt.Errorf("create user failed: %w", err)
	}
	return &user, nil
}

// ReplaceUser обновляет пользователя целиком (PUT)
func (c *Client) ReplaceUser(ctx context.Context, id int64, req api.UserUpdateRequest) (*api.User, error) {
	var user api.User
	if _, err := c.call(ctx, http.MethodPut, itemPath(pathUsers, id), nil, req, &user); err != nil {
		return nil, fmt.Errorf("replace user %d failed: %w", id, err)
	}
	return &user, nil
}

// UpdateUser частично обновляет пользователя (PATCH)
func (c *Client) UpdateUser(ctx context.Context, id int64, req api.UserUpdateRequest) (*api.User, error) {
	var user api.User
	if _, err := c.call(ctx, http.MethodPatch, itemPath(pathUsers, id), nil, req, &user); err != nil {
		return nil, fmt.Errorf("update user %d failed: %w", id, err)
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	if _, err := c.call(ctx, http.MethodDelete, itemPath(pathUsers, id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete user %d failed: %w", id, err)
	}
	return nil
}
