package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iudanet/marmitaria/pkg/api"
)

const pathExpenses = "/expenses/"

func (c *Client) ListExpenses(ctx context.Context, filter api.ReportFilter) ([]api.Expense, error) {
	var expenses []api.Expense
	if _, err := c.call(ctx, http.MethodGet, pathExpenses, filter.Values(), nil, &expenses); err != nil {
		return nil, fmt.Errorf("list expenses failed: %w", err)
	}
	return expenses, nil
}

func (c *Client) GetExpense(ctx context.Context, id int64) (*api.Expense, error) {
	var expense api.Expense
	if _, err := c.call(ctx, http.MethodGet, itemPath(pathExpenses, id), nil, nil, &expense); err != nil {
		return nil, fmt.Errorf("get expense %d failed: %w", id, err)
	}
	return &expense, nil
}

func (c *Client) CreateExpense(ctx context.Context, req api.ExpenseRequest) (*api.Expense, error) {
	var expense api.Expense
	if _, err := c.call(ctx, http.MethodPost, pathExpenses, nil, req, &expense); err != nil {
		return nil, fmt.Errorf("create expense failed: %w", err)
	}
	return &expense, nil
}

func (c *Client) UpdateExpense(ctx context.Context, id int64, req api.ExpenseRequest) (*api.Expense, error) {
	var expense api.Expense
	if _, err := c.call(ctx, http.MethodPatch, itemPath(pathExpenses, id), nil, req, &expense); err != nil {
		return nil, fmt.Errorf("update expense %d failed: %w", id, err)
	}
	return &expense, nil
}

func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	if _, err := c.call(ctx, http.MethodDelete, itemPath(pathExpenses, id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete expense %d failed: %w", id, err)
	}
	return nil
}
