package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iudanet/marmitaria/pkg/api"
)

const pathPayments = "/payments/"

// CreatePayment регистрирует платёж в статусе pending
func (c *Client) CreatePayment(ctx context.Context, req api.CreatePaymentRequest) (*api.Payment, error) {
	var payment api.Payment
	if _, err := c.call(ctx, http.MethodPost, pathPayments, nil, req, &payment); err != nil {
		return nil, fmt.Errorf("create payment failed: %w", err)
	}
	return &payment, nil
}

func (c *Client) ListPayments(ctx context.Context) ([]api.Payment, error) {
	var payments []api.Payment
	if _, err := c.call(ctx, http.MethodGet, pathPayments, nil, nil, &payments); err != nil {
		return nil, fmt.Errorf("list payments failed: %w", err)
	}
	return payments, nil
}

func (c *Client) GetPayment(ctx context.Context, id int64) (*api.Payment, error) {
	var payment api.Payment
	if _, err := c.call(ctx, http.MethodGet, itemPath(pathPayments, id), nil, nil, &payment); err != nil {
		return nil, fmt.Errorf("get payment %d failed: %w", id, err)
	}
	return &payment, nil
}

// FinalizePayment переводит платёж в completed; после этого заказ не редактируется
func (c *Client) FinalizePayment(ctx context.Context, id int64) (*api.Payment, error) {
	var payment api.Payment
	if _, err := c.call(ctx, http.MethodPost, itemPath(pathPayments, id)+"finalize/", nil, nil, &payment); err != nil {
		return nil, fmt.Errorf("finalize payment %d failed: %w", id, err)
	}
	return &payment, nil
}
