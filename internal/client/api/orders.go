package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/iudanet/marmitaria/pkg/api"
)

const pathOrders = "/orders/"

func (c *Client) ListOrders(ctx context.Context, filter api.OrderFilter) ([]api.Order, error) {
	query := url.Values{}
	if filter.PaymentStatus != "" {
		query.Set("payment_status", filter.PaymentStatus)
	}

	var orders []api.Order
	if _, err := c.call(ctx, http.MethodGet, pathOrders, query, nil, &orders); err != nil {
		return nil, fmt.Errorf("list orders failed: %w", err)
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*api.Order, error) {
	var order api.Order
	if _, err := c.call(ctx, http.MethodGet, itemPath(pathOrders, id), nil, nil, &order); err != nil {
		return nil, fmt.Errorf("get order %d failed: %w", id, err)
	}
	return &order, nil
}

func (c *Client) CreateOrder(ctx context.Context, req api.CreateOrderRequest) (*api.Order, error) {
	var order api.Order
	if _, err := c.call(ctx, http.MethodPost, pathOrders, nil, req, &order); err != nil {
		return nil, fmt.Errorf("create order failed: %w", err)
	}
	return &order, nil
}

// UpdateOrder частично обновляет заказ (PATCH)
func (c *Client) UpdateOrder(ctx context.Context, id int64, req api.UpdateOrderRequest) (*api.Order, error) {
	var order api.Order
	if _, err := c.call(ctx, http.MethodPatch, itemPath(pathOrders, id), nil, req, &order); err != nil {
		return nil, fmt.Errorf("update order %d failed: %w", id, err)
	}
	return &order, nil
}

// DeleteOrder удаляет заказ; оплаченный заказ удаляется только с includePaid
func (c *Client) DeleteOrder(ctx context.Context, id int64, includePaid bool) error {
	var query url.Values
	if includePaid {
		query = url.Values{"include_paid": {"true"}}
	}
	if _, err := c.call(ctx, http.MethodDelete, itemPath(pathOrders, id), query, nil, nil); err != nil {
		return fmt.Errorf("delete order %d failed: %w", id, err)
	}
	return nil
}

// BulkDeleteOrders удаляет несколько заказов. message содержит итог от сервера.
func (c *Client) BulkDeleteOrders(ctx context.Context, req api.BulkDeleteRequest) (*api.BulkDeleteResult, string, error) {
	var result api.BulkDeleteResult
	resp, err := c.call(ctx, http.MethodPost, pathOrders+"bulk_delete/", nil, req, &result)
	if err != nil {
		return nil, "", fmt.Errorf("bulk delete orders failed: %w", err)
	}
	return &result, resp.Message(), nil
}

func (c *Client) AddOrderItem(ctx context.Context, orderID int64, req api.AddItemRequest) (*api.OrderItem, error) {
	var item api.OrderItem
	if _, err := c.call(ctx, http.MethodPost, itemPath(pathOrders, orderID)+"add_item/", nil, req, &item); err != nil {
		return nil, fmt.Errorf("add item to order %d failed: %w", orderID, err)
	}
	return &item, nil
}

func (c *Client) RemoveOrderItem(ctx context.Context, itemID int64) error {
	if _, err := c.call(ctx, http.MethodDelete, itemPath("/order-items/", itemID), nil, nil, nil); err != nil {
		return fmt.Errorf("remove order item %d failed: %w", itemID, err)
	}
	return nil
}
