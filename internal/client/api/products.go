package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iudanet/marmitaria/pkg/api"
)

const pathProducts = "/products/"

func (c *Client) ListProducts(ctx context.Context) ([]api.Product, error) {
	var products []api.Product
	if _, err := c.call(ctx, http.MethodGet, pathProducts, nil, nil, &products); err != nil {
		return nil, fmt.Errorf("list products failed: %w", err)
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*api.Product, error) {
	var product api.Product
	if _, err := c.call(ctx, http.MethodGet, itemPath(pathProducts, id), nil, nil, &product); err != nil {
		return nil, fmt.Errorf("get product %d failed: %w", id, err)
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, req api.ProductRequest) (*api.Product, error) {
	var product api.Product
	if _, err := c.call(ctx, http.MethodPost, pathProducts, nil, req, &product); err != nil {
		return nil, fmt.Errorf("create product failed: %w", err)
	}
	return &product, nil
}

// UpdateProduct заменяет товар целиком (PUT)
func (c *Client) UpdateProduct(ctx context.Context, id int64, req api.ProductRequest) (*api.Product, error) {
	var product api.Product
	if _, err := c.call(ctx, http.MethodPut, itemPath(pathProducts, id), nil, req, &product); err != nil {
		return nil, fmt.Errorf("update product %d failed: %w", id, err)
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := c.call(ctx, http.MethodDelete, itemPath(pathProducts, id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete product %d failed: %w", id, err)
	}
	return nil
}
