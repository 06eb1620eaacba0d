package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/marmitaria/pkg/api"
)

func registerRequest(username string) api.RegisterRequest {
	return api.RegisterRequest{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "secret1",
		PasswordConfirm: "secret1",
	}
}

// recordedRequest то, что увидел тестовый сервер
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

func newRecordingServer(t *testing.T, status int, response string) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Query = r.URL.RawQuery
		rec.Body = string(body)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, rec
}

func TestClient_Endpoints(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		call      func(c *Client) error
		name      string
		response  string
		wantPath  string
		wantQuery string
		wantBody  string
		method    string
		status    int
	}{
		{
			name:     "create product",
			method:   http.MethodPost,
			wantPath: "/products/",
			wantBody: `{"name":"Marmita G","category":"marmitas","price":"25.9","is_available":true}`,
			response: `{"id":3,"name":"Marmita G","price":"25.90"}`,
			status:   http.StatusCreated,
			call: func(c *Client) error {
				_, err := c.CreateProduct(ctx, api.ProductRequest{
					Name: "Marmita G", Category: api.CategoryMarmitas,
					Price: decimal.RequireFromString("25.90"), IsAvailable: true,
				})
				return err
			},
		},
		{
			name:     "update product uses PUT",
			method:   http.MethodPut,
			wantPath: "/products/3/",
			response: `{"id":3}`,
			status:   http.StatusOK,
			call: func(c *Client) error {
				_, err := c.UpdateProduct(ctx, 3, api.ProductRequest{Name: "x"})
				return err
			},
		},
		{
			name:     "update order uses PATCH",
			method:   http.MethodPatch,
			wantPath: "/orders/8/",
			wantBody: `{"is_open":false}`,
			response: `{"id":8}`,
			status:   http.StatusOK,
			call: func(c *Client) error {
				closed := false
				_, err := c.UpdateOrder(ctx, 8, api.UpdateOrderRequest{IsOpen: &closed})
				return err
			},
		},
		{
			name:      "delete order include paid",
			method:    http.MethodDelete,
			wantPath:  "/orders/8/",
			wantQuery: "include_paid=true",
			status:    http.StatusNoContent,
			call: func(c *Client) error {
				return c.DeleteOrder(ctx, 8, true)
			},
		},
		{
			name:     "delete order default",
			method:   http.MethodDelete,
			wantPath: "/orders/8/",
			status:   http.StatusNoContent,
			call: func(c *Client) error {
				return c.DeleteOrder(ctx, 8, false)
			},
		},
		{
			name:      "list orders filter",
			method:    http.MethodGet,
			wantPath:  "/orders/",
			wantQuery: "payment_status=none",
			response:  `[]`,
			status:    http.StatusOK,
			call: func(c *Client) error {
				_, err := c.ListOrders(ctx, api.OrderFilter{PaymentStatus: "none"})
				return err
			},
		},
		{
			name:     "add item",
			method:   http.MethodPost,
			wantPath: "/orders/8/add_item/",
			wantBody: `{"product_id":3,"quantity":2}`,
			response: `{"success":true,"data":{"id":11,"quantity":2},"message":"Item adicionado ao pedido com sucesso!"}`,
			status:   http.StatusCreated,
			call: func(c *Client) error {
				item, err := c.AddOrderItem(ctx, 8, api.AddItemRequest{ProductID: 3, Quantity: 2})
				if err == nil && item.ID != 11 {
					t.Errorf("item id = %d", item.ID)
				}
				return err
			},
		},
		{
			name:     "remove item",
			method:   http.MethodDelete,
			wantPath: "/order-items/11/",
			status:   http.StatusNoContent,
			call: func(c *Client) error {
				return c.RemoveOrderItem(ctx, 11)
			},
		},
		{
			name:     "finalize payment",
			method:   http.MethodPost,
			wantPath: "/payments/4/finalize/",
			response: `{"success":true,"data":{"id":4,"status":"completed"}}`,
			status:   http.StatusOK,
			call: func(c *Client) error {
				p, err := c.FinalizePayment(ctx, 4)
				if err == nil && p.Status != api.PaymentCompleted {
					t.Errorf("status = %s", p.Status)
				}
				return err
			},
		},
		{
			name:     "patch user",
			method:   http.MethodPatch,
			wantPath: "/users/2/",
			wantBody: `{"is_active":false}`,
			response: `{"id":2}`,
			status:   http.StatusOK,
			call: func(c *Client) error {
				inactive := false
				_, err := c.UpdateUser(ctx, 2, api.UserUpdateRequest{IsActive: &inactive})
				return err
			},
		},
		{
			name:      "sales report",
			method:    http.MethodGet,
			wantPath:  "/reports/sales/",
			wantQuery: "group_by=day&start_date=2025-03-01",
			response:  `{"success":true,"data":{"summary":{"total_revenue":10.5}}}`,
			status:    http.StatusOK,
			call: func(c *Client) error {
				report, err := c.Report(ctx, api.ReportSales, api.ReportFilter{StartDate: &start, GroupBy: "day"})
				if err == nil {
					assert.JSONEq(t, `{"total_revenue":10.5}`, string(report["summary"]))
				}
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, rec := newRecordingServer(t, tt.status, tt.response)
			client := NewClient(server.URL, &fakeCredentials{access: "tok"})

			require.NoError(t, tt.call(client))
			assert.Equal(t, tt.method, rec.Method)
			assert.Equal(t, tt.wantPath, rec.Path)
			assert.Equal(t, tt.wantQuery, rec.Query)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body)
			}
		})
	}
}

func TestClient_ExportCSVIsRaw(t *testing.T) {
	csv := "\uFEFFData,Total\n2025-03-01,\"1.234,50\"\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports/financial/export_csv/", r.URL.Path)
		assert.Empty(t, r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		_, _ = w.Write([]byte(csv))
	}))
	defer server.Close()

	client := NewClient(server.URL, &fakeCredentials{access: "tok"})
	data, err := client.ExportCSV(context.Background(), api.ReportFinancial, api.ReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, csv, string(data))
}

func TestClient_BulkDeleteOrders(t *testing.T) {
	server, rec := newRecordingServer(t, http.StatusOK,
		`{"success":true,"message":"2 pedido(s) deletado(s) com sucesso.","data":{"deleted_count":2,"deleted_ids":[4,5]}}`)

	client := NewClient(server.URL, &fakeCredentials{access: "tok"})
	result, message, err := client.BulkDeleteOrders(context.Background(), api.BulkDeleteRequest{OrderIDs: []int64{4, 5}})
	require.NoError(t, err)

	assert.Equal(t, "/orders/bulk_delete/", rec.Path)
	assert.Equal(t, 2, result.DeletedCount)
	assert.Equal(t, []int64{4, 5}, result.DeletedIDs)
	assert.Equal(t, "2 pedido(s) deletado(s) com sucesso.", message)
}

func TestClient_CurrentUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/", r.URL.Path)
		assert.Equal(t, "Bearer a.b.c", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 7, "username": "alice", "is_admin": false, "is_caixa": true})
	}))
	defer server.Close()

	client := NewClient(server.URL, &fakeCredentials{access: "a.b.c"})
	user, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.True(t, user.IsCaixa)
}

func TestClient_ListProductsPaginated(t *testing.T) {
	server, _ := newRecordingServer(t, http.StatusOK,
		`{"count":2,"next":null,"previous":null,"results":[{"id":1,"name":"A","price":"10.00"},{"id":2,"name":"B","price":"5.00"}]}`)

	client := NewClient(server.URL, &fakeCredentials{})
	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(10)))
}
