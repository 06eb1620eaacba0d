package api

import (
	"context"

	"github.com/iudanet/marmitaria/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI is the backend surface used by the session store and the CLI
type ClientAPI interface {
	// Auth
	ObtainToken(ctx context.Context, username, password string) (*Response, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)
	CurrentUser(ctx context.Context) (*api.UserInfo, error)
	OnSessionEnd(fn func())

	// Products
	ListProducts(ctx context.Context) ([]api.Product, error)
	GetProduct(ctx context.Context, id int64) (*api.Product, error)
	CreateProduct(ctx context.Context, req api.ProductRequest) (*api.Product, error)
	UpdateProduct(ctx context.Context, id int64, req api.ProductRequest) (*api.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	// Orders
	ListOrders(ctx context.Context, filter api.OrderFilter) ([]api.Order, error)
	GetOrder(ctx context.Context, id int64) (*api.Order, error)
	CreateOrder(ctx context.Context, req api.CreateOrderRequest) (*api.Order, error)
	UpdateOrder(ctx context.Context, id int64, req api.UpdateOrderRequest) (*api.Order, error)
	DeleteOrder(ctx context.Context, id int64, includePaid bool) error
	BulkDeleteOrders(ctx context.Context, req api.BulkDeleteRequest) (*api.BulkDeleteResult, string, error)
	AddOrderItem(ctx context.Context, orderID int64, req api.AddItemRequest) (*api.OrderItem, error)
	RemoveOrderItem(ctx context.Context, itemID int64) error

	// Payments
	CreatePayment(ctx context.Context, req api.CreatePaymentRequest) (*api.Payment, error)
	ListPayments(ctx context.Context) ([]api.Payment, error)
	GetPayment(ctx context.Context, id int64) (*api.Payment, error)
	FinalizePayment(ctx context.Context, id int64) (*api.Payment, error)

	// Expenses
	ListExpenses(ctx context.Context, filter api.ReportFilter) ([]api.Expense, error)
	GetExpense(ctx context.Context, id int64) (*api.Expense, error)
	CreateExpense(ctx context.Context, req api.ExpenseRequest) (*api.Expense, error)
	UpdateExpense(ctx context.Context, id int64, req api.ExpenseRequest) (*api.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error

	// Users (admin)
	ListUsers(ctx context.Context) ([]api.User, error)
	GetUser(ctx context.Context, id int64) (*api.User, error)
	CreateUser(ctx context.Context, req api.UserCreateRequest) (*api.User, error)
	ReplaceUser(ctx context.Context, id int64, req api.UserUpdateRequest) (*api.User, error)
	UpdateUser(ctx context.Context, id int64, req api.UserUpdateRequest) (*api.User, error)
	DeleteUser(ctx context.Context, id int64) error

	// Reports
	Dashboard(ctx context.Context) (*api.Dashboard, error)
	Report(ctx context.Context, kind api.ReportKind, filter api.ReportFilter) (api.Report, error)
	ExportCSV(ctx context.Context, kind api.ReportKind, filter api.ReportFilter) ([]byte, error)
}

// Compile-time check that Client implements ClientAPI
var _ ClientAPI = (*Client)(nil)
