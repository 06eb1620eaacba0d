package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus статус заказа
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid сообщает, является ли статус одним из известных бэкенду
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderItem представляет позицию заказа
type OrderItem struct {
	CreatedAt time.Time       `json:"created_at"`
	Product   *Product        `json:"product,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ID        int64           `json:"id"`
	Order     int64           `json:"order"`
	Quantity  int             `json:"quantity"`
}

// LineTotal возвращает price × quantity позиции
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order представляет заказ
type Order struct {
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	Notes                *string         `json:"notes"`
	DeliveryAddress      *string         `json:"delivery_address"`
	PaymentMethod        *string         `json:"payment_method"`
	PaymentMethodDisplay *string         `json:"payment_method_display"`
	PaymentStatus        *string         `json:"payment_status"`
	PaymentStatusDisplay *string         `json:"payment_status_display"`
	Status               OrderStatus     `json:"status"`
	StatusDisplay        string          `json:"status_display"`
	CustomerUsername     string          `json:"customer_username"`
	Items                []OrderItem     `json:"items"`
	Total                decimal.Decimal `json:"total"`
	DeliveryFee          decimal.Decimal `json:"delivery_fee"`
	ID                   int64           `json:"id"`
	Customer             int64           `json:"customer"`
	IsOpen               bool            `json:"is_open"`
}

// Subtotal возвращает сумму позиций заказа.
// Без позиций используется total, посчитанный сервером.
func (o Order) Subtotal() decimal.Decimal {
	if len(o.Items) == 0 {
		return o.Total
	}
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// GrandTotal возвращает итог к оплате: сумма позиций + стоимость доставки
func (o Order) GrandTotal() decimal.Decimal {
	return o.Subtotal().Add(o.DeliveryFee)
}

// IsPaid сообщает, завершён ли платёж по заказу
func (o Order) IsPaid() bool {
	return o.PaymentStatus != nil && *o.PaymentStatus == string(PaymentCompleted)
}

// CreateOrderRequest тело создания заказа (POST /orders/)
type CreateOrderRequest struct {
	Notes           string          `json:"notes,omitempty"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
}

// UpdateOrderRequest частичное обновление заказа (PATCH /orders/:id/)
type UpdateOrderRequest struct {
	Status          *OrderStatus     `json:"status,omitempty"`
	IsOpen          *bool            `json:"is_open,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	DeliveryAddress *string          `json:"delivery_address,omitempty"`
	DeliveryFee     *decimal.Decimal `json:"delivery_fee,omitempty"`
}

// AddItemRequest добавление позиции (POST /orders/:id/add_item/)
type AddItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// BulkDeleteRequest массовое удаление заказов (POST /orders/bulk_delete/)
type BulkDeleteRequest struct {
	OrderIDs    []int64 `json:"order_ids,omitempty"`
	DeleteAll   bool    `json:"delete_all,omitempty"`
	OnlyOpen    bool    `json:"only_open,omitempty"`
	IncludePaid bool    `json:"include_paid,omitempty"`
}

// BulkDeleteResult результат массового удаления
type BulkDeleteResult struct {
	DeletedIDs   []int64 `json:"deleted_ids"`
	DeletedCount int     `json:"deleted_count"`
}

// OrderFilter параметры выборки списка заказов
type OrderFilter struct {
	PaymentStatus string // completed, pending, none или конкретный статус платежа
}
