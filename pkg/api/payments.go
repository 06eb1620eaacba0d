package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodDebitCard    PaymentMethod = "debit_card"
	MethodPix          PaymentMethod = "pix"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

// Valid сообщает, является ли способ оплаты известным бэкенду
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCreditCard, MethodDebitCard, MethodPix, MethodBankTransfer:
		return true
	}
	return false
}

// PaymentStatus статус платежа
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
)

// Payment представляет платёж по заказу.
// Создание и финализация это разные переходы: после POST /payments/ платёж
// находится в pending, завершает его только POST /payments/:id/finalize/.
type Payment struct {
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	PaidAt        *time.Time      `json:"paid_at"`
	TransactionID *string         `json:"transaction_id"`
	Notes         *string         `json:"notes"`
	Method        PaymentMethod   `json:"method"`
	MethodDisplay string          `json:"method_display"`
	Status        PaymentStatus   `json:"status"`
	StatusDisplay string          `json:"status_display"`
	Amount        decimal.Decimal `json:"amount"`
	ID            int64           `json:"id"`
	Order         int64           `json:"order"`
}

// CreatePaymentRequest тело создания платежа
type CreatePaymentRequest struct {
	TransactionID string        `json:"transaction_id,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	Method        PaymentMethod `json:"method"`
	Order         int64         `json:"order"`
}
