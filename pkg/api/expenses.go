package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory категория расхода
type ExpenseCategory string

const (
	ExpenseIngredients ExpenseCategory = "ingredients"
	ExpenseUtilities   ExpenseCategory = "utilities"
	ExpenseRent        ExpenseCategory = "rent"
	ExpenseSalary      ExpenseCategory = "salary"
	ExpenseDelivery    ExpenseCategory = "delivery"
	ExpenseMarketing   ExpenseCategory = "marketing"
	ExpenseMaintenance ExpenseCategory = "maintenance"
	ExpenseSupplies    ExpenseCategory = "supplies"
	ExpenseOther       ExpenseCategory = "other"
)

// Expense представляет расход (saída de caixa)
type Expense struct {
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Notes           *string         `json:"notes"`
	Category        ExpenseCategory `json:"category"`
	CategoryDisplay string          `json:"category_display"`
	Description     string          `json:"description"`
	UserUsername    string          `json:"user_username"`
	Amount          decimal.Decimal `json:"amount"`
	ID              int64           `json:"id"`
	User            int64           `json:"user"`
}

// ExpenseRequest тело создания/обновления расхода
type ExpenseRequest struct {
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Notes       string          `json:"notes,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// TotalExpenses суммирует расходы списка
func TotalExpenses(expenses []Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}
