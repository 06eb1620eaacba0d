package api

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"
)

// ReportKind идентифицирует отчёт в /reports/{kind}/
type ReportKind string

const (
	ReportSales     ReportKind = "sales"
	ReportProducts  ReportKind = "products"
	ReportOrders    ReportKind = "orders"
	ReportFinancial ReportKind = "financial"
	ReportExpenses  ReportKind = "expenses"
)

// ReportKinds перечисляет отчёты, поддерживающие export_csv
var ReportKinds = []ReportKind{ReportSales, ReportProducts, ReportOrders, ReportFinancial, ReportExpenses}

// ParseReportKind проверяет имя отчёта
func ParseReportKind(s string) (ReportKind, bool) {
	for _, k := range ReportKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// ReportFilter фильтры отчётов. Пустые поля в запрос не попадают.
type ReportFilter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	IsOpen        *bool
	GroupBy       string // day, week, month (sales)
	PaymentMethod string
	Category      string
	Status        string
	Limit         int
}

// Values сериализует фильтр в query-параметры
func (f ReportFilter) Values() url.Values {
	v := url.Values{}
	if f.StartDate != nil {
		v.Set("start_date", f.StartDate.Format(time.DateOnly))
	}
	if f.EndDate != nil {
		v.Set("end_date", f.EndDate.Format(time.DateOnly))
	}
	if f.GroupBy != "" {
		v.Set("group_by", f.GroupBy)
	}
	if f.PaymentMethod != "" {
		v.Set("payment_method", f.PaymentMethod)
	}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	if f.IsOpen != nil {
		v.Set("is_open", strconv.FormatBool(*f.IsOpen))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	return v
}

// DashboardSummary агрегаты дашборда. Сервер отдаёт суммы числами (float).
type DashboardSummary struct {
	TotalRevenue         float64 `json:"total_revenue"`
	TotalProductsRevenue float64 `json:"total_products_revenue"`
	TotalDeliveryFees    float64 `json:"total_delivery_fees"`
	RecentRevenue        float64 `json:"recent_revenue"`
	TotalExpenses        float64 `json:"total_expenses"`
	RecentExpenses       float64 `json:"recent_expenses"`
	Profit               float64 `json:"profit"`
	RecentProfit         float64 `json:"recent_profit"`
	TotalOrders          int     `json:"total_orders"`
	OpenOrders           int     `json:"open_orders"`
	ClosedOrders         int     `json:"closed_orders"`
	PendingPayments      int     `json:"pending_payments"`
}

// TopProduct строка топа продаж
type TopProduct struct {
	Name          string  `json:"name"`
	TotalRevenue  float64 `json:"total_revenue"`
	ID            int64   `json:"id"`
	TotalQuantity int     `json:"total_quantity"`
}

// StatusCount количество заказов в статусе
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Dashboard ответ GET /reports/dashboard/
type Dashboard struct {
	Period         map[string]string `json:"period"`
	TopProducts    []TopProduct      `json:"top_products"`
	OrdersByStatus []StatusCount     `json:"orders_by_status"`
	Summary        DashboardSummary  `json:"summary"`
}

// Report ответ остальных отчётов. Структура зависит от вида отчёта,
// поэтому разделы остаются сырыми JSON-документами.
type Report map[string]json.RawMessage
