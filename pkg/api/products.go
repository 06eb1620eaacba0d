package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCategory категория товара
type ProductCategory string

const (
	CategoryMarmitas        ProductCategory = "marmitas"
	CategoryBebidas         ProductCategory = "bebidas"
	CategorySobremesas      ProductCategory = "sobremesas"
	CategoryAcompanhamentos ProductCategory = "acompanhamentos"
	CategoryOutros          ProductCategory = "outros"
)

// Product представляет товар каталога
type Product struct {
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Category        ProductCategory `json:"category"`
	CategoryDisplay string          `json:"category_display"`
	Image           *string         `json:"image,omitempty"`
	Price           decimal.Decimal `json:"price"`
	ID              int64           `json:"id"`
	IsAvailable     bool            `json:"is_available"`
}

// ProductRequest тело создания/обновления товара
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    ProductCategory `json:"category"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
}
