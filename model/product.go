package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID         uint64          `db:"id" json:"id"`
	SKU        string          `db:"sku" json:"sku"`
	Name       string          `db:"name" json:"name"`
	CategoryID uint64          `db:"category_id" json:"category_id"`
	Price      decimal.Decimal `db:"price" json:"price"`
	Cost       decimal.Decimal `db:"cost" json:"cost"`
	MinStock   int64           `db:"min_stock" json:"min_stock"`
	MaxStock   int64           `db:"max_stock" json:"max_stock"`
	Unit       string          `db:"unit" json:"unit"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  *time.Time      `db:"updated_at" json:"updated_at,omitempty"`
}

type ProductRequest struct {
	SKU        string          `json:"sku" validate:"required"`
	Name       string          `json:"name" validate:"required"`
	CategoryID uint64          `json:"category_id" validate:"required"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	MinStock   int64           `json:"min_stock" validate:"gte=0"`
	MaxStock   int64           `json:"max_stock" validate:"gte=0"`
	Unit       string          `json:"unit" validate:"required"`
}

type ProductListResponse struct {
	Items      []Product `json:"items"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	PerPage    int       `json:"per_page"`
}
