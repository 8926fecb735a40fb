package model

import (
	"time"

	"github.com/groundtrade/inventory/constant"
)

type StockRequest struct {
	ID                uint64                 `db:"id" json:"id"`
	ShopID            uint64                 `db:"shop_id" json:"shop_id"`
	WarehouseID       uint64                 `db:"warehouse_id" json:"warehouse_id"`
	ProductID         uint64                 `db:"product_id" json:"product_id"`
	RequestedQuantity int64                  `db:"requested_quantity" json:"requested_quantity"`
	RequestedBy       uint64                 `db:"requested_by" json:"requested_by"`
	Status            constant.RequestStatus `db:"status" json:"status"`
	ApprovedBy        *uint64                `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedQuantity  *int64                 `db:"approved_quantity" json:"approved_quantity,omitempty"`
	Notes             string                 `db:"notes" json:"notes,omitempty"`
	CreatedAt         time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time              `db:"updated_at" json:"updated_at"`
}

type CreateStockRequestRequest struct {
	ShopID            uint64 `json:"shop_id" validate:"required"`
	WarehouseID       uint64 `json:"warehouse_id" validate:"required"`
	ProductID         uint64 `json:"product_id" validate:"required"`
	RequestedQuantity int64  `json:"requested_quantity" validate:"required,gt=0"`
	Notes             string `json:"notes"`
}

type ApproveStockRequestRequest struct {
	// Zero means approve the requested quantity as-is.
	ApprovedQuantity int64 `json:"approved_quantity" validate:"gte=0"`
}

type StockRequestFilter struct {
	ShopID      uint64
	WarehouseID uint64
	Status      constant.RequestStatus
}
