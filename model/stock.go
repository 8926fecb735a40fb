package model

import (
	"time"

	"github.com/groundtrade/inventory/constant"
)

// StockEntry is the ledger record for one (location, product) pair. A missing
// row reads as a zero entry.
type StockEntry struct {
	LocationType constant.LocationType `db:"location_type" json:"location_type"`
	LocationID   uint64                `db:"location_id" json:"location_id"`
	ProductID    uint64                `db:"product_id" json:"product_id"`
	Quantity     int64                 `db:"quantity" json:"quantity"`
	Reserved     int64                 `db:"reserved" json:"reserved"`
	UpdatedAt    time.Time             `db:"updated_at" json:"updated_at"`
}

func (e StockEntry) Available() int64 {
	return e.Quantity - e.Reserved
}

type SetQuantityRequest struct {
	LocationType constant.LocationType `json:"location_type" validate:"required,oneof=warehouse shop"`
	LocationID   uint64                `json:"location_id" validate:"required"`
	ProductID    uint64                `json:"product_id" validate:"required"`
	Quantity     int64                 `json:"quantity"`
}

// LowStockEvent is published when a quantity write lands at or below the
// product's minimum threshold.
type LowStockEvent struct {
	Location  Location  `json:"location"`
	ProductID uint64    `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	MinStock  int64     `json:"min_stock"`
	At        time.Time `json:"at"`
}
