package model

import (
	"github.com/groundtrade/inventory/constant"
	"github.com/shopspring/decimal"
)

type Warehouse struct {
	ID       uint64                   `db:"id" json:"id"`
	Name     string                   `db:"name" json:"name"`
	Capacity int64                    `db:"capacity" json:"capacity"`
	Status   constant.WarehouseStatus `db:"status" json:"status"`
}

type Shop struct {
	ID                   uint64          `db:"id" json:"id"`
	Name                 string          `db:"name" json:"name"`
	AllowNegativeStock   bool            `db:"allow_negative_stock" json:"allow_negative_stock"`
	AutoRequestThreshold int64           `db:"auto_request_threshold" json:"auto_request_threshold"`
	DefaultTaxRate       decimal.Decimal `db:"default_tax_rate" json:"default_tax_rate"`
}

// Location identifies one side of the stock ledger.
type Location struct {
	Type constant.LocationType `db:"location_type" json:"location_type"`
	ID   uint64                `db:"location_id" json:"location_id"`
}

func WarehouseLocation(id uint64) Location {
	return Location{Type: constant.LocationWarehouse, ID: id}
}

func ShopLocation(id uint64) Location {
	return Location{Type: constant.LocationShop, ID: id}
}
