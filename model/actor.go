package model

import "github.com/groundtrade/inventory/constant"

// Actor is the authenticated principal performing an operation. Location
// identifiers are optional; role decides which one an order must carry.
type Actor struct {
	ID          uint64        `json:"id"`
	Role        constant.Role `json:"role"`
	ShopID      uint64        `json:"shop_id,omitempty"`
	WarehouseID uint64        `json:"warehouse_id,omitempty"`
}
