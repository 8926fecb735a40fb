package constant

type Role string

const (
	RoleAdmin            Role = "admin"
	RoleWarehouseManager Role = "warehouse_manager"
	RoleWarehouseStaff   Role = "warehouse_staff"
	RoleShopManager      Role = "shop_manager"
	RoleShopAttendant    Role = "shop_attendant"
)

// WarehouseBound roles work out of a warehouse; orders they close carry the
// warehouse identifier only.
func (r Role) WarehouseBound() bool {
	return r == RoleWarehouseManager || r == RoleWarehouseStaff
}

// ShopBound roles work out of a shop; orders they close carry the shop
// identifier only.
func (r Role) ShopBound() bool {
	return r == RoleShopManager || r == RoleShopAttendant
}

// CanApproveRequests reports whether the role may approve, decline or fulfill
// stock requests on the warehouse side.
func (r Role) CanApproveRequests() bool {
	return r == RoleAdmin || r == RoleWarehouseManager
}

type LocationType string

const (
	LocationWarehouse LocationType = "warehouse"
	LocationShop      LocationType = "shop"
)

type WarehouseStatus int

const (
	WarehouseStatusActive   WarehouseStatus = 1
	WarehouseStatusInactive WarehouseStatus = 2
)
