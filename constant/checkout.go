package constant

// Walk-in sentinel used when no customer is attached to a sale.
const (
	WalkInCustomerID    uint64 = 0
	WalkInCustomerName         = "Walk-in Customer"
	WalkInCustomerEmail        = "walkin@pos.local"
	WalkInCustomerPhone        = "0000000000"
)

// ActivityModule tags activity-log events with the emitting module.
type ActivityModule string

const (
	ModuleStock        ActivityModule = "stock"
	ModuleStockRequest ActivityModule = "stock_request"
	ModuleCheckout     ActivityModule = "checkout"
)
