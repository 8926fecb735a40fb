package model

import "github.com/shopspring/decimal"

type CashCheckoutRequest struct {
	SessionID       string          `json:"session_id" validate:"required"`
	Lines           []CartLine      `json:"lines" validate:"required,dive"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	AmountReceived  decimal.Decimal `json:"amount_received"`
	Customer        *Customer       `json:"customer,omitempty"`
}

type GatewayCheckoutRequest struct {
	SessionID       string          `json:"session_id" validate:"required"`
	Lines           []CartLine      `json:"lines" validate:"required,dive"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	Customer        *Customer       `json:"customer,omitempty"`
}

// CheckoutResult reports exactly one completed sale or a clear failure.
// Completed stays true on OrderPersistenceFailure: the payment is real even
// when the order record is not, and the operator reconciles from OrderError.
type CheckoutResult struct {
	Completed     bool            `json:"completed"`
	OrderID       *uint64         `json:"order_id"`
	OrderNumber   string          `json:"order_number,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
	TxRef         string          `json:"tx_ref,omitempty"`
	Change        decimal.Decimal `json:"change"`
	Totals        CartTotals      `json:"totals"`
	OrderError    string          `json:"order_error,omitempty"`
}

// OrderItem is one converted cart line of the external order payload.
type OrderItem struct {
	ProductID uint64          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderPayload is the body sent to the order-creation collaborator. Either
// ShopID or WarehouseID must be set; role resolution decides which.
type OrderPayload struct {
	CustomerID  uint64      `json:"customer_id"`
	ShopID      *uint64     `json:"shop_id,omitempty"`
	WarehouseID *uint64     `json:"warehouse_id,omitempty"`
	Items       []OrderItem `json:"items"`
}

type OrderResult struct {
	OrderID     uint64          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Total       decimal.Decimal `json:"total"`
}
