package model

import "github.com/shopspring/decimal"

// CartLine is one priced line of a checkout session. LineDiscount is an
// absolute amount taken off the line before cart-level discounting.
type CartLine struct {
	ID           uint64          `json:"id"`
	ProductID    uint64          `json:"product_id"`
	Name         string          `json:"name"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineDiscount decimal.Decimal `json:"line_discount"`
}

// LineTotal is quantity * unit price minus the line discount.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)).Sub(l.LineDiscount)
}

// CartTotals is the priced result the checkout paths consume.
type CartTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

type Customer struct {
	ID    uint64 `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Phone string `db:"phone" json:"phone"`
}
