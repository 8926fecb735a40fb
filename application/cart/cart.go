package cart

import (
	"github.com/groundtrade/inventory/model"
	"github.com/shopspring/decimal"
)

// Line editing and pricing over an ordered line list. The pricing functions
// are deterministic and side-effect free; an empty cart prices to zero
// totals. The editors return the updated slice and RemoveLine leaves its
// input intact.

var oneHundred = decimal.NewFromInt(100)

// AddLine appends a product to the cart. Re-adding a product the cart already
// holds increments that line instead of creating a duplicate; insertion order
// is preserved either way.
func AddLine(lines []model.CartLine, product *model.Product, quantity int64) []model.CartLine {
	for i := range lines {
		if lines[i].ProductID == product.ID {
			lines[i].Quantity += quantity
			return lines
		}
	}

	var nextID uint64 = 1
	for _, l := range lines {
		if l.ID >= nextID {
			nextID = l.ID + 1
		}
	}
	return append(lines, model.CartLine{
		ID:        nextID,
		ProductID: product.ID,
		Name:      product.Name,
		Quantity:  quantity,
		UnitPrice: product.Price,
	})
}

// UpdateQuantity sets the quantity of one line. A quantity of zero or less
// removes the line.
func UpdateQuantity(lines []model.CartLine, lineID uint64, quantity int64) []model.CartLine {
	if quantity <= 0 {
		return RemoveLine(lines, lineID)
	}
	for i := range lines {
		if lines[i].ID == lineID {
			lines[i].Quantity = quantity
			break
		}
	}
	return lines
}

func RemoveLine(lines []model.CartLine, lineID uint64) []model.CartLine {
	out := make([]model.CartLine, 0, len(lines))
	for _, l := range lines {
		if l.ID != lineID {
			out = append(out, l)
		}
	}
	return out
}

// Subtotal sums line totals, line discounts already applied per line.
func Subtotal(lines []model.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

// DiscountAmount applies a cart-level percentage. Out-of-range percentages
// are the caller's problem; they are clamped at the input boundary, not here.
func DiscountAmount(subtotal, discountPercent decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(discountPercent).Div(oneHundred)
}

// TaxAmount taxes the discounted subtotal.
func TaxAmount(subtotal, discount, taxRate decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discount).Mul(taxRate).Div(oneHundred)
}

// Totals prices the whole cart in one pass.
func Totals(lines []model.CartLine, discountPercent, taxRate decimal.Decimal) model.CartTotals {
	subtotal := Subtotal(lines)
	discount := DiscountAmount(subtotal, discountPercent)
	tax := TaxAmount(subtotal, discount, taxRate)
	return model.CartTotals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    subtotal.Sub(discount).Add(tax),
	}
}
