package cart_test

import (
	"testing"

	"github.com/groundtrade/inventory/application/cart"
	"github.com/groundtrade/inventory/model"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func product(id uint64, name, price string) *model.Product {
	return &model.Product{ID: id, Name: name, Price: dec(price)}
}

func TestAddLine(t *testing.T) {
	tests := []struct {
		name         string
		lines        []model.CartLine
		product      *model.Product
		quantity     int64
		wantLen      int
		wantQuantity int64
		wantLineID   uint64
	}{
		{
			name:         "success: first line gets id 1",
			lines:        nil,
			product:      product(10, "Raw Groundnut 50kg", "45.99"),
			quantity:     2,
			wantLen:      1,
			wantQuantity: 2,
			wantLineID:   1,
		},
		{
			name: "success: re-adding a product increments the existing line",
			lines: []model.CartLine{
				{ID: 1, ProductID: 10, Quantity: 2, UnitPrice: dec("45.99")},
			},
			product:      product(10, "Raw Groundnut 50kg", "45.99"),
			quantity:     3,
			wantLen:      1,
			wantQuantity: 5,
			wantLineID:   1,
		},
		{
			name: "success: new product appends after the highest line id",
			lines: []model.CartLine{
				{ID: 4, ProductID: 10, Quantity: 2, UnitPrice: dec("45.99")},
			},
			product:      product(11, "Groundnut Oil 5L", "12.50"),
			quantity:     1,
			wantLen:      2,
			wantQuantity: 1,
			wantLineID:   5,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := cart.AddLine(tt.lines, tt.product, tt.quantity)
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			var line *model.CartLine
			for i := range got {
				if got[i].ProductID == tt.product.ID {
					line = &got[i]
				}
			}
			if line == nil {
				t.Fatalf("no line for product %d", tt.product.ID)
			}
			if line.Quantity != tt.wantQuantity {
				t.Fatalf("quantity = %d, want %d", line.Quantity, tt.wantQuantity)
			}
			if line.ID != tt.wantLineID {
				t.Fatalf("line id = %d, want %d", line.ID, tt.wantLineID)
			}
		})
	}
}

func TestUpdateQuantity_ZeroEqualsRemove(t *testing.T) {
	build := func() []model.CartLine {
		return []model.CartLine{
			{ID: 1, ProductID: 10, Quantity: 2, UnitPrice: dec("45.99")},
			{ID: 2, ProductID: 11, Quantity: 1, UnitPrice: dec("12.50")},
		}
	}

	updated := cart.UpdateQuantity(build(), 1, 0)
	removed := cart.RemoveLine(build(), 1)

	if len(updated) != len(removed) {
		t.Fatalf("len after zero update = %d, after remove = %d", len(updated), len(removed))
	}
	for i := range updated {
		if updated[i].ID != removed[i].ID || updated[i].Quantity != removed[i].Quantity {
			t.Fatalf("line %d differs: update-to-zero %+v, remove %+v", i, updated[i], removed[i])
		}
	}

	negative := cart.UpdateQuantity(build(), 1, -3)
	if len(negative) != 1 || negative[0].ID != 2 {
		t.Fatalf("negative quantity should remove the line, got %+v", negative)
	}
}

func TestRemoveLine_LeavesInputIntact(t *testing.T) {
	lines := []model.CartLine{
		{ID: 1, ProductID: 10, Quantity: 2, UnitPrice: dec("45.99")},
		{ID: 2, ProductID: 11, Quantity: 1, UnitPrice: dec("12.50")},
		{ID: 3, ProductID: 12, Quantity: 4, UnitPrice: dec("3.25")},
	}

	got := cart.RemoveLine(lines, 2)

	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("remove result = %+v, want lines 1 and 3", got)
	}
	// the caller's slice must not be rewritten in place
	wantIDs := []uint64{1, 2, 3}
	for i, want := range wantIDs {
		if lines[i].ID != want {
			t.Fatalf("input line %d has id %d, want %d", i, lines[i].ID, want)
		}
	}
}

func TestUpdateQuantity(t *testing.T) {
	lines := []model.CartLine{
		{ID: 1, ProductID: 10, Quantity: 2, UnitPrice: dec("45.99")},
	}
	got := cart.UpdateQuantity(lines, 1, 7)
	if got[0].Quantity != 7 {
		t.Fatalf("quantity = %d, want 7", got[0].Quantity)
	}

	// unknown line id is a no-op
	got = cart.UpdateQuantity(got, 99, 3)
	if got[0].Quantity != 7 {
		t.Fatalf("quantity = %d, want 7 after no-op update", got[0].Quantity)
	}
}

func TestTotals(t *testing.T) {
	tests := []struct {
		name            string
		lines           []model.CartLine
		discountPercent decimal.Decimal
		taxRate         decimal.Decimal
		wantSubtotal    string
		wantDiscount    string
		wantTax         string
		wantTotal       string
	}{
		{
			name:         "success: empty cart prices to zero",
			lines:        nil,
			wantSubtotal: "0",
			wantDiscount: "0",
			wantTax:      "0",
			wantTotal:    "0",
		},
		{
			name: "success: 20 units at 45.99 with 8.25 percent tax",
			lines: []model.CartLine{
				{ID: 1, ProductID: 10, Quantity: 20, UnitPrice: dec("45.99")},
			},
			taxRate:      dec("8.25"),
			wantSubtotal: "919.8",
			wantDiscount: "0",
			wantTax:      "75.88",
			wantTotal:    "995.68",
		},
		{
			name: "success: cart discount applies before tax",
			lines: []model.CartLine{
				{ID: 1, ProductID: 10, Quantity: 4, UnitPrice: dec("25")},
			},
			discountPercent: dec("10"),
			taxRate:         dec("5"),
			wantSubtotal:    "100",
			wantDiscount:    "10",
			wantTax:         "4.5",
			wantTotal:       "94.5",
		},
		{
			name: "success: line discount reduces the subtotal",
			lines: []model.CartLine{
				{ID: 1, ProductID: 10, Quantity: 2, UnitPrice: dec("50"), LineDiscount: dec("5")},
			},
			wantSubtotal: "95",
			wantDiscount: "0",
			wantTax:      "0",
			wantTotal:    "95",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := cart.Totals(tt.lines, tt.discountPercent, tt.taxRate)

			if !got.Subtotal.Equal(dec(tt.wantSubtotal)) {
				t.Fatalf("subtotal = %s, want %s", got.Subtotal, tt.wantSubtotal)
			}
			if !got.Discount.Equal(dec(tt.wantDiscount)) {
				t.Fatalf("discount = %s, want %s", got.Discount, tt.wantDiscount)
			}
			if !got.Tax.Round(2).Equal(dec(tt.wantTax)) {
				t.Fatalf("tax = %s, want %s", got.Tax.Round(2), tt.wantTax)
			}
			if !got.Total.Round(2).Equal(dec(tt.wantTotal)) {
				t.Fatalf("total = %s, want %s", got.Total.Round(2), tt.wantTotal)
			}

			// total must always equal subtotal - discount + tax
			identity := got.Subtotal.Sub(got.Discount).Add(got.Tax)
			if !got.Total.Equal(identity) {
				t.Fatalf("total %s != subtotal - discount + tax %s", got.Total, identity)
			}
		})
	}
}

func TestTotals_OrderInvariance(t *testing.T) {
	a := []model.CartLine{
		{ID: 1, ProductID: 10, Quantity: 3, UnitPrice: dec("45.99")},
		{ID: 2, ProductID: 11, Quantity: 2, UnitPrice: dec("12.50")},
		{ID: 3, ProductID: 12, Quantity: 5, UnitPrice: dec("7.35")},
	}
	b := []model.CartLine{a[2], a[0], a[1]}

	discount := dec("12.5")
	tax := dec("8.25")

	ta := cart.Totals(a, discount, tax)
	tb := cart.Totals(b, discount, tax)

	if !ta.Total.Equal(tb.Total) || !ta.Subtotal.Equal(tb.Subtotal) || !ta.Tax.Equal(tb.Tax) {
		t.Fatalf("totals depend on line order: %+v vs %+v", ta, tb)
	}
}
