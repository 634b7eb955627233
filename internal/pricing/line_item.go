package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind is the catalog category of a line: "product", "service", "package"
// or "gift_card".
type Kind string

const (
	KindProduct  Kind = "product"
	KindService  Kind = "service"
	KindPackage  Kind = "package"
	KindGiftCard Kind = "gift_card"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindProduct, KindService, KindPackage, KindGiftCard:
		return true
	}
	return false
}

// CatalogEntry is what a catalog lookup hands to the pricing engine.
type CatalogEntry struct {
	ID              string
	Name            string
	Kind            Kind
	UnitPrice       decimal.Decimal
	DurationMinutes int
}

// LineItem is one priced entry of an order. Subtotal, DiscountAmount and
// Total are derived on every call.
type LineItem struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Kind            Kind            `json:"kind"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        int             `json:"quantity"`
	Discount        *Discount       `json:"discount,omitempty"`
	EmployeeID      string          `json:"employee_id,omitempty"`
	DurationMinutes int             `json:"duration_minutes,omitempty"`
}

// NewLineItem builds a validated line from a catalog entry.
func NewLineItem(entry CatalogEntry, quantity int) (LineItem, error) {
	li := LineItem{
		ID:              entry.ID,
		Name:            entry.Name,
		Kind:            entry.Kind,
		UnitPrice:       entry.UnitPrice,
		Quantity:        quantity,
		DurationMinutes: entry.DurationMinutes,
	}
	if err := li.Validate(); err != nil {
		return LineItem{}, err
	}
	return li, nil
}

// Validate enforces unitPrice >= 0, quantity >= 1, a non-empty id and a
// known kind.
func (li LineItem) Validate() error {
	switch {
	case strings.TrimSpace(li.ID) == "":
		return fmt.Errorf("%w: empty id", ErrInvalidLineItem)
	case !li.Kind.Valid():
		return fmt.Errorf("%w: unknown kind %q for %s", ErrInvalidLineItem, li.Kind, li.ID)
	case li.UnitPrice.IsNegative():
		return fmt.Errorf("%w: negative unit price %s for %s", ErrInvalidLineItem, li.UnitPrice, li.ID)
	case li.Quantity < 1:
		return fmt.Errorf("%w: quantity %d for %s", ErrInvalidLineItem, li.Quantity, li.ID)
	}
	return nil
}

// Subtotal is unit price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// DiscountAmount is what the line discount takes off the subtotal, capped
// at the subtotal.
func (li LineItem) DiscountAmount() decimal.Decimal {
	if li.Discount == nil {
		return decimal.Zero
	}
	subtotal := li.Subtotal()
	return decimal.Min(li.Discount.AmountOf(subtotal), subtotal)
}

// Total is the line subtotal net of its discount, never below zero.
func (li LineItem) Total() decimal.Decimal {
	return clampZero(li.Subtotal().Sub(li.DiscountAmount()))
}

// clone copies the discount pointer so the copy can be mutated freely.
func (li LineItem) clone() LineItem {
	if li.Discount != nil {
		d := *li.Discount
		li.Discount = &d
	}
	return li
}
