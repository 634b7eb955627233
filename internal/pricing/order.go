package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Totals is the result of pricing an order. Values are unrounded; rounding
// to two decimals happens at presentation and settlement.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// Round returns a copy with every amount rounded to two decimals.
func (t Totals) Round() Totals {
	return Totals{
		Subtotal:       t.Subtotal.Round(2),
		DiscountAmount: t.DiscountAmount.Round(2),
		TaxableAmount:  t.TaxableAmount.Round(2),
		TaxAmount:      t.TaxAmount.Round(2),
		GrandTotal:     t.GrandTotal.Round(2),
	}
}

// ItemUpdate carries the fields of a partial line update; nil means unchanged.
type ItemUpdate struct {
	Quantity   *int
	UnitPrice  *decimal.Decimal
	EmployeeID *string
}

// Order is an immutable cart. The zero value is not usable; call NewOrder.
type Order struct {
	id       uuid.UUID
	items    []LineItem
	discount *Discount
	taxRate  decimal.Decimal
}

// NewOrder returns an empty order taxed at taxRate (a fraction, 0.18 = 18%).
func NewOrder(taxRate decimal.Decimal) Order {
	if taxRate.IsNegative() {
		taxRate = decimal.Zero
	}
	return Order{id: uuid.New(), taxRate: taxRate}
}

// ID, TaxRate, Len and IsEmpty are plain accessors.
func (o Order) ID() uuid.UUID            { return o.id }
func (o Order) TaxRate() decimal.Decimal { return o.taxRate }
func (o Order) Len() int                 { return len(o.items) }
func (o Order) IsEmpty() bool            { return len(o.items) == 0 }

// Items returns a copy of the lines in insertion order.
func (o Order) Items() []LineItem {
	out := make([]LineItem, len(o.items))
	for i, li := range o.items {
		out[i] = li.clone()
	}
	return out
}

// Item looks a line up by catalog id.
func (o Order) Item(id string) (LineItem, bool) {
	if i := o.indexOf(id); i >= 0 {
		return o.items[i].clone(), true
	}
	return LineItem{}, false
}

// Discount returns the order-level discount, if any.
func (o Order) Discount() (Discount, bool) {
	if o.discount == nil {
		return Discount{}, false
	}
	return *o.discount, true
}

// ── Mutations ─────────────────────────────────────────────────────────────────
// Each returns a new Order; the receiver is left untouched.

// AddItem appends entry with quantity, or bumps the quantity of the existing
// line when the entry is already in the order.
func (o Order) AddItem(entry CatalogEntry, quantity int) (Order, error) {
	if i := o.indexOf(entry.ID); i >= 0 {
		if quantity < 1 {
			return o, fmt.Errorf("%w: quantity %d for %s", ErrInvalidLineItem, quantity, entry.ID)
		}
		next := o.copy()
		next.items[i].Quantity += quantity
		return next, nil
	}
	li, err := NewLineItem(entry, quantity)
	if err != nil {
		return o, err
	}
	next := o.copy()
	next.items = append(next.items, li)
	return next, nil
}

// UpdateItem applies a partial update to the line with the given id.
func (o Order) UpdateItem(id string, upd ItemUpdate) (Order, error) {
	i := o.indexOf(id)
	if i < 0 {
		return o, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	next := o.copy()
	li := next.items[i]
	if upd.Quantity != nil {
		li.Quantity = *upd.Quantity
	}
	if upd.UnitPrice != nil {
		li.UnitPrice = *upd.UnitPrice
	}
	if upd.EmployeeID != nil {
		li.EmployeeID = *upd.EmployeeID
	}
	if err := li.Validate(); err != nil {
		return o, err
	}
	next.items[i] = li
	return next, nil
}

// RemoveItem drops the line with the given id.
func (o Order) RemoveItem(id string) (Order, error) {
	i := o.indexOf(id)
	if i < 0 {
		return o, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	next := o.copy()
	next.items = append(next.items[:i], next.items[i+1:]...)
	return next, nil
}

// Clear drops every line and the order discount but keeps id and tax rate.
func (o Order) Clear() Order {
	return Order{id: o.id, taxRate: o.taxRate}
}

// SetLineDiscount sets the discount of one line. A zero amount removes it.
func (o Order) SetLineDiscount(id string, amount decimal.Decimal, mode DiscountMode) (Order, error) {
	i := o.indexOf(id)
	if i < 0 {
		return o, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	d, err := NewDiscount(amount, mode)
	if err != nil {
		return o, err
	}
	next := o.copy()
	if d.IsZero() {
		next.items[i].Discount = nil
	} else {
		next.items[i].Discount = &d
	}
	return next, nil
}

// SetOrderDiscount sets the order-level discount. A zero amount removes it.
func (o Order) SetOrderDiscount(amount decimal.Decimal, mode DiscountMode) (Order, error) {
	d, err := NewDiscount(amount, mode)
	if err != nil {
		return o, err
	}
	next := o.copy()
	if d.IsZero() {
		next.discount = nil
	} else {
		next.discount = &d
	}
	return next, nil
}

// ── Totals ────────────────────────────────────────────────────────────────────

// Totals prices the order. The order of operations is fixed: line totals,
// order discount, tax on the discounted amount, grand total.
func (o Order) Totals() Totals {
	subtotal := decimal.Zero
	for _, li := range o.items {
		subtotal = subtotal.Add(li.Total())
	}

	discount := decimal.Zero
	if o.discount != nil {
		discount = o.discount.AmountOf(subtotal)
		if discount.GreaterThan(subtotal) {
			discount = subtotal
		}
	}

	taxable := clampZero(subtotal.Sub(discount))
	tax := taxable.Mul(o.taxRate)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxableAmount:  taxable,
		TaxAmount:      tax,
		GrandTotal:     taxable.Add(tax),
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (o Order) indexOf(id string) int {
	for i, li := range o.items {
		if li.ID == id {
			return i
		}
	}
	return -1
}

func (o Order) copy() Order {
	next := Order{id: o.id, taxRate: o.taxRate, items: o.Items()}
	if o.discount != nil {
		d := *o.discount
		next.discount = &d
	}
	return next
}
