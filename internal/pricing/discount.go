// Package pricing computes cart and order totals for the salon POS.
//
// Every type in this package is a value: mutations on Order return a new
// Order and never touch the receiver, so a total read from one Order can
// never go stale behind the caller's back.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidLineItem = errors.New("invalid line item")
	ErrInvalidDiscount = errors.New("invalid discount")
	ErrItemNotFound    = errors.New("item not found in order")
)

var hundred = decimal.NewFromInt(100)

// DiscountMode selects how a Discount amount is read: a currency amount
// ("fixed") or a percentage of the base ("percentage").
type DiscountMode string

const (
	DiscountFixed      DiscountMode = "fixed"
	DiscountPercentage DiscountMode = "percentage"
)

// Valid reports whether m is one of the known modes.
func (m DiscountMode) Valid() bool {
	return m == DiscountFixed || m == DiscountPercentage
}

// Discount is either a fixed currency amount or a percentage of the base it
// is applied to. Percentages above 100 are accepted; the discounted base is
// clamped at zero.
type Discount struct {
	Amount decimal.Decimal `json:"amount"`
	Mode   DiscountMode    `json:"mode"`
}

// NewDiscount validates amount and mode.
func NewDiscount(amount decimal.Decimal, mode DiscountMode) (Discount, error) {
	if !mode.Valid() {
		return Discount{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidDiscount, mode)
	}
	if amount.IsNegative() {
		return Discount{}, fmt.Errorf("%w: amount %s is negative", ErrInvalidDiscount, amount)
	}
	return Discount{Amount: amount, Mode: mode}, nil
}

// AmountOf returns the reduction this discount yields against base. The
// result is not capped; callers clamp the discounted value.
func (d Discount) AmountOf(base decimal.Decimal) decimal.Decimal {
	if d.Mode == DiscountPercentage {
		return base.Mul(d.Amount).Div(hundred)
	}
	return d.Amount
}

// Apply returns max(0, base - AmountOf(base)).
func (d Discount) Apply(base decimal.Decimal) decimal.Decimal {
	return clampZero(base.Sub(d.AmountOf(base)))
}

// IsZero reports whether the discount takes nothing off.
func (d Discount) IsZero() bool { return d.Amount.IsZero() }

// String renders "10%" for percentages and "50.00" for fixed amounts.
func (d Discount) String() string {
	if d.Mode == DiscountPercentage {
		return d.Amount.String() + "%"
	}
	return d.Amount.StringFixed(2)
}

func clampZero(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
