// Package settlement collects payments against a priced order and turns a
// fully paid order into an immutable Transaction.
package settlement

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyOrder         = errors.New("cannot settle an empty order")
	ErrInvalidPayment     = errors.New("invalid payment")
	ErrPaymentCapExceeded = errors.New("split payment limit reached")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrIncompletePayment  = errors.New("amount tendered does not cover the total")
	ErrSettlementClosed   = errors.New("settlement is closed")
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// Method is a payment channel.
type Method string

const (
	MethodCash     Method = "cash"
	MethodCard     Method = "card"
	MethodUPI      Method = "upi"
	MethodWallet   Method = "wallet"
	MethodGiftCard Method = "giftcard"
	MethodLoyalty  Method = "loyalty"
)

// DefaultMethods are the channels the salon accepts out of the box.
var DefaultMethods = []Method{MethodCash, MethodCard, MethodUPI, MethodWallet, MethodGiftCard, MethodLoyalty}

// Payment is one tendered amount. Final marks the implicit last payment
// (what the payer handed over), which does not count against the split cap.
type Payment struct {
	Method Method          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
	Final  bool            `json:"final,omitempty"`
}

func sumPayments(ps []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range ps {
		total = total.Add(p.Amount)
	}
	return total
}

func (c Config) checkPayment(method Method, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero, got %s", ErrInvalidPayment, amount)
	}
	for _, m := range c.methods() {
		if m == method {
			return nil
		}
	}
	return fmt.Errorf("%w: unsupported method %q", ErrInvalidPayment, method)
}
