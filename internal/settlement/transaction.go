package settlement

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandiprv9898/salon-flow-pos/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is the immutable record of a finalized settlement. It is the
// only thing that outlives checkout.
type Transaction struct {
	ID             string             `json:"id"`
	SettlementID   uuid.UUID          `json:"settlement_id"`
	OrderID        uuid.UUID          `json:"order_id"`
	Timestamp      time.Time          `json:"timestamp"`
	CustomerID     string             `json:"customer_id,omitempty"`
	CustomerName   string             `json:"customer_name,omitempty"`
	CashierID      string             `json:"cashier_id,omitempty"`
	CashierName    string             `json:"cashier_name,omitempty"`
	Items          []pricing.LineItem `json:"items"`
	OrderDiscount  *pricing.Discount  `json:"order_discount,omitempty"`
	TaxRate        decimal.Decimal    `json:"tax_rate"`
	Totals         pricing.Totals     `json:"totals"`
	Payments       []Payment          `json:"payments"`
	AmountTendered decimal.Decimal    `json:"amount_tendered"`
	ChangeDue      decimal.Decimal    `json:"change_due"`
	Notes          string             `json:"notes,omitempty"`
}

// TransactionParams are the inputs of NewTransaction.
type TransactionParams struct {
	ID             string
	SettlementID   uuid.UUID
	OrderID        uuid.UUID
	Timestamp      time.Time
	Attribution    Attribution
	Items          []pricing.LineItem
	OrderDiscount  *pricing.Discount
	TaxRate        decimal.Decimal
	Totals         pricing.Totals
	Payments       []Payment
	AmountTendered decimal.Decimal
	ChangeDue      decimal.Decimal
}

// NewTransaction validates p and returns a Transaction that shares no
// memory with its inputs.
func NewTransaction(p TransactionParams) (Transaction, error) {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return Transaction{}, fmt.Errorf("%w: missing id", ErrInvalidTransaction)
	case p.Timestamp.IsZero():
		return Transaction{}, fmt.Errorf("%w: missing timestamp", ErrInvalidTransaction)
	case len(p.Items) == 0:
		return Transaction{}, fmt.Errorf("%w: no items", ErrInvalidTransaction)
	case p.AmountTendered.LessThan(p.Totals.GrandTotal):
		return Transaction{}, fmt.Errorf("%w: tendered %s below total %s", ErrInvalidTransaction,
			p.AmountTendered, p.Totals.GrandTotal)
	case !p.ChangeDue.Equal(p.AmountTendered.Sub(p.Totals.GrandTotal)):
		return Transaction{}, fmt.Errorf("%w: change %s does not match tendered minus total", ErrInvalidTransaction, p.ChangeDue)
	}
	for _, li := range p.Items {
		if err := li.Validate(); err != nil {
			return Transaction{}, fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
		}
	}
	if !sumPayments(p.Payments).Equal(p.AmountTendered) {
		return Transaction{}, fmt.Errorf("%w: payments do not add up to amount tendered", ErrInvalidTransaction)
	}

	items := make([]pricing.LineItem, len(p.Items))
	for i, li := range p.Items {
		if li.Discount != nil {
			d := *li.Discount
			li.Discount = &d
		}
		items[i] = li
	}
	var od *pricing.Discount
	if p.OrderDiscount != nil {
		d := *p.OrderDiscount
		od = &d
	}

	return Transaction{
		ID:             p.ID,
		SettlementID:   p.SettlementID,
		OrderID:        p.OrderID,
		Timestamp:      p.Timestamp,
		CustomerID:     p.Attribution.CustomerID,
		CustomerName:   p.Attribution.CustomerName,
		CashierID:      p.Attribution.CashierID,
		CashierName:    p.Attribution.CashierName,
		Notes:          p.Attribution.Notes,
		Items:          items,
		OrderDiscount:  od,
		TaxRate:        p.TaxRate,
		Totals:         p.Totals,
		Payments:       append([]Payment(nil), p.Payments...),
		AmountTendered: p.AmountTendered,
		ChangeDue:      p.ChangeDue,
	}, nil
}

// Total is the grand total paid.
func (t Transaction) Total() decimal.Decimal { return t.Totals.GrandTotal }

// ByMethod sums the net amount received per payment method. Change is
// given back in cash, so it is deducted from the cash bucket first.
func (t Transaction) ByMethod() map[Method]decimal.Decimal {
	out := make(map[Method]decimal.Decimal, len(t.Payments))
	for _, p := range t.Payments {
		out[p.Method] = out[p.Method].Add(p.Amount)
	}
	change := t.ChangeDue
	if !change.IsPositive() || len(t.Payments) == 0 {
		return out
	}
	if cash, ok := out[MethodCash]; ok {
		taken := decimal.Min(cash, change)
		out[MethodCash] = cash.Sub(taken)
		change = change.Sub(taken)
	}
	if change.IsPositive() {
		last := t.Payments[len(t.Payments)-1].Method
		out[last] = out[last].Sub(change)
	}
	return out
}
