package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type PaymentRequest struct {
	Method string          `json:"method" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"required,gt=0"`
}

// TenderRequest records the final payment. Without an amount the remaining
// balance is tendered exactly.
type TenderRequest struct {
	Method string           `json:"method" validate:"required"`
	Amount *decimal.Decimal `json:"amount"`
}

type FinalizeRequest struct {
	Notes string `json:"notes" validate:"max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PaymentResponse struct {
	Index  int             `json:"index"`
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
	Final  bool            `json:"final"`
}

type CheckoutResponse struct {
	SettlementID   string            `json:"settlement_id"`
	TerminalID     string            `json:"terminal_id"`
	State          string            `json:"state"`
	Totals         TotalsResponse    `json:"totals"`
	Payments       []PaymentResponse `json:"payments"`
	AmountTendered decimal.Decimal   `json:"amount_tendered"`
	Remaining      decimal.Decimal   `json:"remaining"`
	ChangeDue      decimal.Decimal   `json:"change_due"`
	SplitSlotsLeft int               `json:"split_slots_left"`
	Methods        []string          `json:"methods"`
}

type TransactionResponse struct {
	ID             string             `json:"id"`
	Timestamp      time.Time          `json:"timestamp"`
	CustomerID     string             `json:"customer_id,omitempty"`
	CustomerName   string             `json:"customer_name,omitempty"`
	CashierID      string             `json:"cashier_id,omitempty"`
	CashierName    string             `json:"cashier_name,omitempty"`
	Items          []LineItemResponse `json:"items"`
	OrderDiscount  *DiscountResponse  `json:"order_discount,omitempty"`
	Totals         TotalsResponse     `json:"totals"`
	Payments       []PaymentResponse  `json:"payments"`
	AmountTendered decimal.Decimal    `json:"amount_tendered"`
	ChangeDue      decimal.Decimal    `json:"change_due"`
	Notes          string             `json:"notes,omitempty"`
}
