package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterSession represents the lifecycle of the cash register.
// Status: "open" | "closed"
type RegisterSession struct {
	ID           uuid.UUID       `json:"id"`
	OpenedBy     string          `json:"opened_by,omitempty"`
	OpeningFloat decimal.Decimal `json:"opening_float"`
	// ExpectedCash is computed on close: opening float + net cash received
	ExpectedCash *decimal.Decimal `json:"expected_cash,omitempty"`
	DeclaredCash *decimal.Decimal `json:"declared_cash,omitempty"`
	Deviation    *decimal.Decimal `json:"deviation,omitempty"`
	DeviationPct *decimal.Decimal `json:"deviation_pct,omitempty"`
	Status       string           `json:"status"`
	// Classification: "normal" | "warning" | "critical"
	Classification *string    `json:"classification,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	OpenedAt       time.Time  `json:"opened_at"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
}

const (
	RegisterOpen   = "open"
	RegisterClosed = "closed"
)

// JournalEntry is one line of the register journal, flat enough for CSV export.
type JournalEntry struct {
	TransactionID string `json:"transaction_id" csv:"transaction_id"`
	Timestamp     string `json:"timestamp"      csv:"timestamp"`
	CustomerName  string `json:"customer_name"  csv:"customer_name"`
	CashierName   string `json:"cashier_name"   csv:"cashier_name"`
	Items         int    `json:"items"          csv:"items"`
	Subtotal      string `json:"subtotal"       csv:"subtotal"`
	Discount      string `json:"discount"       csv:"discount"`
	Tax           string `json:"tax"            csv:"tax"`
	Total         string `json:"total"          csv:"total"`
	Tendered      string `json:"tendered"       csv:"tendered"`
	Change        string `json:"change"         csv:"change"`
	Methods       string `json:"methods"        csv:"methods"`
}
