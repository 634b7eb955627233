package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenRegisterRequest struct {
	OpeningFloat decimal.Decimal `json:"opening_float" validate:"min=0"`
}

// CloseRegisterRequest is a blind count: the deviation is computed only after
// the declaration is received.
type CloseRegisterRequest struct {
	DeclaredCash decimal.Decimal `json:"declared_cash" validate:"min=0"`
	Notes        *string         `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DeviationResponse struct {
	Amount         decimal.Decimal `json:"amount"`
	Percentage     decimal.Decimal `json:"percentage"`
	Classification string          `json:"classification"` // normal | warning | critical
}

type RegisterReport struct {
	SessionID        string                     `json:"session_id"`
	Status           string                     `json:"status"`
	OpenedBy         string                     `json:"opened_by,omitempty"`
	OpeningFloat     decimal.Decimal            `json:"opening_float"`
	TotalSales       decimal.Decimal            `json:"total_sales"`
	TransactionCount int                        `json:"transaction_count"`
	ByMethod         map[string]decimal.Decimal `json:"by_method"`
	ExpectedCash     decimal.Decimal            `json:"expected_cash"`
	DeclaredCash     *decimal.Decimal           `json:"declared_cash,omitempty"`
	Deviation        *DeviationResponse         `json:"deviation,omitempty"`
	Notes            *string                    `json:"notes,omitempty"`
	OpenedAt         string                     `json:"opened_at"`
	ClosedAt         *string                    `json:"closed_at,omitempty"`
}
