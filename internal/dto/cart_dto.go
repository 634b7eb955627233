package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AddItemRequest struct {
	CatalogID  string `json:"catalog_id"  validate:"required"`
	Quantity   int    `json:"quantity"    validate:"omitempty,min=1,max=999"`
	EmployeeID string `json:"employee_id"`
}

// UpdateItemRequest is a partial update; nil fields are left unchanged.
// Prices always come from the catalog.
type UpdateItemRequest struct {
	Quantity   *int    `json:"quantity"    validate:"omitempty,min=1,max=999"`
	EmployeeID *string `json:"employee_id"`
}

// DiscountRequest sets a line or order discount. A zero amount removes it.
type DiscountRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"min=0"`
	Mode   string          `json:"mode"   validate:"required,oneof=fixed percentage"`
}

type SetCustomerRequest struct {
	// Empty clears the customer.
	CustomerID string `json:"customer_id"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DiscountResponse struct {
	Amount decimal.Decimal `json:"amount"`
	Mode   string          `json:"mode"`
}

type LineItemResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Kind            string            `json:"kind"`
	UnitPrice       decimal.Decimal   `json:"unit_price"`
	Quantity        int               `json:"quantity"`
	Discount        *DiscountResponse `json:"discount,omitempty"`
	EmployeeID      string            `json:"employee_id,omitempty"`
	DurationMinutes int               `json:"duration_minutes,omitempty"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	DiscountAmount  decimal.Decimal   `json:"discount_amount"`
	Total           decimal.Decimal   `json:"total"`
}

// TotalsResponse amounts are rounded to two decimals.
type TotalsResponse struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

type CartResponse struct {
	TerminalID    string             `json:"terminal_id"`
	OrderID       string             `json:"order_id"`
	Items         []LineItemResponse `json:"items"`
	OrderDiscount *DiscountResponse  `json:"order_discount,omitempty"`
	CustomerID    string             `json:"customer_id,omitempty"`
	CustomerName  string             `json:"customer_name,omitempty"`
	Totals        TotalsResponse     `json:"totals"`
	// CheckoutOpen is true while a settlement is in progress; the cart is locked.
	CheckoutOpen bool `json:"checkout_open"`
}
