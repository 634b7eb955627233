package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// WaitlistRequest adds a caller to the waitlist. PreferredService accepts a
// service id or its name; PreferredEmployeeID may be empty or "any".
type WaitlistRequest struct {
	CustomerName        string `json:"customer_name"         validate:"required,max=100"`
	Phone               string `json:"phone"                 validate:"required,max=32"`
	PreferredService    string `json:"preferred_service"     validate:"required"`
	PreferredEmployeeID string `json:"preferred_employee_id"`
	PreferredDate       string `json:"preferred_date"`
	TimeFrame           string `json:"time_frame"            validate:"omitempty,oneof=morning afternoon evening anytime"`
	Priority            string `json:"priority"              validate:"omitempty,oneof=high normal low"`
}

// ConvertWaitlistRequest books the entry. Empty fields fall back to the
// entry's preferences; the customer is matched by phone when CustomerID is
// empty.
type ConvertWaitlistRequest struct {
	CustomerID string `json:"customer_id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Time       string `json:"time"  validate:"required"`
	Notes      string `json:"notes" validate:"max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type WaitlistEntryResponse struct {
	ID                    string    `json:"id"`
	CustomerName          string    `json:"customer_name"`
	Phone                 string    `json:"phone"`
	ServiceID             string    `json:"service_id"`
	ServiceName           string    `json:"service_name,omitempty"`
	PreferredEmployeeID   string    `json:"preferred_employee_id,omitempty"`
	PreferredEmployeeName string    `json:"preferred_employee_name,omitempty"`
	PreferredDate         string    `json:"preferred_date,omitempty"`
	TimeFrame             string    `json:"time_frame,omitempty"`
	Priority              string    `json:"priority"`
	AddedAt               time.Time `json:"added_at"`
}

type WaitlistSummary struct {
	Total int `json:"total"`
	// ByPriority always carries high, normal and low.
	ByPriority map[string]int `json:"by_priority"`
	// Today counts entries whose preferred date is today.
	Today int `json:"today"`
}

type WaitlistResponse struct {
	Entries []WaitlistEntryResponse `json:"entries"`
	Summary WaitlistSummary         `json:"summary"`
}
