package model

import "time"

// WaitlistPriority: "high" | "normal" | "low"
type WaitlistPriority string

const (
	PriorityHigh   WaitlistPriority = "high"
	PriorityNormal WaitlistPriority = "normal"
	PriorityLow    WaitlistPriority = "low"
)

func (p WaitlistPriority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityNormal, PriorityLow:
		return true
	}
	return false
}

// Rank orders priorities, high first.
func (p WaitlistPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	}
	return 1
}

// WaitlistEntry is a walk-in or caller waiting for a free slot. The customer
// may not be in the directory yet, so name and phone are kept inline.
// An empty PreferredEmployeeID means any stylist.
type WaitlistEntry struct {
	ID                  string           `json:"id"`
	CustomerName        string           `json:"customer_name"`
	Phone               string           `json:"phone"`
	ServiceID           string           `json:"service_id"`
	PreferredEmployeeID string           `json:"preferred_employee_id,omitempty"`
	PreferredDate       string           `json:"preferred_date,omitempty"`
	TimeFrame           string           `json:"time_frame,omitempty"` // morning | afternoon | evening | anytime
	Priority            WaitlistPriority `json:"priority"`
	AddedAt             time.Time        `json:"added_at"`
}
