package model

import "github.com/shopspring/decimal"

// Customer is a directory entry. Checkout uses it for attribution only.
// Type: "regular" | "vip" | "new" | "member"
type Customer struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email,omitempty"`
	Type            string          `json:"type"`
	LastVisit       string          `json:"last_visit,omitempty"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
	Preferences     []string        `json:"preferences,omitempty"`
	Allergies       []string        `json:"allergies,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	MembershipType  string          `json:"membership_type,omitempty"`
	LoyaltyPoints   int             `json:"loyalty_points"`
	GiftCardBalance decimal.Decimal `json:"gift_card_balance"`
}
