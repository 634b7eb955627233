package model

import "github.com/shopspring/decimal"

// Service is a salon treatment performed by an employee.
// Commission is a percentage of the price.
type Service struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	Commission      decimal.Decimal `json:"commission"`
	Description     string          `json:"description,omitempty"`
}

// Package bundles several services at a reduced price.
type Package struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	ServiceIDs      []string        `json:"service_ids"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	PackagePrice    decimal.Decimal `json:"package_price"`
	DurationMinutes int             `json:"duration_minutes"`
	Description     string          `json:"description,omitempty"`
}

// Savings is what the customer saves against booking the services one by one.
func (p Package) Savings() decimal.Decimal {
	s := p.OriginalPrice.Sub(p.PackagePrice)
	if s.IsNegative() {
		return decimal.Zero
	}
	return s
}

// GiftCard is a sellable stored-value denomination.
type GiftCard struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}
