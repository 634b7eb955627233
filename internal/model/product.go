package model

import (
	"github.com/shopspring/decimal"
)

// Product is a retail item sold over the counter. Stock is tracked but not
// reserved by checkout.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	Stock        int             `json:"stock"`
	ReorderPoint int             `json:"reorder_point"`
	Barcode      string          `json:"barcode,omitempty"`
	Supplier     string          `json:"supplier,omitempty"`
	Description  string          `json:"description,omitempty"`
	ExpiryDate   string          `json:"expiry_date,omitempty"`
}

// IsLowStock is derived on read: stock at or below the reorder point.
func (p Product) IsLowStock() bool { return p.Stock <= p.ReorderPoint }

// StockValue is stock valued at cost.
func (p Product) StockValue() decimal.Decimal {
	return p.Cost.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// PotentialMargin is (price - cost) × stock.
func (p Product) PotentialMargin() decimal.Decimal {
	return p.Price.Sub(p.Cost).Mul(decimal.NewFromInt(int64(p.Stock)))
}
