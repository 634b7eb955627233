package dto

import "github.com/shopspring/decimal"

// CatalogItem is the sellable view of a product, service, package or gift card.
type CatalogItem struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Kind            string          `json:"kind"`
	Category        string          `json:"category,omitempty"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes,omitempty"`
	Stock           *int            `json:"stock,omitempty"`
	LowStock        bool            `json:"low_stock,omitempty"`
	Barcode         string          `json:"barcode,omitempty"`
	ServiceIDs      []string        `json:"service_ids,omitempty"`
}

// ─── Inventory ───────────────────────────────────────────────────────────────

type AdjustStockRequest struct {
	// Delta is added to the stock; the result is clamped at zero.
	Delta int `json:"delta" validate:"required"`
}

type InventoryItem struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price"`
	Cost            decimal.Decimal `json:"cost"`
	Stock           int             `json:"stock"`
	ReorderPoint    int             `json:"reorder_point"`
	LowStock        bool            `json:"low_stock"`
	Supplier        string          `json:"supplier,omitempty"`
	StockValue      decimal.Decimal `json:"stock_value"`
	PotentialMargin decimal.Decimal `json:"potential_margin"`
}

type InventorySummary struct {
	Products        int             `json:"products"`
	LowStockCount   int             `json:"low_stock_count"`
	TotalValue      decimal.Decimal `json:"total_value"`
	PotentialMargin decimal.Decimal `json:"potential_margin"`
}

type InventoryResponse struct {
	Items   []InventoryItem  `json:"items"`
	Summary InventorySummary `json:"summary"`
}

type ReorderResponse struct {
	Item    InventoryItem `json:"item"`
	Ordered int           `json:"ordered"`
}
