package service

import (
	"context"
	"strings"

	"github.com/sandiprv9898/salon-flow-pos/internal/dto"
	"github.com/sandiprv9898/salon-flow-pos/internal/model"
	"github.com/sandiprv9898/salon-flow-pos/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ReorderMultiplier is how many reorder points a reorder brings in.
const ReorderMultiplier = 3

type InventoryService interface {
	List(ctx context.Context, search string, lowStockOnly bool) (*dto.InventoryResponse, error)
	// AdjustStock adds delta to the stock, clamping the result at zero.
	AdjustStock(ctx context.Context, productID string, delta int) (*dto.InventoryItem, error)
	Reorder(ctx context.Context, productID string) (*dto.ReorderResponse, error)
}

type inventoryService struct {
	repo repository.CatalogRepository
}

func NewInventoryService(repo repository.CatalogRepository) InventoryService {
	return &inventoryService{repo: repo}
}

// ── List ──────────────────────────────────────────────────────────────────────
// The summary always covers the whole inventory, not just the filtered rows.

func (s *inventoryService) List(ctx context.Context, search string, lowStockOnly bool) (*dto.InventoryResponse, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	search = strings.ToLower(strings.TrimSpace(search))
	resp := &dto.InventoryResponse{
		Items: make([]dto.InventoryItem, 0, len(products)),
		Summary: dto.InventorySummary{
			Products:        len(products),
			TotalValue:      decimal.Zero,
			PotentialMargin: decimal.Zero,
		},
	}
	for _, p := range products {
		if p.IsLowStock() {
			resp.Summary.LowStockCount++
		}
		resp.Summary.TotalValue = resp.Summary.TotalValue.Add(p.StockValue())
		resp.Summary.PotentialMargin = resp.Summary.PotentialMargin.Add(p.PotentialMargin())

		if lowStockOnly && !p.IsLowStock() {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Category), search) {
			continue
		}
		resp.Items = append(resp.Items, inventoryItem(p))
	}
	return resp, nil
}

// ── AdjustStock ───────────────────────────────────────────────────────────────

func (s *inventoryService) AdjustStock(ctx context.Context, productID string, delta int) (*dto.InventoryItem, error) {
	p, err := s.repo.UpdateProduct(ctx, productID, func(p *model.Product) error {
		p.Stock += delta
		if p.Stock < 0 {
			p.Stock = 0
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("product_id", p.ID).Int("delta", delta).Int("stock", p.Stock).Bool("low_stock", p.IsLowStock()).Msg("stock adjusted")
	item := inventoryItem(*p)
	return &item, nil
}

// ── Reorder ───────────────────────────────────────────────────────────────────

func (s *inventoryService) Reorder(ctx context.Context, productID string) (*dto.ReorderResponse, error) {
	current, err := s.repo.FindProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	qty := current.ReorderPoint * ReorderMultiplier
	if qty <= 0 {
		qty = 1
	}
	item, err := s.AdjustStock(ctx, productID, qty)
	if err != nil {
		return nil, err
	}
	log.Info().Str("product_id", productID).Int("ordered", qty).Msg("reorder placed")
	return &dto.ReorderResponse{Item: *item, Ordered: qty}, nil
}

func inventoryItem(p model.Product) dto.InventoryItem {
	return dto.InventoryItem{
		ID:              p.ID,
		Name:            p.Name,
		Category:        p.Category,
		Price:           p.Price,
		Cost:            p.Cost,
		Stock:           p.Stock,
		ReorderPoint:    p.ReorderPoint,
		LowStock:        p.IsLowStock(),
		Supplier:        p.Supplier,
		StockValue:      p.StockValue(),
		PotentialMargin: p.PotentialMargin(),
	}
}
