package service

import (
	"context"
	"testing"

	"github.com/sandiprv9898/salon-flow-pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventory() InventoryService {
	return NewInventoryService(repository.NewSeededCatalogRepository())
}

func TestInventory_SummaryCoversWholeStock(t *testing.T) {
	svc := newInventory()

	resp, err := svc.List(context.Background(), "", false)
	require.NoError(t, err)
	assert.Len(t, resp.Items, 6)
	assert.Equal(t, 6, resp.Summary.Products)
	assert.Equal(t, 2, resp.Summary.LowStockCount)
	// Σ cost × stock and Σ (price − cost) × stock over the seed products.
	assert.Equal(t, "37260.00", resp.Summary.TotalValue.StringFixed(2))
	assert.Equal(t, "27815.00", resp.Summary.PotentialMargin.StringFixed(2))
}

func TestInventory_LowStockFiltersRowsOnly(t *testing.T) {
	svc := newInventory()

	resp, err := svc.List(context.Background(), "", true)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "p3", resp.Items[0].ID)
	assert.Equal(t, "p6", resp.Items[1].ID)
	for _, it := range resp.Items {
		assert.True(t, it.LowStock)
		assert.LessOrEqual(t, it.Stock, it.ReorderPoint)
	}
	assert.Equal(t, 6, resp.Summary.Products)
	assert.Equal(t, "37260.00", resp.Summary.TotalValue.StringFixed(2))

	resp, err = svc.List(context.Background(), "serum", false)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "p3", resp.Items[0].ID)
}

func TestInventory_AdjustStockClampsAtZero(t *testing.T) {
	svc := newInventory()
	ctx := context.Background()

	item, err := svc.AdjustStock(ctx, "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, 50, item.Stock)

	item, err = svc.AdjustStock(ctx, "p6", -100)
	require.NoError(t, err)
	assert.Equal(t, 0, item.Stock)
	assert.True(t, item.LowStock)
	assert.True(t, item.StockValue.IsZero())

	_, err = svc.AdjustStock(ctx, "p99", 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestInventory_ReorderBringsThreeReorderPoints(t *testing.T) {
	svc := newInventory()
	ctx := context.Background()

	resp, err := svc.Reorder(ctx, "p3")
	require.NoError(t, err)
	assert.Equal(t, 30, resp.Ordered)
	assert.Equal(t, 38, resp.Item.Stock)
	assert.False(t, resp.Item.LowStock)

	list, err := svc.List(ctx, "", true)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Summary.LowStockCount)

	_, err = svc.Reorder(ctx, "s1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
