package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandiprv9898/salon-flow-pos/internal/dto"
	"github.com/sandiprv9898/salon-flow-pos/internal/model"
	"github.com/sandiprv9898/salon-flow-pos/internal/pricing"
	"github.com/sandiprv9898/salon-flow-pos/internal/repository"
)

type CatalogService interface {
	// List returns every sellable entry, optionally filtered by kind and a
	// case-insensitive search on name or category.
	List(ctx context.Context, kind, search string) ([]dto.CatalogItem, error)
	Get(ctx context.Context, id string) (*dto.CatalogItem, error)
	ByBarcode(ctx context.Context, barcode string) (*dto.CatalogItem, error)
	// Entry resolves a catalog id into the pricing view used by the cart.
	Entry(ctx context.Context, id string) (pricing.CatalogEntry, error)
}

type catalogService struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) List(ctx context.Context, kind, search string) ([]dto.CatalogItem, error) {
	if kind != "" && !pricing.Kind(kind).Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, kind)
	}
	all, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]dto.CatalogItem, 0, len(all))
	for _, item := range all {
		if kind != "" && item.Kind != kind {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.Category), search) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *catalogService) Get(ctx context.Context, id string) (*dto.CatalogItem, error) {
	if p, err := s.repo.FindProduct(ctx, id); err == nil {
		item := productItem(*p)
		return &item, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if sv, err := s.repo.FindService(ctx, id); err == nil {
		item := serviceItem(*sv)
		return &item, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if pkg, err := s.repo.FindPackage(ctx, id); err == nil {
		item := packageItem(*pkg)
		return &item, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if gc, err := s.repo.FindGiftCard(ctx, id); err == nil {
		item := giftCardItem(*gc)
		return &item, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return nil, fmt.Errorf("catalog entry %q: %w", id, repository.ErrNotFound)
}

func (s *catalogService) ByBarcode(ctx context.Context, barcode string) (*dto.CatalogItem, error) {
	p, err := s.repo.FindProductByBarcode(ctx, strings.TrimSpace(barcode))
	if err != nil {
		return nil, err
	}
	item := productItem(*p)
	return &item, nil
}

func (s *catalogService) Entry(ctx context.Context, id string) (pricing.CatalogEntry, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return pricing.CatalogEntry{}, err
	}
	return pricing.CatalogEntry{
		ID:              item.ID,
		Name:            item.Name,
		Kind:            pricing.Kind(item.Kind),
		UnitPrice:       item.Price,
		DurationMinutes: item.DurationMinutes,
	}, nil
}

func (s *catalogService) all(ctx context.Context) ([]dto.CatalogItem, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	services, err := s.repo.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	packages, err := s.repo.ListPackages(ctx)
	if err != nil {
		return nil, err
	}
	giftCards, err := s.repo.ListGiftCards(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CatalogItem, 0, len(products)+len(services)+len(packages)+len(giftCards))
	for _, p := range products {
		out = append(out, productItem(p))
	}
	for _, sv := range services {
		out = append(out, serviceItem(sv))
	}
	for _, pkg := range packages {
		out = append(out, packageItem(pkg))
	}
	for _, gc := range giftCards {
		out = append(out, giftCardItem(gc))
	}
	return out, nil
}

// ── Mapping ───────────────────────────────────────────────────────────────────

func productItem(p model.Product) dto.CatalogItem {
	stock := p.Stock
	return dto.CatalogItem{
		ID: p.ID, Name: p.Name, Kind: string(pricing.KindProduct), Category: p.Category,
		Price: p.Price, Stock: &stock, LowStock: p.IsLowStock(), Barcode: p.Barcode,
	}
}

func serviceItem(sv model.Service) dto.CatalogItem {
	return dto.CatalogItem{
		ID: sv.ID, Name: sv.Name, Kind: string(pricing.KindService), Category: sv.Category,
		Price: sv.Price, DurationMinutes: sv.DurationMinutes,
	}
}

func packageItem(p model.Package) dto.CatalogItem {
	return dto.CatalogItem{
		ID: p.ID, Name: p.Name, Kind: string(pricing.KindPackage), Category: "Packages",
		Price: p.PackagePrice, DurationMinutes: p.DurationMinutes, ServiceIDs: append([]string(nil), p.ServiceIDs...),
	}
}

func giftCardItem(g model.GiftCard) dto.CatalogItem {
	return dto.CatalogItem{
		ID: g.ID, Name: g.Name, Kind: string(pricing.KindGiftCard), Category: "Gift Cards", Price: g.Value,
	}
}
