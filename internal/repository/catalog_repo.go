package repository

import (
	"context"
	"fmt"

	"github.com/sandiprv9898/salon-flow-pos/internal/model"
)

type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	FindProduct(ctx context.Context, id string) (*model.Product, error)
	FindProductByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	// UpdateProduct applies fn to the stored product atomically.
	UpdateProduct(ctx context.Context, id string, fn func(*model.Product) error) (*model.Product, error)

	ListServices(ctx context.Context) ([]model.Service, error)
	FindService(ctx context.Context, id string) (*model.Service, error)
	ListPackages(ctx context.Context) ([]model.Package, error)
	FindPackage(ctx context.Context, id string) (*model.Package, error)
	ListGiftCards(ctx context.Context) ([]model.GiftCard, error)
	FindGiftCard(ctx context.Context, id string) (*model.GiftCard, error)
}

type catalogRepo struct {
	products  *table[model.Product]
	services  *table[model.Service]
	packages  *table[model.Package]
	giftCards *table[model.GiftCard]
}

func NewCatalogRepository(products []model.Product, services []model.Service, packages []model.Package, giftCards []model.GiftCard) CatalogRepository {
	return &catalogRepo{
		products:  newTable("product", func(p model.Product) string { return p.ID }, products),
		services:  newTable("service", func(s model.Service) string { return s.ID }, services),
		packages:  newTable("package", func(p model.Package) string { return p.ID }, packages),
		giftCards: newTable("gift card", func(g model.GiftCard) string { return g.ID }, giftCards),
	}
}

// NewSeededCatalogRepository loads the demo catalog.
func NewSeededCatalogRepository() CatalogRepository {
	return NewCatalogRepository(SeedProducts(), SeedServices(), SeedPackages(), SeedGiftCards())
}

func (r *catalogRepo) ListProducts(_ context.Context) ([]model.Product, error) {
	return r.products.list(), nil
}

func (r *catalogRepo) FindProduct(_ context.Context, id string) (*model.Product, error) {
	p, err := r.products.get(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *catalogRepo) FindProductByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	p, ok := r.products.find(func(p model.Product) bool { return p.Barcode != "" && p.Barcode == barcode })
	if !ok {
		return nil, fmt.Errorf("barcode %q: %w", barcode, ErrNotFound)
	}
	return &p, nil
}

func (r *catalogRepo) UpdateProduct(_ context.Context, id string, fn func(*model.Product) error) (*model.Product, error) {
	p, err := r.products.mutate(id, fn)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *catalogRepo) ListServices(_ context.Context) ([]model.Service, error) {
	return r.services.list(), nil
}

func (r *catalogRepo) FindService(_ context.Context, id string) (*model.Service, error) {
	s, err := r.services.get(id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *catalogRepo) ListPackages(_ context.Context) ([]model.Package, error) {
	return r.packages.list(), nil
}

func (r *catalogRepo) FindPackage(_ context.Context, id string) (*model.Package, error) {
	p, err := r.packages.get(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *catalogRepo) ListGiftCards(_ context.Context) ([]model.GiftCard, error) {
	return r.giftCards.list(), nil
}

func (r *catalogRepo) FindGiftCard(_ context.Context, id string) (*model.GiftCard, error) {
	g, err := r.giftCards.get(id)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
