package service

import (
	"context"
	"strings"

	"github.com/sandiprv9898/salon-flow-pos/internal/model"
	"github.com/sandiprv9898/salon-flow-pos/internal/repository"
)

type CustomerService interface {
	// List matches search against name, phone and email.
	List(ctx context.Context, search string) ([]model.Customer, error)
	Get(ctx context.Context, id string) (*model.Customer, error)
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) List(ctx context.Context, search string) ([]model.Customer, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return all, nil
	}
	out := make([]model.Customer, 0, len(all))
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), search) ||
			strings.Contains(c.Phone, search) ||
			strings.Contains(strings.ToLower(c.Email), search) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *customerService) Get(ctx context.Context, id string) (*model.Customer, error) {
	return s.repo.FindByID(ctx, id)
}
