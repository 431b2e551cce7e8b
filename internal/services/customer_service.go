package services

import (
	"context"
	"errors"

	"proforma-backend/internal/cache"
	"proforma-backend/internal/models"
	"proforma-backend/internal/repositories"
)

type CustomerService struct {
	Repo *repositories.CustomerRepository
}

func NewCustomerService(repo *repositories.CustomerRepository) *CustomerService {
	return &CustomerService{Repo: repo}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, c *models.Customer) error {
	if c.Name == "" {
		return errors.New("customer name is required")
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return err
	}
	cache.InvalidateCustomerCaches(ctx)
	return nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	return s.Repo.Get(ctx, id)
}

// ListCustomers returns all customers
func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.Repo.List(ctx)
}

// UpdateCustomer updates an existing customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	if c.Name == "" {
		return errors.New("customer name is required")
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return err
	}
	cache.InvalidateCustomerCaches(ctx)
	return nil
}

// DeleteCustomer deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateCustomerCaches(ctx)
	return nil
}
