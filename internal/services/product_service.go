package services

import (
	"context"
	"errors"

	"proforma-backend/internal/cache"
	"proforma-backend/internal/models"
	"proforma-backend/internal/repositories"
)

type ProductService struct {
	Repo *repositories.ProductRepository
}

func NewProductService(repo *repositories.ProductRepository) *ProductService {
	return &ProductService{Repo: repo}
}

func (s *ProductService) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.Name == "" {
		return errors.New("product name is required")
	}
	if p.Unit == "" {
		p.Unit = "unit"
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return err
	}
	cache.InvalidateProductCaches(ctx)
	return nil
}

func (s *ProductService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	return s.Repo.Get(ctx, id)
}

// ListProducts returns all products, optionally only active ones
func (s *ProductService) ListProducts(ctx context.Context, activeOnly bool) ([]*models.Product, error) {
	return s.Repo.List(ctx, activeOnly)
}

// UpdateProduct updates an existing product
func (s *ProductService) UpdateProduct(ctx context.Context, p *models.Product) error {
	if p.Name == "" {
		return errors.New("product name is required")
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return err
	}
	cache.InvalidateProductCaches(ctx)
	return nil
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateProductCaches(ctx)
	return nil
}
