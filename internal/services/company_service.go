package services

import (
	"context"
	"errors"

	"proforma-backend/internal/cache"
	"proforma-backend/internal/models"
	"proforma-backend/internal/repositories"
)

type CompanyService struct {
	Repo *repositories.CompanyRepository
}

func NewCompanyService(repo *repositories.CompanyRepository) *CompanyService {
	return &CompanyService{Repo: repo}
}

func (s *CompanyService) CreateCompany(ctx context.Context, c *models.Company) error {
	if c.Name == "" {
		return errors.New("company name is required")
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return err
	}
	cache.InvalidateCompanyCaches(ctx)
	return nil
}

func (s *CompanyService) GetCompany(ctx context.Context, id int) (*models.Company, error) {
	return s.Repo.Get(ctx, id)
}

// ListCompanies returns all companies
func (s *CompanyService) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	return s.Repo.List(ctx)
}

// UpdateCompany updates an existing company
func (s *CompanyService) UpdateCompany(ctx context.Context, c *models.Company) error {
	if c.Name == "" {
		return errors.New("company name is required")
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return err
	}
	cache.InvalidateCompanyCaches(ctx)
	return nil
}

// DeleteCompany deletes a company
func (s *CompanyService) DeleteCompany(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateCompanyCaches(ctx)
	return nil
}
