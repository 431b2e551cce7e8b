package repositories

import (
	"context"

	"proforma-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CompanyRepository struct {
	DB *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{DB: db}
}

func (r *CompanyRepository) Create(ctx context.Context, c *models.Company) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO companies(name, nit, address, phone, email, city, country, logo_url)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, created_at, updated_at`,
		c.Name, c.Nit, c.Address, c.Phone, c.Email, c.City, c.Country, c.LogoURL,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CompanyRepository) Get(ctx context.Context, id int) (*models.Company, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, nit, address, phone, email, city, country, logo_url, created_at, updated_at
         FROM companies WHERE id=$1`, id)

	var c models.Company
	err := row.Scan(&c.ID, &c.Name, &c.Nit, &c.Address, &c.Phone, &c.Email,
		&c.City, &c.Country, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

// List returns all companies
func (r *CompanyRepository) List(ctx context.Context) ([]*models.Company, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, nit, address, phone, email, city, country, logo_url, created_at, updated_at
         FROM companies ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		var c models.Company
		err := rows.Scan(&c.ID, &c.Name, &c.Nit, &c.Address, &c.Phone, &c.Email,
			&c.City, &c.Country, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		companies = append(companies, &c)
	}
	return companies, nil
}

// Update updates an existing company
func (r *CompanyRepository) Update(ctx context.Context, c *models.Company) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE companies SET name=$1, nit=$2, address=$3, phone=$4, email=$5,
		        city=$6, country=$7, logo_url=$8, updated_at=CURRENT_TIMESTAMP
         WHERE id=$9`,
		c.Name, c.Nit, c.Address, c.Phone, c.Email, c.City, c.Country, c.LogoURL, c.ID)
	return err
}

// Delete deletes a company
func (r *CompanyRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM companies WHERE id=$1`, id)
	return err
}
