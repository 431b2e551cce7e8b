package repositories

import (
	"context"

	"proforma-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO products(name, description, unit, cost_reference, price_reference, active)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at, updated_at`,
		p.Name, p.Description, p.Unit, p.CostReference, p.PriceReference, p.Active,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) Get(ctx context.Context, id int) (*models.Product, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, description, unit, cost_reference, price_reference, active, created_at, updated_at
         FROM products WHERE id=$1`, id)

	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Unit, &p.CostReference,
		&p.PriceReference, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

// List returns all products, optionally only active ones
func (r *ProductRepository) List(ctx context.Context, activeOnly bool) ([]*models.Product, error) {
	query := `SELECT id, name, description, unit, cost_reference, price_reference, active, created_at, updated_at
         FROM products`
	if activeOnly {
		query += ` WHERE active=true`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Unit, &p.CostReference,
			&p.PriceReference, &p.Active, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, nil
}

// Update updates an existing product
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE products SET name=$1, description=$2, unit=$3, cost_reference=$4,
		        price_reference=$5, active=$6, updated_at=CURRENT_TIMESTAMP
         WHERE id=$7`,
		p.Name, p.Description, p.Unit, p.CostReference, p.PriceReference, p.Active, p.ID)
	return err
}

// Delete deletes a product
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	return err
}
