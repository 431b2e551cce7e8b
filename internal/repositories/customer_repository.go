package repositories

import (
	"context"

	"proforma-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO customers(name, nit_ci, email, phone, address, notes)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at, updated_at`,
		c.Name, c.NitCi, c.Email, c.Phone, c.Address, c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CustomerRepository) Get(ctx context.Context, id int) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, nit_ci, email, phone, address, notes, created_at, updated_at
         FROM customers WHERE id=$1`, id)

	var c models.Customer
	err := row.Scan(&c.ID, &c.Name, &c.NitCi, &c.Email, &c.Phone, &c.Address,
		&c.Notes, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

// List returns all customers
func (r *CustomerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, nit_ci, email, phone, address, notes, created_at, updated_at
         FROM customers ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		var c models.Customer
		err := rows.Scan(&c.ID, &c.Name, &c.NitCi, &c.Email, &c.Phone, &c.Address,
			&c.Notes, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		customers = append(customers, &c)
	}
	return customers, nil
}

// Update updates an existing customer
func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE customers SET name=$1, nit_ci=$2, email=$3, phone=$4, address=$5,
		        notes=$6, updated_at=CURRENT_TIMESTAMP
         WHERE id=$7`,
		c.Name, c.NitCi, c.Email, c.Phone, c.Address, c.Notes, c.ID)
	return err
}

// Delete deletes a customer
func (r *CustomerRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	return err
}
