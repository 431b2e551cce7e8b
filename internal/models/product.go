package models

import "time"

// Product is a catalog entry quotation items may reference. Line items can
// also be free text, so nothing forces an item through the catalog.
type Product struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Unit           string    `json:"unit"`
	CostReference  float64   `json:"cost_reference"`
	PriceReference float64   `json:"price_reference"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Unit           string  `json:"unit"`
	CostReference  float64 `json:"cost_reference"`
	PriceReference float64 `json:"price_reference"`
	Active         *bool   `json:"active"` // nil defaults to true
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Unit           string  `json:"unit"`
	CostReference  float64 `json:"cost_reference"`
	PriceReference float64 `json:"price_reference"`
	Active         bool    `json:"active"`
}
