package models

import "time"

// Company is the issuing business on a quotation.
type Company struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Nit       string    `json:"nit"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	LogoURL   string    `json:"logo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCompanyRequest represents the request body for creating a company
type CreateCompanyRequest struct {
	Name    string `json:"name"`
	Nit     string `json:"nit"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	City    string `json:"city"`
	Country string `json:"country"`
	LogoURL string `json:"logo_url"`
}

// UpdateCompanyRequest represents the request body for updating a company
type UpdateCompanyRequest struct {
	Name    string `json:"name"`
	Nit     string `json:"nit"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	City    string `json:"city"`
	Country string `json:"country"`
	LogoURL string `json:"logo_url"`
}
