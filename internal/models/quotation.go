package models

import "time"

// QuotationStatus is stored as an open string: the five known values below
// cover the lifecycle this service drives, but values persisted by older
// data or other writers pass through reads untouched. Transitions through
// the API only accept known values.
type QuotationStatus string

const (
	StatusDraft     QuotationStatus = "draft"
	StatusSent      QuotationStatus = "sent"
	StatusAccepted  QuotationStatus = "accepted"
	StatusRejected  QuotationStatus = "rejected"
	StatusCancelled QuotationStatus = "cancelled"
)

// IsKnown reports whether s is one of the statuses the lifecycle exposes.
func (s QuotationStatus) IsKnown() bool {
	switch s {
	case StatusDraft, StatusSent, StatusAccepted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Quotation is a proforma document: seller company, customer, priced line
// items and a lifecycle status. Monetary aggregates are always the pricing
// engine's output; discount and tax fields are round-tripped as-is and
// never computed here.
type Quotation struct {
	ID         int `json:"id"`
	CompanyID  int `json:"company_id"`
	CustomerID int `json:"customer_id"`
	UserID     int `json:"user_id"`

	Number    string     `json:"number"`
	IssueDate time.Time  `json:"issue_date"`
	DueDate   *time.Time `json:"due_date"`
	Currency  string     `json:"currency"`

	SubtotalAmount float64 `json:"subtotal_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxIvaAmount   float64 `json:"tax_iva_amount"`
	TaxItAmount    float64 `json:"tax_it_amount"`
	TotalAmount    float64 `json:"total_amount"`
	TotalCost      float64 `json:"total_cost"`
	GrossProfit    float64 `json:"gross_profit"`

	Status QuotationStatus `json:"status"`

	Notes         string `json:"notes"`
	Warranty      string `json:"warranty"`
	PaymentTerms  string `json:"payment_terms"`
	DeliveryPlace string `json:"delivery_place"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []QuotationItem `json:"items"`
}

// QuotationItem is one priced row of a quotation. Quantity, cost and margin
// are the inputs; sale price and totals are derived server-side.
type QuotationItem struct {
	ID          int  `json:"id"`
	QuotationID int  `json:"quotation_id"`
	ProductID   *int `json:"product_id"`

	ItemDescription string  `json:"item_description"`
	Quantity        float64 `json:"quantity"`
	CostUnit        float64 `json:"cost_unit"`
	MarginPercent   float64 `json:"margin_percent"`
	MarginAmount    float64 `json:"margin_amount"`
	SaleUnit        float64 `json:"sale_unit"`
	TotalCost       float64 `json:"total_cost"`
	TotalSale       float64 `json:"total_sale"`

	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// QuotationWithDetails includes the names joined from related entities,
// plus the append-only PDF and email logs.
type QuotationWithDetails struct {
	Quotation
	CompanyName   string           `json:"company_name"`
	CustomerName  string           `json:"customer_name"`
	CustomerEmail string           `json:"customer_email"`
	PdfFiles      []QuotationPdf   `json:"pdf_files"`
	Emails        []QuotationEmail `json:"emails"`
}

// QuotationPdf records one generated PDF file. Append-only.
type QuotationPdf struct {
	ID          int       `json:"id"`
	QuotationID int       `json:"quotation_id"`
	FilePath    string    `json:"file_path"`
	CreatedAt   time.Time `json:"created_at"`
}

// Email log statuses
const (
	EmailStatusSuccess = "success"
	EmailStatusError   = "error"
)

// QuotationEmail records one email dispatch attempt. Append-only.
type QuotationEmail struct {
	ID           int       `json:"id"`
	QuotationID  int       `json:"quotation_id"`
	ToEmail      string    `json:"to_email"`
	Subject      string    `json:"subject"`
	BodyPreview  string    `json:"body_preview"`
	SentByUserID *int      `json:"sent_by_user_id"`
	SentAt       time.Time `json:"sent_at"`
	Status       string    `json:"status"` // success or error
	ErrorDetail  string    `json:"error_detail"`
}

// CreateQuotationItemRequest is one raw line item as submitted by a caller.
// Derived fields sent by the caller are ignored and recomputed.
type CreateQuotationItemRequest struct {
	ProductID       *int    `json:"product_id"`
	ItemDescription string  `json:"item_description"`
	Quantity        float64 `json:"quantity"`
	CostUnit        float64 `json:"cost_unit"`
	MarginPercent   float64 `json:"margin_percent"`
	Order           int     `json:"order"`
}

// CreateQuotationRequest represents the request body for creating a quotation
type CreateQuotationRequest struct {
	CompanyID  int    `json:"company_id"`
	CustomerID int    `json:"customer_id"`
	Number     string `json:"number"`
	IssueDate  string `json:"issue_date"` // YYYY-MM-DD
	DueDate    string `json:"due_date"`   // YYYY-MM-DD, optional
	Currency   string `json:"currency"`

	Notes         string `json:"notes"`
	Warranty      string `json:"warranty"`
	PaymentTerms  string `json:"payment_terms"`
	DeliveryPlace string `json:"delivery_place"`

	// Pass-through amounts; never derived from items.
	DiscountAmount float64 `json:"discount_amount"`
	TaxIvaAmount   float64 `json:"tax_iva_amount"`
	TaxItAmount    float64 `json:"tax_it_amount"`

	Items []CreateQuotationItemRequest `json:"items"`
}

// UpdateQuotationRequest represents the request body for updating a quotation
type UpdateQuotationRequest struct {
	CompanyID  int    `json:"company_id"`
	CustomerID int    `json:"customer_id"`
	Number     string `json:"number"`
	IssueDate  string `json:"issue_date"`
	DueDate    string `json:"due_date"`
	Currency   string `json:"currency"`

	Notes         string `json:"notes"`
	Warranty      string `json:"warranty"`
	PaymentTerms  string `json:"payment_terms"`
	DeliveryPlace string `json:"delivery_place"`

	DiscountAmount float64 `json:"discount_amount"`
	TaxIvaAmount   float64 `json:"tax_iva_amount"`
	TaxItAmount    float64 `json:"tax_it_amount"`

	Items []CreateQuotationItemRequest `json:"items"`
}

// UpdateStatusRequest represents the request body for a status change
type UpdateStatusRequest struct {
	Status QuotationStatus `json:"status"`
}

// SendQuotationEmailRequest represents the request body for emailing a quotation
type SendQuotationEmailRequest struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
