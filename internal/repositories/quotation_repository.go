package repositories

import (
	"context"
	"fmt"

	"proforma-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type QuotationRepository struct {
	DB *pgxpool.Pool
}

func NewQuotationRepository(db *pgxpool.Pool) *QuotationRepository {
	return &QuotationRepository{DB: db}
}

// GenerateQuotationNumber generates a unique quotation number
func (r *QuotationRepository) GenerateQuotationNumber(ctx context.Context) (string, error) {
	// Use database sequence instead of COUNT for O(1) performance
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('quotation_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next quotation number: %w", err)
	}

	return fmt.Sprintf("PRF-%06d", nextNum), nil
}

// Create creates a new quotation with items
func (r *QuotationRepository) Create(ctx context.Context, q *models.Quotation) error {
	// Start transaction
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Generate quotation number if not provided
	if q.Number == "" {
		number, err := r.GenerateQuotationNumber(ctx)
		if err != nil {
			return err
		}
		q.Number = number
	}

	// Insert quotation
	err = tx.QueryRow(ctx,
		`INSERT INTO quotations(company_id, customer_id, user_id, number, issue_date, due_date,
		        currency, subtotal_amount, discount_amount, tax_iva_amount, tax_it_amount,
		        total_amount, total_cost, gross_profit, status, notes, warranty, payment_terms, delivery_place)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		 RETURNING id, created_at, updated_at`,
		q.CompanyID, q.CustomerID, q.UserID, q.Number, q.IssueDate, q.DueDate,
		q.Currency, q.SubtotalAmount, q.DiscountAmount, q.TaxIvaAmount, q.TaxItAmount,
		q.TotalAmount, q.TotalCost, q.GrossProfit, q.Status, q.Notes, q.Warranty,
		q.PaymentTerms, q.DeliveryPlace,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)

	if err != nil {
		return err
	}

	// Insert quotation items
	for i := range q.Items {
		item := &q.Items[i]
		item.QuotationID = q.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO quotation_items(quotation_id, product_id, item_description, quantity,
			        cost_unit, margin_percent, margin_amount, sale_unit, total_cost, total_sale, item_order)
			 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 RETURNING id, created_at`,
			item.QuotationID, item.ProductID, item.ItemDescription, item.Quantity,
			item.CostUnit, item.MarginPercent, item.MarginAmount, item.SaleUnit,
			item.TotalCost, item.TotalSale, item.Order,
		).Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			return err
		}
	}

	// Commit transaction
	return tx.Commit(ctx)
}

// Get retrieves a quotation by ID with items, joined names and the PDF/email logs
func (r *QuotationRepository) Get(ctx context.Context, id int) (*models.QuotationWithDetails, error) {
	var q models.QuotationWithDetails
	err := r.DB.QueryRow(ctx,
		`SELECT q.id, q.company_id, q.customer_id, q.user_id, q.number, q.issue_date, q.due_date,
		        q.currency, q.subtotal_amount, q.discount_amount, q.tax_iva_amount, q.tax_it_amount,
		        q.total_amount, q.total_cost, q.gross_profit, q.status, q.notes, q.warranty,
		        q.payment_terms, q.delivery_place, q.created_at, q.updated_at,
		        COALESCE(co.name, '') as company_name,
		        COALESCE(cu.name, '') as customer_name,
		        COALESCE(cu.email, '') as customer_email
		 FROM quotations q
		 LEFT JOIN companies co ON q.company_id = co.id
		 LEFT JOIN customers cu ON q.customer_id = cu.id
		 WHERE q.id = $1`, id,
	).Scan(&q.ID, &q.CompanyID, &q.CustomerID, &q.UserID, &q.Number, &q.IssueDate, &q.DueDate,
		&q.Currency, &q.SubtotalAmount, &q.DiscountAmount, &q.TaxIvaAmount, &q.TaxItAmount,
		&q.TotalAmount, &q.TotalCost, &q.GrossProfit, &q.Status, &q.Notes, &q.Warranty,
		&q.PaymentTerms, &q.DeliveryPlace, &q.CreatedAt, &q.UpdatedAt,
		&q.CompanyName, &q.CustomerName, &q.CustomerEmail)

	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	q.Items = items

	pdfs, err := r.ListPdfs(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	q.PdfFiles = pdfs

	emails, err := r.ListEmails(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	q.Emails = emails

	return &q, nil
}

// listItems returns the line items of a quotation in stored order
func (r *QuotationRepository) listItems(ctx context.Context, quotationID int) ([]models.QuotationItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, quotation_id, product_id, item_description, quantity, cost_unit,
		        margin_percent, margin_amount, sale_unit, total_cost, total_sale, item_order, created_at
		 FROM quotation_items WHERE quotation_id = $1 ORDER BY item_order ASC, id ASC`, quotationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.QuotationItem
	for rows.Next() {
		var item models.QuotationItem
		err := rows.Scan(&item.ID, &item.QuotationID, &item.ProductID, &item.ItemDescription,
			&item.Quantity, &item.CostUnit, &item.MarginPercent, &item.MarginAmount,
			&item.SaleUnit, &item.TotalCost, &item.TotalSale, &item.Order, &item.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// List returns all quotations without their items
func (r *QuotationRepository) List(ctx context.Context) ([]*models.QuotationWithDetails, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT q.id, q.company_id, q.customer_id, q.user_id, q.number, q.issue_date, q.due_date,
		        q.currency, q.subtotal_amount, q.discount_amount, q.tax_iva_amount, q.tax_it_amount,
		        q.total_amount, q.total_cost, q.gross_profit, q.status, q.notes, q.warranty,
		        q.payment_terms, q.delivery_place, q.created_at, q.updated_at,
		        COALESCE(co.name, '') as company_name,
		        COALESCE(cu.name, '') as customer_name,
		        COALESCE(cu.email, '') as customer_email
		 FROM quotations q
		 LEFT JOIN companies co ON q.company_id = co.id
		 LEFT JOIN customers cu ON q.customer_id = cu.id
		 ORDER BY q.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotations []*models.QuotationWithDetails
	for rows.Next() {
		var q models.QuotationWithDetails
		err := rows.Scan(&q.ID, &q.CompanyID, &q.CustomerID, &q.UserID, &q.Number, &q.IssueDate,
			&q.DueDate, &q.Currency, &q.SubtotalAmount, &q.DiscountAmount, &q.TaxIvaAmount,
			&q.TaxItAmount, &q.TotalAmount, &q.TotalCost, &q.GrossProfit, &q.Status, &q.Notes,
			&q.Warranty, &q.PaymentTerms, &q.DeliveryPlace, &q.CreatedAt, &q.UpdatedAt,
			&q.CompanyName, &q.CustomerName, &q.CustomerEmail)
		if err != nil {
			return nil, err
		}
		quotations = append(quotations, &q)
	}

	return quotations, rows.Err()
}

// Update replaces a quotation's fields and its full item set in one transaction
func (r *QuotationRepository) Update(ctx context.Context, q *models.Quotation) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE quotations SET company_id=$1, customer_id=$2, number=$3, issue_date=$4,
		        due_date=$5, currency=$6, subtotal_amount=$7, discount_amount=$8,
		        tax_iva_amount=$9, tax_it_amount=$10, total_amount=$11, total_cost=$12,
		        gross_profit=$13, notes=$14, warranty=$15, payment_terms=$16,
		        delivery_place=$17, updated_at=CURRENT_TIMESTAMP
		 WHERE id=$18`,
		q.CompanyID, q.CustomerID, q.Number, q.IssueDate, q.DueDate, q.Currency,
		q.SubtotalAmount, q.DiscountAmount, q.TaxIvaAmount, q.TaxItAmount,
		q.TotalAmount, q.TotalCost, q.GrossProfit, q.Notes, q.Warranty,
		q.PaymentTerms, q.DeliveryPlace, q.ID)
	if err != nil {
		return err
	}

	// Replace items wholesale
	_, err = tx.Exec(ctx, `DELETE FROM quotation_items WHERE quotation_id=$1`, q.ID)
	if err != nil {
		return err
	}

	for i := range q.Items {
		item := &q.Items[i]
		item.QuotationID = q.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO quotation_items(quotation_id, product_id, item_description, quantity,
			        cost_unit, margin_percent, margin_amount, sale_unit, total_cost, total_sale, item_order)
			 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 RETURNING id, created_at`,
			item.QuotationID, item.ProductID, item.ItemDescription, item.Quantity,
			item.CostUnit, item.MarginPercent, item.MarginAmount, item.SaleUnit,
			item.TotalCost, item.TotalSale, item.Order,
		).Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// UpdateStatus sets the lifecycle status of a quotation
func (r *QuotationRepository) UpdateStatus(ctx context.Context, id int, status models.QuotationStatus) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE quotations SET status=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		status, id)
	return err
}

// Delete deletes a quotation (items, pdfs and emails cascade)
func (r *QuotationRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM quotations WHERE id=$1`, id)
	return err
}

// CreatePdf records a generated PDF file for a quotation
func (r *QuotationRepository) CreatePdf(ctx context.Context, p *models.QuotationPdf) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO quotation_pdfs(quotation_id, file_path)
		 VALUES($1, $2)
		 RETURNING id, created_at`,
		p.QuotationID, p.FilePath,
	).Scan(&p.ID, &p.CreatedAt)
}

// ListPdfs returns all PDF records for a quotation, newest first
func (r *QuotationRepository) ListPdfs(ctx context.Context, quotationID int) ([]models.QuotationPdf, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, quotation_id, file_path, created_at
		 FROM quotation_pdfs WHERE quotation_id=$1 ORDER BY created_at DESC`, quotationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pdfs []models.QuotationPdf
	for rows.Next() {
		var p models.QuotationPdf
		if err := rows.Scan(&p.ID, &p.QuotationID, &p.FilePath, &p.CreatedAt); err != nil {
			return nil, err
		}
		pdfs = append(pdfs, p)
	}
	return pdfs, rows.Err()
}

// LatestPdf returns the most recent PDF record for a quotation
func (r *QuotationRepository) LatestPdf(ctx context.Context, quotationID int) (*models.QuotationPdf, error) {
	var p models.QuotationPdf
	err := r.DB.QueryRow(ctx,
		`SELECT id, quotation_id, file_path, created_at
		 FROM quotation_pdfs WHERE quotation_id=$1 ORDER BY created_at DESC, id DESC LIMIT 1`, quotationID,
	).Scan(&p.ID, &p.QuotationID, &p.FilePath, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateEmail records an email dispatch attempt for a quotation
func (r *QuotationRepository) CreateEmail(ctx context.Context, e *models.QuotationEmail) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO quotation_emails(quotation_id, to_email, subject, body_preview,
		        sent_by_user_id, status, error_detail)
		 VALUES($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, sent_at`,
		e.QuotationID, e.ToEmail, e.Subject, e.BodyPreview, e.SentByUserID, e.Status, e.ErrorDetail,
	).Scan(&e.ID, &e.SentAt)
}

// ListEmails returns all email records for a quotation, newest first
func (r *QuotationRepository) ListEmails(ctx context.Context, quotationID int) ([]models.QuotationEmail, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, quotation_id, to_email, subject, body_preview, sent_by_user_id, sent_at, status, error_detail
		 FROM quotation_emails WHERE quotation_id=$1 ORDER BY sent_at DESC`, quotationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []models.QuotationEmail
	for rows.Next() {
		var e models.QuotationEmail
		err := rows.Scan(&e.ID, &e.QuotationID, &e.ToEmail, &e.Subject, &e.BodyPreview,
			&e.SentByUserID, &e.SentAt, &e.Status, &e.ErrorDetail)
		if err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}
