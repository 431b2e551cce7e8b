package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"proforma-backend/internal/cache"
	"proforma-backend/internal/email"
	"proforma-backend/internal/metrics"
	"proforma-backend/internal/models"
	"proforma-backend/internal/pricing"
)

var (
	// ErrUnknownStatus is returned when a status change names a value
	// outside the lifecycle
	ErrUnknownStatus = errors.New("unknown quotation status")

	// ErrNoRecipient is returned when an email has no destination address
	ErrNoRecipient = errors.New("no recipient email address")
)

// QuotationStore is the persistence surface the quotation lifecycle needs.
// *repositories.QuotationRepository satisfies it.
type QuotationStore interface {
	Create(ctx context.Context, q *models.Quotation) error
	Get(ctx context.Context, id int) (*models.QuotationWithDetails, error)
	List(ctx context.Context) ([]*models.QuotationWithDetails, error)
	Update(ctx context.Context, q *models.Quotation) error
	UpdateStatus(ctx context.Context, id int, status models.QuotationStatus) error
	Delete(ctx context.Context, id int) error
	CreateEmail(ctx context.Context, e *models.QuotationEmail) error
	LatestPdf(ctx context.Context, quotationID int) (*models.QuotationPdf, error)
}

type QuotationService struct {
	Store QuotationStore
	Email email.EmailProvider
}

func NewQuotationService(store QuotationStore, emailProvider email.EmailProvider) *QuotationService {
	return &QuotationService{
		Store: store,
		Email: emailProvider,
	}
}

// buildQuotation turns a request into a quotation with all derived amounts
// recomputed from the raw item inputs. Caller-sent derived values never
// survive this step.
func (s *QuotationService) buildQuotation(req *models.CreateQuotationRequest) (*models.Quotation, error) {
	if req.CompanyID == 0 || req.CustomerID == 0 {
		return nil, errors.New("company_id and customer_id are required")
	}
	if len(req.Items) == 0 {
		return nil, errors.New("at least one item is required")
	}

	issueDate, err := time.Parse("2006-01-02", req.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("invalid issue_date: %w", err)
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		d, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("invalid due_date: %w", err)
		}
		dueDate = &d
	}

	currency := req.Currency
	if currency == "" {
		currency = "BOB"
	}

	items := make([]models.QuotationItem, 0, len(req.Items))
	lineInputs := make([]pricing.LineInput, 0, len(req.Items))
	for i, reqItem := range req.Items {
		// Store the coerced inputs, not the raw ones, so persisted
		// quantity/cost/margin always agree with the derived amounts.
		quantity := pricing.CoerceNonNegative(reqItem.Quantity)
		costUnit := pricing.CoerceNonNegative(reqItem.CostUnit)
		marginPercent := pricing.CoerceNonNegative(reqItem.MarginPercent)
		amounts := pricing.ComputeLine(quantity, costUnit, marginPercent)

		order := reqItem.Order
		if order == 0 {
			order = i + 1
		}

		items = append(items, models.QuotationItem{
			ProductID:       reqItem.ProductID,
			ItemDescription: reqItem.ItemDescription,
			Quantity:        quantity,
			CostUnit:        costUnit,
			MarginPercent:   marginPercent,
			MarginAmount:    amounts.MarginAmount,
			SaleUnit:        amounts.SaleUnit,
			TotalCost:       amounts.TotalCost,
			TotalSale:       amounts.TotalSale,
			Order:           order,
		})
		lineInputs = append(lineInputs, pricing.LineInput{
			Quantity:      quantity,
			CostUnit:      costUnit,
			MarginPercent: marginPercent,
		})
	}

	totals := pricing.ComputeTotals(lineInputs)

	return &models.Quotation{
		CompanyID:  req.CompanyID,
		CustomerID: req.CustomerID,
		Number:     req.Number,
		IssueDate:  issueDate,
		DueDate:    dueDate,
		Currency:   currency,

		SubtotalAmount: totals.SubtotalAmount,
		DiscountAmount: req.DiscountAmount,
		TaxIvaAmount:   req.TaxIvaAmount,
		TaxItAmount:    req.TaxItAmount,
		TotalAmount:    totals.TotalAmount,
		TotalCost:      totals.TotalCost,
		GrossProfit:    totals.SubtotalAmount - totals.TotalCost,

		Notes:         req.Notes,
		Warranty:      req.Warranty,
		PaymentTerms:  req.PaymentTerms,
		DeliveryPlace: req.DeliveryPlace,

		Items: items,
	}, nil
}

// CreateQuotation creates a quotation in draft status
func (s *QuotationService) CreateQuotation(ctx context.Context, userID int, req *models.CreateQuotationRequest) (*models.Quotation, error) {
	q, err := s.buildQuotation(req)
	if err != nil {
		return nil, err
	}
	q.UserID = userID
	q.Status = models.StatusDraft

	if err := s.Store.Create(ctx, q); err != nil {
		return nil, err
	}

	cache.InvalidateQuotationCaches(ctx)
	return q, nil
}

func (s *QuotationService) GetQuotation(ctx context.Context, id int) (*models.QuotationWithDetails, error) {
	return s.Store.Get(ctx, id)
}

// ListQuotations returns all quotations without their items
func (s *QuotationService) ListQuotations(ctx context.Context) ([]*models.QuotationWithDetails, error) {
	return s.Store.List(ctx)
}

// UpdateQuotation replaces a quotation's content and recomputes all derived
// amounts. The lifecycle status is left untouched.
func (s *QuotationService) UpdateQuotation(ctx context.Context, id int, req *models.UpdateQuotationRequest) (*models.QuotationWithDetails, error) {
	existing, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	q, err := s.buildQuotation((*models.CreateQuotationRequest)(req))
	if err != nil {
		return nil, err
	}
	q.ID = existing.ID
	q.UserID = existing.UserID
	if q.Number == "" {
		q.Number = existing.Number
	}

	if err := s.Store.Update(ctx, q); err != nil {
		return nil, err
	}

	cache.InvalidateQuotationCaches(ctx)
	return s.Store.Get(ctx, id)
}

// DeleteQuotation deletes a quotation with its items and logs
func (s *QuotationService) DeleteQuotation(ctx context.Context, id int) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateQuotationCaches(ctx)
	return nil
}

// SetStatus moves a quotation to the given lifecycle status. Unknown values
// are rejected; setting the current status again is a no-op.
func (s *QuotationService) SetStatus(ctx context.Context, id int, status models.QuotationStatus) error {
	if !status.IsKnown() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	q, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	if q.Status == status {
		return nil
	}

	if err := s.Store.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	cache.InvalidateQuotationCaches(ctx)
	return nil
}

// MarkSent moves a quotation to sent. Valid from any state.
func (s *QuotationService) MarkSent(ctx context.Context, id int) error {
	return s.SetStatus(ctx, id, models.StatusSent)
}

// MarkAccepted moves a quotation to accepted. Idempotent.
func (s *QuotationService) MarkAccepted(ctx context.Context, id int) error {
	return s.SetStatus(ctx, id, models.StatusAccepted)
}

// SendEmail dispatches a quotation by email, recording the attempt in the
// email log. On delivery success the quotation moves to sent; on failure the
// status is left alone and the error is returned after logging.
func (s *QuotationService) SendEmail(ctx context.Context, id, userID int, req *models.SendQuotationEmailRequest) (*models.QuotationEmail, error) {
	q, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	toEmail := req.ToEmail
	if toEmail == "" {
		toEmail = q.CustomerEmail
	}
	if toEmail == "" {
		return nil, ErrNoRecipient
	}

	subject := req.Subject
	if subject == "" {
		subject = fmt.Sprintf("Quotation %s", q.Number)
	}

	body := req.Body
	if body == "" {
		body = fmt.Sprintf("Please find attached quotation %s for a total of %.2f %s.",
			q.Number, q.TotalAmount, q.Currency)
	}

	// Attach the latest generated PDF when one exists
	var attachments []string
	if pdf, err := s.Store.LatestPdf(ctx, id); err == nil && pdf != nil {
		attachments = append(attachments, pdf.FilePath)
	}

	record := &models.QuotationEmail{
		QuotationID: id,
		ToEmail:     toEmail,
		Subject:     subject,
		BodyPreview: preview(body),
		Status:      models.EmailStatusSuccess,
	}
	if userID != 0 {
		record.SentByUserID = &userID
	}

	sendErr := s.Email.Send(toEmail, subject, body, attachments...)
	if sendErr != nil {
		record.Status = models.EmailStatusError
		record.ErrorDetail = sendErr.Error()
	}

	if err := s.Store.CreateEmail(ctx, record); err != nil {
		return nil, err
	}

	if sendErr != nil {
		metrics.QuotationEmailsSent.WithLabelValues(models.EmailStatusError).Inc()
		return record, sendErr
	}
	metrics.QuotationEmailsSent.WithLabelValues(models.EmailStatusSuccess).Inc()

	// Delivery succeeded, so the quotation is now out with the customer
	if err := s.MarkSent(ctx, id); err != nil {
		return record, err
	}

	return record, nil
}

// preview truncates an email body for the log, never splitting a rune
func preview(body string) string {
	const maxPreview = 200
	if len(body) <= maxPreview {
		return body
	}
	cut := maxPreview
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut]
}
