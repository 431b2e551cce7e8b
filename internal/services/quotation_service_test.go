package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"proforma-backend/internal/models"
)

var errSMTPDown = errors.New("smtp connection refused")

// fakeQuotationStore implements QuotationStore against a single in-memory
// quotation, recording every status write and email row.
type fakeQuotationStore struct {
	quotation   *models.QuotationWithDetails
	pdf         *models.QuotationPdf
	created     *models.Quotation
	updated     *models.Quotation
	emails      []models.QuotationEmail
	statusCalls []models.QuotationStatus
	getErr      error
}

func (f *fakeQuotationStore) Create(ctx context.Context, q *models.Quotation) error {
	q.ID = 1
	f.created = q
	return nil
}

func (f *fakeQuotationStore) Get(ctx context.Context, id int) (*models.QuotationWithDetails, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.quotation, nil
}

func (f *fakeQuotationStore) List(ctx context.Context) ([]*models.QuotationWithDetails, error) {
	return []*models.QuotationWithDetails{f.quotation}, nil
}

func (f *fakeQuotationStore) Update(ctx context.Context, q *models.Quotation) error {
	f.updated = q
	return nil
}

func (f *fakeQuotationStore) UpdateStatus(ctx context.Context, id int, status models.QuotationStatus) error {
	f.statusCalls = append(f.statusCalls, status)
	f.quotation.Status = status
	return nil
}

func (f *fakeQuotationStore) Delete(ctx context.Context, id int) error { return nil }

func (f *fakeQuotationStore) CreateEmail(ctx context.Context, e *models.QuotationEmail) error {
	e.ID = len(f.emails) + 1
	e.SentAt = time.Now()
	f.emails = append(f.emails, *e)
	return nil
}

func (f *fakeQuotationStore) LatestPdf(ctx context.Context, quotationID int) (*models.QuotationPdf, error) {
	return f.pdf, nil
}

// fakeEmailProvider records the last send and fails when err is set.
type fakeEmailProvider struct {
	err         error
	calls       int
	to          string
	subject     string
	attachments []string
}

func (f *fakeEmailProvider) Send(to, subject, body string, attachmentPaths ...string) error {
	f.calls++
	f.to = to
	f.subject = subject
	f.attachments = attachmentPaths
	return f.err
}

func draftQuotation() *models.QuotationWithDetails {
	return &models.QuotationWithDetails{
		Quotation: models.Quotation{
			ID:          1,
			Number:      "PRF-000042",
			Status:      models.StatusDraft,
			TotalAmount: 580,
			Currency:    "BOB",
		},
		CustomerEmail: "acme@example.com",
	}
}

func TestCreateQuotationRecomputesAmounts(t *testing.T) {
	store := &fakeQuotationStore{}
	svc := NewQuotationService(store, &fakeEmailProvider{})

	req := &models.CreateQuotationRequest{
		CompanyID:  1,
		CustomerID: 2,
		IssueDate:  "2026-08-15",
		Items: []models.CreateQuotationItemRequest{
			{ItemDescription: "Router", Quantity: 2, CostUnit: 100, MarginPercent: 20},
			{ItemDescription: "Install", Quantity: 1, CostUnit: 50, MarginPercent: 40},
		},
	}

	q, err := svc.CreateQuotation(context.Background(), 7, req)
	if err != nil {
		t.Fatalf("CreateQuotation() error = %v", err)
	}

	if q.Status != models.StatusDraft {
		t.Errorf("new quotation status = %q, want %q", q.Status, models.StatusDraft)
	}
	if q.UserID != 7 {
		t.Errorf("UserID = %d, want 7", q.UserID)
	}
	if q.Currency != "BOB" {
		t.Errorf("default currency = %q, want BOB", q.Currency)
	}

	// 2x100 at 20% = 240 sale / 200 cost, 1x50 at 40% = 70 sale / 50 cost
	if q.SubtotalAmount != 310 {
		t.Errorf("SubtotalAmount = %v, want 310", q.SubtotalAmount)
	}
	if q.TotalAmount != 310 {
		t.Errorf("TotalAmount = %v, want 310", q.TotalAmount)
	}
	if q.TotalCost != 250 {
		t.Errorf("TotalCost = %v, want 250", q.TotalCost)
	}
	if q.GrossProfit != 60 {
		t.Errorf("GrossProfit = %v, want 60", q.GrossProfit)
	}
	if q.Items[0].SaleUnit != 120 || q.Items[0].TotalSale != 240 {
		t.Errorf("item[0] sale = %v/%v, want 120/240", q.Items[0].SaleUnit, q.Items[0].TotalSale)
	}
	if q.Items[0].Order != 1 || q.Items[1].Order != 2 {
		t.Errorf("item orders = %d,%d, want 1,2", q.Items[0].Order, q.Items[1].Order)
	}
	if store.created == nil {
		t.Fatal("quotation was never persisted")
	}
}

func TestCreateQuotationCoercesInvalidItemInputs(t *testing.T) {
	store := &fakeQuotationStore{}
	svc := NewQuotationService(store, &fakeEmailProvider{})

	req := &models.CreateQuotationRequest{
		CompanyID:  1,
		CustomerID: 2,
		IssueDate:  "2026-08-15",
		Items: []models.CreateQuotationItemRequest{
			{ItemDescription: "Router", Quantity: -2, CostUnit: 100, MarginPercent: 20},
			{ItemDescription: "Install", Quantity: 1, CostUnit: math.NaN(), MarginPercent: 40},
		},
	}

	q, err := svc.CreateQuotation(context.Background(), 7, req)
	if err != nil {
		t.Fatalf("CreateQuotation() error = %v", err)
	}

	// Stored inputs must be the coerced values, so quantity*costUnit always
	// equals the stored line total.
	if q.Items[0].Quantity != 0 {
		t.Errorf("item[0].Quantity = %v, want 0 (coerced from -2)", q.Items[0].Quantity)
	}
	if q.Items[1].CostUnit != 0 {
		t.Errorf("item[1].CostUnit = %v, want 0 (coerced from NaN)", q.Items[1].CostUnit)
	}
	for i, item := range q.Items {
		if got := item.CostUnit * item.Quantity; got != item.TotalCost {
			t.Errorf("item[%d]: costUnit*quantity = %v, stored totalCost = %v", i, got, item.TotalCost)
		}
		if got := item.SaleUnit * item.Quantity; got != item.TotalSale {
			t.Errorf("item[%d]: saleUnit*quantity = %v, stored totalSale = %v", i, got, item.TotalSale)
		}
	}
	if q.SubtotalAmount != 0 || q.TotalCost != 0 {
		t.Errorf("totals = %v/%v, want 0/0 for all-coerced items", q.SubtotalAmount, q.TotalCost)
	}
}

func TestCreateQuotationValidation(t *testing.T) {
	item := models.CreateQuotationItemRequest{ItemDescription: "x", Quantity: 1, CostUnit: 1}
	tests := []struct {
		name string
		req  *models.CreateQuotationRequest
	}{
		{
			name: "missing company",
			req:  &models.CreateQuotationRequest{CustomerID: 2, IssueDate: "2026-08-15", Items: []models.CreateQuotationItemRequest{item}},
		},
		{
			name: "missing customer",
			req:  &models.CreateQuotationRequest{CompanyID: 1, IssueDate: "2026-08-15", Items: []models.CreateQuotationItemRequest{item}},
		},
		{
			name: "no items",
			req:  &models.CreateQuotationRequest{CompanyID: 1, CustomerID: 2, IssueDate: "2026-08-15"},
		},
		{
			name: "bad issue date",
			req:  &models.CreateQuotationRequest{CompanyID: 1, CustomerID: 2, IssueDate: "15/08/2026", Items: []models.CreateQuotationItemRequest{item}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQuotationService(&fakeQuotationStore{}, &fakeEmailProvider{})
			if _, err := svc.CreateQuotation(context.Background(), 1, tt.req); err == nil {
				t.Error("CreateQuotation() expected an error, got nil")
			}
		})
	}
}

func TestSetStatus(t *testing.T) {
	t.Run("rejects unknown status", func(t *testing.T) {
		store := &fakeQuotationStore{quotation: draftQuotation()}
		svc := NewQuotationService(store, &fakeEmailProvider{})

		err := svc.SetStatus(context.Background(), 1, "archived")
		if !errors.Is(err, ErrUnknownStatus) {
			t.Fatalf("SetStatus(archived) error = %v, want ErrUnknownStatus", err)
		}
		if len(store.statusCalls) != 0 {
			t.Errorf("status was written %d times, want 0", len(store.statusCalls))
		}
	})

	t.Run("persists a transition", func(t *testing.T) {
		store := &fakeQuotationStore{quotation: draftQuotation()}
		svc := NewQuotationService(store, &fakeEmailProvider{})

		if err := svc.SetStatus(context.Background(), 1, models.StatusRejected); err != nil {
			t.Fatalf("SetStatus() error = %v", err)
		}
		if len(store.statusCalls) != 1 || store.statusCalls[0] != models.StatusRejected {
			t.Errorf("status writes = %v, want [rejected]", store.statusCalls)
		}
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		q := draftQuotation()
		q.Status = models.StatusSent
		store := &fakeQuotationStore{quotation: q}
		svc := NewQuotationService(store, &fakeEmailProvider{})

		if err := svc.SetStatus(context.Background(), 1, models.StatusSent); err != nil {
			t.Fatalf("SetStatus() error = %v", err)
		}
		if len(store.statusCalls) != 0 {
			t.Errorf("status writes = %v, want none", store.statusCalls)
		}
	})
}

func TestMarkAcceptedIdempotent(t *testing.T) {
	store := &fakeQuotationStore{quotation: draftQuotation()}
	svc := NewQuotationService(store, &fakeEmailProvider{})
	ctx := context.Background()

	if err := svc.MarkAccepted(ctx, 1); err != nil {
		t.Fatalf("first MarkAccepted() error = %v", err)
	}
	if err := svc.MarkAccepted(ctx, 1); err != nil {
		t.Fatalf("second MarkAccepted() error = %v", err)
	}

	if len(store.statusCalls) != 1 {
		t.Errorf("status writes = %d, want 1", len(store.statusCalls))
	}
	if store.quotation.Status != models.StatusAccepted {
		t.Errorf("status = %q, want accepted", store.quotation.Status)
	}
}

func TestUpdateQuotationKeepsStatusAndNumber(t *testing.T) {
	q := draftQuotation()
	q.Status = models.StatusSent
	q.UserID = 9
	store := &fakeQuotationStore{quotation: q}
	svc := NewQuotationService(store, &fakeEmailProvider{})

	req := &models.UpdateQuotationRequest{
		CompanyID:  1,
		CustomerID: 2,
		IssueDate:  "2026-09-01",
		Items: []models.CreateQuotationItemRequest{
			{ItemDescription: "Router", Quantity: 1, CostUnit: 100, MarginPercent: 10},
		},
	}

	if _, err := svc.UpdateQuotation(context.Background(), 1, req); err != nil {
		t.Fatalf("UpdateQuotation() error = %v", err)
	}

	if store.updated == nil {
		t.Fatal("quotation was never updated")
	}
	if store.updated.Number != "PRF-000042" {
		t.Errorf("Number = %q, want the existing PRF-000042", store.updated.Number)
	}
	if store.updated.UserID != 9 {
		t.Errorf("UserID = %d, want the original 9", store.updated.UserID)
	}
	if len(store.statusCalls) != 0 {
		t.Errorf("update wrote status %v, want no status writes", store.statusCalls)
	}
}

func TestSendEmail(t *testing.T) {
	t.Run("success marks the quotation sent", func(t *testing.T) {
		store := &fakeQuotationStore{
			quotation: draftQuotation(),
			pdf:       &models.QuotationPdf{FilePath: "pdfs/PRF-000042-1755000000.pdf"},
		}
		provider := &fakeEmailProvider{}
		svc := NewQuotationService(store, provider)

		record, err := svc.SendEmail(context.Background(), 1, 7, &models.SendQuotationEmailRequest{})
		if err != nil {
			t.Fatalf("SendEmail() error = %v", err)
		}

		if provider.to != "acme@example.com" {
			t.Errorf("recipient = %q, want the customer address", provider.to)
		}
		if provider.subject != "Quotation PRF-000042" {
			t.Errorf("subject = %q", provider.subject)
		}
		if len(provider.attachments) != 1 || !strings.HasSuffix(provider.attachments[0], ".pdf") {
			t.Errorf("attachments = %v, want the latest PDF", provider.attachments)
		}
		if record.Status != models.EmailStatusSuccess {
			t.Errorf("record status = %q, want success", record.Status)
		}
		if record.SentByUserID == nil || *record.SentByUserID != 7 {
			t.Errorf("SentByUserID = %v, want 7", record.SentByUserID)
		}
		if store.quotation.Status != models.StatusSent {
			t.Errorf("quotation status = %q, want sent", store.quotation.Status)
		}
		if len(store.emails) != 1 {
			t.Errorf("email rows = %d, want 1", len(store.emails))
		}
	})

	t.Run("delivery failure logs the attempt and keeps the status", func(t *testing.T) {
		store := &fakeQuotationStore{quotation: draftQuotation()}
		provider := &fakeEmailProvider{err: errSMTPDown}
		svc := NewQuotationService(store, provider)

		record, err := svc.SendEmail(context.Background(), 1, 7, &models.SendQuotationEmailRequest{})
		if !errors.Is(err, errSMTPDown) {
			t.Fatalf("SendEmail() error = %v, want the delivery error", err)
		}

		if record.Status != models.EmailStatusError {
			t.Errorf("record status = %q, want error", record.Status)
		}
		if record.ErrorDetail == "" {
			t.Error("ErrorDetail is empty, want the delivery error text")
		}
		if len(store.emails) != 1 {
			t.Errorf("email rows = %d, want 1 even on failure", len(store.emails))
		}
		if store.quotation.Status != models.StatusDraft {
			t.Errorf("quotation status = %q, want draft untouched", store.quotation.Status)
		}
	})

	t.Run("no recipient anywhere", func(t *testing.T) {
		q := draftQuotation()
		q.CustomerEmail = ""
		store := &fakeQuotationStore{quotation: q}
		provider := &fakeEmailProvider{}
		svc := NewQuotationService(store, provider)

		_, err := svc.SendEmail(context.Background(), 1, 7, &models.SendQuotationEmailRequest{})
		if !errors.Is(err, ErrNoRecipient) {
			t.Fatalf("SendEmail() error = %v, want ErrNoRecipient", err)
		}
		if provider.calls != 0 {
			t.Errorf("provider was called %d times, want 0", provider.calls)
		}
		if len(store.emails) != 0 {
			t.Errorf("email rows = %d, want 0", len(store.emails))
		}
	})

	t.Run("explicit recipient wins over customer email", func(t *testing.T) {
		store := &fakeQuotationStore{quotation: draftQuotation()}
		provider := &fakeEmailProvider{}
		svc := NewQuotationService(store, provider)

		_, err := svc.SendEmail(context.Background(), 1, 0, &models.SendQuotationEmailRequest{
			ToEmail: "billing@example.com",
			Subject: "Revised offer",
		})
		if err != nil {
			t.Fatalf("SendEmail() error = %v", err)
		}
		if provider.to != "billing@example.com" {
			t.Errorf("recipient = %q, want billing@example.com", provider.to)
		}
		if provider.subject != "Revised offer" {
			t.Errorf("subject = %q, want Revised offer", provider.subject)
		}
		if store.emails[0].SentByUserID != nil {
			t.Errorf("SentByUserID = %v, want nil for unattributed sends", store.emails[0].SentByUserID)
		}
	})
}

func TestPreviewTruncates(t *testing.T) {
	long := strings.Repeat("a", 500)
	if got := preview(long); len(got) != 200 {
		t.Errorf("preview length = %d, want 200", len(got))
	}
	if got := preview("short"); got != "short" {
		t.Errorf("preview(short) = %q", got)
	}

	// Truncation must land on a rune boundary, never mid-sequence
	accented := strings.Repeat("cotizaciónå", 50)
	got := preview(accented)
	if len(got) > 200 {
		t.Errorf("preview length = %d, want at most 200", len(got))
	}
	if !utf8.ValidString(got) {
		t.Errorf("preview split a multi-byte rune: %q", got[len(got)-4:])
	}
}
