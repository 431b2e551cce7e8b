package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"proforma-backend/internal/models"
	"proforma-backend/internal/services"

	"github.com/gorilla/mux"
)

// stubStore implements services.QuotationStore around one quotation.
type stubStore struct {
	quotation *models.QuotationWithDetails
	emails    []models.QuotationEmail
}

func (s *stubStore) Create(ctx context.Context, q *models.Quotation) error { q.ID = 1; return nil }

func (s *stubStore) Get(ctx context.Context, id int) (*models.QuotationWithDetails, error) {
	if s.quotation == nil {
		return nil, errors.New("no rows in result set")
	}
	return s.quotation, nil
}

func (s *stubStore) List(ctx context.Context) ([]*models.QuotationWithDetails, error) {
	return []*models.QuotationWithDetails{s.quotation}, nil
}

func (s *stubStore) Update(ctx context.Context, q *models.Quotation) error { return nil }

func (s *stubStore) UpdateStatus(ctx context.Context, id int, status models.QuotationStatus) error {
	s.quotation.Status = status
	return nil
}

func (s *stubStore) Delete(ctx context.Context, id int) error { return nil }

func (s *stubStore) CreateEmail(ctx context.Context, e *models.QuotationEmail) error {
	s.emails = append(s.emails, *e)
	return nil
}

func (s *stubStore) LatestPdf(ctx context.Context, quotationID int) (*models.QuotationPdf, error) {
	return nil, nil
}

// stubProvider fails every send when err is set.
type stubProvider struct{ err error }

func (p *stubProvider) Send(to, subject, body string, attachmentPaths ...string) error {
	return p.err
}

func newTestRouter(store *stubStore, provider *stubProvider) *mux.Router {
	svc := services.NewQuotationService(store, provider)
	h := NewQuotationHandler(svc, nil)

	r := mux.NewRouter()
	r.HandleFunc("/api/quotations", h.ListQuotations).Methods("GET")
	r.HandleFunc("/api/quotations/{id}/status", h.UpdateStatus).Methods("PATCH")
	r.HandleFunc("/api/quotations/{id}/accept", h.Accept).Methods("POST")
	r.HandleFunc("/api/quotations/{id}/email", h.SendEmail).Methods("POST")
	return r
}

func sentQuotation() *models.QuotationWithDetails {
	return &models.QuotationWithDetails{
		Quotation: models.Quotation{
			ID:     1,
			Number: "PRF-000007",
			Status: models.StatusDraft,
		},
		CustomerEmail: "acme@example.com",
	}
}

func TestListQuotationsEndpoint(t *testing.T) {
	store := &stubStore{quotation: sentQuotation()}
	router := newTestRouter(store, &stubProvider{})

	req := httptest.NewRequest("GET", "/api/quotations", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	// Without a cache client every request falls through to the store
	if got := rec.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("X-Cache = %q, want MISS", got)
	}

	var got []models.QuotationWithDetails
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(got) != 1 || got[0].Number != "PRF-000007" {
		t.Errorf("list = %+v, want the one stored quotation", got)
	}
}

func TestUpdateStatusEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantCode   int
		wantStatus models.QuotationStatus
	}{
		{
			name:       "known status transitions",
			body:       `{"status":"rejected"}`,
			wantCode:   http.StatusOK,
			wantStatus: models.StatusRejected,
		},
		{
			name:       "unknown status is rejected",
			body:       `{"status":"archived"}`,
			wantCode:   http.StatusBadRequest,
			wantStatus: models.StatusDraft,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubStore{quotation: sentQuotation()}
			router := newTestRouter(store, &stubProvider{})

			req := httptest.NewRequest("PATCH", "/api/quotations/1/status", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status code = %d, want %d (body: %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if store.quotation.Status != tt.wantStatus {
				t.Errorf("quotation status = %q, want %q", store.quotation.Status, tt.wantStatus)
			}
		})
	}
}

func TestAcceptEndpoint(t *testing.T) {
	store := &stubStore{quotation: sentQuotation()}
	router := newTestRouter(store, &stubProvider{})

	req := httptest.NewRequest("POST", "/api/quotations/1/accept", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var got models.QuotationWithDetails
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.Status != models.StatusAccepted {
		t.Errorf("response status = %q, want accepted", got.Status)
	}
}

func TestSendEmailEndpoint(t *testing.T) {
	t.Run("delivery failure returns the logged attempt", func(t *testing.T) {
		store := &stubStore{quotation: sentQuotation()}
		router := newTestRouter(store, &stubProvider{err: errors.New("smtp connection refused")})

		req := httptest.NewRequest("POST", "/api/quotations/1/email", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("status code = %d, want 502 (body: %s)", rec.Code, rec.Body.String())
		}

		var record models.QuotationEmail
		if err := json.NewDecoder(rec.Body).Decode(&record); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if record.Status != models.EmailStatusError {
			t.Errorf("record status = %q, want error", record.Status)
		}
		if len(store.emails) != 1 {
			t.Errorf("email rows = %d, want 1", len(store.emails))
		}
		if store.quotation.Status != models.StatusDraft {
			t.Errorf("quotation status = %q, want draft untouched", store.quotation.Status)
		}
	})

	t.Run("missing recipient is a bad request", func(t *testing.T) {
		q := sentQuotation()
		q.CustomerEmail = ""
		store := &stubStore{quotation: q}
		router := newTestRouter(store, &stubProvider{})

		req := httptest.NewRequest("POST", "/api/quotations/1/email", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status code = %d, want 400 (body: %s)", rec.Code, rec.Body.String())
		}
	})
}
