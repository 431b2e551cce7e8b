package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"proforma-backend/internal/cache"
	"proforma-backend/internal/middleware"
	"proforma-backend/internal/models"
	"proforma-backend/internal/services"

	"github.com/gorilla/mux"
)

const (
	quotationListCacheKey = "quotations:list"
	quotationListCacheTTL = time.Minute
)

type QuotationHandler struct {
	Service    *services.QuotationService
	PdfService *services.PdfService
}

func NewQuotationHandler(s *services.QuotationService, pdfService *services.PdfService) *QuotationHandler {
	return &QuotationHandler{
		Service:    s,
		PdfService: pdfService,
	}
}

func (h *QuotationHandler) CreateQuotation(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())

	quotation, err := h.Service.CreateQuotation(r.Context(), userID, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(quotation)
}

func (h *QuotationHandler) GetQuotation(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	quotation, err := h.Service.GetQuotation(r.Context(), id)
	if err != nil {
		http.Error(w, "Quotation not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quotation)
}

func (h *QuotationHandler) ListQuotations(w http.ResponseWriter, r *http.Request) {
	// Try cache first; invalidated on every quotation write
	if data, ok := cache.GetCached(r.Context(), quotationListCacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Write(data)
		return
	}

	quotations, err := h.Service.ListQuotations(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, _ := json.Marshal(quotations)
	cache.SetCached(r.Context(), quotationListCacheKey, data, quotationListCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(data)
}

func (h *QuotationHandler) UpdateQuotation(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	var req models.UpdateQuotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	quotation, err := h.Service.UpdateQuotation(r.Context(), id, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quotation)
}

func (h *QuotationHandler) DeleteQuotation(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	if err := h.Service.DeleteQuotation(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateStatus handles PATCH /quotations/{id}/status
func (h *QuotationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.SetStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, services.ErrUnknownStatus) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	quotation, err := h.Service.GetQuotation(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quotation)
}

// Accept handles POST /quotations/{id}/accept
func (h *QuotationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	if err := h.Service.MarkAccepted(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	quotation, err := h.Service.GetQuotation(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quotation)
}

// GeneratePdf handles POST /quotations/{id}/pdf
func (h *QuotationHandler) GeneratePdf(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	record, err := h.PdfService.Generate(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
}

// DownloadPdf handles GET /quotations/{id}/pdf
func (h *QuotationHandler) DownloadPdf(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	filePath, err := h.PdfService.LatestFile(r.Context(), id)
	if err != nil {
		http.Error(w, "No PDF generated for this quotation", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(filePath))
	http.ServeFile(w, r, filePath)
}

// SendEmail handles POST /quotations/{id}/email
func (h *QuotationHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	var req models.SendQuotationEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())

	record, err := h.Service.SendEmail(r.Context(), id, userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNoRecipient) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// The attempt may be logged even when delivery failed
		if record != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(record)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

// ListEmails handles GET /quotations/{id}/emails
func (h *QuotationHandler) ListEmails(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	quotation, err := h.Service.GetQuotation(r.Context(), id)
	if err != nil {
		http.Error(w, "Quotation not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quotation.Emails)
}
