package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"proforma-backend/internal/cache"
	"proforma-backend/internal/models"
	"proforma-backend/internal/services"

	"github.com/gorilla/mux"
)

const productListCacheTTL = 5 * time.Minute

type ProductHandler struct {
	Service *services.ProductService
}

func NewProductHandler(s *services.ProductService) *ProductHandler {
	return &ProductHandler{Service: s}
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	product := &models.Product{
		Name:           req.Name,
		Description:    req.Description,
		Unit:           req.Unit,
		CostReference:  req.CostReference,
		PriceReference: req.PriceReference,
		Active:         active,
	}
	if err := h.Service.CreateProduct(context.Background(), product); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(product)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	product, err := h.Service.GetProduct(context.Background(), id)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(product)
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	// Try cache first; invalidated on every product write
	cacheKey := "products:list:all"
	if activeOnly {
		cacheKey = "products:list:active"
	}
	ctx := context.Background()
	if data, ok := cache.GetCached(ctx, cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Write(data)
		return
	}

	products, err := h.Service.ListProducts(ctx, activeOnly)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, _ := json.Marshal(products)
	cache.SetCached(ctx, cacheKey, data, productListCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(data)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	product := &models.Product{
		ID:             id,
		Name:           req.Name,
		Description:    req.Description,
		Unit:           req.Unit,
		CostReference:  req.CostReference,
		PriceReference: req.PriceReference,
		Active:         req.Active,
	}
	if err := h.Service.UpdateProduct(context.Background(), product); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(product)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	if err := h.Service.DeleteProduct(context.Background(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
