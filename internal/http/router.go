package http

import (
	"net/http"

	"proforma-backend/internal/handlers"
	"proforma-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	companyHandler *handlers.CompanyHandler,
	customerHandler *handlers.CustomerHandler,
	productHandler *handlers.ProductHandler,
	quotationHandler *handlers.QuotationHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.ListUsers)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.CreateUser)).ServeHTTP).Methods("POST")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.GetUser)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.UpdateUser)).ServeHTTP).Methods("PUT")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.DeleteUser)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Companies
	companiesAPI := r.PathPrefix("/api/companies").Subrouter()
	companiesAPI.Use(authMiddleware.Authenticate)
	companiesAPI.HandleFunc("", companyHandler.ListCompanies).Methods("GET")
	companiesAPI.HandleFunc("", companyHandler.CreateCompany).Methods("POST")
	companiesAPI.HandleFunc("/{id}", companyHandler.GetCompany).Methods("GET")
	companiesAPI.HandleFunc("/{id}", companyHandler.UpdateCompany).Methods("PUT")
	companiesAPI.HandleFunc("/{id}", companyHandler.DeleteCompany).Methods("DELETE")

	// Protected API routes - Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{id}", customerHandler.DeleteCustomer).Methods("DELETE")

	// Protected API routes - Products
	productsAPI := r.PathPrefix("/api/products").Subrouter()
	productsAPI.Use(authMiddleware.Authenticate)
	productsAPI.HandleFunc("", productHandler.ListProducts).Methods("GET")
	productsAPI.HandleFunc("", productHandler.CreateProduct).Methods("POST")
	productsAPI.HandleFunc("/{id}", productHandler.GetProduct).Methods("GET")
	productsAPI.HandleFunc("/{id}", productHandler.UpdateProduct).Methods("PUT")
	productsAPI.HandleFunc("/{id}", productHandler.DeleteProduct).Methods("DELETE")

	// Protected API routes - Quotations
	quotationsAPI := r.PathPrefix("/api/quotations").Subrouter()
	quotationsAPI.Use(authMiddleware.Authenticate)
	quotationsAPI.HandleFunc("", quotationHandler.ListQuotations).Methods("GET")
	quotationsAPI.HandleFunc("", quotationHandler.CreateQuotation).Methods("POST")
	quotationsAPI.HandleFunc("/{id}", quotationHandler.GetQuotation).Methods("GET")
	quotationsAPI.HandleFunc("/{id}", quotationHandler.UpdateQuotation).Methods("PUT")
	quotationsAPI.HandleFunc("/{id}", quotationHandler.DeleteQuotation).Methods("DELETE")
	quotationsAPI.HandleFunc("/{id}/status", quotationHandler.UpdateStatus).Methods("PATCH")
	quotationsAPI.HandleFunc("/{id}/accept", quotationHandler.Accept).Methods("POST")
	quotationsAPI.HandleFunc("/{id}/pdf", quotationHandler.GeneratePdf).Methods("POST")
	quotationsAPI.HandleFunc("/{id}/pdf", quotationHandler.DownloadPdf).Methods("GET")
	quotationsAPI.HandleFunc("/{id}/email", quotationHandler.SendEmail).Methods("POST")
	quotationsAPI.HandleFunc("/{id}/emails", quotationHandler.ListEmails).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
