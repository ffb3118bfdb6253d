// Package api implements the CertiSeal REST API.
// It provides the admin endpoints for products, ratings and certificates,
// plus the public verification endpoints.
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/certiseal/certiseal/internal/certificate"
	"github.com/certiseal/certiseal/internal/payment"
	"github.com/certiseal/certiseal/internal/product"
	"github.com/certiseal/certiseal/internal/review"
)

// Handler is the top-level API handler for the CertiSeal service.
type Handler struct {
	db       *sql.DB
	products *product.Service
	review   *review.Service
	certs    *certificate.Service
	payments *payment.Service
	assets   *AssetCache
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, products *product.Service, reviewSvc *review.Service, certs *certificate.Service, payments *payment.Service, assets *AssetCache) *Handler {
	if assets == nil {
		assets = NewAssetCacheFromEnv()
	}
	return &Handler{
		db:       db,
		products: products,
		review:   reviewSvc,
		certs:    certs,
		payments: payments,
		assets:   assets,
	}
}

// RegisterRoutes registers the admin API routes on the given ServeMux.
// These are expected to run behind APIKeyAuth.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Product lifecycle
	mux.HandleFunc("POST /api/v1/products", h.handleCreateProduct)
	mux.HandleFunc("GET /api/v1/products", h.handleListProducts)
	mux.HandleFunc("GET /api/v1/products/{productID}", h.handleGetProduct)
	mux.HandleFunc("PATCH /api/v1/products/{productID}", h.handleUpdateProduct)
	mux.HandleFunc("DELETE /api/v1/products/{productID}", h.handleDeleteProduct)

	// Rating workflow
	mux.HandleFunc("GET /api/v1/catalog", h.handleCatalog)
	mux.HandleFunc("PUT /api/v1/products/{productID}/rating", h.handleSaveRating)
	mux.HandleFunc("GET /api/v1/products/{productID}/rating", h.handleGetRating)
	mux.HandleFunc("POST /api/v1/products/{productID}/review", h.handleStartReview)
	mux.HandleFunc("POST /api/v1/products/{productID}/notify", h.handleNotifyPassed)

	// Exports and certificates
	mux.HandleFunc("GET /api/v1/products/{productID}/export.csv", h.handleExportCSV)
	mux.HandleFunc("GET /api/v1/products/{productID}/export.html", h.handleExportHTML)
	mux.HandleFunc("POST /api/v1/products/{productID}/certificate", h.handleIssueCertificate)
	mux.HandleFunc("GET /api/v1/products/{productID}/seal.png", h.handleSealPNG)
	mux.HandleFunc("GET /api/v1/products/{productID}/certificate.pdf", h.handleCertificatePDF)

	// Payments
	mux.HandleFunc("POST /api/v1/products/{productID}/checkout", h.handleCreateCheckout)
}

// RegisterPublicRoutes registers the unauthenticated routes.
func (h *Handler) RegisterPublicRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /verify/{code}", h.handleVerify)
	mux.HandleFunc("GET /verify/{code}/seal.png", h.handleVerifySeal)
	mux.HandleFunc("GET /healthz", h.handleHealth)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
