package api

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/certiseal/certiseal/internal/product"
)

type createProductRequest struct {
	Company      string `json:"company"`
	Contact      string `json:"contact"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	TestNumber   string `json:"test_number"` // optional, assigned when empty
}

type updateProductRequest struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
}

type productResponse struct {
	ID           string `json:"id"`
	CustomerID   string `json:"customer_id"`
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	TestNumber   string `json:"test_number"`
	Status       string `json:"status"`
	RatingLocked bool   `json:"rating_locked"`
	LockedAt     string `json:"rating_locked_at,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func productToResponse(p *product.Product) productResponse {
	resp := productResponse{
		ID:           p.ID,
		CustomerID:   p.CustomerID,
		Name:         p.Name,
		Manufacturer: p.Manufacturer,
		TestNumber:   p.TestNumber,
		Status:       p.Status,
		RatingLocked: p.Locked(),
		CreatedAt:    p.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    p.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if p.RatingLockedAt != nil {
		resp.LockedAt = p.RatingLockedAt.Format("2006-01-02T15:04:05Z")
	}
	return resp
}

// newTestNumber assigns a human-readable test number like CS-2026-0417.
func newTestNumber() string {
	u := uuid.New()
	seq := binary.BigEndian.Uint32(u[0:4]) % 10000
	return fmt.Sprintf("CS-%d-%04d", time.Now().Year(), seq)
}

func isDuplicateErr(err error) bool {
	return strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique")
}

func (req *createProductRequest) validate() error {
	if req.Company == "" {
		return fmt.Errorf("company is required")
	}
	if req.Email == "" {
		return fmt.Errorf("email is required")
	}
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if req.Manufacturer == "" {
		return fmt.Errorf("manufacturer is required")
	}
	return nil
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	customer, err := h.products.EnsureCustomer(r.Context(), req.Company, req.Contact, req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store customer: "+err.Error())
		return
	}

	testNumber := req.TestNumber
	if testNumber == "" {
		testNumber = newTestNumber()
	}

	p, err := h.products.CreateProduct(r.Context(), customer.ID, req.Name, req.Manufacturer, testNumber)
	// Assigned test numbers can collide; retry with fresh ones before
	// giving up. Caller-supplied numbers are not retried.
	for attempt := 0; err != nil && req.TestNumber == "" && attempt < 2 && isDuplicateErr(err); attempt++ {
		p, err = h.products.CreateProduct(r.Context(), customer.ID, req.Name, req.Manufacturer, newTestNumber())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create product: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, productToResponse(p))
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	result := []productResponse{}
	for i := range products {
		result = append(result, productToResponse(&products[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetProduct(r.Context(), r.PathValue("productID"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	writeJSON(w, http.StatusOK, productToResponse(p))
}

func (h *Handler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productID")

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" && req.Manufacturer == "" {
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	current, err := h.products.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	if req.Name == "" {
		req.Name = current.Name
	}
	if req.Manufacturer == "" {
		req.Manufacturer = current.Manufacturer
	}

	p, err := h.products.UpdateProduct(r.Context(), productID, req.Name, req.Manufacturer)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update product: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, productToResponse(p))
}

func (h *Handler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.DeleteProduct(r.Context(), r.PathValue("productID")); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete product: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
