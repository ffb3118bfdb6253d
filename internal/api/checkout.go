package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/certiseal/certiseal/internal/product"
)

type checkoutRequest struct {
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

type checkoutResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

func (h *Handler) handleCreateCheckout(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productID")

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.SuccessURL == "" || req.CancelURL == "" {
		writeError(w, http.StatusBadRequest, "success_url and cancel_url are required")
		return
	}

	p, err := h.products.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	checkout, err := h.payments.CreateCheckout(r.Context(), p, req.SuccessURL, req.CancelURL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create checkout: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, checkoutResponse{
		SessionID: checkout.SessionID,
		URL:       checkout.URL,
	})
}
