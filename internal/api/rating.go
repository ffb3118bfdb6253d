package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/certiseal/certiseal/internal/product"
	"github.com/certiseal/certiseal/internal/review"
	"github.com/certiseal/certiseal/pkg/rating"
)

type catalogSection struct {
	Key      rating.Section     `json:"key"`
	Label    string             `json:"label"`
	Weight   int                `json:"weight"`
	Criteria []rating.Criterion `json:"criteria"`
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	var result []catalogSection
	for _, s := range rating.Sections() {
		result = append(result, catalogSection{
			Key:      s.Key,
			Label:    s.Label,
			Weight:   s.Weight,
			Criteria: rating.SectionCriteria(s.Key),
		})
	}
	writeJSON(w, http.StatusOK, result)
}

type ratingResponse struct {
	Product  productResponse `json:"product"`
	Values   rating.Values   `json:"values"`
	Computed rating.Computed `json:"computed"`
}

func snapshotToResponse(snap *review.Snapshot) ratingResponse {
	return ratingResponse{
		Product:  productToResponse(snap.Product),
		Values:   snap.Values,
		Computed: snap.Computed,
	}
}

func (h *Handler) handleSaveRating(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productID")

	var input map[string]rating.RawValue
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	snap, err := h.review.SaveRating(r.Context(), productID, apiActor(r), input)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrNotFound):
			writeError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, product.ErrRatingLocked):
			writeError(w, http.StatusConflict, "rating is locked")
		default:
			writeError(w, http.StatusInternalServerError, "failed to save rating: "+err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, snapshotToResponse(snap))
}

func (h *Handler) handleGetRating(w http.ResponseWriter, r *http.Request) {
	snap, err := h.review.GetSnapshot(r.Context(), r.PathValue("productID"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load rating")
		return
	}
	writeJSON(w, http.StatusOK, snapshotToResponse(snap))
}

func (h *Handler) handleStartReview(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productID")

	if err := h.review.StartReview(r.Context(), productID, apiActor(r)); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": product.StatusInReview})
}

func (h *Handler) handleNotifyPassed(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productID")

	if err := h.review.NotifyPassed(r.Context(), productID, apiActor(r)); err != nil {
		switch {
		case errors.Is(err, product.ErrNotFound):
			writeError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, review.ErrRatingIncomplete):
			writeError(w, http.StatusUnprocessableEntity, "rating has no overall grade yet")
		default:
			writeError(w, http.StatusInternalServerError, "failed to notify: "+err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "notified"})
}

// apiActor identifies the acting admin for the audit log. The API key model
// has no per-user identity, so callers may label themselves per request.
func apiActor(r *http.Request) string {
	if actor := r.Header.Get("X-Actor"); actor != "" {
		return actor
	}
	return "api"
}
