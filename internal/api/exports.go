package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/certiseal/certiseal/internal/product"
	"github.com/certiseal/certiseal/internal/review"
	"github.com/certiseal/certiseal/pkg/render"
)

func productInfo(snap *review.Snapshot) render.ProductInfo {
	return render.ProductInfo{
		Name:         snap.Product.Name,
		Manufacturer: snap.Product.Manufacturer,
		TestNumber:   snap.Product.TestNumber,
		TestedAt:     snap.Product.UpdatedAt,
	}
}

func (h *Handler) loadSnapshotForExport(w http.ResponseWriter, r *http.Request) *review.Snapshot {
	snap, err := h.review.GetSnapshot(r.Context(), r.PathValue("productID"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return nil
		}
		writeError(w, http.StatusInternalServerError, "failed to load rating")
		return nil
	}
	return snap
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	snap := h.loadSnapshotForExport(w, r)
	if snap == nil {
		return
	}

	data, err := render.CSV(productInfo(snap), snap.Values, snap.Computed)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "pruefbericht-"+snap.Product.TestNumber+".csv"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) handleExportHTML(w http.ResponseWriter, r *http.Request) {
	snap := h.loadSnapshotForExport(w, r)
	if snap == nil {
		return
	}

	data, err := render.HTML(productInfo(snap), snap.Values, snap.Computed)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
