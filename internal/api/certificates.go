package api

import (
	"errors"
	"net/http"

	"github.com/certiseal/certiseal/internal/certificate"
	"github.com/certiseal/certiseal/internal/product"
)

type certificateResponse struct {
	ID              string  `json:"id"`
	ProductID       string  `json:"product_id"`
	VerifyCode      string  `json:"verify_code"`
	VerifyURL       string  `json:"verify_url"`
	OverallGrade    float64 `json:"overall_grade"`
	OverallCategory string  `json:"overall_category"`
	IssuedAt        string  `json:"issued_at"`
	Revoked         bool    `json:"revoked"`
}

func (h *Handler) certificateToResponse(c *product.CertificateRow) certificateResponse {
	return certificateResponse{
		ID:              c.ID,
		ProductID:       c.ProductID,
		VerifyCode:      c.VerifyCode,
		VerifyURL:       h.certs.VerifyURL(c.VerifyCode),
		OverallGrade:    c.OverallGrade,
		OverallCategory: c.OverallCategory,
		IssuedAt:        c.IssuedAt.Format("2006-01-02T15:04:05Z"),
		Revoked:         c.RevokedAt != nil,
	}
}

func (h *Handler) handleIssueCertificate(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productID")

	// Issuing is not repeatable; an existing certificate is returned as-is.
	// Anything other than a clean not-found must not fall through to a
	// second issuance.
	existing, err := h.products.GetCertificateByProduct(r.Context(), productID)
	if err == nil {
		writeJSON(w, http.StatusOK, h.certificateToResponse(existing))
		return
	}
	if !errors.Is(err, product.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "failed to look up certificate")
		return
	}

	snap, err := h.review.GetSnapshot(r.Context(), productID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load rating")
		return
	}

	row, err := h.certs.Issue(r.Context(), snap.Product, snap.Computed, apiActor(r))
	if err != nil {
		if errors.Is(err, certificate.ErrNoOverallGrade) {
			writeError(w, http.StatusUnprocessableEntity, "rating has no overall grade yet")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to issue certificate: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, h.certificateToResponse(row))
}

type verifyResponse struct {
	Valid           bool    `json:"valid"`
	ProductName     string  `json:"product_name,omitempty"`
	Manufacturer    string  `json:"manufacturer,omitempty"`
	TestNumber      string  `json:"test_number,omitempty"`
	OverallGrade    float64 `json:"overall_grade,omitempty"`
	OverallCategory string  `json:"overall_category,omitempty"`
	IssuedAt        string  `json:"issued_at,omitempty"`
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	cert, err := h.products.GetCertificateByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "unknown verification code")
			return
		}
		writeError(w, http.StatusInternalServerError, "verification failed")
		return
	}
	if cert.RevokedAt != nil {
		writeJSON(w, http.StatusGone, verifyResponse{Valid: false})
		return
	}

	p, err := h.products.GetProduct(r.Context(), cert.ProductID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "verification failed")
		return
	}

	writeJSON(w, http.StatusOK, verifyResponse{
		Valid:           true,
		ProductName:     p.Name,
		Manufacturer:    p.Manufacturer,
		TestNumber:      p.TestNumber,
		OverallGrade:    cert.OverallGrade,
		OverallCategory: cert.OverallCategory,
		IssuedAt:        cert.IssuedAt.Format("2006-01-02T15:04:05Z"),
	})
}

func (h *Handler) serveAsset(w http.ResponseWriter, r *http.Request, ref, contentType string,
	load func() ([]byte, error)) {
	data := h.assets.Get(ref)
	if data == nil {
		var err error
		data, err = load()
		if err != nil {
			writeError(w, http.StatusNotFound, "asset not found")
			return
		}
		h.assets.Put(ref, data)
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) handleSealPNG(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productID")
	h.serveAsset(w, r, "seals/"+productID+".png", "image/png", func() ([]byte, error) {
		return h.certs.SealPNG(r.Context(), productID)
	})
}

func (h *Handler) handleCertificatePDF(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productID")
	h.serveAsset(w, r, "certificates/"+productID+".pdf", "application/pdf", func() ([]byte, error) {
		return h.certs.CertificatePDF(r.Context(), productID)
	})
}

// handleVerifySeal serves the seal image for a verification code, so
// customers can embed the seal straight from the verification page.
func (h *Handler) handleVerifySeal(w http.ResponseWriter, r *http.Request) {
	cert, err := h.products.GetCertificateByCode(r.Context(), r.PathValue("code"))
	if err != nil || cert.RevokedAt != nil {
		writeError(w, http.StatusNotFound, "unknown verification code")
		return
	}
	h.serveAsset(w, r, "seals/"+cert.ProductID+".png", "image/png", func() ([]byte, error) {
		return h.certs.SealPNG(r.Context(), cert.ProductID)
	})
}
