package certificate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/certiseal/certiseal/internal/product"
	"github.com/certiseal/certiseal/pkg/rating"
)

// ErrNoOverallGrade is returned when a certificate is requested for a
// product whose rating has no computed overall grade yet.
var ErrNoOverallGrade = errors.New("rating has no overall grade")

// Service issues certificates and seals.
type Service struct {
	products   *product.Service
	storage    StorageClient
	publicBase string
}

// NewService creates a certificate Service. publicBase is the external base
// URL used for verification links, without trailing slash.
func NewService(products *product.Service, storage StorageClient, publicBase string) *Service {
	return &Service{products: products, storage: storage, publicBase: publicBase}
}

// VerifyURL returns the public verification link for a verify code.
func (s *Service) VerifyURL(code string) string {
	return s.publicBase + "/verify/" + code
}

// Issue generates the seal image and certificate PDF for a rated product,
// stores both blobs and records the certificate. The rating must have a
// computed overall grade; partial ratings fail with ErrNoOverallGrade.
func (s *Service) Issue(ctx context.Context, p *product.Product, computed rating.Computed, actor string) (*product.CertificateRow, error) {
	if computed.OverallGrade == nil || computed.OverallCategory == nil {
		return nil, ErrNoOverallGrade
	}

	code := uuid.NewString()
	verifyURL := s.VerifyURL(code)

	seal, err := RenderSeal(SealData{
		ProductName:     p.Name,
		OverallGrade:    *computed.OverallGrade,
		OverallCategory: *computed.OverallCategory,
		TestNumber:      p.TestNumber,
		VerifyURL:       verifyURL,
	})
	if err != nil {
		return nil, fmt.Errorf("render seal: %w", err)
	}

	pdf, err := RenderCertificate(CertificateData{
		ProductName:     p.Name,
		Manufacturer:    p.Manufacturer,
		TestNumber:      p.TestNumber,
		IssuedAt:        time.Now(),
		Computed:        computed,
		OverallGrade:    *computed.OverallGrade,
		OverallCategory: *computed.OverallCategory,
		VerifyURL:       verifyURL,
	})
	if err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}

	if err := s.storage.PutSeal(ctx, p.ID, seal); err != nil {
		return nil, fmt.Errorf("store seal: %w", err)
	}
	if err := s.storage.PutCertificate(ctx, p.ID, pdf); err != nil {
		return nil, fmt.Errorf("store certificate: %w", err)
	}

	row, err := s.products.CreateCertificate(ctx, p.ID, code,
		*computed.OverallGrade, *computed.OverallCategory,
		sealRef(p.ID), certificateRef(p.ID))
	if err != nil {
		return nil, fmt.Errorf("record certificate: %w", err)
	}

	if err := s.products.AppendAudit(ctx, p.ID, actor, "certificate.issue", nil); err != nil {
		log.Printf("audit certificate.issue for %s: %v", p.ID, err)
	}
	return row, nil
}

// SealPNG loads the stored seal image for a product.
func (s *Service) SealPNG(ctx context.Context, productID string) ([]byte, error) {
	return s.storage.GetSeal(ctx, productID)
}

// CertificatePDF loads the stored certificate document for a product.
func (s *Service) CertificatePDF(ctx context.Context, productID string) ([]byte, error) {
	return s.storage.GetCertificate(ctx, productID)
}
