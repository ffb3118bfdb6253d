// Package certificate issues seal images and certificate PDFs for passed
// products and stores them in blob storage.
package certificate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// StorageClient abstracts blob storage for seal images and certificate PDFs.
type StorageClient interface {
	PutSeal(ctx context.Context, productID string, data []byte) error
	GetSeal(ctx context.Context, productID string) ([]byte, error)
	PutCertificate(ctx context.Context, productID string, data []byte) error
	GetCertificate(ctx context.Context, productID string) ([]byte, error)
}

// Storage refs persisted alongside certificates; the ref format matches the
// object key used by every backend.
func sealRef(productID string) string        { return "seals/" + productID + ".png" }
func certificateRef(productID string) string { return "certificates/" + productID + ".pdf" }

// LocalStorage implements StorageClient using the local filesystem.
// Useful for development and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(ref string) string {
	return filepath.Join(s.BaseDir, filepath.FromSlash(ref))
}

func (s *LocalStorage) put(ref string, data []byte) error {
	path := s.path(ref)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// PutSeal stores a seal image.
func (s *LocalStorage) PutSeal(ctx context.Context, productID string, data []byte) error {
	return s.put(sealRef(productID), data)
}

// GetSeal retrieves a seal image.
func (s *LocalStorage) GetSeal(ctx context.Context, productID string) ([]byte, error) {
	return os.ReadFile(s.path(sealRef(productID)))
}

// PutCertificate stores a certificate PDF.
func (s *LocalStorage) PutCertificate(ctx context.Context, productID string, data []byte) error {
	return s.put(certificateRef(productID), data)
}

// GetCertificate retrieves a certificate PDF.
func (s *LocalStorage) GetCertificate(ctx context.Context, productID string) ([]byte, error) {
	return os.ReadFile(s.path(certificateRef(productID)))
}
