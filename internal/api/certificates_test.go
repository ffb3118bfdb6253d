package api

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/certiseal/certiseal/internal/product"
	"github.com/certiseal/certiseal/internal/review"
)

func newMockedMux(t *testing.T) (*http.ServeMux, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	products := product.NewService(db)
	h := NewHandler(db, products, review.NewService(products, nil), nil, nil, NewAssetCache(4))
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux, mock
}

func TestIssueCertificateLookupFailure(t *testing.T) {
	mux, mock := newMockedMux(t)

	// A transient lookup error must stop the request; falling through
	// would issue a second certificate for an already-certified product.
	mock.ExpectQuery("FROM certificates").
		WillReturnError(errors.New("connection reset by peer"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/p1/certificate", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestIssueCertificateNoExistingProceeds(t *testing.T) {
	mux, mock := newMockedMux(t)

	// No certificate yet: the handler moves on to load the product.
	mock.ExpectQuery("FROM certificates").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("FROM products").WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/p1/certificate", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
