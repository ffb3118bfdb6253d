// Package product manages the certification workflow state: customers,
// submitted products, their rating snapshots, certificates and payments.
package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Product status lifecycle. The rating lock is a separate flag because a
// product can be rated before the pass notification goes out.
const (
	StatusSubmitted = "SUBMITTED"
	StatusPaid      = "PAID"
	StatusInReview  = "IN_REVIEW"
	StatusRated     = "RATED"
)

// Payment statuses.
const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrRatingLocked is returned when a rating snapshot is modified after
	// the pass notification locked it. The conflict performs no mutation.
	ErrRatingLocked = errors.New("rating is locked")
)

// Service provides certification workflow persistence backed by Postgres.
type Service struct {
	db *sql.DB
}

// NewService creates a new product Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Customer is a company submitting products for testing.
type Customer struct {
	ID        string
	Company   string
	Contact   string
	Email     string
	CreatedAt time.Time
}

// Product is one product under test, including its rating snapshot.
type Product struct {
	ID             string
	CustomerID     string
	Name           string
	Manufacturer   string
	TestNumber     string
	Status         string
	RatingValues   json.RawMessage
	RatingComputed json.RawMessage
	RatingLockedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Locked reports whether the rating snapshot can no longer be edited.
func (p *Product) Locked() bool {
	return p.RatingLockedAt != nil
}

// CertificateRow is an issued certificate record.
type CertificateRow struct {
	ID              string
	ProductID       string
	VerifyCode      string
	OverallGrade    float64
	OverallCategory string
	SealRef         string
	CertificateRef  string
	IssuedAt        time.Time
	RevokedAt       *time.Time
}

// PaymentRow is a testing-fee payment record.
type PaymentRow struct {
	ID                string
	ProductID         string
	CheckoutSessionID string
	AmountCents       int64
	Currency          string
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CreateCustomer creates a new customer.
func (s *Service) CreateCustomer(ctx context.Context, company, contact, email string) (*Customer, error) {
	c := &Customer{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO customers (company, contact, email)
		 VALUES ($1, $2, $3)
		 RETURNING id, company, contact, email, created_at`,
		company, contact, email,
	).Scan(&c.ID, &c.Company, &c.Contact, &c.Email, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

// GetCustomerByEmail looks up a customer by email address.
func (s *Service) GetCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	c := &Customer{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, company, contact, email, created_at
		 FROM customers WHERE email = $1`,
		email,
	).Scan(&c.ID, &c.Company, &c.Contact, &c.Email, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get customer by email %s: %w", email, err)
	}
	return c, nil
}

// GetCustomer retrieves a customer by id.
func (s *Service) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	c := &Customer{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, company, contact, email, created_at
		 FROM customers WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Company, &c.Contact, &c.Email, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get customer %s: %w", id, err)
	}
	return c, nil
}

// EnsureCustomer gets or creates a customer by email.
func (s *Service) EnsureCustomer(ctx context.Context, company, contact, email string) (*Customer, error) {
	c, err := s.GetCustomerByEmail(ctx, email)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	c, err = s.CreateCustomer(ctx, company, contact, email)
	if err != nil {
		// Could be a race condition; try getting again
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return s.GetCustomerByEmail(ctx, email)
		}
		return nil, err
	}
	return c, nil
}

const productColumns = `id, customer_id, name, manufacturer, test_number, status,
	rating_values, rating_computed, rating_locked_at, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	p := &Product{}
	err := row.Scan(&p.ID, &p.CustomerID, &p.Name, &p.Manufacturer, &p.TestNumber,
		&p.Status, &p.RatingValues, &p.RatingComputed, &p.RatingLockedAt,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateProduct registers a product for testing.
func (s *Service) CreateProduct(ctx context.Context, customerID, name, manufacturer, testNumber string) (*Product, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO products (customer_id, name, manufacturer, test_number)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+productColumns,
		customerID, name, manufacturer, testNumber,
	)
	p, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("create product %s: %w", name, err)
	}
	return p, nil
}

// GetProduct retrieves a product by id.
func (s *Service) GetProduct(ctx context.Context, id string) (*Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

// ListProducts returns all products, newest first.
func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// UpdateProduct updates the editable identity fields of a product.
func (s *Service) UpdateProduct(ctx context.Context, id, name, manufacturer string) (*Product, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE products SET name = $1, manufacturer = $2, updated_at = now()
		 WHERE id = $3
		 RETURNING `+productColumns,
		name, manufacturer, id,
	)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return p, nil
}

// DeleteProduct removes a product and its dependent rows.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus updates the workflow status of a product.
func (s *Service) SetStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET status = $1, updated_at = now() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("set product %s status: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set product %s status: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveRatingSnapshot persists the normalized rating values and the derived
// computation in one statement. The lock guard lives in the WHERE clause so
// a concurrent lock can never be overwritten: a locked row is left untouched
// and the call fails with ErrRatingLocked.
func (s *Service) SaveRatingSnapshot(ctx context.Context, id string, values, computed json.RawMessage) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products
		 SET rating_values = $1, rating_computed = $2, updated_at = now()
		 WHERE id = $3 AND rating_locked_at IS NULL`,
		values, computed, id,
	)
	if err != nil {
		return fmt.Errorf("save rating snapshot %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save rating snapshot %s: %w", id, err)
	}
	if n == 0 {
		// Row missing or lock set; look once more to tell the two apart.
		if _, err := s.GetProduct(ctx, id); err != nil {
			return err
		}
		return ErrRatingLocked
	}
	return nil
}

// LockRating marks the rating snapshot immutable. The transition is terminal
// and idempotent; there is no unlock.
func (s *Service) LockRating(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products
		 SET rating_locked_at = COALESCE(rating_locked_at, now()), updated_at = now()
		 WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("lock rating %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("lock rating %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendAudit records an admin action for a product.
func (s *Service) AppendAudit(ctx context.Context, productID, actor, action string, detail json.RawMessage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_log (product_id, actor, action, detail)
		 VALUES ($1, $2, $3, $4)`,
		productID, actor, action, detail,
	)
	if err != nil {
		return fmt.Errorf("append audit %s: %w", action, err)
	}
	return nil
}

// CreateCertificate records an issued certificate.
func (s *Service) CreateCertificate(ctx context.Context, productID, verifyCode string, overallGrade float64, overallCategory, sealRef, certificateRef string) (*CertificateRow, error) {
	c := &CertificateRow{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO certificates (product_id, verify_code, overall_grade, overall_category, seal_ref, certificate_ref)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, product_id, verify_code, overall_grade, overall_category, seal_ref, certificate_ref, issued_at, revoked_at`,
		productID, verifyCode, overallGrade, overallCategory, sealRef, certificateRef,
	).Scan(&c.ID, &c.ProductID, &c.VerifyCode, &c.OverallGrade, &c.OverallCategory,
		&c.SealRef, &c.CertificateRef, &c.IssuedAt, &c.RevokedAt)
	if err != nil {
		return nil, fmt.Errorf("create certificate: %w", err)
	}
	return c, nil
}

// GetCertificateByCode looks up a certificate by its public verify code.
func (s *Service) GetCertificateByCode(ctx context.Context, code string) (*CertificateRow, error) {
	c := &CertificateRow{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, product_id, verify_code, overall_grade, overall_category, seal_ref, certificate_ref, issued_at, revoked_at
		 FROM certificates WHERE verify_code = $1`,
		code,
	).Scan(&c.ID, &c.ProductID, &c.VerifyCode, &c.OverallGrade, &c.OverallCategory,
		&c.SealRef, &c.CertificateRef, &c.IssuedAt, &c.RevokedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get certificate by code: %w", err)
	}
	return c, nil
}

// GetCertificateByProduct returns the newest certificate for a product.
func (s *Service) GetCertificateByProduct(ctx context.Context, productID string) (*CertificateRow, error) {
	c := &CertificateRow{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, product_id, verify_code, overall_grade, overall_category, seal_ref, certificate_ref, issued_at, revoked_at
		 FROM certificates WHERE product_id = $1
		 ORDER BY issued_at DESC LIMIT 1`,
		productID,
	).Scan(&c.ID, &c.ProductID, &c.VerifyCode, &c.OverallGrade, &c.OverallCategory,
		&c.SealRef, &c.CertificateRef, &c.IssuedAt, &c.RevokedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get certificate for product %s: %w", productID, err)
	}
	return c, nil
}

// CreatePayment records a pending checkout session for a product.
func (s *Service) CreatePayment(ctx context.Context, productID, checkoutSessionID string, amountCents int64, currency string) (*PaymentRow, error) {
	p := &PaymentRow{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO payments (product_id, checkout_session_id, amount_cents, currency)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, product_id, checkout_session_id, amount_cents, currency, status, created_at, updated_at`,
		productID, checkoutSessionID, amountCents, currency,
	).Scan(&p.ID, &p.ProductID, &p.CheckoutSessionID, &p.AmountCents, &p.Currency,
		&p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return p, nil
}

// SetPaymentStatus updates a payment by checkout session id and returns the
// product it belongs to.
func (s *Service) SetPaymentStatus(ctx context.Context, checkoutSessionID, status string) (string, error) {
	var productID string
	err := s.db.QueryRowContext(ctx,
		`UPDATE payments SET status = $1, updated_at = now()
		 WHERE checkout_session_id = $2
		 RETURNING product_id`,
		status, checkoutSessionID,
	).Scan(&productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("set payment status for session %s: %w", checkoutSessionID, err)
	}
	return productID, nil
}
