// Package review orchestrates the admin review pipeline: normalizing
// submitted rating forms, computing the derived rating, persisting the
// snapshot, and the pass notification that locks it.
package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/certiseal/certiseal/internal/product"
	"github.com/certiseal/certiseal/pkg/rating"
)

// ErrRatingIncomplete is returned when an action requires a fully computed
// overall grade and the snapshot does not have one yet.
var ErrRatingIncomplete = errors.New("rating is incomplete")

// Notifier delivers the customer "passed" notification. The review service
// locks the rating only after a successful send.
type Notifier interface {
	NotifyPassed(ctx context.Context, customer *product.Customer, p *product.Product, computed rating.Computed) error
}

// Store is the subset of the product service the review workflow persists
// through. *product.Service satisfies it.
type Store interface {
	GetProduct(ctx context.Context, id string) (*product.Product, error)
	GetCustomer(ctx context.Context, id string) (*product.Customer, error)
	SaveRatingSnapshot(ctx context.Context, id string, values, computed json.RawMessage) error
	SetStatus(ctx context.Context, id, status string) error
	LockRating(ctx context.Context, id string) error
	AppendAudit(ctx context.Context, productID, actor, action string, detail json.RawMessage) error
}

// Service orchestrates rating review for products under test.
type Service struct {
	products Store
	notifier Notifier
}

// NewService creates a review Service. notifier may be nil in deployments
// without outbound mail; NotifyPassed then fails loudly instead of locking.
func NewService(products Store, notifier Notifier) *Service {
	return &Service{products: products, notifier: notifier}
}

// Snapshot is a product together with its decoded rating.
type Snapshot struct {
	Product  *product.Product
	Values   rating.Values
	Computed rating.Computed
}

// SaveRating normalizes raw form input, recomputes the derived rating and
// persists both as the product's snapshot. Unknown criterion ids are dropped
// and missing ones stored as unscored, so the persisted shape is always the
// full catalog. Fails with product.ErrRatingLocked after the pass
// notification went out.
func (s *Service) SaveRating(ctx context.Context, productID, actor string, input map[string]rating.RawValue) (*Snapshot, error) {
	p, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if p.Locked() {
		return nil, product.ErrRatingLocked
	}

	values := rating.ToPersistableValues(input)
	computed := rating.Compute(values)

	valuesJSON, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("marshal rating values: %w", err)
	}
	computedJSON, err := json.Marshal(computed)
	if err != nil {
		return nil, fmt.Errorf("marshal computed rating: %w", err)
	}

	// The DB-side lock guard is authoritative; the check above only saves a
	// round trip.
	if err := s.products.SaveRatingSnapshot(ctx, productID, valuesJSON, computedJSON); err != nil {
		return nil, err
	}

	if computed.OverallGrade != nil && p.Status == product.StatusInReview {
		if err := s.products.SetStatus(ctx, productID, product.StatusRated); err != nil {
			return nil, fmt.Errorf("advance product status: %w", err)
		}
	}

	if err := s.products.AppendAudit(ctx, productID, actor, "rating.save", computedJSON); err != nil {
		log.Printf("audit rating.save for %s: %v", productID, err)
	}

	p, err = s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("reload product: %w", err)
	}
	return &Snapshot{Product: p, Values: values, Computed: computed}, nil
}

// GetSnapshot loads a product and decodes its persisted rating. Products
// that were never rated get an empty catalog-complete snapshot.
func (s *Service) GetSnapshot(ctx context.Context, productID string) (*Snapshot, error) {
	p, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return decodeSnapshot(p)
}

func decodeSnapshot(p *product.Product) (*Snapshot, error) {
	snap := &Snapshot{Product: p}

	if len(p.RatingValues) == 0 {
		snap.Values = rating.ToPersistableValues(nil)
		snap.Computed = rating.Compute(snap.Values)
		return snap, nil
	}

	if err := json.Unmarshal(p.RatingValues, &snap.Values); err != nil {
		return nil, fmt.Errorf("decode rating values for %s: %w", p.ID, err)
	}
	// Recompute instead of trusting the stored derivation: the computed
	// block is always re-derivable from values and the catalog.
	snap.Computed = rating.Compute(snap.Values)
	return snap, nil
}

// StartReview moves a paid product into review.
func (s *Service) StartReview(ctx context.Context, productID, actor string) error {
	p, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if p.Status != product.StatusPaid {
		return fmt.Errorf("product %s is %s, expected %s", productID, p.Status, product.StatusPaid)
	}
	if err := s.products.SetStatus(ctx, productID, product.StatusInReview); err != nil {
		return err
	}
	if err := s.products.AppendAudit(ctx, productID, actor, "review.start", nil); err != nil {
		log.Printf("audit review.start for %s: %v", productID, err)
	}
	return nil
}

// NotifyPassed sends the customer "passed + plans" mail and, only after the
// send succeeded, locks the rating snapshot for good. A failed send leaves
// the rating editable.
func (s *Service) NotifyPassed(ctx context.Context, productID, actor string) error {
	snap, err := s.GetSnapshot(ctx, productID)
	if err != nil {
		return err
	}
	if snap.Computed.OverallGrade == nil {
		return ErrRatingIncomplete
	}
	if s.notifier == nil {
		return fmt.Errorf("no notifier configured")
	}

	customer, err := s.products.GetCustomer(ctx, snap.Product.CustomerID)
	if err != nil {
		return fmt.Errorf("load customer: %w", err)
	}

	if err := s.notifier.NotifyPassed(ctx, customer, snap.Product, snap.Computed); err != nil {
		return fmt.Errorf("send pass notification: %w", err)
	}

	if err := s.products.LockRating(ctx, productID); err != nil {
		return fmt.Errorf("lock rating: %w", err)
	}
	if err := s.products.AppendAudit(ctx, productID, actor, "rating.lock", nil); err != nil {
		log.Printf("audit rating.lock for %s: %v", productID, err)
	}
	return nil
}
