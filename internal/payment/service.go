// Package payment integrates Stripe Checkout for the product testing fee.
package payment

import (
	"context"
	"fmt"
	"log"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"

	"github.com/certiseal/certiseal/internal/product"
)

// Config holds the Stripe settings.
type Config struct {
	APIKey  string
	PriceID string
}

// Service creates checkout sessions and reacts to their outcome.
type Service struct {
	products *product.Service
	priceID  string
}

// NewService creates a payment Service and sets the global Stripe API key.
func NewService(products *product.Service, cfg Config) *Service {
	stripe.Key = cfg.APIKey
	return &Service{products: products, priceID: cfg.PriceID}
}

// Checkout is the result of creating a checkout session: the URL the
// customer is redirected to.
type Checkout struct {
	SessionID string
	URL       string
}

// CreateCheckout creates a Stripe Checkout session for the testing fee of a
// product and records the pending payment.
func (s *Service) CreateCheckout(ctx context.Context, p *product.Product, successURL, cancelURL string) (*Checkout, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(s.priceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL:        stripe.String(successURL),
		CancelURL:         stripe.String(cancelURL),
		ClientReferenceID: stripe.String(p.ID),
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session for %s: %w", p.ID, err)
	}

	if _, err := s.products.CreatePayment(ctx, p.ID, sess.ID, sess.AmountTotal, string(sess.Currency)); err != nil {
		return nil, err
	}
	return &Checkout{SessionID: sess.ID, URL: sess.URL}, nil
}

// HandleCheckoutCompleted marks the payment completed and advances the
// product to PAID.
func (s *Service) HandleCheckoutCompleted(ctx context.Context, sessionID string) error {
	productID, err := s.products.SetPaymentStatus(ctx, sessionID, product.PaymentCompleted)
	if err != nil {
		return fmt.Errorf("complete payment %s: %w", sessionID, err)
	}
	if err := s.products.SetStatus(ctx, productID, product.StatusPaid); err != nil {
		return fmt.Errorf("mark product %s paid: %w", productID, err)
	}
	if err := s.products.AppendAudit(ctx, productID, "stripe", "payment.completed", nil); err != nil {
		log.Printf("audit payment.completed for %s: %v", productID, err)
	}
	return nil
}

// HandleCheckoutExpired marks the payment failed. The product stays in
// SUBMITTED so the customer can start a new checkout.
func (s *Service) HandleCheckoutExpired(ctx context.Context, sessionID string) error {
	productID, err := s.products.SetPaymentStatus(ctx, sessionID, product.PaymentFailed)
	if err != nil {
		return fmt.Errorf("expire payment %s: %w", sessionID, err)
	}
	if err := s.products.AppendAudit(ctx, productID, "stripe", "payment.expired", nil); err != nil {
		log.Printf("audit payment.expired for %s: %v", productID, err)
	}
	return nil
}
