// Package webhook handles incoming Stripe webhook events.
package webhook

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/stripe/stripe-go/v79"
	stripewebhook "github.com/stripe/stripe-go/v79/webhook"
)

// PaymentEvents is the subset of the payment service the webhook dispatches
// to.
type PaymentEvents interface {
	HandleCheckoutCompleted(ctx context.Context, sessionID string) error
	HandleCheckoutExpired(ctx context.Context, sessionID string) error
}

// Handler processes incoming Stripe webhook requests.
type Handler struct {
	signingSecret string
	payments      PaymentEvents
}

// NewHandler creates a new webhook Handler.
func NewHandler(signingSecret string, payments PaymentEvents) *Handler {
	return &Handler{signingSecret: signingSecret, payments: payments}
}

// ServeHTTP handles incoming webhook requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1 MB limit
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	// Stripe pins event payloads to the account's API version; tolerate a
	// mismatch with the SDK pin as long as the signature checks out.
	event, err := stripewebhook.ConstructEventWithOptions(body, r.Header.Get("Stripe-Signature"), h.signingSecret,
		stripewebhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		log.Printf("webhook signature verification failed: %v", err)
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		sess, err := sessionFromEvent(event)
		if err != nil {
			log.Printf("webhook parse error for %s: %v", event.Type, err)
			http.Error(w, "malformed event", http.StatusBadRequest)
			return
		}
		if err := h.payments.HandleCheckoutCompleted(ctx, sess.ID); err != nil {
			log.Printf("handle checkout.session.completed: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

	case stripe.EventTypeCheckoutSessionExpired:
		sess, err := sessionFromEvent(event)
		if err != nil {
			log.Printf("webhook parse error for %s: %v", event.Type, err)
			http.Error(w, "malformed event", http.StatusBadRequest)
			return
		}
		if err := h.payments.HandleCheckoutExpired(ctx, sess.ID); err != nil {
			log.Printf("handle checkout.session.expired: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

	default:
		// Stripe sends every event type the account subscribes to; anything
		// unhandled is acknowledged and dropped.
	}

	w.WriteHeader(http.StatusOK)
}

func sessionFromEvent(event stripe.Event) (*stripe.CheckoutSession, error) {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}
