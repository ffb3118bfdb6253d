// Package notify delivers customer notifications over SMTP.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	mail "github.com/wneessen/go-mail"

	"github.com/certiseal/certiseal/internal/product"
	"github.com/certiseal/certiseal/pkg/rating"
)

// Config holds the SMTP settings for the mailer.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends customer notifications. It implements review.Notifier.
type Mailer struct {
	client *mail.Client
	from   string
}

// NewMailer creates a Mailer connected to the configured SMTP relay.
func NewMailer(cfg Config) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &Mailer{client: client, from: cfg.From}, nil
}

const passedMailSubject = "Ihr Produkt hat die Prüfung bestanden"

// passedMailBody is the "passed + plans" notification. Sending it is the
// trigger that locks the rating snapshot for good.
const passedMailBody = `Sehr geehrte Damen und Herren,

Ihr Produkt "{{.ProductName}}" (Prüfnummer {{.TestNumber}}) hat unsere
Prüfung erfolgreich abgeschlossen.

Gesamtnote: {{.Grade}} ({{.Category}})

Im nächsten Schritt senden wir Ihnen die verfügbaren Siegel-Nutzungspläne
sowie Ihr Zertifikat und die Siegelgrafik mit Verifizierungslink.

Bitte beachten Sie: Mit dieser Mitteilung ist das Prüfergebnis endgültig
festgeschrieben und kann nicht mehr geändert werden.

Mit freundlichen Grüßen
Ihre Prüfstelle
`

var passedMailTmpl = template.Must(template.New("passed").Parse(passedMailBody))

func renderPassedMail(p *product.Product, computed rating.Computed) (string, error) {
	if computed.OverallGrade == nil || computed.OverallCategory == nil {
		return "", fmt.Errorf("product %s has no overall grade", p.ID)
	}

	var body bytes.Buffer
	err := passedMailTmpl.Execute(&body, map[string]string{
		"ProductName": p.Name,
		"TestNumber":  p.TestNumber,
		"Grade":       strings.ReplaceAll(fmt.Sprintf("%.1f", *computed.OverallGrade), ".", ","),
		"Category":    *computed.OverallCategory,
	})
	if err != nil {
		return "", err
	}
	return body.String(), nil
}

// NotifyPassed sends the pass notification for a rated product.
func (m *Mailer) NotifyPassed(ctx context.Context, customer *product.Customer, p *product.Product, computed rating.Computed) error {
	body, err := renderPassedMail(p, computed)
	if err != nil {
		return fmt.Errorf("render pass mail: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set mail from: %w", err)
	}
	if err := msg.To(customer.Email); err != nil {
		return fmt.Errorf("set mail to: %w", err)
	}
	msg.Subject(passedMailSubject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send pass mail to %s: %w", customer.Email, err)
	}
	return nil
}
