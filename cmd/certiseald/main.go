// Command certiseald is the CertiSeal platform service.
// It serves the admin API for products and ratings, the Stripe webhook
// endpoint, the public verification endpoints, and a health check.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/certiseal/certiseal/internal/api"
	"github.com/certiseal/certiseal/internal/certificate"
	"github.com/certiseal/certiseal/internal/notify"
	"github.com/certiseal/certiseal/internal/payment"
	"github.com/certiseal/certiseal/internal/platform"
	"github.com/certiseal/certiseal/internal/product"
	"github.com/certiseal/certiseal/internal/review"
	"github.com/certiseal/certiseal/internal/webhook"
	"github.com/certiseal/certiseal/pkg/config"
)

func main() {
	cfgPath := os.Getenv("CERTISEAL_CONFIG")
	if cfgPath == "" {
		cfgPath = "certiseal.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.ApplyEnv()

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if err := platform.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	storage, err := newStorage(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}

	// Initialize services
	products := product.NewService(db)

	var notifier review.Notifier
	if cfg.Mail.Host != "" {
		mailer, err := notify.NewMailer(notify.Config{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		})
		if err != nil {
			log.Fatalf("init mailer: %v", err)
		}
		notifier = mailer
	} else {
		log.Println("no SMTP host configured, pass notifications disabled")
	}

	reviewSvc := review.NewService(products, notifier)
	certs := certificate.NewService(products, storage, cfg.Server.PublicBase)
	payments := payment.NewService(products, payment.Config{
		APIKey:  cfg.Stripe.APIKey,
		PriceID: cfg.Stripe.PriceID,
	})

	handler := api.NewHandler(db, products, reviewSvc, certs, payments, nil)
	webhookHandler := webhook.NewHandler(cfg.Stripe.WebhookSecret, payments)

	// Set up HTTP routes
	adminMux := http.NewServeMux()
	handler.RegisterRoutes(adminMux)

	mux := http.NewServeMux()
	mux.Handle("/api/", api.APIKeyAuth(cfg.Server.AdminAPIKey)(adminMux))
	mux.Handle("POST /v1/webhooks/stripe", webhookHandler)
	handler.RegisterPublicRoutes(mux)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: api.CORS(mux),
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("starting certiseald on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func newStorage(ctx context.Context, cfg config.StorageConfig) (certificate.StorageClient, error) {
	switch cfg.Backend {
	case "", "local":
		return certificate.NewLocalStorage(cfg.LocalPath), nil
	case "s3":
		return certificate.NewS3Storage(ctx, certificate.S3Config{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		})
	case "gcs":
		return certificate.NewGCSStorage(ctx, cfg.Bucket)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
