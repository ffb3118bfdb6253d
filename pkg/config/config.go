// Package config handles loading and managing certiseal configuration.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the certiseal service.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Stripe   StripeConfig   `yaml:"stripe"`
	Mail     MailConfig     `yaml:"mail"`
}

// ServerConfig controls the HTTP server and public link generation.
type ServerConfig struct {
	Port        string `yaml:"port"`
	PublicBase  string `yaml:"public_base"` // base URL for verification links
	AdminAPIKey string `yaml:"admin_api_key"`
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// StorageConfig selects and configures the blob storage backend for
// certificates and seal images.
type StorageConfig struct {
	Backend   string `yaml:"backend"` // local, s3, gcs
	LocalPath string `yaml:"local_path"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"` // S3-compatible endpoint (MinIO etc.)
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// StripeConfig holds Stripe Checkout settings for the testing fee.
type StripeConfig struct {
	APIKey        string `yaml:"api_key"`
	WebhookSecret string `yaml:"webhook_secret"`
	PriceID       string `yaml:"price_id"`
}

// MailConfig holds SMTP settings for customer notifications.
type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:       "8080",
			PublicBase: "http://localhost:8080",
		},
		Database: DatabaseConfig{
			URL: "postgres://localhost:5432/certiseal?sslmode=disable",
		},
		Storage: StorageConfig{
			Backend:   "local",
			LocalPath: "/tmp/certiseal-data",
		},
		Mail: MailConfig{
			Port: 587,
			From: "pruefstelle@certiseal.de",
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides config values from well-known environment variables.
// Deployment environments set these instead of shipping a config file.
func (c *Config) ApplyEnv() {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Server.Port, "PORT")
	set(&c.Server.PublicBase, "PUBLIC_BASE_URL")
	set(&c.Server.AdminAPIKey, "ADMIN_API_KEY")
	set(&c.Database.URL, "DATABASE_URL")
	set(&c.Storage.Backend, "STORAGE_BACKEND")
	set(&c.Storage.LocalPath, "LOCAL_STORAGE_PATH")
	set(&c.Storage.Bucket, "STORAGE_BUCKET")
	set(&c.Storage.Region, "STORAGE_REGION")
	set(&c.Storage.Endpoint, "STORAGE_ENDPOINT")
	set(&c.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	set(&c.Storage.SecretKey, "STORAGE_SECRET_KEY")
	set(&c.Stripe.APIKey, "STRIPE_API_KEY")
	set(&c.Stripe.WebhookSecret, "STRIPE_WEBHOOK_SECRET")
	set(&c.Stripe.PriceID, "STRIPE_PRICE_ID")
	set(&c.Mail.Host, "SMTP_HOST")
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			c.Mail.Port = port
		}
	}
	set(&c.Mail.Username, "SMTP_USERNAME")
	set(&c.Mail.Password, "SMTP_PASSWORD")
	set(&c.Mail.From, "MAIL_FROM")
}
