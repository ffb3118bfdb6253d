package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "local" {
		t.Errorf("expected default storage backend 'local', got %q", cfg.Storage.Backend)
	}
	if cfg.Mail.Port != 587 {
		t.Errorf("expected default SMTP port 587, got %d", cfg.Mail.Port)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		noFile  bool
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:   "non-existent file returns defaults",
			noFile: true,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Database.URL != "postgres://localhost:5432/certiseal?sslmode=disable" {
					t.Errorf("expected default database URL, got %q", cfg.Database.URL)
				}
			},
		},
		{
			name: "valid YAML overrides defaults",
			yaml: `
server:
  port: "9090"
  public_base: "https://siegel.example.de"
storage:
  backend: s3
  bucket: certiseal-assets
  region: eu-central-1
stripe:
  price_id: price_123
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Server.Port != "9090" {
					t.Errorf("expected port 9090, got %q", cfg.Server.Port)
				}
				if cfg.Server.PublicBase != "https://siegel.example.de" {
					t.Errorf("expected public base override, got %q", cfg.Server.PublicBase)
				}
				if cfg.Storage.Backend != "s3" || cfg.Storage.Bucket != "certiseal-assets" {
					t.Errorf("expected s3 storage config, got %+v", cfg.Storage)
				}
				if cfg.Stripe.PriceID != "price_123" {
					t.Errorf("expected stripe price override, got %q", cfg.Stripe.PriceID)
				}
				// Untouched sections keep their defaults.
				if cfg.Mail.Port != 587 {
					t.Errorf("expected default SMTP port to survive, got %d", cfg.Mail.Port)
				}
			},
		},
		{
			name:    "invalid YAML returns error",
			yaml:    "{{invalid yaml",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")

			if !tc.noFile {
				if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
					t.Fatalf("write test config: %v", err)
				}
			}

			cfg, err := Load(path)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.check != nil {
				tc.check(t, cfg)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "8443")
	t.Setenv("DATABASE_URL", "postgres://db:5432/prod")
	t.Setenv("STORAGE_BACKEND", "gcs")
	t.Setenv("STRIPE_API_KEY", "sk_test_abc")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Server.Port != "8443" {
		t.Errorf("PORT override not applied, got %q", cfg.Server.Port)
	}
	if cfg.Database.URL != "postgres://db:5432/prod" {
		t.Errorf("DATABASE_URL override not applied, got %q", cfg.Database.URL)
	}
	if cfg.Storage.Backend != "gcs" {
		t.Errorf("STORAGE_BACKEND override not applied, got %q", cfg.Storage.Backend)
	}
	if cfg.Stripe.APIKey != "sk_test_abc" {
		t.Errorf("STRIPE_API_KEY override not applied, got %q", cfg.Stripe.APIKey)
	}
}

func TestApplyEnvSMTPPort(t *testing.T) {
	t.Setenv("SMTP_PORT", "2525")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Mail.Port != 2525 {
		t.Errorf("SMTP_PORT override not applied, got %d", cfg.Mail.Port)
	}
}

func TestApplyEnvSMTPPortInvalid(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-port")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Mail.Port != 587 {
		t.Errorf("invalid SMTP_PORT must keep the default, got %d", cfg.Mail.Port)
	}
}

func TestApplyEnvEmptyValuesIgnored(t *testing.T) {
	t.Setenv("PORT", "")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Server.Port != "8080" {
		t.Errorf("empty PORT must not override the default, got %q", cfg.Server.Port)
	}
}
