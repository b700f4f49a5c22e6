package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"DealDesk"`
		Port int    `envconfig:"PORT" default:"8080"`
		// SeedDir holds rule set and pack definitions loaded at startup.
		SeedDir string `envconfig:"SEED_DIR"`
		// SeedOrgID owns the packs loaded from SeedDir.
		SeedOrgID string `envconfig:"SEED_ORG_ID"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"dealdesk"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
		Issuer    string `envconfig:"JWT_ISSUER" default:"dealdesk"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}

	Storage struct {
		Root          string        `envconfig:"STORAGE_ROOT" default:"./data/objects"`
		PublicBaseURL string        `envconfig:"STORAGE_PUBLIC_BASE_URL" default:"http://localhost:8080/api/v1/files"`
		URLSecret     string        `envconfig:"STORAGE_URL_SECRET"`
		URLTTL        time.Duration `envconfig:"STORAGE_URL_TTL" default:"15m"`
	}

	Render struct {
		// An empty ConverterURL keeps every artifact in HTML fallback mode.
		ConverterURL string        `envconfig:"RENDER_CONVERTER_URL"`
		Timeout      time.Duration `envconfig:"RENDER_TIMEOUT" default:"30s"`
	}

	ESign struct {
		Provider      string        `envconfig:"ESIGN_PROVIDER" default:"stub"`
		AutoComplete  bool          `envconfig:"ESIGN_STUB_AUTOCOMPLETE" default:"false"`
		BaseURL       string        `envconfig:"ESIGN_BASE_URL"`
		APIKey        string        `envconfig:"ESIGN_API_KEY"`
		WebhookSecret string        `envconfig:"ESIGN_WEBHOOK_SECRET"`
		Timeout       time.Duration `envconfig:"ESIGN_TIMEOUT" default:"30s"`
		MaxRetries    uint64        `envconfig:"ESIGN_MAX_RETRIES" default:"2"`
	}

	// Console identifies the operator the TUI acts as.
	Console struct {
		OrgID   string `envconfig:"CONSOLE_ORG_ID"`
		ActorID string `envconfig:"CONSOLE_ACTOR_ID"`
	}

	Events struct {
		// Outbox=false logs domain events instead of queueing them.
		Outbox bool `envconfig:"EVENTS_OUTBOX" default:"true"`
	}

	Documents struct {
		MaxPerRun    int    `envconfig:"DOCUMENTS_MAX_PER_RUN" default:"10"`
		OutputFormat string `envconfig:"DOCUMENTS_OUTPUT_FORMAT" default:"pdf"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Storage.URLSecret == "" {
		cfg.Storage.URLSecret = cfg.Auth.JWTSecret
	}

	switch cfg.ESign.Provider {
	case "stub":
	case "remote":
		if cfg.ESign.BaseURL == "" || cfg.ESign.WebhookSecret == "" {
			return nil, fmt.Errorf("remote esign provider needs ESIGN_BASE_URL and ESIGN_WEBHOOK_SECRET")
		}
	default:
		return nil, fmt.Errorf("unknown esign provider %q", cfg.ESign.Provider)
	}

	return &cfg, nil
}
