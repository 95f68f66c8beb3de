package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "PATISSERIE"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Pricing  PricingConfig
	Delivery DeliveryConfig
	Session  SessionConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PATISSERIE_APP_ENV" required:"true"`
	Port         string `envconfig:"PATISSERIE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PATISSERIE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PATISSERIE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig points at the bakery API that owns the catalog and accepts orders.
type BackendConfig struct {
	BaseURL string        `envconfig:"PATISSERIE_BACKEND_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"PATISSERIE_BACKEND_TIMEOUT" default:"10s"`
}

func (b BackendConfig) validate() error {
	parsed, err := url.Parse(b.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid backend base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("backend base url must be http(s), got %q", b.BaseURL)
	}
	return nil
}

type PricingConfig struct {
	// DeliveryFee is the flat fee added once when the order is delivered.
	DeliveryFee int `envconfig:"PATISSERIE_PRICING_DELIVERY_FEE" default:"7"`
}

type DeliveryConfig struct {
	// WindowDays is how many days (starting today) a customer can pick from.
	WindowDays int `envconfig:"PATISSERIE_DELIVERY_WINDOW_DAYS" default:"6"`
}

type SessionConfig struct {
	TTL time.Duration `envconfig:"PATISSERIE_SESSION_TTL" default:"2h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"PATISSERIE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
