package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spicebloom/storefront/internal/domain"
	pkgconfig "github.com/spicebloom/storefront/pkg/config"
	"github.com/spicebloom/storefront/pkg/database"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8010"`

	// PostgreSQL (addresses, checkout sessions, wallet, wishlist)
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"spicebloom"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"spicebloom_secret"`
	PostgresDB   string `env:"STOREFRONT_DB_NAME" envDefault:"storefront_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Database pool
	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINUTES" envDefault:"30"`

	// Redis (cart store)
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// CORS (the storefront API is called directly from browsers)
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	CORSMaxAge         int      `env:"CORS_MAX_AGE" envDefault:"3600"`

	// Cart TTL: how long an untouched cart survives in Redis.
	CartTTLHours int `env:"CART_TTL_HOURS" envDefault:"168"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Downstream order service
	OrderServiceURL string `env:"ORDER_SERVICE_URL" envDefault:"http://localhost:8003"`

	// Razorpay hosted gateway
	RazorpayKeyID     string `env:"RAZORPAY_KEY_ID" envDefault:"rzp_test_key"`
	RazorpayKeySecret string `env:"RAZORPAY_KEY_SECRET" envDefault:"rzp_test_secret"`
	RazorpayBaseURL   string `env:"RAZORPAY_BASE_URL" envDefault:"https://api.razorpay.com"`

	// Pricing (paise)
	FreeShippingThreshold int64 `env:"FREE_SHIPPING_THRESHOLD_PAISE" envDefault:"100000"`
	FlatShippingFee       int64 `env:"FLAT_SHIPPING_FEE_PAISE" envDefault:"10000"`
	TaxRateBasisPoints    int64 `env:"TAX_RATE_BASIS_POINTS" envDefault:"500"`

	// Circuit breaker settings for downstream calls
	CBMaxRequests  uint32  `env:"CB_MAX_REQUESTS" envDefault:"1"`
	CBInterval     int     `env:"CB_INTERVAL_SECONDS" envDefault:"60"`
	CBTimeout      int     `env:"CB_TIMEOUT_SECONDS" envDefault:"30"`
	CBFailureRatio float64 `env:"CB_FAILURE_RATIO" envDefault:"0.5"`
	CBMinRequests  uint32  `env:"CB_MIN_REQUESTS" envDefault:"5"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"10.0.0.0/8,172.16.0.0/12,192.168.0.0/16,127.0.0.0/8,::1/128" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.PostgresHost == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}
	if c.PostgresUser == "" {
		return fmt.Errorf("POSTGRES_USER is required")
	}
	if c.RedisHost == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}
	if c.RedisPort < 1 || c.RedisPort > 65535 {
		return fmt.Errorf("invalid Redis port: %d", c.RedisPort)
	}
	if len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}
	if c.CartTTLHours < 1 {
		return fmt.Errorf("CART_TTL_HOURS must be at least 1, got %d", c.CartTTLHours)
	}
	if c.FreeShippingThreshold < 0 || c.FlatShippingFee < 0 {
		return fmt.Errorf("shipping amounts must not be negative")
	}
	if c.TaxRateBasisPoints < 0 || c.TaxRateBasisPoints > 10000 {
		return fmt.Errorf("TAX_RATE_BASIS_POINTS must be between 0 and 10000, got %d", c.TaxRateBasisPoints)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	for name, rawURL := range map[string]string{
		"ORDER_SERVICE_URL": c.OrderServiceURL,
		"RAZORPAY_BASE_URL": c.RazorpayBaseURL,
	} {
		if rawURL == "" {
			return fmt.Errorf("%s is required", name)
		}
		if _, err := url.ParseRequestURI(rawURL); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, rawURL, err)
		}
	}
	return nil
}

// Redis returns the Redis connection configuration for the cart store.
func (c *Config) Redis() database.RedisConfig {
	return database.RedisConfig{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

// CartTTL returns the cart expiry as a duration.
func (c *Config) CartTTL() time.Duration {
	return time.Duration(c.CartTTLHours) * time.Hour
}

// Pricing returns the pricing configuration derived from the environment.
func (c *Config) Pricing() domain.PricingConfig {
	return domain.PricingConfig{
		FreeShippingThreshold: c.FreeShippingThreshold,
		FlatShippingFee:       c.FlatShippingFee,
		TaxRateBasisPoints:    c.TaxRateBasisPoints,
	}
}
