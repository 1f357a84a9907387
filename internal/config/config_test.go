package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnvs is a helper that sets multiple env vars for the test's duration.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8010, cfg.HTTPPort)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, 6379, cfg.RedisPort)
	assert.Equal(t, "http://localhost:8003", cfg.OrderServiceURL)
	assert.Equal(t, "https://api.razorpay.com", cfg.RazorpayBaseURL)
	assert.Equal(t, 168, cfg.CartTTLHours)
	assert.Equal(t, int64(100_000), cfg.FreeShippingThreshold)
	assert.Equal(t, int64(10_000), cfg.FlatShippingFee)
	assert.Equal(t, int64(500), cfg.TaxRateBasisPoints)
}

func TestLoad_InvalidHTTPPort(t *testing.T) {
	t.Setenv("STOREFRONT_HTTP_PORT", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_InvalidCartTTL(t *testing.T) {
	t.Setenv("CART_TTL_HOURS", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CART_TTL_HOURS")
}

func TestLoad_InvalidTaxRate(t *testing.T) {
	t.Setenv("TAX_RATE_BASIS_POINTS", "10001")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "TAX_RATE_BASIS_POINTS")
}

func TestLoad_NegativeShippingFee(t *testing.T) {
	t.Setenv("FLAT_SHIPPING_FEE_PAISE", "-1")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "shipping amounts must not be negative")
}

func TestLoad_InvalidOTELSampleRate(t *testing.T) {
	t.Setenv("OTEL_SAMPLE_RATE", "2.0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "OTEL_SAMPLE_RATE must be between 0.0 and 1.0")
}

func TestLoad_InvalidOrderServiceURL(t *testing.T) {
	t.Setenv("ORDER_SERVICE_URL", "not-a-url")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ORDER_SERVICE_URL")
}

func TestLoad_EmptyRedisHost(t *testing.T) {
	t.Setenv("REDIS_HOST", "")

	cfg, err := Load()

	// caarlos0/env/v10 treats empty string as unset and falls back to
	// the envDefault, so the validation guard is currently unreachable via
	// environment variables alone. This test documents the intended contract.
	if err != nil {
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "REDIS_HOST is required")
	} else {
		require.NotNil(t, cfg)
		assert.Equal(t, "localhost", cfg.RedisHost)
	}
}

func TestLoad_InvalidRedisPort(t *testing.T) {
	t.Setenv("REDIS_PORT", "70000")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid Redis port")
}

func TestLoad_CustomPricing(t *testing.T) {
	setEnvs(t, map[string]string{
		"FREE_SHIPPING_THRESHOLD_PAISE": "250000",
		"FLAT_SHIPPING_FEE_PAISE":       "5000",
		"TAX_RATE_BASIS_POINTS":         "1200",
	})

	cfg, err := Load()

	require.NoError(t, err)
	pricing := cfg.Pricing()
	assert.Equal(t, int64(250_000), pricing.FreeShippingThreshold)
	assert.Equal(t, int64(5_000), pricing.FlatShippingFee)
	assert.Equal(t, int64(1_200), pricing.TaxRateBasisPoints)
}

func TestCartTTL(t *testing.T) {
	t.Setenv("CART_TTL_HOURS", "24")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.CartTTL())
}
