package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("INFAKT_API_KEY", "key_123")
	t.Setenv("TARGET_YEAR", "2024")
	t.Setenv("TARGET_MONTH", "3")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STRIPE_API_URL", "")
	t.Setenv("INFAKT_API_URL", "")
	t.Setenv("STRIPE_MAX_RETRIES", "")
	t.Setenv("VAT_RATES_FILE", "")
	t.Setenv("DEBUG", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk_test_123", cfg.Stripe.SecretKey)
	assert.Equal(t, "key_123", cfg.Infakt.APIKey)
	assert.Equal(t, 2024, cfg.TargetYear)
	assert.Equal(t, 3, cfg.TargetMonth)
	assert.Equal(t, "https://api.stripe.com", cfg.Stripe.APIURL)
	assert.Equal(t, "https://api.infakt.pl", cfg.Infakt.APIURL)
	assert.Equal(t, 10, cfg.Stripe.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.Stripe.RetryDelay)
	assert.False(t, cfg.Debug)

	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STRIPE_API_URL", "http://localhost:8081")
	t.Setenv("INFAKT_API_URL", "http://localhost:8082")
	t.Setenv("STRIPE_MAX_RETRIES", "2")
	t.Setenv("VAT_RATES_FILE", "vat_rates.yml")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8081", cfg.Stripe.APIURL)
	assert.Equal(t, "http://localhost:8082", cfg.Infakt.APIURL)
	assert.Equal(t, 2, cfg.Stripe.MaxRetries)
	assert.Equal(t, "vat_rates.yml", cfg.VatRatesFile)
	assert.True(t, cfg.Debug)
}

func TestLoadNonIntegerTarget(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TARGET_YEAR", "twenty-twenty-four")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TARGET_YEAR")
}

func TestValidateMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing stripe key", func(c *Config) { c.Stripe.SecretKey = "" }, "STRIPE_SECRET_KEY"},
		{"missing infakt key", func(c *Config) { c.Infakt.APIKey = "" }, "INFAKT_API_KEY"},
		{"missing year", func(c *Config) { c.TargetYear = 0 }, "TARGET_YEAR"},
		{"missing month", func(c *Config) { c.TargetMonth = 0 }, "TARGET_MONTH"},
		{"month out of range", func(c *Config) { c.TargetMonth = 13 }, "TARGET_MONTH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			cfg, err := Load()
			require.NoError(t, err)

			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STRIPE_SECRET_KEY")
	assert.Contains(t, err.Error(), "INFAKT_API_KEY")
	assert.Contains(t, err.Error(), "TARGET_YEAR")
	assert.Contains(t, err.Error(), "TARGET_MONTH")
}

func TestLoadMissingExplicitEnvFile(t *testing.T) {
	_, err := Load("/nonexistent/.env")
	assert.Error(t, err)
}
