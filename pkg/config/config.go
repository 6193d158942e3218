// Package config provides configuration management for the sync tool.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration. It is constructed once by
// Load and passed into component constructors; there is no ambient global
// configuration.
type Config struct {
	Stripe StripeConfig
	Infakt InfaktConfig

	TargetYear  int
	TargetMonth int

	VatRatesFile string
	Debug        bool
}

// StripeConfig represents Stripe API configuration.
type StripeConfig struct {
	SecretKey  string
	APIURL     string
	MaxRetries int
	RetryDelay time.Duration
}

// InfaktConfig represents inFakt API configuration.
type InfaktConfig struct {
	APIKey string
	APIURL string
}

// Load loads configuration from environment variables.
// It automatically loads .env from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	targetYear, err := parseIntEnv("TARGET_YEAR", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid TARGET_YEAR: %w", err)
	}

	targetMonth, err := parseIntEnv("TARGET_MONTH", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid TARGET_MONTH: %w", err)
	}

	maxRetries, err := parseIntEnv("STRIPE_MAX_RETRIES", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid STRIPE_MAX_RETRIES: %w", err)
	}

	config := &Config{
		Stripe: StripeConfig{
			SecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
			APIURL:     getEnvOrDefault("STRIPE_API_URL", "https://api.stripe.com"),
			MaxRetries: maxRetries,
			RetryDelay: 5 * time.Second,
		},
		Infakt: InfaktConfig{
			APIKey: os.Getenv("INFAKT_API_KEY"),
			APIURL: getEnvOrDefault("INFAKT_API_URL", "https://api.infakt.pl"),
		},
		TargetYear:   targetYear,
		TargetMonth:  targetMonth,
		VatRatesFile: os.Getenv("VAT_RATES_FILE"),
		Debug:        os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate checks that all required fields are set and within range. All
// problems are reported at once.
func (c *Config) Validate() error {
	var missing []string

	if c.Stripe.SecretKey == "" {
		missing = append(missing, "STRIPE_SECRET_KEY")
	}
	if c.Infakt.APIKey == "" {
		missing = append(missing, "INFAKT_API_KEY")
	}
	if c.TargetYear <= 0 {
		missing = append(missing, "TARGET_YEAR")
	}
	if c.TargetMonth < 1 || c.TargetMonth > 12 {
		missing = append(missing, "TARGET_MONTH")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing or invalid required configuration: %s\nPlease check your .env file or environment variables",
			strings.Join(missing, ", "))
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntEnv parses an int from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}

	return parsed, nil
}
