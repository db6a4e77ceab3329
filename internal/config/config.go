// Package config loads the server configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

type Config struct {
	// HTTP server
	Port            string
	ShutdownTimeout time.Duration

	// Storage
	StoreDriver string
	DBPath      string

	LogLevel string

	// Generative provider
	GeminiAPIKey     string
	GeminiModel      string
	GeminiBaseURL    string
	GenAITimeout     time.Duration
	FraudTimeout     time.Duration
	FraudConcurrency int

	// Alert fan-out; alerts are only logged when AMQPURL is empty.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	LiveFeedInterval time.Duration
	LiveFeedSize     int

	// SeedOnStart drops stored collections at boot so reads return seed data.
	SeedOnStart bool
}

// Load reads an optional .env file and then the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
		DBPath:      getEnv("DB_PATH", "./data/donordesk.db"),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL:    getEnv("GEMINI_BASE_URL", ""),
		GenAITimeout:     getEnvDuration("GENAI_TIMEOUT", 30*time.Second),
		FraudTimeout:     getEnvDuration("FRAUD_TIMEOUT", 5*time.Second),
		FraudConcurrency: getEnvInt("FRAUD_CONCURRENCY", 8),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "donordesk"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "broadcast_alerts"),

		LiveFeedInterval: getEnvDuration("LIVE_FEED_INTERVAL", 3500*time.Millisecond),
		LiveFeedSize:     getEnvInt("LIVE_FEED_SIZE", 5),

		SeedOnStart: getEnvBool("SEED_ON_START", false),
	}
}

// Validate returns every configuration problem as a single error.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validDrivers := []string{DriverSQLite, DriverMemory}
	if !slices.Contains(validDrivers, c.StoreDriver) {
		errors = append(errors, fmt.Sprintf("invalid store driver '%s': must be one of %v", c.StoreDriver, validDrivers))
	}
	if c.StoreDriver == DriverSQLite {
		if c.DBPath == "" {
			errors = append(errors, "database path cannot be empty when using the sqlite driver")
		} else if dir := filepath.Dir(c.DBPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				errors = append(errors, fmt.Sprintf("cannot create database directory '%s': %v", dir, err))
			}
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if c.GeminiBaseURL != "" {
		if u, err := url.Parse(c.GeminiBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errors = append(errors, fmt.Sprintf("invalid Gemini base URL '%s': must be http or https", c.GeminiBaseURL))
		}
	}
	if c.GenAITimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid generation timeout %v: must be positive", c.GenAITimeout))
	}
	if c.FraudTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid fraud timeout %v: must be positive", c.FraudTimeout))
	}
	if c.FraudConcurrency < 0 {
		errors = append(errors, fmt.Sprintf("invalid fraud concurrency %d: must not be negative", c.FraudConcurrency))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.LiveFeedInterval < 100*time.Millisecond {
		errors = append(errors, fmt.Sprintf("invalid live feed interval %v: must be at least 100ms", c.LiveFeedInterval))
	}
	if c.LiveFeedSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid live feed size %d: must be at least 1", c.LiveFeedSize))
	}
	if c.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// GeminiConfigured reports whether generation can reach the model.
func (c *Config) GeminiConfigured() bool {
	return strings.TrimSpace(c.GeminiAPIKey) != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
