package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds runtime configuration loaded from environment variables
type Config struct {
	Port        string
	Environment string

	LogLevel string
	LogFile  string

	// Redis (rate limiting); optional - the limiter falls open without it
	RedisHost     string
	RedisPort     string
	RedisPassword string

	JWTSecret []byte

	// Admin gate: a caller is an administrator when their user record has the
	// admin flag, their email equals AdminEmail, or their email ends with
	// "@" + AdminDomain. Evaluated fresh on every request.
	AdminEmail  string
	AdminDomain string

	// Upper bound for a single analytics query before it counts as failed
	QueryTimeout time.Duration
}

// Load reads configuration from the environment.
// REQUIRED environment variables:
// - JWT_SECRET: HMAC secret for verifying bearer tokens
// - ADMIN_EMAIL and/or ADMIN_DOMAIN: at least one must be set so the admin
//   gate can never accidentally match everyone
func Load() (*Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	adminEmail := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	adminDomain := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_DOMAIN")))
	if adminEmail == "" && adminDomain == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL or ADMIN_DOMAIN environment variable must be set")
	}

	queryTimeout := 5 * time.Second
	if raw := os.Getenv("ANALYTICS_QUERY_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid ANALYTICS_QUERY_TIMEOUT %q: %w", raw, err)
		}
		queryTimeout = parsed
	}

	return &Config{
		Port:          getEnvOrDefault("PORT", "8787"),
		Environment:   getEnvOrDefault("ENVIRONMENT", "production"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:       getEnvOrDefault("LOG_FILE", "server.log"),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     os.Getenv("REDIS_PORT"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     []byte(jwtSecret),
		AdminEmail:    adminEmail,
		AdminDomain:   adminDomain,
		QueryTimeout:  queryTimeout,
	}, nil
}

// getEnvOrDefault returns environment variable or default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
