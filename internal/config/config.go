package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Session  SessionConfig
	Market   MarketConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// SessionConfig holds session token configuration.
// Key is a base64 fernet key; when empty, a random key is generated at startup,
// which invalidates outstanding sessions on restart.
type SessionConfig struct {
	Key string
	TTL time.Duration
}

// MarketConfig holds market data configuration. CacheTTL controls how long
// fetched quotes are reused; RefreshSchedule is a cron spec for the background
// refresh of tracked symbols.
type MarketConfig struct {
	CacheTTL        time.Duration
	RefreshSchedule string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/investment_journal.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Session: SessionConfig{
			Key: getEnv("SESSION_KEY", ""),
			TTL: time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		},
		Market: MarketConfig{
			CacheTTL:        time.Duration(getEnvInt("PRICE_CACHE_TTL_MINUTES", 5)) * time.Minute,
			RefreshSchedule: getEnv("PRICE_REFRESH_SCHEDULE", "@every 5m"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
