package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database    DatabaseConfig
	Server      ServerConfig
	FrontendURL string
	Environment string

	// AllowPurge gates the destructive purge endpoint. Off unless explicitly
	// enabled; intended for development databases only.
	AllowPurge bool
}

// DatabaseConfig holds database configuration. URL is the single
// storage-location setting: a plain file path opens a local SQLite store,
// a postgres:// URL opens PostgreSQL.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MaxIdle  int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  int // in seconds
	WriteTimeout int // in seconds
}

// LoadConfig creates a new Config instance with values from environment variables
func LoadConfig() *Config {
	// Try to load .env file for local development
	_ = godotenv.Load()

	return &Config{
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", "reports.db"),
			MaxConns: getEnvInt("DATABASE_MAX_CONNS", 10),
			MaxIdle:  getEnvInt("DATABASE_MAX_IDLE", 2),
		},
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 10),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 10),
		},
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		Environment: getEnv("ENVIRONMENT", "development"),
		AllowPurge:  getEnv("ALLOW_PURGE", "false") == "true",
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
