package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration, read from environment variables.
type Config struct {
	Port    string
	GinMode string

	// Database
	DBDriver          string // "sqlite" or "mysql"
	DBDSN             string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	// Auth
	JWTSecret []byte
	AuthMode  string // "jwt" or "none" (pass-through, flagged at startup)

	// Logging
	LogLevel  string
	LogFormat string // "text" or "json"
}

// Load reads configuration from the environment, falling back to
// development defaults.
func Load() *Config {
	return &Config{
		Port:    getEnv("PORT", "3000"),
		GinMode: getEnv("GIN_MODE", ""),

		DBDriver:          getEnv("DB_DRIVER", "sqlite"),
		DBDSN:             getEnv("DB_DSN", "recipe_market.db"),
		DBMaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME", 300)) * time.Second,

		JWTSecret: []byte(getEnv("JWT_SECRET", "recipe_market_super_secret_2024")),
		AuthMode:  getEnv("AUTH_MODE", "jwt"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
