// Package config provides configuration for the mentorship API.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StoreDriverSQLite = "sqlite"
	StoreDriverMongo  = "mongo"
)

// Config holds the service configuration.
type Config struct {
	Env string

	// Server settings
	HTTPPort       int
	MetricsPort    int
	RPCPort        int // internal JSON-RPC listener; 0 disables it
	RequestTimeout time.Duration

	// Storage
	StoreDriver   string
	DatabaseURL   string
	MongoURL      string
	MongoDatabase string

	// Auth
	JWTSecret           string
	AuthRequireVerified bool

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present; real environment variables
// win over it.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Env:                 getEnv("ENV", "development"),
		HTTPPort:            getEnvInt("HTTP_PORT", 8080),
		MetricsPort:         getEnvInt("METRICS_PORT", 9090),
		RPCPort:             getEnvInt("RPC_PORT", 0),
		RequestTimeout:      time.Duration(getEnvInt("REQUEST_TIMEOUT_MS", 15000)) * time.Millisecond,
		StoreDriver:         strings.ToLower(getEnv("STORE_DRIVER", StoreDriverSQLite)),
		DatabaseURL:         getEnv("DATABASE_URL", "file:mentorlane.db?cache=shared&mode=rwc"),
		MongoURL:            getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDatabase:       getEnv("MONGO_DATABASE", "mentorlane"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		AuthRequireVerified: getEnvBool("AUTH_REQUIRE_VERIFIED", false),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
