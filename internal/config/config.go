package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	DBDriver        string
	DBDSN           string
	ServerPort      string
	SessionSecret   string
	UploadDir       string
	MaxUploadMB     int
	LogLevel        string
	ShutdownTimeout int // seconds
}

// Load reads the environment, after a .env file if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBDSN:           os.Getenv("DB_DSN"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadMB:     getEnvAsInt("MAX_UPLOAD_MB", 8),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
	}

	if cfg.DBDSN == "" && cfg.DBDriver == DriverSQLite {
		cfg.DBDSN = "vegetable_app.db"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (must be sqlite or postgres)", c.DBDriver)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is not set")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is not set")
	}
	if c.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR is empty")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %d", c.ShutdownTimeout)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
