package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	MigrationsPath string
	AllowedOrigins []string
}

// PayrollConfig holds engine-level knobs that are deployment concerns
// rather than stored salary settings.
type PayrollConfig struct {
	// BatchConcurrency bounds parallel per-teacher calculations in a
	// payroll run so the record store is not overwhelmed.
	BatchConcurrency int
	// CacheTTL is how long a computed salary result may be served from the
	// result cache before recomputation.
	CacheTTL time.Duration
}

func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments; variables come
	// from the process environment there.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "darulkubra"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		AllowedOrigins: []string{getEnv("FRONTEND_URL", "http://localhost:3000")},
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Payroll configuration
	batchConcurrency, err := strconv.Atoi(getEnv("PAYROLL_BATCH_CONCURRENCY", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_BATCH_CONCURRENCY: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("SALARY_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SALARY_CACHE_TTL: %w", err)
	}

	config.Payroll = PayrollConfig{
		BatchConcurrency: batchConcurrency,
		CacheTTL:         cacheTTL,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Payroll.BatchConcurrency < 1 {
		return fmt.Errorf("PAYROLL_BATCH_CONCURRENCY must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
