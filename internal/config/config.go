package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store backends
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	HTTPAddr string
	// Store selects the session backend: "postgres" or "memory".
	// The memory backend keeps sessions in process, for deployments
	// without a database.
	Store string
	// BotToken enables the Telegram front-end when set.
	BotToken    string
	BotPassword string
	Database    DatabaseConfig
	Matcher     MatcherConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// MatcherConfig holds word-matching thresholds
type MatcherConfig struct {
	AcceptThreshold    float64
	UncertainThreshold float64
	ConfidenceFloor    float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		Store:       getEnv("STORE", StorePostgres),
		BotToken:    os.Getenv("BOT_TOKEN"),
		BotPassword: os.Getenv("BOT_PASSWORD"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "speechreader"),
			User:     getEnv("DB_USER", "speechreader"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	var err error
	if cfg.Matcher.AcceptThreshold, err = getEnvFloat("MATCH_ACCEPT_THRESHOLD", 0.8); err != nil {
		return nil, err
	}
	if cfg.Matcher.UncertainThreshold, err = getEnvFloat("MATCH_UNCERTAIN_THRESHOLD", 0.5); err != nil {
		return nil, err
	}
	if cfg.Matcher.ConfidenceFloor, err = getEnvFloat("MATCH_CONFIDENCE_FLOOR", 0.7); err != nil {
		return nil, err
	}

	// Validate
	if cfg.Store != StorePostgres && cfg.Store != StoreMemory {
		return nil, fmt.Errorf("STORE must be %q or %q", StorePostgres, StoreMemory)
	}
	if cfg.Store == StorePostgres && cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required with the postgres store")
	}
	if cfg.BotToken != "" && cfg.BotPassword == "" {
		return nil, fmt.Errorf("BOT_PASSWORD is required when BOT_TOKEN is set")
	}

	return cfg, nil
}

// BotEnabled reports whether the Telegram front-end should start
func (c *Config) BotEnabled() bool {
	return c.BotToken != ""
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	if f < 0 || f > 1 {
		return 0, fmt.Errorf("%s must be between 0 and 1", key)
	}
	return f, nil
}
