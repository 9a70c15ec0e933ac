package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	Env               string
	MongoURI          string
	MongoDatabase     string
	MongoTransactions bool
	AccountsURL       string // optional SQL store for users and payments
	AccessTokenSecret string
	TokenTTL          time.Duration
	AllowedOrigins    []string
	StripeSecretKey   string
	MetricsPort       string
}

// Load reads configuration from the environment, after loading a .env file when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, assuming environment variables are set.")
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	transactions, err := strconv.ParseBool(getEnv("MONGO_TRANSACTIONS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONGO_TRANSACTIONS: %w", err)
	}

	cfg := &Config{
		Port:              getEnv("PORT", "5000"),
		Env:               getEnv("ENV", "development"),
		MongoURI:          getEnv("MONGO_URI", ""),
		MongoDatabase:     getEnv("MONGO_DATABASE", "synapseForumDB"),
		MongoTransactions: transactions,
		AccountsURL:       getEnv("ACCOUNTS_DATABASE_URL", ""),
		AccessTokenSecret: getEnv("ACCESS_TOKEN_SECRET", ""),
		TokenTTL:          ttl,
		AllowedOrigins:    splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5174")),
		StripeSecretKey:   getEnv("STRIPE_SECRET_KEY", ""),
		MetricsPort:       getEnv("METRICS_PORT", "9090"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	var errs []error
	if c.MongoURI == "" {
		errs = append(errs, errors.New("MONGO_URI environment variable not set"))
	}
	if c.AccessTokenSecret == "" {
		errs = append(errs, errors.New("ACCESS_TOKEN_SECRET environment variable not set"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if len(c.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("ALLOWED_ORIGINS must list at least one origin"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
