package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Ledger backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type Config struct {
	HTTPAddr       string
	LedgerBackend  string
	MigrationsPath string
	EnableFaucet   bool
	DB             DBConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds the postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, applying defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		HTTPAddr:       valueOr(getenv("HTTP_ADDR"), ":9000"),
		LedgerBackend:  valueOr(getenv("LEDGER_BACKEND"), BackendMemory),
		MigrationsPath: valueOr(getenv("MIGRATIONS_PATH"), "file://internal/shared/db/migrations/sql"),
		DB: DBConfig{
			Host:     valueOr(getenv("DB_HOST"), "localhost"),
			Port:     valueOr(getenv("DB_PORT"), "5432"),
			User:     getenv("DB_USER"),
			Password: getenv("DB_PASSWORD"),
			Name:     getenv("DB_NAME"),
			SSLMode:  valueOr(getenv("DB_SSLMODE"), "disable"),
		},
	}

	if raw := getenv("ENABLE_FAUCET"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("config: invalid ENABLE_FAUCET %q: %w", raw, err)
		}
		cfg.EnableFaucet = enabled
	}

	switch cfg.LedgerBackend {
	case BackendMemory:
	case BackendPostgres:
		if cfg.DB.User == "" || cfg.DB.Name == "" {
			return nil, fmt.Errorf("config: DB_USER and DB_NAME are required for the %s backend", BackendPostgres)
		}
	default:
		return nil, fmt.Errorf("config: unknown LEDGER_BACKEND %q", cfg.LedgerBackend)
	}

	return cfg, nil
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
