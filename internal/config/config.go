package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	FixtureSourceDir      = "dir"
	FixtureSourcePostgres = "postgres"
)

type Config struct {
	// Server
	Port         string
	Environment  string
	LogLevel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Fixtures
	FixtureSource string
	FixtureDir    string
	DatabaseURL   string

	// JWT, empty disables authentication
	JWTSecret string

	// Matchmaking, 0 seeds the role order from the clock
	RoleOrderSeed int64
}

// Load reads the configuration from the environment, after applying an
// optional .env file in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8000"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		ReadTimeout:   time.Duration(getEnvInt("READ_TIMEOUT_SECONDS", 15)) * time.Second,
		WriteTimeout:  time.Duration(getEnvInt("WRITE_TIMEOUT_SECONDS", 15)) * time.Second,
		FixtureSource: getEnv("FIXTURE_SOURCE", FixtureSourceDir),
		FixtureDir:    getEnv("FIXTURE_DIR", "fixtures"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		RoleOrderSeed: int64(getEnvInt("ROLE_ORDER_SEED", 0)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.FixtureSource {
	case FixtureSourceDir:
		if c.FixtureDir == "" {
			return fmt.Errorf("FIXTURE_DIR is required when FIXTURE_SOURCE=%s", FixtureSourceDir)
		}
	case FixtureSourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when FIXTURE_SOURCE=%s", FixtureSourcePostgres)
		}
	default:
		return fmt.Errorf("unknown FIXTURE_SOURCE %q", c.FixtureSource)
	}
	return nil
}

// AuthEnabled reports whether write routes require a bearer token
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
