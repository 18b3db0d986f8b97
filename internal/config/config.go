package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Mode             string   `env:"APP_MODE" envDefault:"development"`
	Port             string   `env:"PORT" envDefault:"8080"`
	JWTSecret        string   `env:"JWT_SECRET" envDefault:"dev-secret-change-in-production"`
	RulesPath        string   `env:"RULES_PATH"`
	PublishThreshold int      `env:"PUBLISH_THRESHOLD" envDefault:"90"`
	CORSOrigins      []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	DB               DBConfig
}

type DBConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"reportgate"`
	Password string `env:"DB_PASSWORD" envDefault:"reportgate"`
	Name     string `env:"DB_NAME" envDefault:"reportgate"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// DSN is the lib/pq connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables that are already set, then parses the environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to stat %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.PublishThreshold < 0 || cfg.PublishThreshold > 100 {
		return Config{}, fmt.Errorf("PUBLISH_THRESHOLD must be within [0, 100], got %d", cfg.PublishThreshold)
	}
	return cfg, nil
}

func (c Config) Production() bool {
	return c.Mode == "prod" || c.Mode == "production"
}
