// Package config loads the server configuration from the environment. A .env
// file in the working directory is read first when present.
package config

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server struct {
		Port            int           `env:"PORT" envDefault:"8080"`
		ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
		WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
		IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
		AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	} `envPrefix:"SERVER_"`

	// DBPath is the SQLite file; ":memory:" keeps everything in memory.
	DBPath string `env:"DB_PATH" envDefault:"earnings.db"`

	// SettingsPath optionally points to a settings JSON document stored as
	// the active configuration at startup.
	SettingsPath string `env:"SETTINGS_PATH"`

	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads .env (if any) and parses the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse parses the current environment without reading .env.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok && len(aggErr.Errors) > 0 {
			// The first error is enough for a startup log line.
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}
	return cfg, nil
}

// Logger builds the process logger for the configured level and format.
func (c *Config) Logger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
