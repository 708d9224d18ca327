// Package config loads athena settings: defaults, then an optional YAML file,
// then ATHENA_* environment variables. Command flags are applied last by cmd/athena.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "athena.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ATHENA_"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

type Config struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`

	HTTP    HTTPConfig    `yaml:"http" envPrefix:"HTTP_"`
	Solver  SolverConfig  `yaml:"solver" envPrefix:"SOLVER_"`
	Store   StoreConfig   `yaml:"store" envPrefix:"STORE_"`
	Redis   RedisConfig   `yaml:"redis" envPrefix:"REDIS_"`
	Metrics MetricsConfig `yaml:"metrics" envPrefix:"METRICS_"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr" env:"ADDR"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

type SolverConfig struct {
	URL     string        `yaml:"url" env:"URL"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

type StoreConfig struct {
	Backend string `yaml:"backend" env:"BACKEND"`
	Dir     string `yaml:"dir" env:"DIR"`

	// EncryptionKey is a base64 AES-256 key. When set, sessions are sealed at rest.
	EncryptionKey string   `yaml:"encryption_key" env:"ENCRYPTION_KEY"`
	FallbackKeys  []string `yaml:"fallback_keys" env:"FALLBACK_KEYS" envSeparator:","`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"ADDR"`
	Password string        `yaml:"password" env:"PASSWORD"`
	DB       int           `yaml:"db" env:"DB"`
	Prefix   string        `yaml:"prefix" env:"PREFIX"`
	TTL      time.Duration `yaml:"ttl" env:"TTL"`
	Lock     bool          `yaml:"lock" env:"LOCK"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled" env:"ENABLED"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Solver: SolverConfig{
			URL:     "http://localhost:5000",
			Timeout: 60 * time.Second,
		},
		Store: StoreConfig{
			Backend: BackendFile,
			Dir:     ".athena/sessions",
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "athena:session:",
		},
	}
}

// Load builds the configuration. An explicit path must exist; with an empty
// path DefaultFile is used if present.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Solver.Timeout < 0 {
		return errors.New("solver timeout cannot be negative")
	}
	if c.Store.EncryptionKey == "" && len(c.Store.FallbackKeys) > 0 {
		return errors.New("fallback keys require an encryption key")
	}
	if c.Redis.TTL < 0 {
		return errors.New("redis ttl cannot be negative")
	}
	return nil
}
