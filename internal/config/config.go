// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable, e.g. LENDON_API_KEY.
const Prefix = "LENDON"

// Backends accepted in Config.Backend.
const (
	BackendOpenAI   = "openai"
	BackendOfficial = "openai-official"
	BackendMock     = "mock"
)

// Config holds runtime settings.
type Config struct {
	APIKey            string        `envconfig:"API_KEY"`
	BaseURL           string        `envconfig:"BASE_URL"`
	Model             string        `envconfig:"MODEL" default:"gemini-2.5-flash"`
	Backend           string        `envconfig:"BACKEND" default:"openai"`
	Temperature       float32       `envconfig:"TEMPERATURE" default:"0.7"`
	Timeout           time.Duration `envconfig:"TIMEOUT" default:"60s"`
	MaxRetries        int           `envconfig:"MAX_RETRIES" default:"3"`
	RequestsPerMinute int           `envconfig:"REQUESTS_PER_MINUTE" default:"15"`

	RedisURL string `envconfig:"REDIS_URL"`
	CacheTTL int    `envconfig:"CACHE_TTL" default:"86400"` // seconds, 0 = never expire

	Language    string `envconfig:"LANGUAGE" default:"en"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"warn"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"console"`
}

// Load reads .env files (missing files are ignored) and then the process
// environment. Variables already set in the environment win over .env.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))

	return &cfg, nil
}

// Validate checks settings that have no safe default.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendOpenAI, BackendOfficial:
		if c.APIKey == "" {
			return fmt.Errorf("%s_API_KEY is required for backend %q", Prefix, c.Backend)
		}
	case BackendMock:
	default:
		return fmt.Errorf("unknown backend %q (want %s, %s or %s)", c.Backend, BackendOpenAI, BackendOfficial, BackendMock)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature %.2f out of range [0, 2]", c.Temperature)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative")
	}
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("requests per minute must not be negative")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// MaskedAPIKey returns the key with all but the last four characters hidden.
func (c *Config) MaskedAPIKey() string {
	if len(c.APIKey) <= 4 {
		return strings.Repeat("*", len(c.APIKey))
	}
	return strings.Repeat("*", len(c.APIKey)-4) + c.APIKey[len(c.APIKey)-4:]
}
