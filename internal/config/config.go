// Package config handles application configuration and environment loading.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// APIConfig describes how the console reaches the mock REST data server.
type APIConfig struct {
	BaseURL  string        `env:"API_BASE_URL" envDefault:"http://localhost:3001"`
	Timeout  time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	RetryMax int           `env:"API_RETRY_MAX" envDefault:"0"` // retries on transport errors only
}

// CacheConfig controls the request cache in front of the data server.
type CacheConfig struct {
	TTL           time.Duration `env:"CACHE_TTL" envDefault:"30s"`
	SweepSchedule string        `env:"CACHE_SWEEP_SCHEDULE" envDefault:"@every 1m"`
}

// SettingsConfig holds the initial values of the shared UI settings.
type SettingsConfig struct {
	DefaultTheme    string `env:"DEFAULT_THEME" envDefault:"light"`
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	// DetectLanguage seeds the language from the first request's
	// Accept-Language header instead of DefaultLanguage.
	DetectLanguage bool `env:"SETTINGS_DETECT_LANGUAGE" envDefault:"false"`
}

// MockConfig configures the bundled json-server compatible data server.
type MockConfig struct {
	ListenAddr string        `env:"MOCK_LISTEN_ADDR" envDefault:":3001"`
	DBPath     string        `env:"MOCK_DB_PATH" envDefault:"db.json"`
	ReadOnly   bool          `env:"MOCK_READ_ONLY" envDefault:"false"`
	Delay      time.Duration `env:"MOCK_DELAY" envDefault:"0s"`
}

// Config holds the configuration for the console and the mock data server.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"` // debug, info, warn, error
	LogFormat  string `env:"LOG_FORMAT" envDefault:"text"` // text or json
	Env        string `env:"ENV" envDefault:"development"`

	API      APIConfig
	Cache    CacheConfig
	Settings SettingsConfig
	Mock     MockConfig

	// Rate limiting (mock data server)
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"100"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"200"`

	// CORS (mock data server)
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string `env:"-"`
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction returns true when running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated values and production rules. Non-fatal
// findings are appended to Warnings.
func (c *Config) Validate() error {
	for i := range c.CORSAllowedOrigins {
		c.CORSAllowedOrigins[i] = strings.TrimSpace(c.CORSAllowedOrigins[i])
	}
	c.CORSAllowedOrigins = compactNonEmpty(c.CORSAllowedOrigins)
	if len(c.CORSAllowedOrigins) == 0 {
		c.CORSAllowedOrigins = []string{"*"}
	}

	base, err := NormalizeDataServerURL(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("API_BASE_URL: %w", err)
	}
	c.API.BaseURL = base
	if c.API.RetryMax < 0 {
		return fmt.Errorf("API_RETRY_MAX must not be negative")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive")
	}

	switch strings.ToLower(c.Settings.DefaultTheme) {
	case "light", "dark":
		c.Settings.DefaultTheme = strings.ToLower(c.Settings.DefaultTheme)
	default:
		c.Warnings = append(c.Warnings, fmt.Sprintf("unknown DEFAULT_THEME %q, using light", c.Settings.DefaultTheme))
		c.Settings.DefaultTheme = "light"
	}
	switch strings.ToLower(c.Settings.DefaultLanguage) {
	case "en", "tr":
		c.Settings.DefaultLanguage = strings.ToLower(c.Settings.DefaultLanguage)
	default:
		c.Warnings = append(c.Warnings, fmt.Sprintf("unknown DEFAULT_LANGUAGE %q, using en", c.Settings.DefaultLanguage))
		c.Settings.DefaultLanguage = "en"
	}

	if c.Cache.TTL <= 0 {
		c.Warnings = append(c.Warnings, "CACHE_TTL is zero, every page load refetches from the data server")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		c.Warnings = append(c.Warnings, "rate limiting disabled (RATE_LIMIT_RPS or RATE_LIMIT_BURST not positive)")
	}

	if c.IsProduction() {
		if len(c.CORSAllowedOrigins) == 1 && c.CORSAllowedOrigins[0] == "*" {
			return fmt.Errorf("CORS wildcard (*) is not allowed in production (ENV=production)")
		}
		if c.Mock.Delay > 0 {
			c.Warnings = append(c.Warnings, "MOCK_DELAY is set in production")
		}
	}
	return nil
}

func compactNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// LoadDotEnv reads a .env file and sets any variables not already in the
// environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
