// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment keys read when the matching marketplace field is left empty.
// They are the names the marketplace sample tooling has always exported.
const (
	EnvBaseURL  = "baseURL"
	EnvEmail    = "email"
	EnvPassword = "password"
)

// Config is the top-level application configuration.
type Config struct {
	Marketplace MarketplaceConfig `yaml:"marketplace"`
	Monitor     MonitorConfig     `yaml:"monitor"`
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
}

// MarketplaceConfig defines the upstream marketplace API settings.
type MarketplaceConfig struct {
	BaseURL   string          `yaml:"base_url"`
	Email     string          `yaml:"email"`
	Password  string          `yaml:"password"`
	Timeout   time.Duration   `yaml:"timeout"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines client-side rate limiting. A zero PerSecond
// disables limiting.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// MonitorConfig defines the watch-mode schedule.
type MonitorConfig struct {
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"` // per run, default: interval
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Addr returns the listen address for the server.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// TelemetryConfig defines OTLP trace export.
type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"` // default: 1
}

// Override adjusts a parsed configuration before defaults and validation,
// e.g. from command-line flags.
type Override func(*Config)

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation. An empty path builds the configuration from
// the environment and defaults alone. Overrides run after the fallback
// environment keys are applied.
func Load(path string, overrides ...Override) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyEnvFallbacks(&cfg.Marketplace)
	for _, o := range overrides {
		o(cfg)
	}
	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyEnvFallbacks(m *MarketplaceConfig) {
	if m.BaseURL == "" {
		m.BaseURL = os.Getenv(EnvBaseURL)
	}
	if m.Email == "" {
		m.Email = os.Getenv(EnvEmail)
	}
	if m.Password == "" {
		m.Password = os.Getenv(EnvPassword)
	}
}

func applyDefaults(cfg *Config) {
	applyMarketplaceDefaults(&cfg.Marketplace)
	applyMonitorDefaults(&cfg.Monitor)
	applyServerDefaults(&cfg.Server)
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
}

func applyMarketplaceDefaults(m *MarketplaceConfig) {
	m.BaseURL = strings.TrimRight(m.BaseURL, "/")
	if m.Timeout == 0 {
		m.Timeout = 30 * time.Second
	}
	if m.RateLimit.Burst == 0 {
		m.RateLimit.Burst = 1
	}
}

func applyMonitorDefaults(m *MonitorConfig) {
	if m.Interval == 0 {
		m.Interval = 5 * time.Minute
	}
	if m.Timeout == 0 {
		m.Timeout = m.Interval
	}
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.ServiceName == "" {
		t.ServiceName = "auction-monitor"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1
	}
}

func validate(cfg *Config) error {
	var errs []error

	errs = append(errs, validateMarketplace(&cfg.Marketplace)...)

	if cfg.Monitor.Interval < 0 {
		errs = append(errs, fmt.Errorf("monitor.interval must be positive (got %s)", cfg.Monitor.Interval))
	}
	if cfg.Monitor.Timeout < 0 {
		errs = append(errs, fmt.Errorf("monitor.timeout must be positive (got %s)", cfg.Monitor.Timeout))
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535 (got %d)", cfg.Server.Port))
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(
			errs,
			fmt.Errorf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level),
		)
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(
			errs,
			fmt.Errorf("logging.format must be one of: text, json (got %q)", cfg.Logging.Format),
		)
	}

	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		errs = append(
			errs,
			fmt.Errorf("telemetry.sample_ratio must be between 0 and 1 (got %g)", cfg.Telemetry.SampleRatio),
		)
	}

	return errors.Join(errs...)
}

func validateMarketplace(m *MarketplaceConfig) []error {
	var errs []error

	if m.BaseURL == "" {
		errs = append(errs, fmt.Errorf("marketplace.base_url is required (or set %s)", EnvBaseURL))
	} else if u, err := url.Parse(m.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("marketplace.base_url must be an absolute http(s) URL (got %q)", m.BaseURL))
	}
	if m.Email == "" {
		errs = append(errs, fmt.Errorf("marketplace.email is required (or set %s)", EnvEmail))
	}
	if m.Password == "" {
		errs = append(errs, fmt.Errorf("marketplace.password is required (or set %s)", EnvPassword))
	}
	if m.Timeout < 0 {
		errs = append(errs, fmt.Errorf("marketplace.timeout must be positive (got %s)", m.Timeout))
	}
	if m.RateLimit.PerSecond < 0 {
		errs = append(
			errs,
			fmt.Errorf("marketplace.rate_limit.per_second must not be negative (got %g)", m.RateLimit.PerSecond),
		)
	}
	if m.RateLimit.Burst < 0 {
		errs = append(errs, fmt.Errorf("marketplace.rate_limit.burst must not be negative (got %d)", m.RateLimit.Burst))
	}

	return errs
}
