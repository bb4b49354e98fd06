package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort           = "8080"
	defaultAnchor         = "#app"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// Environment names accepted by the loader.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// ErrUnknownEnvironment is returned when the environment is neither production nor development.
var ErrUnknownEnvironment = errors.New("environment must be production or development")

var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"https://*.onrender.com",
	"https://*.netlify.app",
	"https://*.vercel.app",
}

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Port                 string        `yaml:"port"`
	Environment          string        `yaml:"environment"`
	Anchor               string        `yaml:"anchor"`
	WebDir               string        `yaml:"web_dir"`
	AllowedOrigins       []string      `yaml:"-"`
	ShutdownGracePeriod  time.Duration `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    time.Duration `yaml:"read_header_timeout"`
	WriteTimeout         time.Duration `yaml:"write_timeout"`
	IdleTimeout          time.Duration `yaml:"idle_timeout"`
	EnableRequestLogging bool          `yaml:"enable_request_logging"`
	RateLimitRPS         float64       `yaml:"-"`
	RateLimitBurst       int           `yaml:"-"`
}

// Production reports whether the process runs in production mode.
func (c Config) Production() bool {
	return c.Environment == EnvProduction
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string        `yaml:"port"`
	Environment          string        `yaml:"environment"`
	Anchor               string        `yaml:"anchor"`
	WebDir               string        `yaml:"web_dir"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	CORS                 yamlCORS      `yaml:"cors"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
}

type yamlCORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	Environment    *string
	Anchor         *string
	WebDir         *string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Environment variables sit below the YAML file, so apply them first.
	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, err
		}
	}

	if overrides != nil {
		if err := applyCLIOverrides(&cfg, overrides); err != nil {
			return Config{}, err
		}
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		Environment:          EnvDevelopment,
		Anchor:               defaultAnchor,
		AllowedOrigins:       append([]string(nil), defaultAllowedOrigins...),
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	if yamlCfg.Environment != "" {
		env, err := ParseEnvironment(yamlCfg.Environment)
		if err != nil {
			return fmt.Errorf("yaml environment: %w", err)
		}
		cfg.Environment = env
	}

	if yamlCfg.Anchor != "" {
		cfg.Anchor = yamlCfg.Anchor
	}

	if yamlCfg.WebDir != "" {
		cfg.WebDir = yamlCfg.WebDir
	}

	if len(yamlCfg.CORS.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = yamlCfg.CORS.AllowedOrigins
	}

	durations := []struct {
		raw    string
		target *time.Duration
	}{
		{yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod},
		{yamlCfg.ReadHeaderTimeout, &cfg.ReadHeaderTimeout},
		{yamlCfg.WriteTimeout, &cfg.WriteTimeout},
		{yamlCfg.IdleTimeout, &cfg.IdleTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		if parsed, err := time.ParseDuration(d.raw); err == nil {
			*d.target = parsed
		}
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}

	if yamlCfg.RateLimit.RPS != nil && *yamlCfg.RateLimit.RPS >= 0 {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}

	if yamlCfg.RateLimit.Burst != nil && *yamlCfg.RateLimit.Burst >= 0 {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}

	return nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) error {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	if raw := strings.TrimSpace(os.Getenv("APP_ENV")); raw != "" {
		env, err := ParseEnvironment(raw)
		if err != nil {
			return fmt.Errorf("APP_ENV: %w", err)
		}
		cfg.Environment = env
	}

	if anchor := strings.TrimSpace(os.Getenv("MOUNT_ANCHOR")); anchor != "" {
		cfg.Anchor = anchor
	}

	if dir := strings.TrimSpace(os.Getenv("WEB_DIR")); dir != "" {
		cfg.WebDir = dir
	}

	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		if origins := parseList(raw); len(origins) > 0 {
			cfg.AllowedOrigins = origins
		}
	}

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}

	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) error {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.Environment != nil && *overrides.Environment != "" {
		env, err := ParseEnvironment(*overrides.Environment)
		if err != nil {
			return fmt.Errorf("--env: %w", err)
		}
		cfg.Environment = env
	}

	if overrides.Anchor != nil && *overrides.Anchor != "" {
		cfg.Anchor = *overrides.Anchor
	}

	if overrides.WebDir != nil && *overrides.WebDir != "" {
		cfg.WebDir = *overrides.WebDir
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}

	return nil
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if strings.TrimSpace(cfg.Anchor) == "" {
		return fmt.Errorf("mount anchor cannot be empty")
	}
	if _, err := ParseEnvironment(cfg.Environment); err != nil {
		return err
	}
	return nil
}

// ParseEnvironment normalises an environment name. The short forms prod and
// dev are accepted as aliases.
func ParseEnvironment(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case EnvProduction, "prod":
		return EnvProduction, nil
	case EnvDevelopment, "dev":
		return EnvDevelopment, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrUnknownEnvironment, raw)
	}
}

// parseList splits a comma-separated string, dropping blank entries.
func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
