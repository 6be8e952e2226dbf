// Package config loads MyanmarCares client settings from an optional YAML file
// and the environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	sdk "github.com/myanmarcares/myanmarcares/sdk/go"
	"github.com/myanmarcares/myanmarcares/sdk/go/auth"
)

// Environment variables read by Load.
const (
	EnvAPIURL      = "MYANMARCARES_API_URL"
	EnvLegacyURL   = "STRAPI_URL"
	EnvAPIToken    = "MYANMARCARES_API_TOKEN"
	EnvAPIPrefix   = "MYANMARCARES_API_PREFIX"
	EnvLogLevel    = "MYANMARCARES_LOG_LEVEL"
	EnvLogFormat   = "MYANMARCARES_LOG_FORMAT"
	EnvMinDonation = "MYANMARCARES_MIN_DONATION"
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

var (
	ErrConfigFileUnreadable     = errors.New("config file is unreadable")
	ErrConfigFileUnmarshallable = errors.New("config file is unmarshallable")
	ErrInvalidLogFormat         = errors.New("logFormat must be console or json")
	ErrInvalidMinDonation       = errors.New("minDonation must be a non-negative number")
)

// RateLimit paces paginated walks. A zero Limit disables pacing.
type RateLimit struct {
	Limit float64 `yaml:"limit"` // requests per second
	Burst int     `yaml:"burst"`
}

// Config holds everything the CLI needs to build a client.
type Config struct {
	APIURL      string        `yaml:"apiURL"`
	APIPrefix   string        `yaml:"apiPrefix,omitempty"`
	APIToken    string        `yaml:"apiToken,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
	MinDonation float64       `yaml:"minDonation,omitempty"`
	LogLevel    string        `yaml:"logLevel,omitempty"`
	LogFormat   string        `yaml:"logFormat,omitempty"`
	Walk        RateLimit     `yaml:"walk,omitempty"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		APIURL:      "http://localhost:1337",
		APIPrefix:   "/api",
		Timeout:     30 * time.Second,
		MinDonation: sdk.DefaultMinDonation,
		LogLevel:    zerolog.LevelWarnValue,
		LogFormat:   LogFormatConsole,
	}
}

// Load reads path (skipped when empty) over the defaults, then applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrConfigFileUnreadable, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrConfigFileUnmarshallable, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := getString(EnvAPIURL, EnvLegacyURL); v != "" {
		c.APIURL = v
	}
	if v := getString(EnvAPIToken); v != "" {
		c.APIToken = v
	}
	if v := getString(EnvAPIPrefix); v != "" {
		c.APIPrefix = v
	}
	if v := getString(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getString(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
	v, ok, err := getFloat(EnvMinDonation)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidMinDonation, EnvMinDonation, os.Getenv(EnvMinDonation))
	}
	if ok {
		c.MinDonation = v
	}
	return nil
}

// Validate checks the fields Load cannot default.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return errors.New("apiURL is missing in config")
	}
	if c.MinDonation < 0 {
		return ErrInvalidMinDonation
	}
	switch c.LogFormat {
	case "", LogFormatConsole, LogFormatJSON:
	default:
		return ErrInvalidLogFormat
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel, defaulting to warn.
func (c Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.WarnLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid logLevel %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// Limiter returns the walk rate limiter, or nil when pacing is off.
func (c Config) Limiter() *rate.Limiter {
	if c.Walk.Limit <= 0 {
		return nil
	}
	burst := c.Walk.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(c.Walk.Limit), burst)
}

// ClientConfig builds the SDK configuration. tokens overrides APIToken when
// non-nil, which lets a session share one TokenStore across clients.
func (c Config) ClientConfig(tokens auth.TokenSource, telemetry sdk.TelemetryHooks) sdk.Config {
	if tokens == nil && c.APIToken != "" {
		tokens = auth.StaticToken(c.APIToken)
	}
	var httpClient *http.Client
	if c.Timeout > 0 {
		httpClient = &http.Client{Timeout: c.Timeout}
	}
	return sdk.Config{
		BaseURL:     c.APIURL,
		APIPrefix:   c.APIPrefix,
		Tokens:      tokens,
		HTTPClient:  httpClient,
		Telemetry:   telemetry,
		MinDonation: c.MinDonation,
	}
}
