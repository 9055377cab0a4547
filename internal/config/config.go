package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/muurk/camctl/internal/directory"
	"github.com/muurk/camctl/internal/pagination"
)

const (
	// DefaultBaseURL is the staging directory API
	DefaultBaseURL = "https://api-app-staging.wobot.ai"

	// DefaultTokenEnv names the variable holding the bearer token
	DefaultTokenEnv = "CAMCTL_API_TOKEN"

	DefaultTimeoutSeconds = 10

	currentVersion = 1
)

// Config represents the entire user configuration file.
type Config struct {
	Version     int          `yaml:"version"`
	API         *API         `yaml:"api,omitempty"`
	Preferences *Preferences `yaml:"preferences,omitempty"`
}

// API describes how to reach the camera directory.
// The bearer token is deliberately absent: see ResolveToken.
type API struct {
	BaseURL        string `yaml:"base_url"`
	FetchPath      string `yaml:"fetch_path,omitempty"`
	UpdatePath     string `yaml:"update_path,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	TokenEnv       string `yaml:"token_env,omitempty"` // environment variable holding the token
}

// Preferences are presentation defaults.
type Preferences struct {
	PageSize int    `yaml:"page_size"`           // one of 10, 20, 50, 100
	LogLevel string `yaml:"log_level,omitempty"` // empty keeps logging off
}

// New returns a Config with default values.
func New() *Config {
	return &Config{
		Version: currentVersion,
		API: &API{
			BaseURL:        DefaultBaseURL,
			FetchPath:      directory.DefaultFetchPath,
			UpdatePath:     directory.DefaultUpdatePath,
			TimeoutSeconds: DefaultTimeoutSeconds,
			TokenEnv:       DefaultTokenEnv,
		},
		Preferences: &Preferences{
			PageSize: pagination.DefaultPageSize,
		},
	}
}

// fillDefaults completes a partially written file
func (c *Config) fillDefaults() {
	def := New()
	if c.API == nil {
		c.API = def.API
	}
	if c.Preferences == nil {
		c.Preferences = def.Preferences
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.FetchPath == "" {
		c.API.FetchPath = def.API.FetchPath
	}
	if c.API.UpdatePath == "" {
		c.API.UpdatePath = def.API.UpdatePath
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = def.API.TimeoutSeconds
	}
	if c.API.TokenEnv == "" {
		c.API.TokenEnv = def.API.TokenEnv
	}
	if c.Preferences.PageSize == 0 {
		c.Preferences.PageSize = def.Preferences.PageSize
	}
}

// Timeout returns the per-request timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Validate checks the values that cannot be corrected silently.
func (c *Config) Validate() error {
	if c.Version != currentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, currentVersion)
	}
	if c.API == nil || c.Preferences == nil {
		return fmt.Errorf("config is missing the api or preferences section")
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.API.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q: must be an absolute http or https URL", c.API.BaseURL)
	}

	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.API.TimeoutSeconds)
	}
	if !strings.HasPrefix(c.API.FetchPath, "/") || !strings.HasPrefix(c.API.UpdatePath, "/") {
		return fmt.Errorf("fetch_path and update_path must start with /")
	}
	if !pagination.ValidSize(c.Preferences.PageSize) {
		return fmt.Errorf("page_size %d is not one of %v", c.Preferences.PageSize, pagination.PageSizes)
	}
	return nil
}
