package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/muurk/camctl/internal/logging"
)

// Environment overrides, applied between the file and command-line flags.
const (
	EnvBaseURL  = "CAMCTL_BASE_URL"
	EnvTimeout  = "CAMCTL_TIMEOUT"
	EnvPageSize = "CAMCTL_PAGE_SIZE"
	EnvLogLevel = logging.LogLevelEnvVar
)

// ErrMissingToken is returned when no API token is available
var ErrMissingToken = errors.New("API token not set")

var (
	dotenvOnce     sync.Once
	dotenvPath     string
	dotenvErr      error
	dotenvDisabled atomic.Bool
)

// DisableDotEnv makes LoadDotEnv a no-op for the rest of the process.
// Tests call it so a developer's .env cannot change their results.
func DisableDotEnv() {
	dotenvDisabled.Store(true)
}

// LoadDotEnv loads the first .env file found from the working directory up
// to the filesystem root. Variables already set are not overridden. Only
// the first call has any effect.
func LoadDotEnv() error {
	if dotenvDisabled.Load() {
		return nil
	}
	dotenvOnce.Do(func() {
		path, err := findDotEnv()
		if err != nil {
			dotenvErr = err
			logging.Debug("search for .env failed", zap.Error(err))
			return
		}
		if path == "" {
			return
		}
		if err := godotenv.Load(path); err != nil {
			dotenvErr = fmt.Errorf("failed to load %s: %w", path, err)
			logging.Warn("load .env failed", zap.String("dotenv", path), zap.Error(err))
			return
		}
		dotenvPath = path
		logging.Debug("loaded .env", zap.String("dotenv", path))
	})
	return dotenvErr
}

// DotEnvPath returns the .env file that was loaded, or ""
func DotEnvPath() string {
	return dotenvPath
}

func findDotEnv() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(wd, ".env")
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return "", nil
		}
		wd = parent
	}
}

// ApplyEnv overlays the CAMCTL_* variables onto c.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBaseURL); ok && strings.TrimSpace(v) != "" {
		c.API.BaseURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvTimeout); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.API.TimeoutSeconds = n
	}
	if v, ok := lookup(EnvPageSize); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPageSize, err)
		}
		c.Preferences.PageSize = n
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.Preferences.LogLevel = strings.TrimSpace(v)
	}
	return nil
}

// ResolveToken returns the bearer token from the variable named by
// api.token_env, after loading any .env file.
func (c *Config) ResolveToken() (string, error) {
	if err := LoadDotEnv(); err != nil {
		return "", err
	}
	return c.resolveToken(os.LookupEnv)
}

func (c *Config) resolveToken(lookup func(string) (string, bool)) (string, error) {
	name := DefaultTokenEnv
	if c.API != nil && c.API.TokenEnv != "" {
		name = c.API.TokenEnv
	}
	v, _ := lookup(name)
	if token := strings.TrimSpace(v); token != "" {
		return token, nil
	}
	return "", fmt.Errorf("%w: export %s or add it to a .env file", ErrMissingToken, name)
}
