package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "camctl"
	configFile = "config.yaml"
)

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigErr  error

	fileMutex sync.Mutex
)

// GetConfigDir returns the OS-appropriate configuration directory:
//   - Linux: $XDG_CONFIG_HOME/camctl or $HOME/.config/camctl
//   - macOS: $HOME/.config/camctl
//   - Windows: %LOCALAPPDATA%\camctl
func GetConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, appName), nil
		}
		profile := os.Getenv("USERPROFILE")
		if profile == "" {
			return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
		}
		return filepath.Join(profile, "AppData", "Local", appName), nil

	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(home, ".config", appName), nil

	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(home, ".config", appName), nil
	}
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load returns the configuration from the default path, read once per
// process. A missing file yields the defaults.
func Load() (*Config, error) {
	globalConfigOnce.Do(func() {
		path, err := GetConfigPath()
		if err != nil {
			globalConfigErr = fmt.Errorf("failed to get config path: %w", err)
			return
		}
		globalConfig, globalConfigErr = LoadFile(path)
	})
	return globalConfig, globalConfigErr
}

// LoadFile reads the configuration at path. A missing file yields the
// defaults; missing fields are filled in.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.Version != currentVersion {
		return nil, fmt.Errorf("unsupported config version: %d (expected %d)", cfg.Version, currentVersion)
	}
	cfg.fillDefaults()
	return &cfg, nil
}

// Marshal renders the configuration as commented YAML.
func (c *Config) Marshal() ([]byte, error) {
	body, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	header := []byte(`# camctl configuration
#
# The API token is never stored here. Export it in the variable named by
# api.token_env (CAMCTL_API_TOKEN by default) or put it in a .env file.

`)
	return append(header, body...), nil
}

// SaveFile writes the configuration to path atomically, creating the
// directory with user-only permissions.
func (c *Config) SaveFile(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}
	return nil
}

// Init writes the default configuration to the default path. An existing
// file is kept unless force is set. Returns the path written.
func Init(force bool) (string, error) {
	path, err := GetConfigPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}
	return path, New().SaveFile(path)
}
