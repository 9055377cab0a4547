// Package config manages the camctl configuration file.
//
// The file is YAML and lives in the platform configuration directory:
//   - Linux: $XDG_CONFIG_HOME/camctl/config.yaml or $HOME/.config/camctl/config.yaml
//   - macOS: $HOME/.config/camctl/config.yaml
//   - Windows: %LOCALAPPDATA%\camctl\config.yaml
//
// A missing file is not an error; defaults point at the staging directory.
//
// # Precedence
//
// Command-line flags win over CAMCTL_* environment variables, which win
// over the file, which wins over the defaults:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	if err := cfg.ApplyEnv(); err != nil {
//	    return err
//	}
//	// apply flags here
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// # Security
//
// The API token is NEVER read from or written to the file. ResolveToken
// reads it from the environment variable named by api.token_env, after
// loading the nearest .env file with godotenv.
//
// # Thread Safety
//
// Load reads the file once per process. SaveFile is serialized by a mutex
// and writes through a temporary file and rename.
package config
