// Package config handles global Aida configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/aidahq/aida/internal/atomicfile"
	"github.com/aidahq/aida/internal/paths"
)

// Config represents the global Aida configuration.
type Config struct {
	// Database holds database location settings.
	Database DatabaseConfig `toml:"database"`

	// Log holds logging settings.
	Log LogConfig `toml:"log"`

	// Todoist holds the Todoist integration settings.
	Todoist TodoistConfig `toml:"todoist"`
}

// DatabaseConfig represents database location settings.
type DatabaseConfig struct {
	// Path is the SQLite database file. Empty means the default location
	// under the user's data directory.
	Path string `toml:"path"`
}

// LogConfig represents logging settings.
type LogConfig struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	Level string `toml:"level"`

	// File is an optional log file path. Empty logs to stderr only.
	File string `toml:"file"`

	// MaxSizeMB rotates the log file once it exceeds this size.
	MaxSizeMB int `toml:"max_size_mb"`

	// MaxBackups is how many rotated files to keep.
	MaxBackups int `toml:"max_backups"`

	// MaxAgeDays removes rotated files older than this.
	MaxAgeDays int `toml:"max_age_days"`
}

// TodoistConfig represents the Todoist integration settings.
type TodoistConfig struct {
	// Token is the Todoist API token. Empty disables the sync commands.
	Token string `toml:"token"`

	// BaseURL overrides the API endpoint, mainly for testing.
	BaseURL string `toml:"base_url"`
}

// DatabasePath returns the configured database path, falling back to
// ~/.local/share/aida/aida.db.
func (c *Config) DatabasePath() string {
	if c.Database.Path != "" {
		return paths.ExpandUser(c.Database.Path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "aida", "aida.db")
	}
	return "aida.db"
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/aida/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "aida", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "aida", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// CreateDefault creates a default config file if it doesn't exist.
func CreateDefault() (string, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# Aida Configuration

# [database]
# path = "/path/to/aida.db"

# [log]
# level = "info"
# file = "/path/to/aida.log"
# max_size_mb = 10
# max_backups = 3
# max_age_days = 28

# [todoist]
# token = "your-api-token"
`

	if err := atomicfile.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}
