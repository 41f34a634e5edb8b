// Package config loads the tracetriage YAML configuration and resolves
// the client-side file locations (token, filter snapshot, cache, logs).
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Server  Server  `yaml:"server"`
	UI      UI      `yaml:"ui"`
	Logging Logging `yaml:"logging"`
	Output  Output  `yaml:"output"`
}

type Server struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type UI struct {
	PageSize            int `yaml:"page_size"`
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
	DebounceMillis      int `yaml:"debounce_millis"`
	NotificationLimit   int `yaml:"notification_limit"`
}

type Logging struct {
	Level string `yaml:"level"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

// ConfigDir returns the XDG config directory for tracetriage.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "tracetriage")
}

// DataDir returns the XDG data directory for tracetriage.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "tracetriage")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/tracetriage/config.yaml > ./config.yaml.
// No config file at all is fine; the defaults stand on their own.
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", nil
}

// Load reads and parses a config YAML file. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Server: Server{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		UI: UI{
			PageSize:            50,
			PollIntervalSeconds: 30,
			DebounceMillis:      300,
			NotificationLimit:   20,
		},
		Logging: Logging{Level: "info"},
	}

	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG
// default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

// TokenPath is the fixed location of the persisted bearer token.
func (c *Config) TokenPath() string {
	return filepath.Join(ConfigDir(), "token.json")
}

// FilterSnapshotPath is the fixed location of the persisted filter
// snapshot.
func (c *Config) FilterSnapshotPath() string {
	return filepath.Join(ConfigDir(), "filters.json")
}

// CachePath is the location of the local entity cache database.
func (c *Config) CachePath() string {
	return filepath.Join(c.GetDataDir(), "cache.db")
}

// LogPath is the location of the rotating log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.GetDataDir(), "tracetriage.log")
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}

// PollInterval returns the unread-count poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.UI.PollIntervalSeconds) * time.Second
}

// Debounce returns the search debounce quiet period as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.UI.DebounceMillis) * time.Millisecond
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
