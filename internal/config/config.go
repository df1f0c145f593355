// ABOUTME: Configuration for jot: storage backend, paths, defaults, charm settings.
// ABOUTME: JSON file under XDG config home with environment overrides.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harper/jot/internal/notes"
	"github.com/harper/jot/internal/storage"
)

// Duration marshals as a Go duration string ("5s").
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds jot settings.
type Config struct {
	// Backend is one of file, badger, charm, memory (default: file)
	Backend string `json:"backend"`

	// DataDir holds the file and badger backends' data (default: $XDG_DATA_HOME/jot)
	DataDir string `json:"data_dir,omitempty"`

	// DefaultSort is the list view's initial ordering (default: byEdited)
	DefaultSort string `json:"default_sort"`

	// LogLevel is debug, info, warn or error (default: warn)
	LogLevel string `json:"log_level"`

	// LogFile receives logs while the TUI is running (default: <data dir>/jot.log)
	LogFile string `json:"log_file,omitempty"`

	// CharmHost is the charm server URL (default: charm.2389.dev)
	CharmHost string `json:"charm_host,omitempty"`

	// AutoSync enables automatic sync after writes (default: true)
	AutoSync bool `json:"auto_sync"`

	// StaleThreshold syncs before reads when the last sync is older (0 disables)
	StaleThreshold Duration `json:"stale_threshold,omitempty"`

	// PollInterval is how often the charm backend checks for remote changes (default: 5s)
	PollInterval Duration `json:"poll_interval,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend:      storage.BackendFile,
		DefaultSort:  string(notes.DefaultSort),
		LogLevel:     "warn",
		CharmHost:    "charm.2389.dev",
		AutoSync:     true,
		PollInterval: Duration(5 * time.Second),
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "jot")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// DefaultDataDir returns $XDG_DATA_HOME/jot.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "jot")
}

// Load reads the config at ConfigPath and applies environment overrides.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads path, returning defaults if it does not exist, then applies
// JOT_BACKEND, JOT_DATA_DIR and JOT_LOG_LEVEL. The result is not validated:
// callers layer their own overrides first and then call Validate.
func LoadFrom(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// Read returns the config stored at path, or defaults if it does not exist.
// No overrides are applied, so the result is safe to modify and Save back.
func Read(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // Config path is user-controlled by design
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("JOT_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("JOT_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("JOT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate rejects unknown backends and sort criteria.
func (c *Config) Validate() error {
	switch c.Backend {
	case storage.BackendFile, storage.BackendBadger, storage.BackendCharm, storage.BackendMemory:
	default:
		return fmt.Errorf("%w: %q", storage.ErrUnknownBackend, c.Backend)
	}
	if _, err := notes.ParseSortBy(c.DefaultSort); err != nil {
		return fmt.Errorf("default_sort: %w", err)
	}
	return nil
}

// ResolvedDataDir returns DataDir or the XDG default.
func (c *Config) ResolvedDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return DefaultDataDir()
}

// ResolvedLogFile returns LogFile or <data dir>/jot.log.
func (c *Config) ResolvedLogFile() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.ResolvedDataDir(), "jot.log")
}

// SortBy returns the parsed default sort. Validate guarantees it parses.
func (c *Config) SortBy() notes.SortBy {
	s, err := notes.ParseSortBy(c.DefaultSort)
	if err != nil {
		return notes.DefaultSort
	}
	return s
}

// StorageOptions converts the config into storage.Open options.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:        c.Backend,
		Dir:            c.ResolvedDataDir(),
		CharmHost:      c.CharmHost,
		AutoSync:       c.AutoSync,
		StaleThreshold: time.Duration(c.StaleThreshold),
		PollInterval:   time.Duration(c.PollInterval),
	}
}

// Save writes configuration to path.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Exists returns true if a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
