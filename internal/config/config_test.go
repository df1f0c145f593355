// ABOUTME: Tests for configuration management
// ABOUTME: Verifies defaults, loading, saving, validation and environment overrides

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/jot/internal/notes"
	"github.com/harper/jot/internal/storage"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JOT_BACKEND", "")
	t.Setenv("JOT_DATA_DIR", "")
	t.Setenv("JOT_LOG_LEVEL", "")
}

func TestConfigPath(t *testing.T) {
	path := ConfigPath()
	if path == "" {
		t.Error("ConfigPath returned empty string")
	}
	if ConfigDir() != filepath.Dir(path) {
		t.Errorf("ConfigDir() = %s, want %s", ConfigDir(), filepath.Dir(path))
	}
}

func TestDefaultDataDir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)

	if got, want := DefaultDataDir(), filepath.Join(tmpDir, "jot"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != storage.BackendFile {
		t.Errorf("expected file backend, got %q", cfg.Backend)
	}
	if cfg.SortBy() != notes.ByEdited {
		t.Errorf("expected byEdited, got %q", cfg.SortBy())
	}
	if !cfg.AutoSync {
		t.Error("expected auto sync enabled by default")
	}
}

func TestSaveAndLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := DefaultConfig()
	cfg.Backend = storage.BackendBadger
	cfg.DefaultSort = "alphabetical"
	cfg.PollInterval = Duration(30 * time.Second)

	if err := Save(cfg, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !Exists(path) {
		t.Fatal("expected config file to exist")
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Backend != storage.BackendBadger {
		t.Errorf("expected badger, got %q", got.Backend)
	}
	if got.SortBy() != notes.Alphabetical {
		t.Errorf("expected alphabetical, got %q", got.SortBy())
	}
	if time.Duration(got.PollInterval) != 30*time.Second {
		t.Errorf("expected 30s poll interval, got %v", time.Duration(got.PollInterval))
	}
}

func TestEnvOverrides(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("JOT_BACKEND", "memory")
	t.Setenv("JOT_DATA_DIR", dataDir)
	t.Setenv("JOT_LOG_LEVEL", "debug")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != storage.BackendMemory {
		t.Errorf("expected memory backend, got %q", cfg.Backend)
	}
	if cfg.ResolvedDataDir() != dataDir {
		t.Errorf("expected data dir %q, got %q", dataDir, cfg.ResolvedDataDir())
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug, got %q", cfg.LogLevel)
	}
	if cfg.ResolvedLogFile() != filepath.Join(dataDir, "jot.log") {
		t.Errorf("unexpected log file %q", cfg.ResolvedLogFile())
	}
}

func TestReadIgnoresEnv(t *testing.T) {
	t.Setenv("JOT_BACKEND", "badger")
	t.Setenv("JOT_LOG_LEVEL", "debug")
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := DefaultConfig()
	cfg.CharmHost = "charm.example.com"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got.Backend != storage.BackendFile {
		t.Errorf("expected stored file backend, got %q", got.Backend)
	}
	if got.LogLevel != DefaultConfig().LogLevel {
		t.Errorf("expected stored log level, got %q", got.LogLevel)
	}
	if got.CharmHost != "charm.example.com" {
		t.Errorf("expected stored host, got %q", got.CharmHost)
	}
}

func TestLoadFromLeavesValidationToCaller(t *testing.T) {
	t.Setenv("JOT_BACKEND", "bogus")
	t.Setenv("JOT_DATA_DIR", "")
	t.Setenv("JOT_LOG_LEVEL", "")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !errors.Is(cfg.Validate(), storage.ErrUnknownBackend) {
		t.Error("expected env backend to fail validation")
	}

	cfg.Backend = storage.BackendFile
	if err := cfg.Validate(); err != nil {
		t.Errorf("override should make config valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"unknown backend", func(c *Config) { c.Backend = "postgres" }, storage.ErrUnknownBackend},
		{"unknown sort", func(c *Config) { c.DefaultSort = "newest" }, notes.ErrUnknownSortBy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestStorageOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/tmp/jot-data"
	cfg.StaleThreshold = Duration(time.Minute)

	opts := cfg.StorageOptions()

	if opts.Dir != "/tmp/jot-data" || opts.Backend != storage.BackendFile {
		t.Errorf("unexpected options %+v", opts)
	}
	if opts.StaleThreshold != time.Minute {
		t.Errorf("expected 1m stale threshold, got %v", opts.StaleThreshold)
	}
}
