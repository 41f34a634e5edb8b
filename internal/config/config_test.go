package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "http://localhost:8000" {
		t.Errorf("unexpected base_url: %q", cfg.Server.BaseURL)
	}
	if cfg.UI.PageSize != 50 {
		t.Errorf("unexpected page_size: %d", cfg.UI.PageSize)
	}
	if cfg.PollInterval() != 30*time.Second {
		t.Errorf("unexpected poll interval: %v", cfg.PollInterval())
	}
	if cfg.Debounce() != 300*time.Millisecond {
		t.Errorf("unexpected debounce: %v", cfg.Debounce())
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  base_url: https://trace.example.com\nui:\n  page_size: 10\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "https://trace.example.com" {
		t.Errorf("unexpected base_url: %q", cfg.Server.BaseURL)
	}
	if cfg.UI.PageSize != 10 {
		t.Errorf("unexpected page_size: %d", cfg.UI.PageSize)
	}
	// Unset fields keep their defaults.
	if cfg.UI.DebounceMillis != 300 {
		t.Errorf("expected default debounce, got %d", cfg.UI.DebounceMillis)
	}
}

func TestDefaultConfigYAMLParses(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("embedded default.yaml does not parse: %v", err)
	}
	if cfg.UI.NotificationLimit != 20 {
		t.Errorf("unexpected notification_limit: %d", cfg.UI.NotificationLimit)
	}
}

func TestDataDirOverride(t *testing.T) {
	cfg, _ := Load("")
	cfg.Output.DataDir = "/tmp/tt"
	if cfg.CachePath() != "/tmp/tt/cache.db" {
		t.Errorf("unexpected cache path: %q", cfg.CachePath())
	}
	if cfg.LogPath() != "/tmp/tt/tracetriage.log" {
		t.Errorf("unexpected log path: %q", cfg.LogPath())
	}
}
