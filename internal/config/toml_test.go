package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing config file should not be an error: %v", err)
	}
	if cfg.Practice.Vocab != nil || cfg.Practice.Mode != nil || cfg.UI.Theme != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[practice]
vocab = "/tmp/vocab.csv"
mode = "uniform"

[ui]
theme = "light"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Practice.Vocab == nil || *cfg.Practice.Vocab != "/tmp/vocab.csv" {
		t.Fatalf("vocab not decoded: %+v", cfg.Practice)
	}
	if cfg.Practice.Mode == nil || *cfg.Practice.Mode != "uniform" {
		t.Fatalf("mode not decoded: %+v", cfg.Practice)
	}
	if cfg.Practice.Direction != nil {
		t.Fatalf("absent setting should stay nil: %+v", cfg.Practice)
	}
	if cfg.UI.Theme == nil || *cfg.UI.Theme != "light" {
		t.Fatalf("theme not decoded: %+v", cfg.UI)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("practice = [broken"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error for invalid TOML")
	}
}
