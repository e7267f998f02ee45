package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Data.NavDir != "." {
		t.Errorf("expected nav dir '.', got %s", cfg.Data.NavDir)
	}
	if cfg.Query.ZHint != 0 {
		t.Errorf("expected z hint 0, got %f", cfg.Query.ZHint)
	}
	if cfg.Output.Limit != 0 {
		t.Errorf("expected limit 0, got %d", cfg.Output.Limit)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "navtool.yaml")

	yamlContent := `
data:
  nav_dir: "/srv/maps"

query:
  z_hint: 128.5

output:
  limit: 25

logging:
  level: "debug"
  log_file: "navtool.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Data.NavDir != "/srv/maps" {
		t.Errorf("expected nav dir /srv/maps, got %s", cfg.Data.NavDir)
	}
	if cfg.Query.ZHint != 128.5 {
		t.Errorf("expected z hint 128.5, got %f", cfg.Query.ZHint)
	}
	if cfg.Output.Limit != 25 {
		t.Errorf("expected limit 25, got %d", cfg.Output.Limit)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "navtool.log" {
		t.Errorf("expected log file navtool.log, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	// A file overriding only one section keeps the rest at defaults.
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "navtool.yaml")

	yamlContent := `
query:
  z_hint: -64
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Query.ZHint != -64 {
		t.Errorf("expected z hint -64, got %f", cfg.Query.ZHint)
	}
	if cfg.Data.NavDir != "." {
		t.Errorf("expected default nav dir, got %s", cfg.Data.NavDir)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level, got %s", cfg.Logging.Level)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "navtool.yaml")

	cfg := Default()
	cfg.Data.NavDir = "/data/nav"
	cfg.Output.Limit = 5

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}

	if loaded.Data.NavDir != "/data/nav" {
		t.Errorf("expected nav dir /data/nav, got %s", loaded.Data.NavDir)
	}
	if loaded.Output.Limit != 5 {
		t.Errorf("expected limit 5, got %d", loaded.Output.Limit)
	}
}
