package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: 0.0.0.0
  port: 9090
storage:
  database_path: ./data/documents.db
search:
  default_limit: 25
  default_mode: fuzzy
watch:
  directories:
    - ./docs
  extensions: [".txt", ".md"]
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Debug {
		t.Error("debug not set")
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9090 {
		t.Errorf("server: %+v", cfg.Server)
	}
	if cfg.Search.DefaultLimit != 25 || cfg.Search.DefaultMode != "fuzzy" {
		t.Errorf("search: %+v", cfg.Search)
	}
	// "./" paths expand relative to the config directory.
	if cfg.Storage.DatabasePath != filepath.Join(dir, "data/documents.db") {
		t.Errorf("database path not expanded: %s", cfg.Storage.DatabasePath)
	}
	if len(cfg.Watch.Directories) != 1 || cfg.Watch.Directories[0] != filepath.Join(dir, "docs") {
		t.Errorf("watch directories: %v", cfg.Watch.Directories)
	}
	if !cfg.Watch.RecursiveOrDefault() {
		t.Error("recursive should default to true")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	ApplyDefaults(&cfg)
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults: %+v", cfg.Server)
	}
	if cfg.Search.DefaultLimit != 10 || cfg.Search.MaxLimit != 100 {
		t.Errorf("search defaults: %+v", cfg.Search)
	}
	if cfg.Search.DefaultMode != "exact" {
		t.Errorf("mode default: %q", cfg.Search.DefaultMode)
	}
	if cfg.Storage.DatabasePath == "" {
		t.Error("database path default missing")
	}
	if len(cfg.Watch.Extensions) == 0 {
		t.Error("extension defaults missing")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Watch.Directories = []string{"/abs/docs"}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Watch.Directories) != 1 || loaded.Watch.Directories[0] != "/abs/docs" {
		t.Errorf("directories: %v", loaded.Watch.Directories)
	}
}
