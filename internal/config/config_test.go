package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileIsEmptyConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed for missing file: %v", err)
	}

	if cfg.Token != "" || cfg.URL != "" {
		t.Errorf("Expected empty config, got %+v", cfg)
	}
	if cfg.Path() != path {
		t.Errorf("Expected config bound to %s, got %s", path, cfg.Path())
	}
}

func TestLoadSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg.Token = "tok-123"
	cfg.URL = "https://api.example.com"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	if loaded.Token != "tok-123" {
		t.Errorf("Expected token to round-trip, got %q", loaded.Token)
	}
	if loaded.URL != "https://api.example.com" {
		t.Errorf("Expected url to round-trip, got %q", loaded.URL)
	}
}

func TestSave_RestrictivePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg.Token = "secret"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected mode 0600 for config holding a token, got %o", perm)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("token: [unclosed"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Expected error for malformed YAML")
	} else if !strings.Contains(err.Error(), "parsing config") {
		t.Errorf("Expected parse error, got: %v", err)
	}
}
