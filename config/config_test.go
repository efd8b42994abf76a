package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExportAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.hcl")

	cfg := DefaultConfig()
	cfg.DatesWhitelist = "created,modified"
	cfg.Trim = true
	cfg.Flexible = true
	cfg.Delimiter = ";"
	cfg.BatchSize = 500
	if err := Export(configPath, cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.DatesWhitelist != "created,modified" {
		t.Errorf("expected DatesWhitelist created,modified, got %q", loaded.DatesWhitelist)
	}
	if !loaded.Trim {
		t.Error("expected Trim true")
	}
	if !loaded.Flexible {
		t.Error("expected Flexible true")
	}
	if loaded.Delimiter != ";" {
		t.Errorf("expected Delimiter ;, got %q", loaded.Delimiter)
	}
	if loaded.BatchSize != 500 {
		t.Errorf("expected BatchSize 500, got %d", loaded.BatchSize)
	}
}

func TestLoadPartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "partial.hcl")
	err := os.WriteFile(configPath, []byte("trim = true\n"), 0644)
	if err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !loaded.Trim {
		t.Error("expected Trim true")
	}
	// Unset attributes keep their defaults.
	if loaded.DatesWhitelist != DefaultDatesWhitelist {
		t.Errorf("expected default whitelist, got %q", loaded.DatesWhitelist)
	}
	if loaded.Delimiter != "," {
		t.Errorf("expected default delimiter, got %q", loaded.Delimiter)
	}
	if loaded.BatchSize != 1000 {
		t.Errorf("expected default BatchSize 1000, got %d", loaded.BatchSize)
	}
}

func TestLoadDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.hcl")
	err := os.WriteFile(configPath, []byte(""), 0644)
	if err != nil {
		t.Fatalf("failed to write empty config: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.BatchSize != 1000 {
		t.Errorf("expected default BatchSize 1000, got %d", loaded.BatchSize)
	}
}

func TestLoadInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.hcl")
	err := os.WriteFile(configPath, []byte("trim = {{"), 0644)
	if err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.hcl")); err == nil {
		t.Error("expected error for missing file")
	}
}
