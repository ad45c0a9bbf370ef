package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CorruCalc/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultFlatWidth = 120
	cfg.Theme = "dark"
	cfg.BendProfile = "Fanuc"
	cfg.RecentExports = []string{"/tmp/roof.pdf", "/tmp/roof.xlsx"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultFlatWidth != 120 {
		t.Errorf("expected DefaultFlatWidth=120, got %f", loaded.DefaultFlatWidth)
	}
	if loaded.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", loaded.Theme)
	}
	if loaded.BendProfile != "Fanuc" {
		t.Errorf("expected BendProfile=Fanuc, got %s", loaded.BendProfile)
	}
	if len(loaded.RecentExports) != 2 {
		t.Errorf("expected 2 recent exports, got %d", len(loaded.RecentExports))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultFoldAngle != defaults.DefaultFoldAngle {
		t.Errorf("expected default fold angle %f, got %f", defaults.DefaultFoldAngle, cfg.DefaultFoldAngle)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected theme=system, got %s", cfg.Theme)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"theme":"light"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Theme != "light" {
		t.Errorf("expected theme=light, got %s", cfg.Theme)
	}
	if cfg.DefaultTotalLength != 2440 {
		t.Errorf("expected default total length 2440, got %f", cfg.DefaultTotalLength)
	}
	if cfg.CurrencySymbol != "฿" {
		t.Errorf("expected default currency symbol, got %q", cfg.CurrencySymbol)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigNilRecentExports(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"default_flat_width":90,"theme":"light","recent_exports":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentExports == nil {
		t.Error("RecentExports should not be nil after loading")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("expected config.json, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".corrucalc" {
		t.Errorf("expected .corrucalc directory, got %s", filepath.Dir(path))
	}
}
