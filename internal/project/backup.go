package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/CorruCalc/internal/model"
)

const backupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string            `json:"version"`
	CreatedAt string            `json:"created_at"`
	Config    model.AppConfig   `json:"config"`
	Presets   model.PresetStore `json:"presets"`
}

// ExportAllData exports the config and user presets to a single JSON file.
func ExportAllData(exportPath string, config model.AppConfig, presets model.PresetStore) error {
	backup := BackupData{
		Version:   backupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Presets:   presets,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported config and presets.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	backup := BackupData{Config: model.DefaultAppConfig()}
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if err := backup.Config.Params().Validate(); err != nil {
		return BackupData{}, fmt.Errorf("invalid backup file: default parameters: %w", err)
	}
	for _, p := range backup.Presets.Presets {
		if err := p.Params.Validate(); err != nil {
			return BackupData{}, fmt.Errorf("invalid backup file: preset %q: %w", p.Name, err)
		}
	}
	if backup.Config.RecentExports == nil {
		backup.Config.RecentExports = []string{}
	}
	if backup.Presets.Presets == nil {
		backup.Presets.Presets = []model.Preset{}
	}
	return backup, nil
}
