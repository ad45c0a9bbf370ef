package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/CorruCalc/internal/model"
)

// DefaultPresetsPath returns the default file path for custom presets.
func DefaultPresetsPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// SaveCustomPresets saves the user presets of store to a JSON file.
func SaveCustomPresets(path string, store model.PresetStore) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomPresets loads user presets from a JSON file.
// Returns an empty store if the file does not exist.
func LoadCustomPresets(path string) (model.PresetStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewPresetStore(), nil
		}
		return model.PresetStore{}, err
	}

	var store model.PresetStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.PresetStore{}, fmt.Errorf("failed to parse presets %s: %w", path, err)
	}
	if store.Presets == nil {
		store.Presets = []model.Preset{}
	}
	return store, nil
}

// ExportPreset writes a single preset to a JSON file for sharing.
func ExportPreset(path string, preset model.Preset) error {
	preset.IsBuiltIn = false
	data, err := json.MarshalIndent(preset, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportPreset reads a single preset from a JSON file. The parameters must
// pass validation.
func ImportPreset(path string) (model.Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Preset{}, err
	}

	var preset model.Preset
	if err := json.Unmarshal(data, &preset); err != nil {
		return model.Preset{}, fmt.Errorf("failed to parse preset: %w", err)
	}
	if preset.Name == "" {
		return model.Preset{}, errors.New("imported preset has no name")
	}
	if err := preset.Params.Validate(); err != nil {
		return model.Preset{}, fmt.Errorf("imported preset %q: %w", preset.Name, err)
	}
	if preset.ID == "" {
		preset = model.NewPreset(preset.Name, preset.Description, preset.Params)
	}
	return preset, nil
}
