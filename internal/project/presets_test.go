package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/CorruCalc/internal/model"
)

func TestSaveAndLoadCustomPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")

	store := model.NewPresetStore()
	store.Add(model.NewPreset("Barn", "barn wall", model.Params{FlatWidth: 110, PeakHeight: 35, FoldAngle: 35, TotalLength: 3000, CostPerBend: 40}))
	store.Add(model.NewPreset("Fence", "", model.Params{FlatWidth: 70, PeakHeight: 25, FoldAngle: 50, TotalLength: 1800, CostPerBend: 30}))

	require.NoError(t, SaveCustomPresets(path, store))

	loaded, err := LoadCustomPresets(path)
	require.NoError(t, err)
	require.Len(t, loaded.Presets, 2)
	assert.Equal(t, store.Presets[0].ID, loaded.Presets[0].ID)
	assert.Equal(t, store.Presets[1].Params, loaded.Presets[1].Params)
	for _, p := range loaded.Presets {
		assert.False(t, p.IsBuiltIn)
	}
}

func TestLoadCustomPresetsMissingFile(t *testing.T) {
	store, err := LoadCustomPresets(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.NotNil(t, store.Presets)
	assert.Empty(t, store.Presets)
}

func TestLoadCustomPresetsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	require.NoError(t, os.WriteFile(path, []byte("[oops"), 0644))

	_, err := LoadCustomPresets(path)
	assert.Error(t, err)
}

func TestExportImportPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep-deck.json")
	preset := model.GetPreset("Deep Deck")

	require.NoError(t, ExportPreset(path, preset))

	imported, err := ImportPreset(path)
	require.NoError(t, err)
	assert.Equal(t, "Deep Deck", imported.Name)
	assert.Equal(t, preset.Params, imported.Params)
	assert.False(t, imported.IsBuiltIn)
}

func TestImportPresetRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	noName := filepath.Join(dir, "noname.json")
	require.NoError(t, os.WriteFile(noName, []byte(`{"params":{"flat_width":90,"peak_height":60,"fold_angle":45,"total_length":2440}}`), 0644))
	_, err := ImportPreset(noName)
	assert.Error(t, err)

	badAngle := filepath.Join(dir, "badangle.json")
	require.NoError(t, os.WriteFile(badAngle, []byte(`{"name":"Flat","params":{"flat_width":90,"peak_height":60,"fold_angle":90,"total_length":2440}}`), 0644))
	_, err = ImportPreset(badAngle)
	assert.ErrorIs(t, err, model.ErrInvalidAngle)
}

func TestImportPresetAssignsID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"Shared","params":{"flat_width":90,"peak_height":60,"fold_angle":45,"total_length":2440,"cost_per_bend":10}}`), 0644))

	imported, err := ImportPreset(path)
	require.NoError(t, err)
	assert.Len(t, imported.ID, 8)
}
