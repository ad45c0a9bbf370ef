package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/CorruCalc/internal/model"
)

func TestAllPresets(t *testing.T) {
	store := model.NewPresetStore()
	assert.Len(t, allPresets(store), len(model.BuiltInPresets))

	store.Add(model.NewPreset("Shed", "", model.DefaultParams()))
	all := allPresets(store)
	assert.Len(t, all, len(model.BuiltInPresets)+1)
	assert.True(t, all[0].IsBuiltIn)
	assert.Equal(t, "Shed", all[len(all)-1].Name)
	assert.False(t, all[len(all)-1].IsBuiltIn)
}

func TestPresetFileName(t *testing.T) {
	assert.Equal(t, "standard_roof_preset.json", presetFileName("Standard Roof"))
	assert.Equal(t, "shed_preset.json", presetFileName("  Shed "))
}
