package model

import (
	"time"

	"github.com/google/uuid"
)

// Preset is a named, reusable set of corrugation parameters.
type Preset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	Params      Params `json:"params"`
	IsBuiltIn   bool   `json:"-"`
}

// NewPreset creates a user preset with a fresh ID.
func NewPreset(name, description string, p Params) Preset {
	return Preset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Params:      p,
	}
}

// Built-in corrugation presets. The first one is the default.
var BuiltInPresets = []Preset{
	{
		ID:          "std-roof",
		Name:        "Standard Roof",
		Description: "90 mm flat, 60 mm peak at 45° on a 2440 mm sheet",
		Params:      DefaultParams(),
		IsBuiltIn:   true,
	},
	{
		ID:          "low-rib",
		Name:        "Low Rib",
		Description: "Shallow 30 mm rib at 30° for wall cladding",
		Params: Params{
			FlatWidth:   120,
			PeakHeight:  30,
			FoldAngle:   30,
			TotalLength: 2440,
			CostPerBend: 50,
		},
		IsBuiltIn: true,
	},
	{
		ID:          "deep-deck",
		Name:        "Deep Deck",
		Description: "Steep 100 mm deck profile at 70° on a 3000 mm sheet",
		Params: Params{
			FlatWidth:   150,
			PeakHeight:  100,
			FoldAngle:   70,
			TotalLength: 3000,
			CostPerBend: 80,
		},
		IsBuiltIn: true,
	},
}

// GetPreset returns a built-in preset by name, or the default preset if not found.
func GetPreset(name string) Preset {
	for _, p := range BuiltInPresets {
		if p.Name == name {
			return p
		}
	}
	return BuiltInPresets[0]
}

// PresetStore holds a collection of user presets.
type PresetStore struct {
	Presets []Preset `json:"presets"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{
		Presets: []Preset{},
	}
}

// Add adds a preset to the store.
func (ps *PresetStore) Add(p Preset) {
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by ID. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, p := range ps.Presets {
		if p.ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *Preset {
	for i := range ps.Presets {
		if ps.Presets[i].Name == name {
			return &ps.Presets[i]
		}
	}
	return nil
}

// Names lists built-in preset names followed by the stored ones, for dropdowns.
func (ps *PresetStore) Names() []string {
	names := make([]string, 0, len(BuiltInPresets)+len(ps.Presets))
	for _, p := range BuiltInPresets {
		names = append(names, p.Name)
	}
	for _, p := range ps.Presets {
		names = append(names, p.Name)
	}
	return names
}

// Lookup resolves a name against the stored presets first, then the built-ins.
func (ps *PresetStore) Lookup(name string) Preset {
	if p := ps.FindByName(name); p != nil {
		return *p
	}
	return GetPreset(name)
}
