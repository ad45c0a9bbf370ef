package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Params)
		wantErr error
	}{
		{"defaults", func(p *Params) {}, nil},
		{"zero angle", func(p *Params) { p.FoldAngle = 0 }, ErrInvalidAngle},
		{"right angle", func(p *Params) { p.FoldAngle = 90 }, ErrInvalidAngle},
		{"obtuse angle", func(p *Params) { p.FoldAngle = 120 }, ErrInvalidAngle},
		{"nan angle", func(p *Params) { p.FoldAngle = math.NaN() }, ErrInvalidAngle},
		{"zero flat", func(p *Params) { p.FlatWidth = 0 }, ErrNonPositiveDimension},
		{"negative height", func(p *Params) { p.PeakHeight = -5 }, ErrNonPositiveDimension},
		{"infinite length", func(p *Params) { p.TotalLength = math.Inf(1) }, ErrNonPositiveDimension},
		{"negative cost", func(p *Params) { p.CostPerBend = -1 }, ErrInvalidCost},
		{"free bends", func(p *Params) { p.CostPerBend = 0 }, nil},
		{"slant rounds to zero", func(p *Params) { p.FlatWidth, p.PeakHeight = 0.001, 0.001 }, ErrDegenerateSlant},
		{"tiny profile on a huge sheet", func(p *Params) {
			p.FlatWidth, p.PeakHeight, p.TotalLength = 0.001, 0.001, 1e12
		}, ErrDegenerateSlant},
		{"too many modules", func(p *Params) { p.TotalLength = 1e9 }, ErrTooManyModules},
		{"longest slider sheet", func(p *Params) { p.FlatWidth, p.PeakHeight, p.FoldAngle, p.TotalLength = 10, 10, 85, 5000 }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestPolylineAccessors(t *testing.T) {
	pl := Polyline{{X: 0, Z: 0}, {X: 3, Z: 4}, {X: 6, Z: 0}}

	assert.Equal(t, []float64{0, 3, 6}, pl.Xs())
	assert.Equal(t, []float64{0, 4, 0}, pl.Zs())
	assert.InDelta(t, 10.0, pl.Length(), 1e-12)
	assert.Equal(t, 6.0, pl.MaxX())

	var empty Polyline
	assert.Equal(t, 0.0, empty.Length())
	assert.Equal(t, 0.0, empty.MaxX())
	assert.Empty(t, empty.Xs())
}

func TestCrossSection(t *testing.T) {
	cs := CrossSection(90, 60, 60)

	require.Len(t, cs.Outline, 5)
	assert.Equal(t, Point{X: 150, Z: 60}, cs.Outline[2])
	assert.Equal(t, Point{X: 300, Z: 0}, cs.Outline[4])

	require.Len(t, cs.BendPoints, BendsPerModule)
	assert.Equal(t, Polyline{{X: 90, Z: 0}, {X: 150, Z: 60}, {X: 210, Z: 0}}, cs.BendPoints)
	assert.Equal(t, 210.0, cs.PeakToPeak)
}

func TestBendSchedule(t *testing.T) {
	res := GenerateProfile(90, 60, 45, 2440)
	steps := BendSchedule(res, 90, 45)

	cost := EstimateCost(res.ModuleCount, res.Leftover, 50)
	require.Len(t, steps, cost.CompleteModuleBends)

	assert.Equal(t, BendStep{Sequence: 1, Module: 1, Position: 90, Angle: 45, Direction: BendUp}, steps[0])
	assert.Equal(t, BendDown, steps[1].Direction)
	assert.Equal(t, 90.0, steps[1].Angle)
	assert.InDelta(t, 174.85, steps[1].Position, 1e-9)
	assert.InDelta(t, 259.7, steps[2].Position, 1e-9)

	last := steps[len(steps)-1]
	assert.Equal(t, 27, last.Sequence)
	assert.Equal(t, 9, last.Module)
	assert.InDelta(t, 9*259.7, last.Position, 1e-9)

	for i := 1; i < len(steps); i++ {
		assert.Greater(t, steps[i].Position, steps[i-1].Position)
	}
}

func TestBendScheduleNoModules(t *testing.T) {
	res := GenerateProfile(50, 60, 45, 40)
	assert.Empty(t, BendSchedule(res, 50, 45))
}

func TestPresets(t *testing.T) {
	def := GetPreset("does not exist")
	assert.Equal(t, "Standard Roof", def.Name)
	assert.Equal(t, DefaultParams(), def.Params)

	for _, p := range BuiltInPresets {
		assert.NoError(t, p.Params.Validate(), p.Name)
		assert.True(t, p.IsBuiltIn)
	}

	store := NewPresetStore()
	custom := NewPreset("Shed", "garden shed roof", Params{FlatWidth: 80, PeakHeight: 40, FoldAngle: 50, TotalLength: 1800, CostPerBend: 30})
	assert.Len(t, custom.ID, 8)
	assert.NotEmpty(t, custom.CreatedAt)
	store.Add(custom)

	assert.Equal(t, len(BuiltInPresets)+1, len(store.Names()))
	assert.Equal(t, custom.Params, store.Lookup("Shed").Params)
	assert.Equal(t, "Low Rib", store.Lookup("Low Rib").Name)

	assert.True(t, store.Remove(custom.ID))
	assert.False(t, store.Remove(custom.ID))
	assert.Nil(t, store.FindByName("Shed"))
}
