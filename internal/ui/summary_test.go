package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/CorruCalc/internal/model"
)

func TestParamSlidersCoverDefaults(t *testing.T) {
	specs := paramSliders()
	require.Len(t, specs, 5)

	p := model.DefaultParams()
	for _, s := range specs {
		v := *s.field(&p)
		assert.GreaterOrEqual(t, v, s.Min, s.Label)
		assert.LessOrEqual(t, v, s.Max, s.Label)
	}

	assert.Equal(t, 10.0, specs[3].Step)
	assert.Equal(t, 1000.0, specs[3].Min)
	assert.Equal(t, 5000.0, specs[3].Max)
}

func TestParamSlidersBindFields(t *testing.T) {
	var p model.Params
	for i, s := range paramSliders() {
		*s.field(&p) = float64(i + 1)
	}
	assert.Equal(t, model.Params{FlatWidth: 1, PeakHeight: 2, FoldAngle: 3, TotalLength: 4, CostPerBend: 5}, p)
}

func TestSliderFormat(t *testing.T) {
	s := paramSliders()[0]
	assert.Equal(t, "90 mm", s.format(90))
	assert.Equal(t, "45°", paramSliders()[2].format(45))
}

func TestCostSummary(t *testing.T) {
	est := model.Analyze(model.DefaultParams())
	got := costSummary(est, "$")
	assert.Contains(t, got, "Total cost: $1350.00")
	assert.Contains(t, got, "27 bends x $50.00")
	assert.Contains(t, got, "9 modules, 12.70 mm leftover")
}

func TestFailureWarning(t *testing.T) {
	assert.Empty(t, failureWarning(model.Analyze(model.DefaultParams())))

	failed := model.Analyze(model.Params{FlatWidth: 100, PeakHeight: 50, FoldAngle: 30, TotalLength: 330, CostPerBend: 10})
	assert.Contains(t, failureWarning(failed), "DESIGN FAILED")
}

func TestSpecCards(t *testing.T) {
	cards := specCards(model.Analyze(model.DefaultParams()), "$")
	require.Len(t, cards, 3)
	assert.Equal(t, "Basic Specifications", cards[0].title)
	assert.Equal(t, [2]string{"Modules", "9"}, cards[0].rows[7])
	assert.Equal(t, [2]string{"Total cost", "$1350.00"}, cards[2].rows[6])
}
