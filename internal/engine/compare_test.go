package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/CorruCalc/internal/model"
)

func TestBuildDefaultScenarios(t *testing.T) {
	scenarios := BuildDefaultScenarios(model.DefaultParams())

	require.Len(t, scenarios, 5)
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, model.DefaultParams(), scenarios[0].Params)

	assert.Equal(t, "Angle 40°", scenarios[1].Name)
	assert.Equal(t, 40.0, scenarios[1].Params.FoldAngle)
	assert.Equal(t, "Angle 50°", scenarios[2].Name)
	assert.Equal(t, 50.0, scenarios[2].Params.FoldAngle)

	assert.Equal(t, 81.0, scenarios[3].Params.FlatWidth)
	assert.Equal(t, "Flat 81.0mm (-10%)", scenarios[3].Name)

	assert.Equal(t, 2684.0, scenarios[4].Params.TotalLength)
	assert.Equal(t, "Sheet 2684mm (+10%)", scenarios[4].Name)
}

func TestBuildDefaultScenariosKeepsAngleInRange(t *testing.T) {
	base := model.DefaultParams()
	base.FoldAngle = 87

	scenarios := BuildDefaultScenarios(base)
	for _, s := range scenarios {
		assert.Less(t, s.Params.FoldAngle, 90.0, s.Name)
		assert.Greater(t, s.Params.FoldAngle, 0.0, s.Name)
	}
	// Only the shallower fold is added
	assert.Len(t, scenarios, 4)
}

func TestCompareScenarios(t *testing.T) {
	results := CompareScenarios(BuildDefaultScenarios(model.DefaultParams()))
	require.Len(t, results, 5)

	current := results[0]
	assert.Equal(t, 9, current.ModuleCount)
	assert.InDelta(t, 12.7, current.LeftoverLength, 1e-9)
	assert.Equal(t, 1350.0, current.TotalCost)
	assert.False(t, current.Failed)
	assert.Equal(t, current.Estimate.Efficiency, current.Efficiency)

	for _, r := range results {
		assert.Equal(t, r.Scenario.Params, r.Estimate.Params, r.Scenario.Name)
		assert.Equal(t, r.Estimate.DesignFailed, r.Failed, r.Scenario.Name)
	}
}

func TestCompareScenariosEmpty(t *testing.T) {
	assert.Empty(t, CompareScenarios(nil))
}

func TestBestScenario(t *testing.T) {
	results := []ComparisonResult{
		{Scenario: Scenario{Name: "overrun"}, LeftoverLength: -70, TotalCost: 10, Failed: true},
		{Scenario: Scenario{Name: "loose"}, LeftoverLength: 40, TotalCost: 100},
		{Scenario: Scenario{Name: "tight pricey"}, LeftoverLength: 5, TotalCost: 900},
		{Scenario: Scenario{Name: "tight cheap"}, LeftoverLength: 5, TotalCost: 600},
	}

	best, ok := BestScenario(results)
	require.True(t, ok)
	assert.Equal(t, "tight cheap", best.Scenario.Name)
}

func TestBestScenarioAllFailed(t *testing.T) {
	_, ok := BestScenario([]ComparisonResult{{Failed: true}, {Failed: true}})
	assert.False(t, ok)

	_, ok = BestScenario(nil)
	assert.False(t, ok)
}
