package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateCost_CompleteModules(t *testing.T) {
	cost := EstimateCost(5, nil, 50)

	assert.Equal(t, 15, cost.CompleteModuleBends)
	assert.Equal(t, 0, cost.LeftoverBends)
	assert.Equal(t, 15, cost.TotalBends)
	assert.Equal(t, 750.0, cost.TotalCost)
}

func TestEstimateCost_LeftoverNeverBilled(t *testing.T) {
	leftovers := []Polyline{
		nil,
		{},
		{{X: 10, Z: 8.98}},
		{{X: 60, Z: 60}},
		{{X: 60, Z: 60}, {X: 106, Z: 13.9}},
		{{X: 60, Z: 60}, {X: 120, Z: 0}},
	}
	for _, lo := range leftovers {
		cost := EstimateCost(5, lo, 50)
		assert.Equal(t, 0, cost.LeftoverBends, "leftover %v", lo)
		assert.Equal(t, 15, cost.TotalBends, "leftover %v", lo)
		assert.Equal(t, 750.0, cost.TotalCost, "leftover %v", lo)
	}
}

func TestEstimateCost_NoModules(t *testing.T) {
	cost := EstimateCost(0, Polyline{{X: 28.28, Z: 28.28}}, 50)
	assert.Equal(t, CostResult{}, cost)
}

func TestEstimateCost_NegativeCountClamped(t *testing.T) {
	cost := EstimateCost(-3, nil, 50)
	assert.Equal(t, 0, cost.TotalBends)
	assert.Equal(t, 0.0, cost.TotalCost)
}

func TestEstimateCost_FromProfile(t *testing.T) {
	res := GenerateProfile(90, 60, 45, 2440)
	cost := EstimateCost(res.ModuleCount, res.Leftover, 50)

	assert.Equal(t, 27, cost.TotalBends)
	assert.Equal(t, 3*res.ModuleCount, cost.TotalBends)
	assert.Equal(t, 1350.0, cost.TotalCost)
}
