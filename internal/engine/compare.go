package engine

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/piwi3910/CorruCalc/internal/model"
)

// Scenario is a named set of parameters to compare.
type Scenario struct {
	Name   string       `json:"name"`
	Params model.Params `json:"params"`
}

// ComparisonResult holds the estimate and headline figures of one scenario.
type ComparisonResult struct {
	Scenario       Scenario       `json:"scenario"`
	Estimate       model.Estimate `json:"estimate"`
	ModuleCount    int            `json:"module_count"`
	Efficiency     float64        `json:"efficiency"`
	LeftoverLength float64        `json:"leftover_length"`
	TotalCost      float64        `json:"total_cost"`
	Failed         bool           `json:"failed"`
}

// CompareScenarios estimates each scenario and returns the results in
// scenario order.
func CompareScenarios(scenarios []Scenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		est := model.Analyze(scenario.Params)
		results = append(results, ComparisonResult{
			Scenario:       scenario,
			Estimate:       est,
			ModuleCount:    est.Profile.ModuleCount,
			Efficiency:     est.Efficiency,
			LeftoverLength: est.Profile.LeftoverLength,
			TotalCost:      est.Cost.TotalCost,
			Failed:         est.DesignFailed,
		})
	}

	return results
}

// BuildDefaultScenarios generates what-if alternatives around base: a
// shallower and a steeper fold, a narrower flat and a longer sheet.
func BuildDefaultScenarios(base model.Params) []Scenario {
	scenarios := []Scenario{
		{Name: "Current Settings", Params: base},
	}

	// Fold angle ±5° while it stays a valid slant
	for _, delta := range []float64{-5, 5} {
		angle := base.FoldAngle + delta
		if angle <= 0 || angle >= 90 {
			continue
		}
		p := base
		p.FoldAngle = angle
		scenarios = append(scenarios, Scenario{
			Name:   fmt.Sprintf("Angle %.0f°", angle),
			Params: p,
		})
	}

	narrow := base
	narrow.FlatWidth = scalar.Round(base.FlatWidth*0.9, 1)
	scenarios = append(scenarios, Scenario{
		Name:   fmt.Sprintf("Flat %.1fmm (-10%%)", narrow.FlatWidth),
		Params: narrow,
	})

	longer := base
	longer.TotalLength = scalar.Round(base.TotalLength*1.1, 1)
	scenarios = append(scenarios, Scenario{
		Name:   fmt.Sprintf("Sheet %.0fmm (+10%%)", longer.TotalLength),
		Params: longer,
	})

	return scenarios
}

// BestScenario returns the feasible result with the least leftover, preferring
// the cheaper one on a tie. ok is false when every scenario failed.
func BestScenario(results []ComparisonResult) (best ComparisonResult, ok bool) {
	for _, r := range results {
		if r.Failed {
			continue
		}
		if !ok || betterFit(r.LeftoverLength, r.TotalCost, best.LeftoverLength, best.TotalCost) {
			best, ok = r, true
		}
	}
	return best, ok
}

func betterFit(leftover, cost, bestLeftover, bestCost float64) bool {
	if leftover != bestLeftover {
		return leftover < bestLeftover
	}
	return cost < bestCost
}
