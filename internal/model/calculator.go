package model

// Estimate bundles a profile, its bending cost and the figures reported
// alongside them.
type Estimate struct {
	Params  Params        `json:"params"`
	Profile ProfileResult `json:"profile"`
	Cost    CostResult    `json:"cost"`

	DesignFailed bool    `json:"design_failed"` // Used length exceeds the sheet
	Efficiency   float64 `json:"efficiency"`    // UsedLength / TotalLength * 100, unclamped

	PeakToPeak            float64 `json:"peak_to_peak"`            // A + 2L (mm)
	TotalFlatLength       float64 `json:"total_flat_length"`       // (N+1) * A (mm)
	TotalSlantLength      float64 `json:"total_slant_length"`      // 2N * slant (mm)
	CoverageWidth         float64 `json:"coverage_width"`          // N * peak-to-peak (mm)
	SurfaceAreaIncrease   float64 `json:"surface_area_increase"`   // Module length / peak-to-peak
	CorrugationRatio      float64 `json:"corrugation_ratio"`       // D / peak-to-peak
	BendingStrengthFactor float64 `json:"bending_strength_factor"` // D² / peak-to-peak
	MaterialUtilization   float64 `json:"material_utilization"`    // (Total - leftover) / Total * 100

	CostPerModule      float64 `json:"cost_per_module"`      // 3 * cost per bend, 0 without modules
	CompleteModuleCost float64 `json:"complete_module_cost"` // Complete module bends * cost per bend
	CostPerMeter       float64 `json:"cost_per_meter"`       // Total cost per meter of coverage
}

// Analyze generates the profile for p, prices its bends and derives the
// reported figures. It never fails: an infeasible layout is flagged through
// DesignFailed.
func Analyze(p Params) Estimate {
	prof := p.Profile()
	cost := EstimateCost(prof.ModuleCount, prof.Leftover, p.CostPerBend)

	n := float64(prof.ModuleCount)
	peakToPeak := p.FlatWidth + 2*prof.HorizontalRun
	coverage := n * peakToPeak

	est := Estimate{
		Params:             p,
		Profile:            prof,
		Cost:               cost,
		DesignFailed:       prof.UsedLength > p.TotalLength,
		PeakToPeak:         peakToPeak,
		TotalFlatLength:    (n + 1) * p.FlatWidth,
		TotalSlantLength:   n * 2 * prof.SlantLength,
		CoverageWidth:      coverage,
		CompleteModuleCost: float64(cost.CompleteModuleBends) * p.CostPerBend,
	}

	if p.TotalLength > 0 {
		est.Efficiency = (prof.UsedLength / p.TotalLength) * 100.0
		est.MaterialUtilization = ((p.TotalLength - prof.LeftoverLength) / p.TotalLength) * 100.0
	}

	if peakToPeak > 0 {
		est.SurfaceAreaIncrease = prof.ModuleLength / peakToPeak
		est.CorrugationRatio = p.PeakHeight / peakToPeak
		est.BendingStrengthFactor = p.PeakHeight * p.PeakHeight / peakToPeak
	}

	if prof.ModuleCount > 0 {
		est.CostPerModule = BendsPerModule * p.CostPerBend
	}
	if coverage > 0 {
		est.CostPerMeter = cost.TotalCost / (coverage / 1000.0)
	}

	return est
}
