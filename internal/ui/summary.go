package ui

import (
	"fmt"
	"strconv"

	"github.com/piwi3910/CorruCalc/internal/model"
)

// sliderSpec binds one input slider to a Params field.
type sliderSpec struct {
	Label    string
	Unit     string
	Min, Max float64
	Step     float64
	field    func(p *model.Params) *float64
}

func (s sliderSpec) format(v float64) string {
	decimals := 0
	if s.Step < 1 {
		decimals = 1
	}
	return strconv.FormatFloat(v, 'f', decimals, 64) + s.Unit
}

// paramSliders lists the input sliders in display order.
func paramSliders() []sliderSpec {
	return []sliderSpec{
		{Label: "Flat Width (A)", Unit: " mm", Min: 10, Max: 200, Step: 1,
			field: func(p *model.Params) *float64 { return &p.FlatWidth }},
		{Label: "Peak Height (D)", Unit: " mm", Min: 10, Max: 200, Step: 1,
			field: func(p *model.Params) *float64 { return &p.PeakHeight }},
		{Label: "Fold Angle", Unit: "°", Min: 15, Max: 85, Step: 1,
			field: func(p *model.Params) *float64 { return &p.FoldAngle }},
		{Label: "Sheet Length", Unit: " mm", Min: 1000, Max: 5000, Step: 10,
			field: func(p *model.Params) *float64 { return &p.TotalLength }},
		{Label: "Cost per Bend", Min: 1, Max: 1000, Step: 1,
			field: func(p *model.Params) *float64 { return &p.CostPerBend }},
	}
}

func money(symbol string, v float64) string {
	return symbol + strconv.FormatFloat(v, 'f', 2, 64)
}

// costSummary is the headline shown next to the cross-section.
func costSummary(est model.Estimate, symbol string) string {
	return fmt.Sprintf("Total cost: %s\n%d bends x %s\n%d modules, %.2f mm leftover",
		money(symbol, est.Cost.TotalCost),
		est.Cost.TotalBends, money(symbol, est.Params.CostPerBend),
		est.Profile.ModuleCount, est.Profile.LeftoverLength)
}

// failureWarning explains a failed design, or returns "" when the profile fits.
func failureWarning(est model.Estimate) string {
	if !est.DesignFailed {
		return ""
	}
	return fmt.Sprintf("DESIGN FAILED: profile needs %.2f mm but the sheet is %.2f mm (%.1f%%).\nReduce the flat width or peak height, or use a longer sheet.",
		est.Profile.UsedLength, est.Params.TotalLength, est.Efficiency)
}

type specCard struct {
	title string
	rows  [][2]string
}

// specCards groups the reported figures into the three dashboard panels.
func specCards(est model.Estimate, symbol string) []specCard {
	p, res := est.Params, est.Profile
	mm := func(v float64) string { return fmt.Sprintf("%.2f mm", v) }
	return []specCard{
		{"Basic Specifications", [][2]string{
			{"Flat width (A)", mm(p.FlatWidth)},
			{"Peak height (D)", mm(p.PeakHeight)},
			{"Fold angle", fmt.Sprintf("%.1f°", p.FoldAngle)},
			{"Horizontal run (L)", mm(res.HorizontalRun)},
			{"Slant length", mm(res.SlantLength)},
			{"Module length", mm(res.ModuleLength)},
			{"Peak-to-peak", mm(est.PeakToPeak)},
			{"Modules", strconv.Itoa(res.ModuleCount)},
		}},
		{"Material & Structure", [][2]string{
			{"Sheet length", mm(p.TotalLength)},
			{"Used length", mm(res.UsedLength)},
			{"Leftover", mm(res.LeftoverLength)},
			{"Efficiency", fmt.Sprintf("%.2f%%", est.Efficiency)},
			{"Material utilization", fmt.Sprintf("%.2f%%", est.MaterialUtilization)},
			{"Flat total", mm(est.TotalFlatLength)},
			{"Slant total", mm(est.TotalSlantLength)},
			{"Coverage width", mm(est.CoverageWidth)},
			{"Surface increase", fmt.Sprintf("%.3f", est.SurfaceAreaIncrease)},
			{"Corrugation ratio", fmt.Sprintf("%.3f", est.CorrugationRatio)},
			{"Strength factor", fmt.Sprintf("%.2f", est.BendingStrengthFactor)},
		}},
		{"Cost Analysis", [][2]string{
			{"Cost per bend", money(symbol, p.CostPerBend)},
			{"Module bends", strconv.Itoa(est.Cost.CompleteModuleBends)},
			{"Leftover bends", strconv.Itoa(est.Cost.LeftoverBends)},
			{"Total bends", strconv.Itoa(est.Cost.TotalBends)},
			{"Cost per module", money(symbol, est.CostPerModule)},
			{"Module cost", money(symbol, est.CompleteModuleCost)},
			{"Total cost", money(symbol, est.Cost.TotalCost)},
			{"Cost per meter", money(symbol, est.CostPerMeter)},
		}},
	}
}
