package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/CorruCalc/internal/model"
)

// Workbook sheet names.
const (
	SheetSummary  = "Summary"
	SheetProfile  = "Profile"
	SheetLeftover = "Leftover"
	SheetBends    = "Bends"
	SheetBatch    = "Batch"
)

// ExportXLSX writes est to an Excel workbook with Summary, Profile, Leftover
// and Bends sheets.
func ExportXLSX(path string, est model.Estimate) error {
	f, err := buildWorkbook(est)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WriteXLSX writes the same workbook as ExportXLSX to w.
func WriteXLSX(w io.Writer, est model.Estimate) error {
	f, err := buildWorkbook(est)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// sheetWriter appends rows to one sheet and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (sw *sheetWriter) append(values ...interface{}) {
	if sw.err != nil {
		return
	}
	sw.row++
	cell, err := excelize.CoordinatesToCellName(1, sw.row)
	if err != nil {
		sw.err = err
		return
	}
	sw.err = sw.f.SetSheetRow(sw.sheet, cell, &values)
}

func (sw *sheetWriter) header(style int, values ...interface{}) {
	sw.append(values...)
	if sw.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(values), sw.row)
	if err != nil {
		sw.err = err
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, sw.row)
	sw.err = sw.f.SetCellStyle(sw.sheet, first, last, style)
}

func newWorkbook(firstSheet string) (*excelize.File, int, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), firstSheet); err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to name sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to create header style: %w", err)
	}
	return f, bold, nil
}

func buildWorkbook(est model.Estimate) (*excelize.File, error) {
	if err := checkExportable(est); err != nil {
		return nil, err
	}

	f, bold, err := newWorkbook(SheetSummary)
	if err != nil {
		return nil, err
	}
	for _, name := range []string{SheetProfile, SheetLeftover, SheetBends} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	summary := &sheetWriter{f: f, sheet: SheetSummary}
	summary.header(bold, "Figure", "Value")
	if est.DesignFailed {
		summary.append("Status", "DESIGN FAILED")
	} else {
		summary.append("Status", "OK")
	}
	for _, panel := range summaryRows(est) {
		summary.append(panel.label, panel.value)
	}

	profile := &sheetWriter{f: f, sheet: SheetProfile}
	profile.header(bold, "Point", "X (mm)", "Z (mm)")
	for i, pt := range est.Profile.Profile {
		profile.append(i+1, pt.X, pt.Z)
	}

	leftover := &sheetWriter{f: f, sheet: SheetLeftover}
	leftover.header(bold, "Point", "X (mm)", "Z (mm)")
	for i, pt := range est.Profile.Leftover {
		leftover.append(i+1, pt.X, pt.Z)
	}

	bends := &sheetWriter{f: f, sheet: SheetBends}
	bends.header(bold, "Bend", "Module", "Position (mm)", "Angle (deg)", "Direction")
	for _, s := range model.BendSchedule(est.Profile, est.Params.FlatWidth, est.Params.FoldAngle) {
		bends.append(s.Sequence, s.Module, s.Position, s.Angle, string(s.Direction))
	}

	for _, sw := range []*sheetWriter{summary, profile, leftover, bends} {
		if sw.err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write sheet %s: %w", sw.sheet, sw.err)
		}
	}
	if err := f.SetColWidth(SheetSummary, "A", "A", 24); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// summaryRows flattens the report panels into label/value rows with
// numeric values kept numeric.
func summaryRows(est model.Estimate) []struct {
	label string
	value interface{}
} {
	p, res := est.Params, est.Profile
	return []struct {
		label string
		value interface{}
	}{
		{"Flat width (mm)", p.FlatWidth},
		{"Peak height (mm)", p.PeakHeight},
		{"Fold angle (deg)", p.FoldAngle},
		{"Sheet length (mm)", p.TotalLength},
		{"Cost per bend", p.CostPerBend},
		{"Horizontal run (mm)", res.HorizontalRun},
		{"Slant length (mm)", res.SlantLength},
		{"Module length (mm)", res.ModuleLength},
		{"Modules", res.ModuleCount},
		{"Used length (mm)", res.UsedLength},
		{"Leftover length (mm)", res.LeftoverLength},
		{"Efficiency (%)", est.Efficiency},
		{"Peak-to-peak (mm)", est.PeakToPeak},
		{"Total flat length (mm)", est.TotalFlatLength},
		{"Total slant length (mm)", est.TotalSlantLength},
		{"Coverage width (mm)", est.CoverageWidth},
		{"Surface area increase", est.SurfaceAreaIncrease},
		{"Corrugation ratio", est.CorrugationRatio},
		{"Bending strength factor", est.BendingStrengthFactor},
		{"Material utilization (%)", est.MaterialUtilization},
		{"Module bends", est.Cost.CompleteModuleBends},
		{"Leftover bends", est.Cost.LeftoverBends},
		{"Total bends", est.Cost.TotalBends},
		{"Cost per module", est.CostPerModule},
		{"Complete module cost", est.CompleteModuleCost},
		{"Total cost", est.Cost.TotalCost},
		{"Cost per meter", est.CostPerMeter},
	}
}

// ExportBatchXLSX writes one summary row per job to a single-sheet workbook.
func ExportBatchXLSX(path string, jobs []Job) error {
	if len(jobs) == 0 {
		return ErrNothingToExport
	}
	f, bold, err := newWorkbook(SheetBatch)
	if err != nil {
		return err
	}
	defer f.Close()

	sw := &sheetWriter{f: f, sheet: SheetBatch}
	sw.header(bold, "Label", "A (mm)", "D (mm)", "Angle (deg)", "Sheet (mm)", "Modules",
		"Used (mm)", "Leftover (mm)", "Efficiency (%)", "Bends", "Total cost", "Status")
	for _, j := range jobs {
		est := j.Estimate
		status := "OK"
		if est.DesignFailed {
			status = "DESIGN FAILED"
		}
		sw.append(j.Label, est.Params.FlatWidth, est.Params.PeakHeight, est.Params.FoldAngle, est.Params.TotalLength,
			est.Profile.ModuleCount, est.Profile.UsedLength, est.Profile.LeftoverLength, est.Efficiency,
			est.Cost.TotalBends, est.Cost.TotalCost, status)
	}
	if sw.err != nil {
		return fmt.Errorf("failed to write sheet %s: %w", sw.sheet, sw.err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
