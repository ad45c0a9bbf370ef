package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/CorruCalc/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	contentWidth = pageWidth - marginLeft - marginRight

	profileTop    = marginTop + headerHeight + 10.0
	profileHeight = 55.0
	lowerTop      = profileTop + profileHeight + 12.0
	sectionWidth  = 95.0
	sectionHeight = 55.0
	reportQRSize  = 22.0
)

// ReportInfo is the payload of the QR code printed on a report.
type ReportInfo struct {
	ReportID  string       `json:"report_id"`
	CreatedAt string       `json:"created_at"`
	Params    model.Params `json:"params"`
}

// ExportPDF writes a one-page report of est, followed by the bend schedule.
func ExportPDF(path string, est model.Estimate) error {
	pdf, err := buildReport(est)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WritePDF writes the same report as ExportPDF to w.
func WritePDF(w io.Writer, est model.Estimate) error {
	pdf, err := buildReport(est)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func buildReport(est model.Estimate) (*fpdf.Fpdf, error) {
	if err := checkExportable(est); err != nil {
		return nil, err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	info := ReportInfo{
		ReportID:  uuid.New().String(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Params:    est.Params,
	}
	if err := renderHeader(pdf, est, info); err != nil {
		return nil, err
	}
	renderProfile(pdf, est)
	renderCrossSection(pdf, est)
	renderSpecPanels(pdf, est)
	renderFooter(pdf)

	steps := model.BendSchedule(est.Profile, est.Params.FlatWidth, est.Params.FoldAngle)
	if len(steps) > 0 {
		renderBendSchedule(pdf, steps)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return pdf, nil
}

// registerQR encodes payload as JSON into a QR code image registered under name.
func registerQR(pdf *fpdf.Fpdf, name string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal QR payload: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	return nil
}

func renderHeader(pdf *fpdf.Fpdf, est model.Estimate, info ReportInfo) error {
	p := est.Params

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Corrugated Sheet Profile: A %.1f / D %.1f / %.1f\xb0 on %.0f mm",
		p.FlatWidth, p.PeakHeight, p.FoldAngle, p.TotalLength)
	pdf.CellFormat(contentWidth-reportQRSize, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Modules: %d | Bends: %d | Total cost: %.2f | Efficiency: %.1f%% | Leftover: %.2f mm",
		est.Profile.ModuleCount, est.Cost.TotalBends, est.Cost.TotalCost, est.Efficiency, est.Profile.LeftoverLength)
	pdf.CellFormat(contentWidth-reportQRSize, 5, stats, "", 0, "L", false, 0, "")

	if est.DesignFailed {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, marginTop+headerHeight+5)
		msg := fmt.Sprintf("DESIGN FAILED: profile needs %.2f mm but the sheet is %.2f mm", est.Profile.UsedLength, p.TotalLength)
		pdf.CellFormat(contentWidth-reportQRSize, 5, msg, "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	if err := registerQR(pdf, "qr_report", info); err != nil {
		return err
	}
	pdf.ImageOptions("qr_report", pageWidth-marginRight-reportQRSize, marginTop-5, reportQRSize, reportQRSize,
		false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

// renderProfile draws the full profile across the page width. X and Z are
// scaled independently so shallow corrugations stay readable.
func renderProfile(pdf *fpdf.Fpdf, est model.Estimate) {
	pal := paletteFor(est)

	extent := drawingExtent(est)
	height := math.Max(est.Params.PeakHeight, 1)
	scaleX := contentWidth / extent
	scaleZ := (profileHeight - 5) / height
	baseY := profileTop + profileHeight

	toPage := func(pt model.Point) fpdf.PointType {
		return fpdf.PointType{X: marginLeft + pt.X*scaleX, Y: baseY - pt.Z*scaleZ}
	}

	// Sheet outline and baseline
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.2)
	pdf.Rect(marginLeft, profileTop, contentWidth, profileHeight, "D")

	if prof := est.Profile.Profile; len(prof) > 1 {
		area := make([]fpdf.PointType, 0, len(prof)+2)
		area = append(area, toPage(model.Point{X: prof[0].X}))
		for _, pt := range prof {
			area = append(area, toPage(pt))
		}
		area = append(area, toPage(model.Point{X: prof[len(prof)-1].X}))
		pdf.SetFillColor(pal.fill.R, pal.fill.G, pal.fill.B)
		pdf.Polygon(area, "F")

		pdf.SetDrawColor(pal.line.R, pal.line.G, pal.line.B)
		pdf.SetLineWidth(0.5)
		drawPolyline(pdf, prof, toPage)
	}

	if lo := leftoverPath(est.Profile); len(lo) > 1 {
		pdf.SetDrawColor(pal.leftover.R, pal.leftover.G, pal.leftover.B)
		pdf.SetLineWidth(0.5)
		pdf.SetDashPattern([]float64{1.5, 1}, 0)
		drawPolyline(pdf, lo, toPage)
		pdf.SetDashPattern([]float64{}, 0)
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(marginLeft, baseY+1)
	pdf.CellFormat(contentWidth, 4, fmt.Sprintf("0 - %.0f mm (used %.2f mm)", extent, est.Profile.UsedLength), "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func drawPolyline(pdf *fpdf.Fpdf, pl model.Polyline, toPage func(model.Point) fpdf.PointType) {
	for i := 1; i < len(pl); i++ {
		a, b := toPage(pl[i-1]), toPage(pl[i])
		pdf.Line(a.X, a.Y, b.X, b.Y)
	}
}

// renderCrossSection draws one module to scale with its numbered bend points.
func renderCrossSection(pdf *fpdf.Fpdf, est model.Estimate) {
	pal := paletteFor(est)
	cs := model.CrossSection(est.Params.FlatWidth, est.Params.PeakHeight, est.Profile.HorizontalRun)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, lowerTop-6)
	pdf.CellFormat(sectionWidth, 5, "Cross-section (one module)", "", 0, "L", false, 0, "")

	width := cs.Outline.MaxX()
	if width <= 0 || est.Params.PeakHeight <= 0 {
		return
	}
	scale := math.Min((sectionWidth-10)/width, (sectionHeight-12)/est.Params.PeakHeight)
	offsetX := marginLeft + (sectionWidth-width*scale)/2
	baseY := lowerTop + sectionHeight - 6

	toPage := func(pt model.Point) fpdf.PointType {
		return fpdf.PointType{X: offsetX + pt.X*scale, Y: baseY - pt.Z*scale}
	}

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.2)
	pdf.Rect(marginLeft, lowerTop, sectionWidth, sectionHeight, "D")

	pdf.SetDrawColor(pal.line.R, pal.line.G, pal.line.B)
	pdf.SetLineWidth(0.6)
	drawPolyline(pdf, cs.Outline, toPage)

	pdf.SetFont("Helvetica", "B", 7)
	for i, bp := range cs.BendPoints {
		pt := toPage(bp)
		pdf.SetFillColor(pal.accent.R, pal.accent.G, pal.accent.B)
		pdf.Circle(pt.X, pt.Y, 1.2, "F")
		pdf.SetXY(pt.X+1.5, pt.Y-4)
		pdf.CellFormat(4, 3, fmt.Sprintf("%d", i+1), "", 0, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(marginLeft, lowerTop+sectionHeight-5)
	dims := fmt.Sprintf("A %.1f | L %.2f | D %.1f | peak-to-peak %.2f mm",
		est.Params.FlatWidth, est.Profile.HorizontalRun, est.Params.PeakHeight, cs.PeakToPeak)
	pdf.CellFormat(sectionWidth, 4, dims, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

type specItem struct {
	label string
	value string
}

// specPanels groups the reported figures into the three report panels.
func specPanels(est model.Estimate) []struct {
	title string
	items []specItem
} {
	p, res := est.Params, est.Profile
	return []struct {
		title string
		items []specItem
	}{
		{"Basic Specifications", []specItem{
			{"Flat width (A)", fmt.Sprintf("%.2f mm", p.FlatWidth)},
			{"Peak height (D)", fmt.Sprintf("%.2f mm", p.PeakHeight)},
			{"Fold angle", fmt.Sprintf("%.1f\xb0", p.FoldAngle)},
			{"Horizontal run (L)", fmt.Sprintf("%.2f mm", res.HorizontalRun)},
			{"Slant length", fmt.Sprintf("%.2f mm", res.SlantLength)},
			{"Module length", fmt.Sprintf("%.2f mm", res.ModuleLength)},
			{"Peak-to-peak", fmt.Sprintf("%.2f mm", est.PeakToPeak)},
			{"Modules", fmt.Sprintf("%d", res.ModuleCount)},
		}},
		{"Material & Structure", []specItem{
			{"Sheet length", fmt.Sprintf("%.2f mm", p.TotalLength)},
			{"Used length", fmt.Sprintf("%.2f mm", res.UsedLength)},
			{"Leftover", fmt.Sprintf("%.2f mm", res.LeftoverLength)},
			{"Efficiency", fmt.Sprintf("%.2f%%", est.Efficiency)},
			{"Coverage width", fmt.Sprintf("%.2f mm", est.CoverageWidth)},
			{"Surface increase", fmt.Sprintf("%.3f", est.SurfaceAreaIncrease)},
			{"Corrugation ratio", fmt.Sprintf("%.3f", est.CorrugationRatio)},
			{"Strength factor", fmt.Sprintf("%.2f", est.BendingStrengthFactor)},
		}},
		{"Cost Analysis", []specItem{
			{"Cost per bend", fmt.Sprintf("%.2f", p.CostPerBend)},
			{"Module bends", fmt.Sprintf("%d", est.Cost.CompleteModuleBends)},
			{"Leftover bends", fmt.Sprintf("%d", est.Cost.LeftoverBends)},
			{"Total bends", fmt.Sprintf("%d", est.Cost.TotalBends)},
			{"Cost per module", fmt.Sprintf("%.2f", est.CostPerModule)},
			{"Module cost", fmt.Sprintf("%.2f", est.CompleteModuleCost)},
			{"Total cost", fmt.Sprintf("%.2f", est.Cost.TotalCost)},
			{"Cost per meter", fmt.Sprintf("%.2f", est.CostPerMeter)},
		}},
	}
}

func renderSpecPanels(pdf *fpdf.Fpdf, est model.Estimate) {
	left := marginLeft + sectionWidth + 8
	panelWidth := (pageWidth - marginRight - left - 8) / 3

	for i, panel := range specPanels(est) {
		x := left + float64(i)*(panelWidth+4)
		y := lowerTop - 6

		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetXY(x, y)
		pdf.CellFormat(panelWidth, 5, panel.title, "", 0, "L", false, 0, "")
		y += 6

		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(0.3)
		pdf.Line(x, y, x+panelWidth, y)
		y += 1

		for j, item := range panel.items {
			if j%2 == 0 {
				pdf.SetFillColor(245, 245, 245)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetXY(x, y)
			pdf.CellFormat(panelWidth*0.55, 5.5, item.label, "", 0, "L", true, 0, "")
			pdf.SetFont("Helvetica", "B", 8)
			pdf.CellFormat(panelWidth*0.45, 5.5, item.value, "", 0, "R", true, 0, "")
			y += 5.5
		}
	}
}

func renderFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4, "Generated by CorruCalc - Corrugated Sheet Profile Calculator", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// renderBendSchedule lists every bend in a table, continuing on new pages.
func renderBendSchedule(pdf *fpdf.Fpdf, steps []model.BendStep) {
	colWidths := []float64{25, 25, 50, 40, 40}
	headers := []string{"Bend", "Module", "Position (mm)", "Angle", "Direction"}

	var y float64
	newPage := func() {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetXY(marginLeft, marginTop)
		pdf.CellFormat(contentWidth, headerHeight, "Bend Schedule", "", 0, "L", false, 0, "")
		y = marginTop + headerHeight + 3

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		x := marginLeft
		for i, h := range headers {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
			x += colWidths[i]
		}
		y += 6
		pdf.SetFont("Helvetica", "", 9)
	}

	newPage()
	for i, s := range steps {
		if y+6 > pageHeight-marginBottom-6 {
			renderFooter(pdf)
			newPage()
		}
		row := []string{
			fmt.Sprintf("%d", s.Sequence),
			fmt.Sprintf("%d", s.Module),
			fmt.Sprintf("%.2f", s.Position),
			fmt.Sprintf("%.1f\xb0", s.Angle),
			string(s.Direction),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x := marginLeft
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += 6
	}
	renderFooter(pdf)
}
