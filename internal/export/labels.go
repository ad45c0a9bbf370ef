package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/CorruCalc/internal/model"
)

// Job is a labelled estimate, typically one row of a batch import.
type Job struct {
	Label    string         `json:"label"`
	Estimate model.Estimate `json:"estimate"`
}

// LabelInfo holds the data encoded into each job tag's QR code.
type LabelInfo struct {
	JobLabel    string  `json:"label"`
	FlatWidth   float64 `json:"a_mm"`
	PeakHeight  float64 `json:"d_mm"`
	FoldAngle   float64 `json:"angle_deg"`
	TotalLength float64 `json:"total_mm"`
	Modules     int     `json:"modules"`
	Bends       int     `json:"bends"`
	TotalCost   float64 `json:"cost"`
	Failed      bool    `json:"failed"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectLabelInfos extracts the tag data of each job.
func CollectLabelInfos(jobs []Job) []LabelInfo {
	labels := make([]LabelInfo, 0, len(jobs))
	for _, j := range jobs {
		est := j.Estimate
		labels = append(labels, LabelInfo{
			JobLabel:    j.Label,
			FlatWidth:   est.Params.FlatWidth,
			PeakHeight:  est.Params.PeakHeight,
			FoldAngle:   est.Params.FoldAngle,
			TotalLength: est.Params.TotalLength,
			Modules:     est.Profile.ModuleCount,
			Bends:       est.Cost.TotalBends,
			TotalCost:   est.Cost.TotalCost,
			Failed:      est.DesignFailed,
		})
	}
	return labels
}

// ExportLabels generates a PDF of QR-coded tags, one per job, to stick on
// the formed sheets. Tags are laid out on a standard label sheet format
// (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, jobs []Job) error {
	labels := CollectLabelInfos(jobs)
	if len(labels) == 0 {
		return fmt.Errorf("no jobs to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.JobLabel, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single tag at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, index int, info LabelInfo) error {
	// Light border as cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	imgName := fmt.Sprintf("qr_job_%d", index)
	if err := registerQR(pdf, imgName, info); err != nil {
		return err
	}

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	jobLabel := info.JobLabel
	if pdf.GetStringWidth(jobLabel) > textW {
		for len(jobLabel) > 0 && pdf.GetStringWidth(jobLabel+"...") > textW {
			jobLabel = jobLabel[:len(jobLabel)-1]
		}
		jobLabel += "..."
	}
	pdf.CellFormat(textW, 4.5, jobLabel, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f / %.0f / %.0f\xb0", info.FlatWidth, info.PeakHeight, info.FoldAngle)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	summary := fmt.Sprintf("%d modules, %d bends, %.2f", info.Modules, info.Bends, info.TotalCost)
	pdf.CellFormat(textW, 3, summary, "", 1, "L", false, 0, "")

	if info.Failed {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "B", 6)
		pdf.SetTextColor(200, 0, 0)
		pdf.CellFormat(textW, 3, "DESIGN FAILED", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}
