package export

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/piwi3910/CorruCalc/internal/model"
)

// Chart size.
const (
	chartWidth  = 12 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// ChartFormats are the image formats ExportChart and WriteChart accept.
var ChartFormats = []string{"png", "svg", "pdf"}

// ExportChart renders the profile of est as a line chart. The format is taken
// from the file extension.
func ExportChart(path string, est model.Estimate) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !supportedChartFormat(format) {
		return fmt.Errorf("unsupported chart format %q", format)
	}
	p, err := buildChart(est)
	if err != nil {
		return err
	}
	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}
	return nil
}

// WriteChart renders the chart in the given format to w.
func WriteChart(w io.Writer, est model.Estimate, format string) error {
	format = strings.ToLower(format)
	if !supportedChartFormat(format) {
		return fmt.Errorf("unsupported chart format %q", format)
	}
	p, err := buildChart(est)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(chartWidth, chartHeight, format)
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

func supportedChartFormat(format string) bool {
	for _, f := range ChartFormats {
		if f == format {
			return true
		}
	}
	return false
}

func toXYs(pl model.Polyline) plotter.XYs {
	xys := make(plotter.XYs, len(pl))
	for i, pt := range pl {
		xys[i].X = pt.X
		xys[i].Y = pt.Z
	}
	return xys
}

func toColor(c rgb, alpha uint8) color.Color {
	return color.NRGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: alpha}
}

func buildChart(est model.Estimate) (*plot.Plot, error) {
	if err := checkExportable(est); err != nil {
		return nil, err
	}
	pal := paletteFor(est)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%d modules, %d bends, cost %.2f", est.Profile.ModuleCount, est.Cost.TotalBends, est.Cost.TotalCost)
	if est.DesignFailed {
		p.Title.Text = "DESIGN FAILED: " + p.Title.Text
	}
	p.X.Label.Text = "Length (mm)"
	p.Y.Label.Text = "Height (mm)"
	p.X.Min = 0
	p.X.Max = drawingExtent(est)
	p.Y.Min = 0
	p.Y.Max = est.Params.PeakHeight * 1.2
	p.Add(plotter.NewGrid())

	if len(est.Profile.Profile) > 0 {
		line, err := plotter.NewLine(toXYs(est.Profile.Profile))
		if err != nil {
			return nil, fmt.Errorf("failed to plot profile: %w", err)
		}
		line.Color = toColor(pal.line, 255)
		line.Width = vg.Points(1.5)
		line.FillColor = toColor(pal.fill, 160)
		p.Add(line)
		p.Legend.Add("Profile", line)

		steps := model.BendSchedule(est.Profile, est.Params.FlatWidth, est.Params.FoldAngle)
		if len(steps) > 0 {
			bends, err := plotter.NewScatter(toXYs(bendPoints(est.Profile.Profile)))
			if err != nil {
				return nil, fmt.Errorf("failed to plot bends: %w", err)
			}
			bends.GlyphStyle.Color = toColor(pal.accent, 255)
			bends.GlyphStyle.Shape = draw.CircleGlyph{}
			bends.GlyphStyle.Radius = vg.Points(2)
			p.Add(bends)
			p.Legend.Add(fmt.Sprintf("Bends (%d)", len(steps)), bends)
		}
	}

	if lo := leftoverPath(est.Profile); len(lo) > 1 {
		line, err := plotter.NewLine(toXYs(lo))
		if err != nil {
			return nil, fmt.Errorf("failed to plot leftover: %w", err)
		}
		line.Color = toColor(pal.leftover, 255)
		line.Width = vg.Points(1.5)
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(line)
		p.Legend.Add("Leftover", line)
	}

	p.Legend.Top = true
	return p, nil
}

// bendPoints returns the interior profile points where the line changes
// direction. Repeated points at module boundaries are collapsed first.
func bendPoints(pl model.Polyline) model.Polyline {
	dedup := make(model.Polyline, 0, len(pl))
	for _, pt := range pl {
		if n := len(dedup); n > 0 && dedup[n-1] == pt {
			continue
		}
		dedup = append(dedup, pt)
	}

	var pts model.Polyline
	for i := 1; i+1 < len(dedup); i++ {
		prev, cur, next := dedup[i-1], dedup[i], dedup[i+1]
		if (cur.Z-prev.Z)*(next.X-cur.X) != (next.Z-cur.Z)*(cur.X-prev.X) {
			pts = append(pts, cur)
		}
	}
	return pts
}
