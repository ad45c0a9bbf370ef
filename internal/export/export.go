// Package export writes corrugation estimates to PDF reports, QR-coded job
// labels, Excel workbooks, DXF drawings, STL sheet models and chart images.
package export

import (
	"errors"

	"github.com/piwi3910/CorruCalc/internal/model"
)

// ErrNothingToExport is returned when an estimate has neither profile nor leftover geometry.
var ErrNothingToExport = errors.New("nothing to export")

// rgb is an 8-bit color shared by the PDF and chart renderers.
type rgb struct {
	R, G, B int
}

// palette is the set of colors an estimate is drawn with.
type palette struct {
	line     rgb
	fill     rgb
	leftover rgb
	accent   rgb
}

// Normal designs are drawn in blue, failed designs in red.
var (
	normalPalette = palette{
		line:     rgb{R: 33, G: 150, B: 243},
		fill:     rgb{R: 187, G: 222, B: 251},
		leftover: rgb{R: 255, G: 152, B: 0},
		accent:   rgb{R: 76, G: 175, B: 80},
	}
	failedPalette = palette{
		line:     rgb{R: 211, G: 47, B: 47},
		fill:     rgb{R: 255, G: 205, B: 210},
		leftover: rgb{R: 255, G: 152, B: 0},
		accent:   rgb{R: 183, G: 28, B: 28},
	}
)

func paletteFor(est model.Estimate) palette {
	if est.DesignFailed {
		return failedPalette
	}
	return normalPalette
}

func checkExportable(est model.Estimate) error {
	if len(est.Profile.Profile) == 0 && len(est.Profile.Leftover) == 0 {
		return ErrNothingToExport
	}
	return nil
}

// leftoverPath prefixes the leftover points with the point they grow from, so
// the partial slant can be drawn as connected segments.
func leftoverPath(res model.ProfileResult) model.Polyline {
	if len(res.Leftover) == 0 {
		return nil
	}
	start := model.Point{}
	if n := len(res.Profile); n > 0 {
		start = res.Profile[n-1]
	}
	return append(model.Polyline{start}, res.Leftover...)
}

// drawingExtent returns the largest X reached by the profile or leftover.
func drawingExtent(est model.Estimate) float64 {
	maxX := est.Profile.Profile.MaxX()
	if lx := est.Profile.Leftover.MaxX(); lx > maxX {
		maxX = lx
	}
	if maxX <= 0 {
		maxX = est.Params.TotalLength
	}
	return maxX
}
