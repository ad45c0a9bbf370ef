package widgets

import (
	"fmt"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CorruCalc/internal/model"
)

// Profile colors. Failed designs swap the blue line for red on pink.
var (
	colorProfile       = color.NRGBA{R: 33, G: 150, B: 243, A: 255}
	colorProfileFailed = color.NRGBA{R: 211, G: 47, B: 47, A: 255}
	colorBackground    = color.NRGBA{R: 236, G: 244, B: 252, A: 255}
	colorFailedBg      = color.NRGBA{R: 255, G: 205, B: 210, A: 255}
	colorLeftover      = color.NRGBA{R: 255, G: 152, B: 0, A: 255}
	colorBendMarker    = color.NRGBA{R: 76, G: 175, B: 80, A: 230}
	colorSheetEnd      = color.NRGBA{R: 90, G: 90, B: 90, A: 200}
)

const canvasMargin = float32(12)

// ProfileCanvas draws the corrugation centerline of an estimate across the
// sheet, with the leftover slant and the sheet end marked.
type ProfileCanvas struct {
	widget.BaseWidget
	est       model.Estimate
	maxWidth  float32
	maxHeight float32
}

func NewProfileCanvas(est model.Estimate, maxW, maxH float32) *ProfileCanvas {
	pc := &ProfileCanvas{
		est:       est,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

// SetEstimate replaces the drawn estimate and redraws.
func (pc *ProfileCanvas) SetEstimate(est model.Estimate) {
	pc.est = est
	pc.Refresh()
}

func (pc *ProfileCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newProfileCanvasRenderer(pc)
}

// ProfileTransform maps profile millimetres to canvas positions. X and Z are
// scaled independently so shallow corrugations stay visible.
type ProfileTransform struct {
	ScaleX, ScaleZ float32
	Margin         float32
	Height         float32
}

// NewProfileTransform fits extent (mm along the sheet) by peak (mm high)
// into a w x h canvas.
func NewProfileTransform(extent, peak float64, w, h float32) ProfileTransform {
	t := ProfileTransform{Margin: canvasMargin, Height: h}
	if extent > 0 {
		t.ScaleX = (w - 2*canvasMargin) / float32(extent)
	}
	if peak > 0 {
		t.ScaleZ = (h - 2*canvasMargin) / float32(peak)
	}
	return t
}

// Pos converts a profile point, flipping Z so peaks point up.
func (t ProfileTransform) Pos(p model.Point) fyne.Position {
	return fyne.NewPos(t.Margin+float32(p.X)*t.ScaleX, t.Height-t.Margin-float32(p.Z)*t.ScaleZ)
}

type profileCanvasRenderer struct {
	pc      *ProfileCanvas
	objects []fyne.CanvasObject
}

func newProfileCanvasRenderer(pc *ProfileCanvas) *profileCanvasRenderer {
	r := &profileCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

func (r *profileCanvasRenderer) rebuild() {
	r.objects = nil
	est := r.pc.est
	w, h := r.pc.maxWidth, r.pc.maxHeight

	bgColor, lineColor := colorBackground, colorProfile
	if est.DesignFailed {
		bgColor, lineColor = colorFailedBg, colorProfileFailed
	}

	bg := canvas.NewRectangle(bgColor)
	bg.Resize(fyne.NewSize(w, h))
	r.objects = append(r.objects, bg)

	extent := math.Max(est.Params.TotalLength, math.Max(est.Profile.Profile.MaxX(), est.Profile.Leftover.MaxX()))
	t := NewProfileTransform(extent, est.Params.PeakHeight*1.15, w, h)
	if t.ScaleX == 0 || t.ScaleZ == 0 {
		return
	}

	// Sheet end
	end := t.Pos(model.Point{X: est.Params.TotalLength})
	endLine := canvas.NewLine(colorSheetEnd)
	endLine.StrokeWidth = 1
	endLine.Position1 = fyne.NewPos(end.X, canvasMargin/2)
	endLine.Position2 = fyne.NewPos(end.X, h-canvasMargin/2)
	r.objects = append(r.objects, endLine)
	r.drawDashedOverlay(endLine.Position1.X, endLine.Position1.Y, endLine.Position2.X, endLine.Position2.Y, bgColor)

	r.drawPolyline(est.Profile.Profile, t, lineColor, 2)

	if lo := leftoverPath(est.Profile); len(lo) > 1 {
		r.drawPolyline(lo, t, colorLeftover, 2)
		for i := 1; i < len(lo); i++ {
			a, b := t.Pos(lo[i-1]), t.Pos(lo[i])
			r.drawDashedOverlay(a.X, a.Y, b.X, b.Y, bgColor)
		}
	}

	for _, p := range bendVertices(est.Profile.Profile) {
		pos := t.Pos(p)
		marker := canvas.NewCircle(colorBendMarker)
		size := float32(5)
		marker.Resize(fyne.NewSize(size, size))
		marker.Move(fyne.NewPos(pos.X-size/2, pos.Y-size/2))
		r.objects = append(r.objects, marker)
	}

	caption := fmt.Sprintf("%d modules, %.1f mm leftover", est.Profile.ModuleCount, est.Profile.LeftoverLength)
	if est.DesignFailed {
		caption = "DESIGN FAILED: profile exceeds the sheet"
	}
	label := canvas.NewText(caption, lineColor)
	label.TextSize = 10
	label.TextStyle = fyne.TextStyle{Bold: est.DesignFailed}
	label.Move(fyne.NewPos(canvasMargin, 2))
	r.objects = append(r.objects, label)
}

func (r *profileCanvasRenderer) drawPolyline(pl model.Polyline, t ProfileTransform, col color.Color, width float32) {
	for i := 1; i < len(pl); i++ {
		if pl[i-1] == pl[i] {
			continue
		}
		line := canvas.NewLine(col)
		line.StrokeWidth = width
		line.Position1 = t.Pos(pl[i-1])
		line.Position2 = t.Pos(pl[i])
		r.objects = append(r.objects, line)
	}
}

// drawDashedOverlay adds background-colored gaps along a line for a dashed appearance.
func (r *profileCanvasRenderer) drawDashedOverlay(x1, y1, x2, y2 float32, bg color.Color) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 8 {
		return
	}

	dashLen := float32(6)
	gapLen := float32(4)
	nx := dx / length
	ny := dy / length

	cursor := dashLen
	for cursor+gapLen < length {
		gap := canvas.NewLine(bg)
		gap.StrokeWidth = 2.5
		gap.Position1 = fyne.NewPos(x1+nx*cursor, y1+ny*cursor)
		gap.Position2 = fyne.NewPos(x1+nx*(cursor+gapLen), y1+ny*(cursor+gapLen))
		r.objects = append(r.objects, gap)
		cursor += dashLen + gapLen
	}
}

func (r *profileCanvasRenderer) Layout(size fyne.Size)        {}
func (r *profileCanvasRenderer) Refresh()                     { r.rebuild(); canvas.Refresh(r.pc) }
func (r *profileCanvasRenderer) Destroy()                     {}
func (r *profileCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *profileCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.pc.maxWidth, r.pc.maxHeight)
}

// leftoverPath prefixes the leftover points with the point they grow from.
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

// bendVertices returns the points where the profile changes direction.
func bendVertices(pl model.Polyline) model.Polyline {
	var pts model.Polyline
	var prev *model.Point
	for i := 0; i < len(pl); i++ {
		if prev != nil && *prev == pl[i] {
			continue
		}
		cur := pl[i]
		next := -1
		for j := i + 1; j < len(pl); j++ {
			if pl[j] != cur {
				next = j
				break
			}
		}
		if prev != nil && next >= 0 {
			n := pl[next]
			if (cur.Z-prev.Z)*(n.X-cur.X) != (n.Z-cur.Z)*(cur.X-prev.X) {
				pts = append(pts, cur)
			}
		}
		prev = &pl[i]
	}
	return pts
}
