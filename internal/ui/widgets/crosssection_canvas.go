package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CorruCalc/internal/model"
)

var (
	colorSection     = color.NRGBA{R: 55, G: 71, B: 79, A: 255}
	colorBendBadge   = color.NRGBA{R: 230, G: 81, B: 0, A: 255}
	colorBadgeText   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colorSectionBg   = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colorDimensionTx = color.NRGBA{R: 97, G: 97, B: 97, A: 255}
)

// CrossSectionCanvas draws a single module with its three bends numbered in
// forming order.
type CrossSectionCanvas struct {
	widget.BaseWidget
	view      model.CrossSectionView
	peak      float64
	maxWidth  float32
	maxHeight float32
}

func NewCrossSectionCanvas(view model.CrossSectionView, peak float64, maxW, maxH float32) *CrossSectionCanvas {
	cc := &CrossSectionCanvas{view: view, peak: peak, maxWidth: maxW, maxHeight: maxH}
	cc.ExtendBaseWidget(cc)
	return cc
}

// SetView replaces the drawn cross-section and redraws.
func (cc *CrossSectionCanvas) SetView(view model.CrossSectionView, peak float64) {
	cc.view = view
	cc.peak = peak
	cc.Refresh()
}

func (cc *CrossSectionCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &crossSectionRenderer{cc: cc}
	r.rebuild()
	return r
}

type crossSectionRenderer struct {
	cc      *CrossSectionCanvas
	objects []fyne.CanvasObject
}

func (r *crossSectionRenderer) rebuild() {
	r.objects = nil
	cc := r.cc

	bg := canvas.NewRectangle(colorSectionBg)
	bg.Resize(fyne.NewSize(cc.maxWidth, cc.maxHeight))
	r.objects = append(r.objects, bg)

	// Leave headroom for the badges above the peak.
	t := NewProfileTransform(cc.view.Outline.MaxX(), cc.peak*1.4, cc.maxWidth, cc.maxHeight)
	if t.ScaleX == 0 || t.ScaleZ == 0 {
		return
	}

	out := cc.view.Outline
	for i := 1; i < len(out); i++ {
		line := canvas.NewLine(colorSection)
		line.StrokeWidth = 3
		line.Position1 = t.Pos(out[i-1])
		line.Position2 = t.Pos(out[i])
		r.objects = append(r.objects, line)
	}

	badge := float32(16)
	for i, p := range cc.view.BendPoints {
		pos := t.Pos(p)
		circle := canvas.NewCircle(colorBendBadge)
		circle.Resize(fyne.NewSize(badge, badge))
		circle.Move(fyne.NewPos(pos.X-badge/2, pos.Y-badge-4))
		r.objects = append(r.objects, circle)

		num := canvas.NewText(fmt.Sprintf("%d", i+1), colorBadgeText)
		num.TextSize = 10
		num.TextStyle = fyne.TextStyle{Bold: true}
		num.Alignment = fyne.TextAlignCenter
		num.Resize(fyne.NewSize(badge, badge))
		num.Move(fyne.NewPos(pos.X-badge/2, pos.Y-badge-4))
		r.objects = append(r.objects, num)
	}

	dim := canvas.NewText(fmt.Sprintf("Peak to peak %.1f mm", cc.view.PeakToPeak), colorDimensionTx)
	dim.TextSize = 10
	dim.Move(fyne.NewPos(canvasMargin, cc.maxHeight-canvasMargin))
	r.objects = append(r.objects, dim)
}

func (r *crossSectionRenderer) Layout(size fyne.Size)        {}
func (r *crossSectionRenderer) Refresh()                     { r.rebuild(); canvas.Refresh(r.cc) }
func (r *crossSectionRenderer) Destroy()                     {}
func (r *crossSectionRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *crossSectionRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.cc.maxWidth, r.cc.maxHeight)
}
