package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CorruCalc/internal/bendprog"
	"github.com/piwi3910/CorruCalc/internal/model"
)

// Fold line colors by direction.
var (
	colorFoldUp   = color.NRGBA{R: 50, G: 200, B: 50, A: 230}
	colorFoldDown = color.NRGBA{R: 255, G: 60, B: 60, A: 220}
	colorBlank    = color.NRGBA{R: 207, G: 216, B: 220, A: 255}
	colorConflict = color.NRGBA{R: 255, G: 165, B: 0, A: 220}
)

const blankHeight = float32(60)

// BendPreview renders the flat blank with one fold line per bend of a
// parsed bend program. Bends that fail the flange clearance check are
// flagged underneath their fold line.
type BendPreview struct {
	widget.BaseWidget
	steps       []model.BendStep
	sheetLength float64
	conflicts   map[int]bool
	maxWidth    float32
	maxHeight   float32
}

func NewBendPreview(steps []model.BendStep, sheetLength, minFlange float64, maxW, maxH float32) *BendPreview {
	bp := &BendPreview{
		steps:       steps,
		sheetLength: sheetLength,
		conflicts:   make(map[int]bool),
		maxWidth:    maxW,
		maxHeight:   maxH,
	}
	for _, c := range bendprog.CheckFlangeClearance(steps, sheetLength, minFlange) {
		bp.conflicts[c.Sequence] = true
	}
	bp.ExtendBaseWidget(bp)
	return bp
}

func (bp *BendPreview) CreateRenderer() fyne.WidgetRenderer {
	r := &bendPreviewRenderer{bp: bp}
	r.rebuild()
	return r
}

// foldColor picks the fold line color for a bend direction.
func foldColor(dir model.BendDirection) color.Color {
	if dir == model.BendDown {
		return colorFoldDown
	}
	return colorFoldUp
}

type bendPreviewRenderer struct {
	bp      *BendPreview
	objects []fyne.CanvasObject
}

func (r *bendPreviewRenderer) rebuild() {
	r.objects = nil
	bp := r.bp
	if bp.sheetLength <= 0 {
		return
	}

	scale := (bp.maxWidth - 2*canvasMargin) / float32(bp.sheetLength)
	top := (bp.maxHeight - blankHeight) / 2

	blank := canvas.NewRectangle(colorBlank)
	blank.StrokeColor = color.NRGBA{R: 80, G: 80, B: 80, A: 255}
	blank.StrokeWidth = 1.5
	blank.Resize(fyne.NewSize(float32(bp.sheetLength)*scale, blankHeight))
	blank.Move(fyne.NewPos(canvasMargin, top))
	r.objects = append(r.objects, blank)

	labelEvery := 1
	if n := len(bp.steps); n > 0 {
		// Keep sequence labels at least ~24px apart.
		if spacing := float32(bp.sheetLength) * scale / float32(n); spacing < 24 {
			labelEvery = int(24/spacing) + 1
		}
	}

	for i, s := range bp.steps {
		x := canvasMargin + float32(s.Position)*scale
		line := canvas.NewLine(foldColor(s.Direction))
		line.StrokeWidth = 2
		line.Position1 = fyne.NewPos(x, top)
		line.Position2 = fyne.NewPos(x, top+blankHeight)
		r.objects = append(r.objects, line)

		if bp.conflicts[s.Sequence] {
			mark := canvas.NewRectangle(colorConflict)
			mark.Resize(fyne.NewSize(6, 6))
			mark.Move(fyne.NewPos(x-3, top+blankHeight+3))
			r.objects = append(r.objects, mark)
		}

		if i%labelEvery == 0 {
			num := canvas.NewText(fmt.Sprintf("%d", s.Sequence), colorDimensionTx)
			num.TextSize = 9
			num.Move(fyne.NewPos(x+2, top-14))
			r.objects = append(r.objects, num)
		}
	}
}

func (r *bendPreviewRenderer) Layout(size fyne.Size)        {}
func (r *bendPreviewRenderer) Refresh()                     { r.rebuild(); canvas.Refresh(r.bp) }
func (r *bendPreviewRenderer) Destroy()                     {}
func (r *bendPreviewRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *bendPreviewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.bp.maxWidth, r.bp.maxHeight)
}

// RenderBendPreview parses program text written for profile and returns the
// blank preview with a color legend.
func RenderBendPreview(program string, profile bendprog.Profile, sheetLength, minFlange float64) fyne.CanvasObject {
	steps := bendprog.ParseProgram(program, profile)
	preview := NewBendPreview(steps, sheetLength, minFlange, 700, 160)

	legend := container.NewHBox(
		legendSwatch(colorFoldUp, "Fold up"),
		legendSwatch(colorFoldDown, "Fold down"),
		legendSwatch(colorConflict, fmt.Sprintf("Flange under %.0f mm", minFlange)),
		widget.NewLabel(fmt.Sprintf("%d bends", len(steps))),
	)
	return container.NewBorder(nil, legend, nil, nil, preview)
}

func legendSwatch(c color.Color, text string) fyne.CanvasObject {
	sw := canvas.NewRectangle(c)
	sw.SetMinSize(fyne.NewSize(14, 14))
	return container.NewHBox(container.NewCenter(sw), widget.NewLabel(text))
}
