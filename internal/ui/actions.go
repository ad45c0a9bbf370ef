package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CorruCalc/internal/bendprog"
	"github.com/piwi3910/CorruCalc/internal/engine"
	"github.com/piwi3910/CorruCalc/internal/export"
	"github.com/piwi3910/CorruCalc/internal/importer"
	"github.com/piwi3910/CorruCalc/internal/model"
	"github.com/piwi3910/CorruCalc/internal/project"
	"github.com/piwi3910/CorruCalc/internal/ui/widgets"
)

// ─── Exports ───────────────────────────────────────────────

// saveAs asks for a destination and hands the chosen path to write.
func (a *App) saveAs(defaultName string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := write(path); err != nil {
			a.showError(err)
			return
		}
		a.logger.Info("exported", "path", path)
		a.config.AddRecentExport(path)
		if err := a.saveConfig(); err != nil {
			a.logger.Warn("failed to save recent exports", "err", err)
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) exportPDF() {
	a.saveAs("corrugation.pdf", func(path string) error {
		return export.ExportPDF(path, a.est)
	})
}

func (a *App) exportXLSX() {
	a.saveAs("corrugation.xlsx", func(path string) error {
		return export.ExportXLSX(path, a.est)
	})
}

func (a *App) exportDXF() {
	a.saveAs("corrugation.dxf", func(path string) error {
		return export.ExportDXF(path, a.est)
	})
}

func (a *App) exportSTL() {
	a.saveAs("corrugation.stl", func(path string) error {
		return export.ExportSTL(path, a.est, export.DefaultModelOptions())
	})
}

func (a *App) exportChart() {
	a.saveAs("corrugation."+a.config.ChartFormat, func(path string) error {
		return export.ExportChart(path, a.est)
	})
}

func (a *App) exportBendProgram() {
	gen := bendprog.New(a.config.BendProfile)
	code := gen.Generate(a.est)
	a.saveAs("corrugation.bend", func(path string) error {
		return project.ExportBendProgram(path, code)
	})
}

// ─── Imports ───────────────────────────────────────────────

func (a *App) importBatch() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		a.handleImportResult(importer.Import(path, a.params))
	}, a.window)
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}
	for _, w := range result.Warnings {
		a.logger.Warn("import warning", "msg", w)
	}
	if len(result.Items) == 0 {
		return
	}

	jobs := make([]export.Job, 0, len(result.Items))
	for _, item := range result.Items {
		jobs = append(jobs, export.Job{Label: item.Label, Estimate: model.Analyze(item.Params)})
	}
	a.showBatchResults(jobs, len(result.Errors))
}

// showBatchResults lists the estimated jobs and offers the batch exports.
func (a *App) showBatchResults(jobs []export.Job, skipped int) {
	rows := container.NewVBox(
		container.NewGridWithColumns(6,
			widget.NewLabelWithStyle("Label", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("A / D / Angle", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Sheet (mm)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Modules", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Cost", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Status", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		),
		widget.NewSeparator(),
	)

	var total float64
	for _, j := range jobs {
		p := j.Estimate.Params
		status := "OK"
		if j.Estimate.DesignFailed {
			status = "FAILED"
		}
		total += j.Estimate.Cost.TotalCost
		rows.Add(container.NewGridWithColumns(6,
			widget.NewLabel(j.Label),
			widget.NewLabel(fmt.Sprintf("%.0f / %.0f / %.0f°", p.FlatWidth, p.PeakHeight, p.FoldAngle)),
			widget.NewLabel(fmt.Sprintf("%.0f", p.TotalLength)),
			widget.NewLabel(fmt.Sprintf("%d", j.Estimate.Profile.ModuleCount)),
			widget.NewLabel(money(a.config.CurrencySymbol, j.Estimate.Cost.TotalCost)),
			widget.NewLabel(status),
		))
	}

	footer := fmt.Sprintf("%d jobs, total %s", len(jobs), money(a.config.CurrencySymbol, total))
	if skipped > 0 {
		footer += fmt.Sprintf(" (%d rows skipped)", skipped)
	}

	labelsBtn := widget.NewButton("Save Job Labels...", func() {
		a.saveAs("job-labels.pdf", func(path string) error {
			return export.ExportLabels(path, jobs)
		})
	})
	workbookBtn := widget.NewButton("Save Batch Workbook...", func() {
		a.saveAs("batch.xlsx", func(path string) error {
			return export.ExportBatchXLSX(path, jobs)
		})
	})

	content := container.NewBorder(nil,
		container.NewHBox(widget.NewLabel(footer), layout.NewSpacer(), labelsBtn, workbookBtn),
		nil, nil,
		container.NewVScroll(rows),
	)
	d := dialog.NewCustom("Batch Import", "Close", content, a.window)
	d.Resize(fyne.NewSize(800, 500))
	d.Show()
}

func (a *App) inspectDXF() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		imp := importer.ImportDXFProfile(path)
		if len(imp.Errors) > 0 {
			dialog.ShowError(fmt.Errorf("%s", strings.Join(imp.Errors, "\n")), a.window)
			return
		}
		m := imp.Measure()
		msg := fmt.Sprintf("Developed length: %.2f mm\nSpan: %.2f mm\nPeak height: %.2f mm\nBends: %d\nLeftover points: %d",
			m.DevelopedLength, m.Span, m.PeakHeight, m.Bends, len(imp.Leftover))
		if len(imp.Warnings) > 0 {
			msg += "\n\n" + strings.Join(imp.Warnings, "\n")
		}
		dialog.ShowInformation("DXF Profile", msg, a.window)
	}, a.window)
}

// ─── Tools ─────────────────────────────────────────────────

func (a *App) showCompareDialog() {
	results := engine.CompareScenarios(engine.BuildDefaultScenarios(a.params))
	best, hasBest := engine.BestScenario(results)

	rows := container.NewVBox(
		container.NewGridWithColumns(6,
			widget.NewLabelWithStyle("Scenario", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Modules", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Efficiency", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Leftover", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Cost", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabel(""),
		),
		widget.NewSeparator(),
	)

	var d dialog.Dialog
	for _, r := range results {
		r := r
		name := r.Scenario.Name
		if hasBest && name == best.Scenario.Name {
			name += " (best)"
		}
		if r.Failed {
			name += " - failed"
		}
		rows.Add(container.NewGridWithColumns(6,
			widget.NewLabel(name),
			widget.NewLabel(fmt.Sprintf("%d", r.ModuleCount)),
			widget.NewLabel(fmt.Sprintf("%.1f%%", r.Efficiency)),
			widget.NewLabel(fmt.Sprintf("%.2f mm", r.LeftoverLength)),
			widget.NewLabel(money(a.config.CurrencySymbol, r.TotalCost)),
			widget.NewButton("Apply", func() {
				a.applyParams(r.Scenario.Params, r.Scenario.Name)
				d.Hide()
			}),
		))
	}

	d = dialog.NewCustom("Compare Scenarios", "Close", container.NewVScroll(rows), a.window)
	d.Resize(fyne.NewSize(800, 420))
	d.Show()
}

func (a *App) runTuneFit() {
	base := a.params
	progress := dialog.NewCustomWithoutButtons("Tuning Fit",
		container.NewVBox(widget.NewLabel("Searching flat width and fold angle..."), widget.NewProgressBarInfinite()),
		a.window)
	progress.Show()

	go func() {
		res := engine.TuneFit(base, engine.DefaultTuneBounds(), engine.DefaultTuneConfig())
		fyne.Do(func() {
			progress.Hide()
			a.showTuneResult(res)
		})
	}()
}

func (a *App) showTuneResult(res engine.TuneResult) {
	if !res.Improved {
		dialog.ShowInformation("Tune Fit", "The current layout already leaves the least material.", a.window)
		return
	}
	bp := res.Best.Params
	msg := fmt.Sprintf("Flat width %.2f mm, fold angle %.2f°\nLeftover %.2f mm (was %.2f mm)\nCost %s (was %s)\n\nApply these settings?",
		bp.FlatWidth, bp.FoldAngle,
		res.Best.Profile.LeftoverLength, res.Base.Profile.LeftoverLength,
		money(a.config.CurrencySymbol, res.Best.Cost.TotalCost), money(a.config.CurrencySymbol, res.Base.Cost.TotalCost))
	dialog.ShowConfirm("Tune Fit", msg, func(ok bool) {
		if ok {
			a.applyParams(bp, "Tune Fit")
		}
	}, a.window)
}

func (a *App) showBendPreview() {
	gen := bendprog.New(a.config.BendProfile)
	code := gen.Generate(a.est)

	source := widget.NewMultiLineEntry()
	source.SetText(code)
	source.TextStyle = fyne.TextStyle{Monospace: true}

	preview := widgets.RenderBendPreview(code, gen.Profile(), a.params.TotalLength, gen.MinFlange)

	saveBtn := widget.NewButton("Save Program...", a.exportBendProgram)
	content := container.NewBorder(
		preview,
		container.NewHBox(widget.NewLabel("Post-processor: "+gen.Profile().Name), layout.NewSpacer(), saveBtn),
		nil, nil,
		source,
	)

	w := fyne.CurrentApp().NewWindow("Bend Program Preview")
	w.SetContent(content)
	w.Resize(fyne.NewSize(760, 620))
	w.Show()
}
