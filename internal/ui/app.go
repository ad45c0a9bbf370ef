package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CorruCalc/internal/model"
	"github.com/piwi3910/CorruCalc/internal/project"
	"github.com/piwi3910/CorruCalc/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	window  fyne.Window
	config  model.AppConfig
	presets model.PresetStore
	history *History
	logger  *slog.Logger

	params model.Params
	est    model.Estimate

	// UI references for dynamic updates
	sliders       []*widget.Slider
	valueLabels   []*widget.Label
	profileCanvas *widgets.ProfileCanvas
	sectionCanvas *widgets.CrossSectionCanvas
	costLabel     *widget.Label
	warning       *widget.Label
	specContainer *fyne.Container
	presetSelect  *widget.Select
	undoItem      *fyne.MenuItem
	redoItem      *fyne.MenuItem

	syncing   bool          // Sliders are being set from params, not by the user
	dragStart *model.Params // Params before the current slider drag
}

func NewApp(window fyne.Window, config model.AppConfig, presets model.PresetStore, logger *slog.Logger) *App {
	a := &App{
		window:  window,
		config:  config,
		presets: presets,
		history: NewHistory(),
		logger:  logger,
		params:  config.Params(),
	}
	if a.params.Validate() != nil {
		a.params = model.DefaultParams()
	}
	a.est = model.Analyze(a.params)
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Export PDF Report...", a.exportPDF),
		fyne.NewMenuItem("Export Excel Workbook...", a.exportXLSX),
		fyne.NewMenuItem("Export DXF Profile...", a.exportDXF),
		fyne.NewMenuItem("Export 3D Model (STL)...", a.exportSTL),
		fyne.NewMenuItem("Export Chart...", a.exportChart),
		fyne.NewMenuItem("Export Bend Program...", a.exportBendProgram),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Batch Import (CSV / Excel)...", a.importBatch),
		fyne.NewMenuItem("Inspect DXF Profile...", a.inspectDXF),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import / Export Data...", a.showImportExportDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	a.undoItem = fyne.NewMenuItem("Undo", a.undo)
	a.undoItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	a.redoItem = fyne.NewMenuItem("Redo", a.redo)
	a.redoItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}
	a.refreshUndoRedo()

	editMenu := fyne.NewMenu("Edit",
		a.undoItem,
		a.redoItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset to Defaults", func() {
			a.applyParams(a.config.Params(), "Reset")
		}),
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Compare Scenarios...", a.showCompareDialog),
		fyne.NewMenuItem("Tune Fit...", a.runTuneFit),
		fyne.NewMenuItem("Bend Program Preview...", a.showBendPreview),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Manage Presets...", a.showPresetManager),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))

	for _, item := range []*fyne.MenuItem{a.undoItem, a.redoItem} {
		action := item.Action
		a.window.Canvas().AddShortcut(item.Shortcut, func(fyne.Shortcut) { action() })
	}
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About CorruCalc",
		"CorruCalc - Corrugated Sheet Calculator\n\n"+
			"Fits a trapezoidal corrugation profile onto a flat sheet\n"+
			"and estimates the press brake bending cost.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.profileCanvas = widgets.NewProfileCanvas(a.est, 760, 220)
	a.sectionCanvas = widgets.NewCrossSectionCanvas(a.crossSection(), a.params.PeakHeight, 360, 180)

	a.costLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	a.warning = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	a.warning.Importance = widget.DangerImportance
	a.specContainer = container.NewGridWithColumns(3)

	main := container.NewVBox(
		widget.NewCard("Profile", "", a.profileCanvas),
		container.NewHBox(
			widget.NewCard("Cross Section", "", a.sectionCanvas),
			container.NewVBox(a.costLabel, a.warning),
		),
		a.specContainer,
	)

	split := container.NewHSplit(a.buildControls(), container.NewVScroll(main))
	split.Offset = 0.28

	a.refresh()
	return split
}

// ─── Controls ───────────────────────────────────────────────

func (a *App) buildControls() fyne.CanvasObject {
	a.presetSelect = widget.NewSelect(a.presets.Names(), func(name string) {
		if a.syncing || name == "" {
			return
		}
		a.applyParams(a.presets.Lookup(name).Params, "Preset "+name)
	})
	a.presetSelect.PlaceHolder = "Select a preset..."

	form := container.NewVBox(
		widget.NewLabelWithStyle("Preset", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.presetSelect,
		widget.NewSeparator(),
	)

	specs := paramSliders()
	a.sliders = make([]*widget.Slider, len(specs))
	a.valueLabels = make([]*widget.Label, len(specs))
	for i, spec := range specs {
		spec := spec
		value := widget.NewLabel(spec.format(*spec.field(&a.params)))
		s := widget.NewSlider(spec.Min, spec.Max)
		s.Step = spec.Step
		s.SetValue(*spec.field(&a.params))
		s.OnChanged = func(v float64) {
			if a.syncing {
				return
			}
			if a.dragStart == nil {
				start := a.params
				a.dragStart = &start
			}
			*spec.field(&a.params) = v
			value.SetText(spec.format(v))
			a.recalculate()
		}
		s.OnChangeEnded = func(float64) {
			if a.dragStart != nil && *a.dragStart != a.params {
				a.history.Record(*a.dragStart, spec.Label)
				a.refreshUndoRedo()
			}
			a.dragStart = nil
		}
		a.sliders[i] = s
		a.valueLabels[i] = value

		form.Add(container.NewBorder(nil, nil, widget.NewLabel(spec.Label), value))
		form.Add(s)
	}

	form.Add(layout.NewSpacer())
	form.Add(container.NewGridWithColumns(2,
		widget.NewButtonWithIcon("Undo", theme.ContentUndoIcon(), a.undo),
		widget.NewButtonWithIcon("Redo", theme.ContentRedoIcon(), a.redo),
	))
	return container.NewVScroll(form)
}

// applyParams replaces the inputs as one undoable step.
func (a *App) applyParams(p model.Params, label string) {
	if p == a.params {
		return
	}
	a.history.Record(a.params, label)
	a.params = p
	a.syncControls()
	a.recalculate()
	a.refreshUndoRedo()
}

func (a *App) undo() {
	s, ok := a.history.Undo(a.params)
	if !ok {
		return
	}
	a.params = s.Params
	a.syncControls()
	a.recalculate()
	a.refreshUndoRedo()
}

func (a *App) redo() {
	s, ok := a.history.Redo(a.params)
	if !ok {
		return
	}
	a.params = s.Params
	a.syncControls()
	a.recalculate()
	a.refreshUndoRedo()
}

// syncControls moves the sliders to the current params without recording history.
func (a *App) syncControls() {
	a.syncing = true
	defer func() { a.syncing = false }()
	for i, spec := range paramSliders() {
		v := *spec.field(&a.params)
		a.sliders[i].SetValue(v)
		a.valueLabels[i].SetText(spec.format(v))
	}
}

func (a *App) refreshUndoRedo() {
	if a.undoItem == nil {
		return
	}
	a.undoItem.Disabled = !a.history.CanUndo()
	a.undoItem.Label = menuLabel("Undo", a.history.UndoLabel())
	a.redoItem.Disabled = !a.history.CanRedo()
	a.redoItem.Label = menuLabel("Redo", a.history.RedoLabel())
	if menu := a.window.MainMenu(); menu != nil {
		menu.Refresh()
	}
}

// menuLabel appends the name of the pending change, e.g. "Undo Fold Angle".
func menuLabel(verb, change string) string {
	if change == "" {
		return verb
	}
	return verb + " " + change
}

// ─── Results ───────────────────────────────────────────────

func (a *App) recalculate() {
	a.est = model.Analyze(a.params)
	a.refresh()
}

func (a *App) crossSection() model.CrossSectionView {
	return model.CrossSection(a.params.FlatWidth, a.params.PeakHeight, a.est.Profile.HorizontalRun)
}

func (a *App) refresh() {
	a.profileCanvas.SetEstimate(a.est)
	a.sectionCanvas.SetView(a.crossSection(), a.params.PeakHeight)
	a.costLabel.SetText(costSummary(a.est, a.config.CurrencySymbol))

	if a.est.DesignFailed {
		a.warning.SetText(failureWarning(a.est))
		a.warning.Show()
	} else {
		a.warning.Hide()
	}

	a.specContainer.RemoveAll()
	for _, card := range specCards(a.est, a.config.CurrencySymbol) {
		grid := container.NewGridWithColumns(2)
		for _, row := range card.rows {
			grid.Add(widget.NewLabel(row[0]))
			grid.Add(widget.NewLabelWithStyle(row[1], fyne.TextAlignTrailing, fyne.TextStyle{}))
		}
		a.specContainer.Add(widget.NewCard(card.title, "", grid))
	}
	a.specContainer.Refresh()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}

// savePresets persists the user presets to disk.
func (a *App) savePresets() error {
	return project.SaveCustomPresets(project.DefaultPresetsPath(), a.presets)
}

func (a *App) showError(err error) {
	a.logger.Error("operation failed", "err", err)
	dialog.ShowError(err, a.window)
}
