package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CorruCalc/internal/bendprog"
	"github.com/piwi3910/CorruCalc/internal/export"
	"github.com/piwi3910/CorruCalc/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	// Helper to create a float entry bound to a pointer
	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%.1f", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	selectFor := func(options []string, val *string) *widget.Select {
		s := widget.NewSelect(options, func(selected string) {
			*val = selected
		})
		s.SetSelected(*val)
		return s
	}

	currencyEntry := widget.NewEntry()
	currencyEntry.SetText(cfg.CurrencySymbol)
	currencyEntry.OnChanged = func(text string) { cfg.CurrencySymbol = text }

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", selectFor([]string{"system", "light", "dark"}, &cfg.Theme)),
		widget.NewFormItem("Currency Symbol", currencyEntry),
		widget.NewFormItem("Bend Program Profile", selectFor(bendprog.GetProfileNames(), &cfg.BendProfile)),
		widget.NewFormItem("Chart Format", selectFor(export.ChartFormats, &cfg.ChartFormat)),
		widget.NewFormItem("Log Level", selectFor([]string{"debug", "info", "warn", "error"}, &cfg.LogLevel)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Flat Width (mm)", floatEntry(&cfg.DefaultFlatWidth)),
		widget.NewFormItem("Default Peak Height (mm)", floatEntry(&cfg.DefaultPeakHeight)),
		widget.NewFormItem("Default Fold Angle (°)", floatEntry(&cfg.DefaultFoldAngle)),
		widget.NewFormItem("Default Sheet Length (mm)", floatEntry(&cfg.DefaultTotalLength)),
		widget.NewFormItem("Default Cost per Bend", floatEntry(&cfg.DefaultCostPerBend)),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			if err := cfg.Params().Validate(); err != nil {
				dialog.ShowError(fmt.Errorf("invalid default parameters: %w", err), a.window)
				return
			}
			a.config = cfg
			fyne.CurrentApp().Settings().SetTheme(ThemeForName(cfg.Theme))
			a.refresh()
			if err := a.saveConfig(); err != nil {
				a.showError(fmt.Errorf("failed to save settings: %w", err))
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 550))
	d.Show()
}

// showImportExportDialog displays the import/export data dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()
			if err := project.ExportAllData(path, a.config, a.presets); err != nil {
				a.showError(err)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("corrucalc-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your current settings and presets.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					path := reader.URI().Path()
					reader.Close()
					backup, err := project.ImportAllData(path)
					if err != nil {
						a.showError(err)
						return
					}
					a.config = backup.Config
					a.presets = backup.Presets
					a.presetSelect.SetOptions(a.presets.Names())
					a.refresh()
					if err := a.saveConfig(); err != nil {
						a.showError(fmt.Errorf("failed to save imported settings: %w", err))
						return
					}
					if err := a.savePresets(); err != nil {
						a.showError(fmt.Errorf("failed to save imported presets: %w", err))
						return
					}
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export all application data (settings, presets) to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}
