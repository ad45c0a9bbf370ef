// CorruCalc desktop application.
//
// Adjust flat width, peak height, fold angle, sheet length and bend price
// with sliders and watch the corrugation profile and cost update live.
//
// Build:
//   go build -o corrucalc-gui ./cmd/corrucalc-gui
//
// Using fyne-cross for packaged builds:
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/CorruCalc/internal/model"
	"github.com/piwi3910/CorruCalc/internal/project"
	"github.com/piwi3910/CorruCalc/internal/ui"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		logger.Error("failed to load settings, using defaults", "err", err)
		cfg = model.DefaultAppConfig()
	}
	presets, err := project.LoadCustomPresets(project.DefaultPresetsPath())
	if err != nil {
		logger.Error("failed to load presets", "err", err)
		presets = model.NewPresetStore()
	}

	application := app.NewWithID("com.piwi3910.corrucalc")
	application.Settings().SetTheme(ui.ThemeForName(cfg.Theme))
	window := application.NewWindow("CorruCalc - Corrugated Sheet Calculator")

	appUI := ui.NewApp(window, cfg, presets, logger)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1200, 760))
	window.CenterOnScreen()
	window.ShowAndRun()
}
