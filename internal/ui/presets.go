package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CorruCalc/internal/model"
	"github.com/piwi3910/CorruCalc/internal/project"
)

// allPresets lists the built-in presets followed by the user presets.
func allPresets(store model.PresetStore) []model.Preset {
	out := make([]model.Preset, 0, len(model.BuiltInPresets)+len(store.Presets))
	out = append(out, model.BuiltInPresets...)
	return append(out, store.Presets...)
}

// presetFileName suggests a file name for exporting a preset.
func presetFileName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_") + "_preset.json"
}

// showPresetManager opens the preset window where users can apply, create,
// edit, duplicate, delete, import and export parameter presets.
func (a *App) showPresetManager() {
	w := fyne.CurrentApp().NewWindow("Preset Manager")
	w.Resize(fyne.NewSize(700, 480))

	presets := allPresets(a.presets)
	selectedIdx := -1
	detailContainer := container.NewVBox(widget.NewLabel("Select a preset to view details."))

	var listWidget *widget.List
	listWidget = widget.NewList(
		func() int {
			return len(presets)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewIcon(theme.DocumentIcon()),
				widget.NewLabel("Preset Name"),
				layout.NewSpacer(),
				widget.NewLabel("(built-in)"),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			box := obj.(*fyne.Container)
			nameLabel := box.Objects[1].(*widget.Label)
			tagLabel := box.Objects[3].(*widget.Label)
			p := presets[id]
			nameLabel.SetText(p.Name)
			if p.IsBuiltIn {
				tagLabel.SetText("(built-in)")
			} else {
				tagLabel.SetText("(custom)")
			}
		},
	)

	onChanged := func() {
		presets = allPresets(a.presets)
		selectedIdx = -1
		listWidget.UnselectAll()
		listWidget.Refresh()
		detailContainer.RemoveAll()
		detailContainer.Add(widget.NewLabel("Select a preset to view details."))
		detailContainer.Refresh()
		a.presetSelect.SetOptions(a.presets.Names())
		if err := a.savePresets(); err != nil {
			dialog.ShowError(fmt.Errorf("failed to save presets: %w", err), w)
		}
	}

	listWidget.OnSelected = func(id widget.ListItemID) {
		selectedIdx = id
		a.showPresetDetail(detailContainer, presets[id], w, onChanged)
	}

	selected := func(action string) (model.Preset, bool) {
		if selectedIdx < 0 || selectedIdx >= len(presets) {
			dialog.ShowInformation("No Selection", "Select a preset to "+action+".", w)
			return model.Preset{}, false
		}
		return presets[selectedIdx], true
	}

	newBtn := widget.NewButtonWithIcon("Save Current", theme.ContentAddIcon(), func() {
		a.showPresetForm(model.NewPreset("", "", a.params), "Save Current Settings", w, onChanged)
	})

	duplicateBtn := widget.NewButtonWithIcon("Duplicate", theme.ContentCopyIcon(), func() {
		p, ok := selected("duplicate")
		if !ok {
			return
		}
		dup := model.NewPreset(p.Name+" (Copy)", "Copy of "+p.Name, p.Params)
		a.showPresetForm(dup, "Duplicate Preset", w, onChanged)
	})

	importBtn := widget.NewButtonWithIcon("Import", theme.FolderOpenIcon(), func() {
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			path := reader.URI().Path()
			reader.Close()

			preset, err := project.ImportPreset(path)
			if err != nil {
				dialog.ShowError(fmt.Errorf("failed to import preset: %w", err), w)
				return
			}
			if a.presets.FindByName(preset.Name) != nil {
				dialog.ShowError(fmt.Errorf("a preset named %q already exists", preset.Name), w)
				return
			}
			a.presets.Add(preset)
			onChanged()
			dialog.ShowInformation("Import Complete",
				fmt.Sprintf("Preset %q imported successfully.", preset.Name), w)
		}, w)
	})

	exportBtn := widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), func() {
		p, ok := selected("export")
		if !ok {
			return
		}
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()
			if err := project.ExportPreset(path, p); err != nil {
				dialog.ShowError(fmt.Errorf("failed to export preset: %w", err), w)
				return
			}
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Preset %q exported successfully.", p.Name), w)
		}, w)
		d.SetFileName(presetFileName(p.Name))
		d.Show()
	})

	deleteBtn := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		p, ok := selected("delete")
		if !ok {
			return
		}
		if p.IsBuiltIn {
			dialog.ShowInformation("Cannot Delete", "Built-in presets cannot be deleted.", w)
			return
		}
		dialog.ShowConfirm("Delete Preset",
			fmt.Sprintf("Delete custom preset %q?", p.Name),
			func(ok bool) {
				if !ok {
					return
				}
				a.presets.Remove(p.ID)
				onChanged()
			},
			w,
		)
	})

	toolbar := container.NewHBox(newBtn, duplicateBtn, importBtn, exportBtn, deleteBtn)

	listPanel := container.NewBorder(
		widget.NewLabelWithStyle("Presets", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		toolbar,
		nil, nil,
		listWidget,
	)
	detailPanel := container.NewBorder(
		widget.NewLabelWithStyle("Preset Details", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		container.NewVScroll(detailContainer),
	)

	split := container.NewHSplit(listPanel, detailPanel)
	split.SetOffset(0.4)

	w.SetContent(split)
	w.Show()
}

// showPresetDetail populates the detail pane with the preset parameters and
// the estimate they produce.
func (a *App) showPresetDetail(c *fyne.Container, p model.Preset, w fyne.Window, onChanged func()) {
	c.RemoveAll()

	est := model.Analyze(p.Params)
	info := container.NewVBox(
		widget.NewLabelWithStyle(p.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel(p.Description),
		widget.NewSeparator(),
		container.NewGridWithColumns(2,
			widget.NewLabel("Flat width:"), widget.NewLabel(fmt.Sprintf("%.2f mm", p.Params.FlatWidth)),
			widget.NewLabel("Peak height:"), widget.NewLabel(fmt.Sprintf("%.2f mm", p.Params.PeakHeight)),
			widget.NewLabel("Fold angle:"), widget.NewLabel(fmt.Sprintf("%.1f°", p.Params.FoldAngle)),
			widget.NewLabel("Sheet length:"), widget.NewLabel(fmt.Sprintf("%.2f mm", p.Params.TotalLength)),
			widget.NewLabel("Cost per bend:"), widget.NewLabel(money(a.config.CurrencySymbol, p.Params.CostPerBend)),
		),
		widget.NewSeparator(),
		widget.NewLabel(costSummary(est, a.config.CurrencySymbol)),
	)
	if est.DesignFailed {
		warn := widget.NewLabel(failureWarning(est))
		warn.Importance = widget.DangerImportance
		info.Add(warn)
	}

	applyBtn := widget.NewButtonWithIcon("Apply", theme.ConfirmIcon(), func() {
		a.applyParams(p.Params, "Preset "+p.Name)
	})
	applyBtn.Importance = widget.HighImportance
	c.Add(applyBtn)

	if !p.IsBuiltIn {
		c.Add(widget.NewButtonWithIcon("Edit Preset", theme.DocumentCreateIcon(), func() {
			a.showPresetForm(p, "Edit Preset", w, onChanged)
		}))
	} else {
		c.Add(widget.NewLabel("Built-in presets are read-only. Duplicate to customize."))
	}

	c.Add(info)
	c.Refresh()
}

// showPresetForm edits p and stores it, replacing any preset with the same ID.
func (a *App) showPresetForm(p model.Preset, title string, w fyne.Window, onSaved func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(p.Name)
	nameEntry.SetPlaceHolder("My Preset")

	descEntry := widget.NewEntry()
	descEntry.SetText(p.Description)

	params := p.Params
	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.FormatFloat(*val, 'f', -1, 64))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	form := dialog.NewForm(title, "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
			widget.NewFormItem("Flat Width (mm)", floatEntry(&params.FlatWidth)),
			widget.NewFormItem("Peak Height (mm)", floatEntry(&params.PeakHeight)),
			widget.NewFormItem("Fold Angle (°)", floatEntry(&params.FoldAngle)),
			widget.NewFormItem("Sheet Length (mm)", floatEntry(&params.TotalLength)),
			widget.NewFormItem("Cost per Bend", floatEntry(&params.CostPerBend)),
		},
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				dialog.ShowError(fmt.Errorf("preset name cannot be empty"), w)
				return
			}
			if existing := a.presets.FindByName(name); existing != nil && existing.ID != p.ID {
				dialog.ShowError(fmt.Errorf("a preset named %q already exists", name), w)
				return
			}
			if err := params.Validate(); err != nil {
				dialog.ShowError(err, w)
				return
			}

			updated := p
			updated.Name = name
			updated.Description = descEntry.Text
			updated.Params = params
			updated.IsBuiltIn = false

			a.presets.Remove(p.ID)
			a.presets.Add(updated)
			onSaved()
		},
		w,
	)
	form.Resize(fyne.NewSize(420, 420))
	form.Show()
}
