// Package ui provides the CorruCalc desktop dashboard.
//
// This file defines a compact Fyne theme for a dense calculator layout.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CorruCalcTheme wraps the default Fyne theme with compact sizing overrides.
type CorruCalcTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool
}

// NewCorruCalcTheme creates a theme that follows the system light/dark variant.
func NewCorruCalcTheme() *CorruCalcTheme {
	return &CorruCalcTheme{
		base:   theme.DefaultTheme(),
		system: true,
	}
}

// NewCorruCalcThemeWithVariant creates a theme pinned to a light or dark variant.
func NewCorruCalcThemeWithVariant(variant fyne.ThemeVariant) *CorruCalcTheme {
	return &CorruCalcTheme{
		base:    theme.DefaultTheme(),
		variant: variant,
	}
}

// ThemeForName maps the AppConfig theme name ("light", "dark", "system") to a theme.
func ThemeForName(name string) *CorruCalcTheme {
	switch name {
	case "light":
		return NewCorruCalcThemeWithVariant(theme.VariantLight)
	case "dark":
		return NewCorruCalcThemeWithVariant(theme.VariantDark)
	default:
		return NewCorruCalcTheme()
	}
}

// Color delegates to the base theme, pinned to the stored variant unless
// the theme follows the system.
func (t *CorruCalcTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.system {
		return t.base.Color(name, variant)
	}
	return t.base.Color(name, t.variant)
}

func (t *CorruCalcTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *CorruCalcTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *CorruCalcTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
