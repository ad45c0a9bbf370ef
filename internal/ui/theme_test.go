package ui

import (
	"testing"

	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func TestThemeForName(t *testing.T) {
	dark := ThemeForName("dark")
	assert.False(t, dark.system)
	assert.Equal(t, theme.VariantDark, dark.variant)

	light := ThemeForName("light")
	assert.Equal(t, theme.VariantLight, light.variant)

	assert.True(t, ThemeForName("system").system)
	assert.True(t, ThemeForName("").system)
}

func TestThemeCompactSizes(t *testing.T) {
	th := NewCorruCalcTheme()
	assert.Equal(t, float32(12), th.Size(theme.SizeNameText))
	assert.Equal(t, float32(3), th.Size(theme.SizeNamePadding))
	assert.Equal(t, theme.DefaultTheme().Size(theme.SizeNameScrollBar), th.Size(theme.SizeNameScrollBar))
}
