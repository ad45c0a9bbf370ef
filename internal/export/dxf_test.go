package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/CorruCalc/internal/importer"
	"github.com/piwi3910/CorruCalc/internal/model"
)

func TestExportDXFRoundTrip(t *testing.T) {
	p := model.DefaultParams()
	p.TotalLength = 700
	est := model.Analyze(p)
	require.NotEmpty(t, est.Profile.Leftover)

	path := filepath.Join(t.TempDir(), "profile.dxf")
	require.NoError(t, ExportDXF(path, est))

	got := importer.ImportDXFProfile(path)
	require.Empty(t, got.Errors)

	// The closing flat repeats a point, which yields no line.
	require.Len(t, got.Profile, len(est.Profile.Profile)-est.Profile.ModuleCount)
	assert.InDelta(t, est.Profile.Profile.Length(), got.Profile.Length(), 1e-6)
	assert.InDelta(t, est.Profile.Profile.MaxX(), got.Profile.MaxX(), 1e-6)
	assert.Equal(t, 3*est.Profile.ModuleCount, got.Measure().Bends)

	assert.Len(t, got.Leftover, len(est.Profile.Leftover)+1)
}

func TestExportDXFNothingToExport(t *testing.T) {
	err := ExportDXF(filepath.Join(t.TempDir(), "empty.dxf"), model.Estimate{})
	assert.ErrorIs(t, err, ErrNothingToExport)
}
