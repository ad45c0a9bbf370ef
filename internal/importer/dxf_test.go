package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"

	"github.com/piwi3910/CorruCalc/internal/model"
)

func writeProfileDXF(t *testing.T, profile, leftover model.Polyline) string {
	t.Helper()
	d := dxf.NewDrawing()

	draw := func(layer string, pl model.Polyline) {
		if len(pl) < 2 {
			return
		}
		_, err := d.AddLayer(layer, color.White, dxf.DefaultLineType, true)
		require.NoError(t, err)
		for i := 1; i < len(pl); i++ {
			_, err := d.Line(pl[i-1].X, pl[i-1].Z, 0, pl[i].X, pl[i].Z, 0)
			require.NoError(t, err)
		}
	}
	draw("PROFILE", profile)
	draw(LeftoverLayer, leftover)

	path := filepath.Join(t.TempDir(), "profile.dxf")
	require.NoError(t, d.SaveAs(path))
	return path
}

func TestImportDXFProfile(t *testing.T) {
	res := model.GenerateProfile(90, 60, 45, 700)
	end := res.Profile[len(res.Profile)-1]
	leftover := append(model.Polyline{end}, res.Leftover...)

	path := writeProfileDXF(t, res.Profile, leftover)
	imp := ImportDXFProfile(path)

	require.Empty(t, imp.Errors)
	// Coincident module boundary points collapse
	assert.Len(t, imp.Profile, 3*res.ModuleCount+2)
	assert.Equal(t, model.Point{X: 0, Z: 0}, imp.Profile[0])
	assert.InDelta(t, res.Profile.Length(), imp.Profile.Length(), 1e-6)

	require.Len(t, res.Leftover, 2)
	require.Len(t, imp.Leftover, 3)
	assert.InDelta(t, end.X, imp.Leftover[0].X, 1e-9)

	m := imp.Measure()
	assert.Equal(t, 3*res.ModuleCount, m.Bends)
	assert.InDelta(t, 60.0, m.PeakHeight, 1e-9)
	assert.InDelta(t, end.X, m.Span, 1e-9)
}

func TestImportDXFProfileReversedSegments(t *testing.T) {
	// Segments drawn right to left still chain from the left end
	reversed := model.Polyline{{X: 300, Z: 0}, {X: 210, Z: 0}, {X: 150, Z: 60}, {X: 90, Z: 0}, {X: 0, Z: 0}}
	path := writeProfileDXF(t, reversed, nil)

	imp := ImportDXFProfile(path)
	require.Empty(t, imp.Errors)
	require.Len(t, imp.Profile, 5)
	assert.Equal(t, model.Point{X: 0, Z: 0}, imp.Profile[0])
	assert.Equal(t, model.Point{X: 300, Z: 0}, imp.Profile[4])
	assert.Equal(t, 3, imp.Measure().Bends)
}

func TestImportDXFProfileMissingFile(t *testing.T) {
	imp := ImportDXFProfile(filepath.Join(t.TempDir(), "nope.dxf"))
	assert.NotEmpty(t, imp.Errors)
}

func TestImportDXFProfileNotADrawing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dxf")
	require.NoError(t, os.WriteFile(path, []byte("this is not dxf"), 0644))

	imp := ImportDXFProfile(path)
	assert.NotEmpty(t, imp.Errors)
}

func TestChainSegmentsKeepsLongest(t *testing.T) {
	segs := []segment{
		{start: model.Point{X: 0, Z: 0}, end: model.Point{X: 10, Z: 0}},
		{start: model.Point{X: 10, Z: 0}, end: model.Point{X: 20, Z: 5}},
		{start: model.Point{X: 100, Z: 0}, end: model.Point{X: 105, Z: 0}},
		{start: model.Point{X: 50, Z: 0}, end: model.Point{X: 50, Z: 0}},
	}

	chain, pieces := chainSegments(segs, chainTolerance)
	assert.Equal(t, 2, pieces)
	assert.Len(t, chain, 3)
	assert.Equal(t, model.Point{X: 20, Z: 5}, chain[2])
}

func TestMeasureEmpty(t *testing.T) {
	assert.Equal(t, ProfileMeasure{}, ProfileImport{}.Measure())
}
