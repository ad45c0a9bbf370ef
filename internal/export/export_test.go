package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/CorruCalc/internal/model"
)

func failedEstimate() model.Estimate {
	return model.Analyze(model.Params{FlatWidth: 100, PeakHeight: 50, FoldAngle: 30, TotalLength: 330, CostPerBend: 10})
}

func TestPaletteFor(t *testing.T) {
	assert.Equal(t, normalPalette, paletteFor(model.Analyze(model.DefaultParams())))
	assert.Equal(t, failedPalette, paletteFor(failedEstimate()))
}

func TestCheckExportable(t *testing.T) {
	assert.NoError(t, checkExportable(model.Analyze(model.DefaultParams())))
	assert.ErrorIs(t, checkExportable(model.Estimate{}), ErrNothingToExport)
}

func TestLeftoverPath(t *testing.T) {
	est := model.Analyze(model.DefaultParams())
	lo := leftoverPath(est.Profile)

	if assert.Len(t, lo, len(est.Profile.Leftover)+1) {
		assert.Equal(t, est.Profile.Profile[len(est.Profile.Profile)-1], lo[0])
	}
	assert.Nil(t, leftoverPath(model.ProfileResult{}))
}

func TestDrawingExtent(t *testing.T) {
	est := model.Analyze(model.DefaultParams())
	assert.GreaterOrEqual(t, drawingExtent(est), est.Profile.Profile.MaxX())

	empty := model.Estimate{Params: model.Params{TotalLength: 1200}}
	assert.Equal(t, 1200.0, drawingExtent(empty))
}
