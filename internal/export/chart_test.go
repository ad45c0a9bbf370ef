package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/CorruCalc/internal/model"
)

func TestExportChart(t *testing.T) {
	est := model.Analyze(model.DefaultParams())
	for _, ext := range []string{"png", "svg"} {
		path := filepath.Join(t.TempDir(), "profile."+ext)
		require.NoError(t, ExportChart(path, est), ext)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestExportChartUnsupportedFormat(t *testing.T) {
	err := ExportChart(filepath.Join(t.TempDir(), "profile.bmp"), model.Analyze(model.DefaultParams()))
	assert.Error(t, err)
}

func TestWriteChartPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChart(&buf, failedEstimate(), "PNG"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestBendPoints(t *testing.T) {
	est := model.Analyze(model.DefaultParams())
	pts := bendPoints(est.Profile.Profile)
	assert.Len(t, pts, est.Cost.CompleteModuleBends)
}
