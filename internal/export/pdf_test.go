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

func TestExportPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, ExportPDF(path, model.Analyze(model.DefaultParams())))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, model.Analyze(model.DefaultParams())))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWritePDFFailedDesign(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, failedEstimate()))
	assert.NotZero(t, buf.Len())
}

func TestWritePDFNothingToExport(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WritePDF(&buf, model.Estimate{}), ErrNothingToExport)
	assert.Zero(t, buf.Len())
}

func TestSpecPanels(t *testing.T) {
	panels := specPanels(model.Analyze(model.DefaultParams()))
	assert.Len(t, panels, 3)
	for _, p := range panels {
		assert.NotEmpty(t, p.items)
	}
}
