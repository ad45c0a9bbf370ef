package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/CorruCalc/internal/model"
)

func TestExportXLSX(t *testing.T) {
	est := model.Analyze(model.DefaultParams())
	path := filepath.Join(t.TempDir(), "estimate.xlsx")
	require.NoError(t, ExportXLSX(path, est))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetProfile, SheetLeftover, SheetBends}, f.GetSheetList())

	rows, err := f.GetRows(SheetProfile)
	require.NoError(t, err)
	assert.Len(t, rows, len(est.Profile.Profile)+1)

	rows, err = f.GetRows(SheetBends)
	require.NoError(t, err)
	assert.Len(t, rows, est.Cost.TotalBends+1)

	status, err := f.GetCellValue(SheetSummary, "B2")
	require.NoError(t, err)
	assert.Equal(t, "OK", status)

	rows, err = f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Len(t, rows, len(summaryRows(est))+2)
}

func TestWriteXLSXFailedDesign(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, failedEstimate()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	status, err := f.GetCellValue(SheetSummary, "B2")
	require.NoError(t, err)
	assert.Equal(t, "DESIGN FAILED", status)
}

func TestWriteXLSXNothingToExport(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteXLSX(&buf, model.Estimate{}), ErrNothingToExport)
}

func TestExportBatchXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.xlsx")
	require.NoError(t, ExportBatchXLSX(path, sampleJobs()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetBatch)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Label", rows[0][0])
	assert.Equal(t, "Roof east", rows[1][0])
	assert.Equal(t, "DESIGN FAILED", rows[2][len(rows[2])-1])

	assert.ErrorIs(t, ExportBatchXLSX(path, nil), ErrNothingToExport)
}
