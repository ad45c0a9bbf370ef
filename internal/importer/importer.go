// Package importer reads batches of corrugation parameters from CSV and Excel
// files and profile drawings from DXF files. It supports automatic delimiter
// detection, flexible column mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/CorruCalc/internal/model"
)

// BatchItem is one labelled set of parameters read from a row.
type BatchItem struct {
	Label  string       `json:"label"`
	Params model.Params `json:"params"`
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Items    []BatchItem
	Errors   []string
	Warnings []string
}

// ColumnMapping maps parameter roles to their column indices. -1 means absent.
type ColumnMapping struct {
	Label       int
	FlatWidth   int
	PeakHeight  int
	FoldAngle   int
	TotalLength int
	CostPerBend int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":        {"label", "name"},
	"flat width":   {"flat width", "a", "flat"},
	"peak height":  {"peak height", "d", "height"},
	"fold angle":   {"angle", "fold angle", "degree", "degrees"},
	"total length": {"total length", "length", "sheet length", "total"},
	"cost":         {"cost per bend", "cost", "bend cost"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (label, A, D, angle, total, cost) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{-1, -1, -1, -1, -1, -1}
	slots := map[string]*int{
		"label":        &mapping.Label,
		"flat width":   &mapping.FlatWidth,
		"peak height":  &mapping.PeakHeight,
		"fold angle":   &mapping.FoldAngle,
		"total length": &mapping.TotalLength,
		"cost":         &mapping.CostPerBend,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := slots[role]; *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Label:       0,
			FlatWidth:   1,
			PeakHeight:  2,
			FoldAngle:   3,
			TotalLength: 4,
			CostPerBend: 5,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber reads a required numeric cell, naming the column in error messages.
func parseNumber(row []string, idx int, column, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, column)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, column, s)
	}
	return v, ""
}

// parseRow extracts a BatchItem from a row using the given column mapping.
// Returns the item, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, itemCount int, defaults model.Params) (BatchItem, string, string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Profile %d", itemCount+1)
	}

	p := defaults
	required := []struct {
		idx    int
		column string
		dst    *float64
	}{
		{mapping.FlatWidth, "flat width", &p.FlatWidth},
		{mapping.PeakHeight, "peak height", &p.PeakHeight},
		{mapping.FoldAngle, "angle", &p.FoldAngle},
		{mapping.TotalLength, "total length", &p.TotalLength},
	}
	for _, r := range required {
		v, errMsg := parseNumber(row, r.idx, r.column, rowLabel)
		if errMsg != "" {
			return BatchItem{}, errMsg, ""
		}
		*r.dst = v
	}

	// Optional cost per bend
	var warning string
	if costStr := getCell(row, mapping.CostPerBend); costStr != "" {
		cost, err := strconv.ParseFloat(costStr, 64)
		if err != nil {
			warning = fmt.Sprintf("%s: Invalid cost '%s', using default %.2f", rowLabel, costStr, defaults.CostPerBend)
		} else {
			p.CostPerBend = cost
		}
	}

	if err := p.Validate(); err != nil {
		return BatchItem{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}

	return BatchItem{Label: label, Params: p}, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports parameter rows from a CSV file. It detects the delimiter
// and maps columns by header names. Missing costs fall back to defaults.
func ImportCSV(path string, defaults model.Params) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", warnings, defaults)
}

// ImportCSVFromReader imports parameter rows from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, defaults model.Params) ImportResult {
	result := ImportResult{}

	records, err := readCSV(reader, delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil, defaults)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	return csvReader.ReadAll()
}

// ImportExcel imports parameter rows from the first sheet of an Excel file.
func ImportExcel(path string, defaults model.Params) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil, defaults)
}

// Import picks the CSV or Excel reader by file extension.
func Import(path string, defaults model.Params) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path, defaults)
	default:
		return ImportCSV(path, defaults)
	}
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string, defaults model.Params) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.FlatWidth == -1 {
			missing = append(missing, "Flat Width")
		}
		if mapping.PeakHeight == -1 {
			missing = append(missing, "Peak Height")
		}
		if mapping.FoldAngle == -1 {
			missing = append(missing, "Angle")
		}
		if mapping.TotalLength == -1 {
			missing = append(missing, "Total Length")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 2 {
		// An unrecognized header still has a non-numeric second column
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		item, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Items), defaults)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Items = append(result.Items, item)
	}

	return result
}
