package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/CorruCalc/internal/model"
)

var defaults = model.DefaultParams()

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Label,A,D,Angle,Total\nRoof,90,60,45,2440\nWall,120,30,30,2440\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Label;A;D;Angle;Total\nRoof;90;60;45;2440\nWall;120;30;30;2440\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Label\tA\tD\tAngle\tTotal\nRoof\t90\t60\t45\t2440\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Label|A|D|Angle|Total\nRoof|90|60|45|2440\n")
	if got := DetectCSVDelimiter(data); got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Label", "Flat Width", "Peak Height", "Fold Angle", "Total Length", "Cost Per Bend"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Label: 0, FlatWidth: 1, PeakHeight: 2, FoldAngle: 3, TotalLength: 4, CostPerBend: 5}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_ShortAliases(t *testing.T) {
	row := []string{"name", "a", "d", "degrees", "length", "cost"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Label: 0, FlatWidth: 1, PeakHeight: 2, FoldAngle: 3, TotalLength: 4, CostPerBend: 5}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_ReorderedWithoutCost(t *testing.T) {
	row := []string{"Sheet Length", "Angle", "Height", "Flat"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.TotalLength != 0 || mapping.FoldAngle != 1 || mapping.PeakHeight != 2 || mapping.FlatWidth != 3 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
	if mapping.Label != -1 || mapping.CostPerBend != -1 {
		t.Errorf("expected absent label and cost, got %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Roof", "90", "60", "45", "2440"})

	if isHeader {
		t.Error("numeric row should not be treated as a header")
	}
	if mapping.FlatWidth != 1 || mapping.CostPerBend != 5 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Reader Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	input := "Label,A,D,Angle,Total,Cost\nRoof,90,60,45,2440,50\nWall,120,30,30,2440,35\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',', defaults)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[0].Label != "Roof" || result.Items[0].Params != model.DefaultParams() {
		t.Errorf("unexpected first item %+v", result.Items[0])
	}
	if result.Items[1].Params.CostPerBend != 35 {
		t.Errorf("expected cost 35, got %f", result.Items[1].Params.CostPerBend)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	input := "Roof,90,60,45,2440\nDeck,150,100,70,3000,80\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',', defaults)

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d (errors: %v)", len(result.Items), result.Errors)
	}
	if result.Items[0].Params.CostPerBend != defaults.CostPerBend {
		t.Errorf("missing cost should default to %f, got %f", defaults.CostPerBend, result.Items[0].Params.CostPerBend)
	}
	if result.Items[1].Params.CostPerBend != 80 {
		t.Errorf("expected cost 80, got %f", result.Items[1].Params.CostPerBend)
	}
}

func TestImportCSVFromReader_UnknownHeaderSkipped(t *testing.T) {
	input := "Profil,Breite,Hoehe,Winkel,Laenge\nRoof,90,60,45,2440\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',', defaults)

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d (errors: %v)", len(result.Items), result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning about the skipped header row")
	}
}

func TestImportCSVFromReader_DefaultLabel(t *testing.T) {
	input := ",90,60,45,2440\n,100,50,40,2000\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',', defaults)

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[1].Label != "Profile 2" {
		t.Errorf("expected 'Profile 2', got %q", result.Items[1].Label)
	}
}

func TestImportCSVFromReader_InvalidNumber(t *testing.T) {
	input := "Label,A,D,Angle,Total\nRoof,ninety,60,45,2440\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',', defaults)

	if len(result.Items) != 0 {
		t.Errorf("expected no items, got %d", len(result.Items))
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Invalid flat width") {
		t.Errorf("expected invalid flat width error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_InvalidAngleRejected(t *testing.T) {
	input := "Label,A,D,Angle,Total\nFlat,90,60,90,2440\nNegative,-5,60,45,2440\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',', defaults)

	if len(result.Items) != 0 {
		t.Errorf("expected no items, got %d", len(result.Items))
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", result.Errors)
	}
	if !strings.HasPrefix(result.Errors[0], "Line 2:") || !strings.Contains(result.Errors[0], "fold angle") {
		t.Errorf("unexpected error %q", result.Errors[0])
	}
}

func TestImportCSVFromReader_InvalidCostWarns(t *testing.T) {
	input := "Label,A,D,Angle,Total,Cost\nRoof,90,60,45,2440,cheap\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',', defaults)

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d (errors: %v)", len(result.Items), result.Errors)
	}
	if result.Items[0].Params.CostPerBend != defaults.CostPerBend {
		t.Errorf("expected default cost, got %f", result.Items[0].Params.CostPerBend)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Invalid cost 'cheap'") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected invalid cost warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_MissingRequiredColumn(t *testing.T) {
	input := "Label,A,D,Total\nRoof,90,60,2440\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',', defaults)

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Angle") {
		t.Errorf("expected missing angle column error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	input := "Label,A,D,Angle,Total\nRoof,90,60,45,2440\nBad,90,60,,2440\n\nWall,120,30,30,2440\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',', defaults)

	if len(result.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(result.Items))
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Missing angle") {
		t.Errorf("expected one missing angle error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyInput(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',', defaults)
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportCSVFromReader_OnlyHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Label,A,D,Angle,Total\n"), ',', defaults)
	if len(result.Items) != 0 || len(result.Errors) != 0 {
		t.Errorf("expected nothing imported and no errors, got %d items, errors %v", len(result.Items), result.Errors)
	}
}

func TestImportCSVFromReader_WhitespaceAndDecimals(t *testing.T) {
	input := "Label , A , D , Angle , Total\n  Roof , 90.5 , 60.25 , 42.5 , 2440 \n"
	result := ImportCSVFromReader(strings.NewReader(input), ',', defaults)

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d (errors: %v)", len(result.Items), result.Errors)
	}
	p := result.Items[0].Params
	if result.Items[0].Label != "Roof" || p.FlatWidth != 90.5 || p.PeakHeight != 60.25 || p.FoldAngle != 42.5 {
		t.Errorf("unexpected item %+v", result.Items[0])
	}
}

// ─── CSV File Tests ────────────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.csv")
	content := "Name;Flat;Height;Degree;Sheet Length\nRoof;90;60;45;2440\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path, defaults)

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d (errors: %v)", len(result.Items), result.Errors)
	}
	if result.Warnings[0] != "Detected semicolon delimiter" {
		t.Errorf("expected delimiter warning first, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"), defaults)
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path, defaults)
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "Flat Width", "Peak Height", "Angle", "Total Length", "Bend Cost"},
		{"Roof", 90, 60, 45, 2440, 50},
		{"Deck", 150, 100, 70, 3000, 80},
	})

	result := ImportExcel(path, defaults)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[1].Label != "Deck" || result.Items[1].Params.FoldAngle != 70 {
		t.Errorf("unexpected second item %+v", result.Items[1])
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Roof", 90, 60, 45, 2440},
		{"Wall", 120, 30, 30, 2440},
	})

	result := Import(path, defaults)

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d (errors: %v)", len(result.Items), result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"), defaults)
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "A", "D", "Angle", "Total"},
		{"Roof", "wide", 60, 45, 2440},
	})

	result := ImportExcel(path, defaults)
	if len(result.Errors) != 1 || !strings.HasPrefix(result.Errors[0], "Row 2:") {
		t.Errorf("expected one row error, got %v", result.Errors)
	}
}
