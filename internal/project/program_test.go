package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExportBendProgram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs", "roof.bend")
	code := "B1 X90.00 A45.00 DUP\n"

	if err := ExportBendProgram(path, code); err != nil {
		t.Fatalf("ExportBendProgram failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read program: %v", err)
	}
	if string(data) != code {
		t.Errorf("expected %q, got %q", code, string(data))
	}
}
