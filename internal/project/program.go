package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// ExportBendProgram writes bend program text to path, creating missing
// parent directories.
func ExportBendProgram(path, code string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create program directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		return fmt.Errorf("failed to write bend program: %w", err)
	}
	return nil
}
