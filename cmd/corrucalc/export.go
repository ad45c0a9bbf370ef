package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CorruCalc/internal/export"
	"github.com/piwi3910/CorruCalc/internal/model"
)

func newExportCmd(st *cliState) *cobra.Command {
	var chart bool
	opts := export.DefaultModelOptions()
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write a report, workbook, drawing or chart",
		Long: `Write the estimate to a file. The format follows the extension:
.pdf report, .xlsx workbook, .dxf drawing, .stl sheet model, .png or .svg chart.
Use --chart to write a PDF chart instead of the report.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := st.validParams()
			if err != nil {
				return err
			}
			path := args[0]
			est := model.Analyze(p)
			if err := exportByExtension(path, est, chart, opts); err != nil {
				return err
			}
			st.logger.Info("exported", "path", path, "modules", est.Profile.ModuleCount, "failed", est.DesignFailed)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&chart, "chart", false, "write a chart regardless of the extension")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "sheet width of the STL model (mm)")
	cmd.Flags().Float64Var(&opts.Thickness, "thickness", opts.Thickness, "material thickness of the STL model (mm)")
	return cmd
}

func exportByExtension(path string, est model.Estimate, chart bool, opts export.ModelOptions) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case chart, ext == ".png", ext == ".svg":
		return export.ExportChart(path, est)
	case ext == ".pdf":
		return export.ExportPDF(path, est)
	case ext == ".xlsx":
		return export.ExportXLSX(path, est)
	case ext == ".dxf":
		return export.ExportDXF(path, est)
	case ext == ".stl":
		return export.ExportSTL(path, est, opts)
	default:
		return fmt.Errorf("unsupported export format %q", ext)
	}
}
