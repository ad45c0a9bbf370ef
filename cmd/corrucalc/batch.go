package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CorruCalc/internal/export"
	"github.com/piwi3910/CorruCalc/internal/importer"
	"github.com/piwi3910/CorruCalc/internal/model"
)

func newBatchCmd(st *cliState) *cobra.Command {
	var labelsPath, xlsxPath string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "batch <csv|xlsx>",
		Short: "Estimate every row of a CSV or Excel file",
		Long: `Read one set of parameters per row. Missing columns fall back to the
resolved defaults. Rows that fail validation are reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := importer.Import(args[0], st.params)
			for _, e := range result.Errors {
				st.logger.Error("import error", "msg", e)
			}
			for _, w := range result.Warnings {
				st.logger.Warn("import warning", "msg", w)
			}
			if len(result.Items) == 0 {
				return fmt.Errorf("no valid rows in %s", args[0])
			}

			jobs := make([]export.Job, 0, len(result.Items))
			for _, item := range result.Items {
				jobs = append(jobs, export.Job{Label: item.Label, Estimate: model.Analyze(item.Params)})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if err := printJSON(out, jobs); err != nil {
					return err
				}
			} else {
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "LABEL\tA\tD\tANGLE\tLENGTH\tMODULES\tBENDS\tCOST\tSTATUS")
				for _, j := range jobs {
					p := j.Estimate.Params
					status := "OK"
					if j.Estimate.DesignFailed {
						status = "FAILED"
					}
					fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.1f\t%.0f\t%d\t%d\t%.2f\t%s\n",
						j.Label, p.FlatWidth, p.PeakHeight, p.FoldAngle, p.TotalLength,
						j.Estimate.Profile.ModuleCount, j.Estimate.Cost.TotalBends, j.Estimate.Cost.TotalCost, status)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			if labelsPath != "" {
				if err := export.ExportLabels(labelsPath, jobs); err != nil {
					return fmt.Errorf("failed to write labels: %w", err)
				}
				st.logger.Info("wrote job labels", "path", labelsPath, "jobs", len(jobs))
			}
			if xlsxPath != "" {
				if err := export.ExportBatchXLSX(xlsxPath, jobs); err != nil {
					return fmt.Errorf("failed to write batch workbook: %w", err)
				}
				st.logger.Info("wrote batch workbook", "path", xlsxPath, "jobs", len(jobs))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&labelsPath, "labels", "", "write QR job labels to this PDF")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the batch summary to this workbook")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the jobs as JSON")
	return cmd
}
