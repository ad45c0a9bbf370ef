package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CorruCalc/internal/engine"
)

func newCompareCmd(st *cliState) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the current parameters against nearby variations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := st.validParams()
			if err != nil {
				return err
			}
			results := engine.CompareScenarios(engine.BuildDefaultScenarios(p))
			best, ok := engine.BestScenario(results)

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, struct {
					Results []engine.ComparisonResult `json:"results"`
					Best    *engine.ComparisonResult  `json:"best,omitempty"`
				}{results, bestOrNil(best, ok)})
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCENARIO\tMODULES\tEFFICIENCY\tLEFTOVER\tCOST\tSTATUS")
			for _, r := range results {
				status := "OK"
				if r.Failed {
					status = "FAILED"
				}
				fmt.Fprintf(tw, "%s\t%d\t%.1f%%\t%.2f\t%.2f\t%s\n",
					r.Scenario.Name, r.ModuleCount, r.Efficiency, r.LeftoverLength, r.TotalCost, status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(out, "\nBest: %s\n", best.Scenario.Name)
			} else {
				fmt.Fprintln(out, "\nNo scenario fits the sheet.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the comparison as JSON")
	return cmd
}

func bestOrNil(r engine.ComparisonResult, ok bool) *engine.ComparisonResult {
	if !ok {
		return nil
	}
	return &r
}
