package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CorruCalc/internal/model"
)

func newCalcCmd(st *cliState) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Fit the profile and estimate the bending cost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := st.validParams()
			if err != nil {
				return err
			}
			est := model.Analyze(p)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), est)
			}
			printEstimate(cmd.OutOrStdout(), est, st.config.CurrencySymbol)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full estimate as JSON")
	return cmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printEstimate(w io.Writer, est model.Estimate, currency string) {
	p, res := est.Params, est.Profile

	fmt.Fprintln(w, "Corrugation Profile")
	fmt.Fprintln(w, "===================")
	fmt.Fprintf(w, "Flat width (A):     %.2f mm\n", p.FlatWidth)
	fmt.Fprintf(w, "Peak height (D):    %.2f mm\n", p.PeakHeight)
	fmt.Fprintf(w, "Fold angle:         %.1f deg\n", p.FoldAngle)
	fmt.Fprintf(w, "Sheet length:       %.2f mm\n\n", p.TotalLength)

	fmt.Fprintln(w, "Geometry:")
	fmt.Fprintf(w, "  Horizontal run:   %.2f mm\n", res.HorizontalRun)
	fmt.Fprintf(w, "  Slant length:     %.2f mm\n", res.SlantLength)
	fmt.Fprintf(w, "  Module length:    %.2f mm\n", res.ModuleLength)
	fmt.Fprintf(w, "  Modules:          %d\n", res.ModuleCount)
	fmt.Fprintf(w, "  Used length:      %.2f mm\n", res.UsedLength)
	fmt.Fprintf(w, "  Leftover:         %.2f mm\n", res.LeftoverLength)
	fmt.Fprintf(w, "  Efficiency:       %.2f%%\n\n", est.Efficiency)

	fmt.Fprintln(w, "Cost:")
	fmt.Fprintf(w, "  Bends:            %d\n", est.Cost.TotalBends)
	fmt.Fprintf(w, "  Cost per bend:    %s%.2f\n", currency, p.CostPerBend)
	fmt.Fprintf(w, "  Total cost:       %s%.2f\n", currency, est.Cost.TotalCost)

	if est.DesignFailed {
		fmt.Fprintf(w, "\nDESIGN FAILED: profile needs %.2f mm but the sheet is %.2f mm\n", res.UsedLength, p.TotalLength)
	}
}
