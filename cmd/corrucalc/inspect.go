package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CorruCalc/internal/importer"
)

func newInspectCmd(st *cliState) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inspect <file.dxf>",
		Short: "Measure a profile drawing",
		Long:  "Read a DXF profile drawing and report its developed length, span, height and bend count.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imp := importer.ImportDXFProfile(args[0])
			if len(imp.Errors) > 0 {
				return fmt.Errorf("failed to read %s: %s", args[0], strings.Join(imp.Errors, "; "))
			}
			for _, w := range imp.Warnings {
				st.logger.Warn("dxf warning", "msg", w)
			}
			m := imp.Measure()

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, m)
			}
			fmt.Fprintln(out, "Profile Drawing")
			fmt.Fprintln(out, "===============")
			fmt.Fprintf(out, "File: %s\n\n", args[0])
			fmt.Fprintf(out, "Developed length: %.2f mm\n", m.DevelopedLength)
			fmt.Fprintf(out, "Span:             %.2f mm\n", m.Span)
			fmt.Fprintf(out, "Peak height:      %.2f mm\n", m.PeakHeight)
			fmt.Fprintf(out, "Bends:            %d\n", m.Bends)
			fmt.Fprintf(out, "Leftover points:  %d\n", len(imp.Leftover))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the measurements as JSON")
	return cmd
}
