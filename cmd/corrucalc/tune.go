package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CorruCalc/internal/engine"
)

func newTuneCmd(st *cliState) *cobra.Command {
	cfg := engine.DefaultTuneConfig()
	bounds := engine.DefaultTuneBounds()
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Search flat width and fold angle for the least leftover",
		Long: `Run a genetic search over flat width and fold angle. Peak height, sheet
length and cost per bend stay fixed. The result is never worse than the
starting layout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := st.validParams()
			if err != nil {
				return err
			}
			st.logger.Debug("tuning", "population", cfg.PopulationSize, "generations", cfg.Generations, "seed", cfg.Seed)
			res := engine.TuneFit(p, bounds, cfg)

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, res)
			}
			if !res.Improved {
				fmt.Fprintf(out, "No better fit found. Leftover stays at %.2f mm.\n", res.Base.Profile.LeftoverLength)
				return nil
			}
			bp := res.Best.Params
			fmt.Fprintln(out, "Best fit")
			fmt.Fprintln(out, "========")
			fmt.Fprintf(out, "Flat width:  %.2f mm (was %.2f)\n", bp.FlatWidth, p.FlatWidth)
			fmt.Fprintf(out, "Fold angle:  %.2f deg (was %.2f)\n", bp.FoldAngle, p.FoldAngle)
			fmt.Fprintf(out, "Modules:     %d (was %d)\n", res.Best.Profile.ModuleCount, res.Base.Profile.ModuleCount)
			fmt.Fprintf(out, "Leftover:    %.2f mm (was %.2f)\n", res.Best.Profile.LeftoverLength, res.Base.Profile.LeftoverLength)
			fmt.Fprintf(out, "Total cost:  %s%.2f (was %s%.2f)\n",
				st.config.CurrencySymbol, res.Best.Cost.TotalCost, st.config.CurrencySymbol, res.Base.Cost.TotalCost)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&cfg.PopulationSize, "population", cfg.PopulationSize, "population size")
	f.IntVar(&cfg.Generations, "generations", cfg.Generations, "number of generations")
	f.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	f.Float64Var(&bounds.MinFlatWidth, "min-flat", bounds.MinFlatWidth, "smallest flat width (mm)")
	f.Float64Var(&bounds.MaxFlatWidth, "max-flat", bounds.MaxFlatWidth, "largest flat width (mm)")
	f.Float64Var(&bounds.MinFoldAngle, "min-angle", bounds.MinFoldAngle, "smallest fold angle (degrees)")
	f.Float64Var(&bounds.MaxFoldAngle, "max-angle", bounds.MaxFoldAngle, "largest fold angle (degrees)")
	f.BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}
