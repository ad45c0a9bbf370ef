package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CorruCalc/internal/bendprog"
	"github.com/piwi3910/CorruCalc/internal/model"
	"github.com/piwi3910/CorruCalc/internal/project"
)

func newProgramCmd(st *cliState) *cobra.Command {
	var profile, output string
	minFlange := bendprog.DefaultMinFlange

	cmd := &cobra.Command{
		Use:   "program",
		Short: "Generate a press brake bend program",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := st.validParams()
			if err != nil {
				return err
			}
			if profile == "" {
				profile = st.config.BendProfile
			}
			gen := bendprog.New(profile)
			gen.MinFlange = minFlange
			code := gen.Generate(model.Analyze(p))

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), code)
				return nil
			}
			if err := project.ExportBendProgram(output, code); err != nil {
				return err
			}
			st.logger.Info("wrote bend program", "path", output, "profile", gen.Profile().Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&profile, "profile", "", fmt.Sprintf("post-processor %v (default from config)", bendprog.GetProfileNames()))
	cmd.Flags().Float64Var(&minFlange, "min-flange", minFlange, "shortest formable flange (mm), 0 disables the check")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the program to this file instead of stdout")
	return cmd
}
