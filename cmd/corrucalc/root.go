package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CorruCalc/internal/model"
	"github.com/piwi3910/CorruCalc/internal/project"
)

// cliState carries what the root command resolves for its subcommands.
type cliState struct {
	configPath string
	verbose    bool

	config model.AppConfig
	params model.Params
	logger *slog.Logger
}

// paramFlags names the CLI flag of each input, in Params order.
var paramFlags = []struct {
	name  string
	usage string
	field func(p *model.Params) *float64
}{
	{"flat", "flat bottom width A (mm)", func(p *model.Params) *float64 { return &p.FlatWidth }},
	{"peak", "peak height D (mm)", func(p *model.Params) *float64 { return &p.PeakHeight }},
	{"angle", "fold angle from horizontal (degrees)", func(p *model.Params) *float64 { return &p.FoldAngle }},
	{"length", "sheet length (mm)", func(p *model.Params) *float64 { return &p.TotalLength }},
	{"cost", "cost per bend", func(p *model.Params) *float64 { return &p.CostPerBend }},
}

func newRootCmd() *cobra.Command {
	st := &cliState{}
	defaults := model.DefaultParams()

	root := &cobra.Command{
		Use:   "corrucalc",
		Short: "Corrugated sheet profile and bending cost calculator",
		Long: `corrucalc fits a trapezoidal corrugation profile onto a flat sheet,
counts the press brake bends and prices them. Unset inputs fall back to
the defaults stored in the application config.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.resolve(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&st.configPath, "config", project.DefaultConfigPath(), "path to the application config file")
	pf.BoolVarP(&st.verbose, "verbose", "v", false, "enable debug logging")
	for _, f := range paramFlags {
		pf.Float64(f.name, *f.field(&defaults), f.usage)
	}

	root.AddCommand(
		newCalcCmd(st),
		newExportCmd(st),
		newBatchCmd(st),
		newCompareCmd(st),
		newTuneCmd(st),
		newProgramCmd(st),
		newInspectCmd(st),
		newServeCmd(st),
	)
	return root
}

// resolve loads the config, sets up logging and merges flags over the
// configured default parameters.
func (st *cliState) resolve(cmd *cobra.Command) error {
	cfg, err := project.LoadAppConfig(st.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st.config = cfg
	st.logger = newLogger(cfg.LogLevel, st.verbose)

	st.params = cfg.Params()
	for _, f := range paramFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		v, err := cmd.Flags().GetFloat64(f.name)
		if err != nil {
			return err
		}
		*f.field(&st.params) = v
	}
	st.logger.Debug("resolved parameters", "params", st.params, "config", st.configPath)
	return nil
}

// validParams returns the resolved parameters, rejecting unbuildable ones.
func (st *cliState) validParams() (model.Params, error) {
	if err := st.params.Validate(); err != nil {
		return model.Params{}, fmt.Errorf("invalid parameters: %w", err)
	}
	return st.params, nil
}

func newLogger(level string, verbose bool) *slog.Logger {
	lvl := parseLevel(level)
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
