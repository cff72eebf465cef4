package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/autoopti/internal/mtconfig"
	"github.com/roach88/autoopti/internal/param"
	"github.com/roach88/autoopti/internal/sweep"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Symbol string
	Period string
	Set    string
	Output string
}

// RenderResult is the JSON payload of the render command.
type RenderResult struct {
	Symbol string `json:"symbol"`
	Period string `json:"period"`
	Set    string `json:"set"`
	Output string `json:"output,omitempty"`
	Config string `json:"config,omitempty"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <definition>",
		Short: "Generate the terminal configuration for a single run",
		Long: `Generate the configuration one sweep run would hand to the terminal.

With --output the file is written in the terminal's UTF-16 encoding and
kept; without it the decoded text is printed. Symbol and period default to
the first entries of the definition, the set to its first set.

Example:
  autoopti render ./macross.yaml -s EURUSD -p H1 --set coarse -o run.ini`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Symbol, "symbol", "s", "", "symbol")
	cmd.Flags().StringVarP(&opts.Period, "period", "p", "", "period")
	cmd.Flags().StringVar(&opts.Set, "set", "", "parameter set name")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runRender(opts *RenderOptions, defPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	def, err := loadDefinition(defPath)
	if err != nil {
		return commandError(formatter, "failed to load definition", err)
	}

	coord := sweep.Coordinate{Symbol: opts.Symbol, Period: opts.Period}
	if coord.Symbol == "" && len(def.Symbols) > 0 {
		coord.Symbol = def.Symbols[0]
	}
	if coord.Period == "" && len(def.Periods) > 0 {
		coord.Period = def.Periods[0]
	}
	if coord.Symbol == "" || coord.Period == "" {
		return commandError(formatter, "nothing to render", sweep.ErrEmptyGrid)
	}

	var set param.Set
	if opts.Set == "" {
		sets := param.Collect(def)
		set = sets[0]
	} else {
		var ok bool
		if set, ok = def.Set(opts.Set); !ok {
			err := fmt.Errorf("parameter set %q not found in %s", opts.Set, def.Name())
			return formatter.Fail(ExitCommandError, ErrCodeUnknownSet, "unknown parameter set", err, nil)
		}
	}

	builder, err := mtconfig.NewBuilderFromFile(def.BaseConfigPath())
	if err != nil {
		return commandError(formatter, "failed to load base config", err)
	}
	cfg, err := sweep.ConfigureCoordinate(builder, def.Name(), coord).UpsertSet(set).Build()
	if err != nil {
		return commandError(formatter, "failed to build config", err)
	}

	result := RenderResult{Symbol: coord.Symbol, Period: coord.Period, Set: set.Name}

	if opts.Output == "" {
		if formatter.IsJSON() {
			result.Config = cfg.String()
			return formatter.JSON(result)
		}
		fmt.Fprint(formatter.Writer, cfg.String())
		return nil
	}

	err = cfg.SaveTemp(func(path string) error {
		result.Output = path
		return nil
	}, mtconfig.TempPath(opts.Output))
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to write config", err, nil)
	}

	if formatter.IsJSON() {
		return formatter.JSON(result)
	}
	fmt.Fprintf(formatter.Writer, "Wrote %s (%s %s, set %s)\n", result.Output, coord.Symbol, coord.Period, set.Name)
	return nil
}
