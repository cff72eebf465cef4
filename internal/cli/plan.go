package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/roach88/autoopti/internal/sweep"
)

// PlanOptions holds flags for the plan command.
type PlanOptions struct {
	*RootOptions
	Symbols []string
	Periods []string
	CSV     bool
}

// PlanResult is the JSON payload of the plan command.
type PlanResult struct {
	Source string       `json:"source"`
	Total  int          `json:"total"`
	Steps  []sweep.Step `json:"steps"`
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "plan <definition>",
		Short: "List the terminal runs a sweep would perform",
		Long: `List every (symbol, period, parameter set) run of a sweep in execution
order, with the report and artifact names each run would use. Nothing is
written and the terminal is not started.

Example:
  autoopti plan ./macross.yaml -s EURUSD -p H1 -p H4
  autoopti plan ./macross.yaml --csv > plan.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Symbols, "symbol", "s", nil, "symbol to plan (repeatable)")
	cmd.Flags().StringSliceVarP(&opts.Periods, "period", "p", nil, "period to plan (repeatable)")
	cmd.Flags().BoolVar(&opts.CSV, "csv", false, "write the plan as CSV")

	return cmd
}

func runPlan(opts *PlanOptions, defPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	def, err := loadDefinition(defPath)
	if err != nil {
		return commandError(formatter, "failed to load definition", err)
	}
	symbols, periods := resolveGrid(def, opts.Symbols, opts.Periods)
	if len(symbols) == 0 || len(periods) == 0 {
		return commandError(formatter, "nothing to plan", sweep.ErrEmptyGrid)
	}

	steps := sweep.Plan(def, symbols, periods)
	formatter.VerboseLog("Planned %d run(s) from %d set(s)", len(steps), def.Count())

	switch {
	case opts.CSV:
		if err := gocsv.Marshal(steps, formatter.Writer); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to write CSV", err, nil)
		}
		return nil
	case formatter.IsJSON():
		return formatter.JSON(PlanResult{Source: def.Name(), Total: len(steps), Steps: steps})
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSYMBOL\tPERIOD\tSET\tREPORT")
	for _, s := range steps {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", s.Index, s.Symbol, s.Period, s.Set, s.Report)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(formatter.Writer, "%d run(s)\n", len(steps))
	return nil
}
