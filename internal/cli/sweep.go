package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/autoopti/internal/sweep"
	"github.com/roach88/autoopti/internal/terminal"
)

// SweepOptions holds flags for the sweep command.
type SweepOptions struct {
	*RootOptions
	Terminal    string
	Symbols     []string
	Periods     []string
	ArtifactDir string

	// Invoker overrides how the terminal is run (for testing).
	// If nil, the terminal is started as a child process.
	Invoker sweep.Invoker

	// IDs overrides the run ID generator (for testing).
	IDs sweep.RunIDGenerator
}

// NewSweepCommand creates the sweep command.
func NewSweepCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SweepOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sweep <definition>",
		Short: "Run the terminal over every symbol, period and parameter set",
		Long: `Run the MetaTrader 5 strategy tester once per (symbol, period, parameter set).

Symbols and periods come from the flags, or from the definition when a flag
is not given. The terminal path comes from --terminal or $AUTOOPTI_TERMINAL
(a .env file in the working directory is read if present).

A failed terminal run is reported and skipped; the command still exits 0
once every run has been attempted. A missing terminal, a missing or
malformed base configuration, or an interrupt aborts with exit code 2.

Example:
  autoopti sweep --terminal "C:/MT5/terminal64.exe" -s EURUSD -s GBPUSD -p H1 ./macross.yaml
  autoopti sweep ./macross.cue --artifact-dir ./artifacts --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Terminal, "terminal", "", "path to terminal executable (default $"+EnvTerminal+")")
	cmd.Flags().StringSliceVarP(&opts.Symbols, "symbol", "s", nil, "symbol to sweep (repeatable)")
	cmd.Flags().StringSliceVarP(&opts.Periods, "period", "p", nil, "period to sweep (repeatable)")
	cmd.Flags().StringVar(&opts.ArtifactDir, "artifact-dir", "", "directory for generated configs (default OS temp dir)")

	return cmd
}

func runSweep(opts *SweepOptions, defPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	configureLogging(cmd.ErrOrStderr(), opts.Verbose)

	if err := loadEnv(); err != nil {
		slog.Warn("ignoring unreadable .env file", "error", err)
	}

	def, err := loadDefinition(defPath)
	if err != nil {
		return commandError(formatter, "failed to load definition", err)
	}
	symbols, periods := resolveGrid(def, opts.Symbols, opts.Periods)

	invoker := opts.Invoker
	if invoker == nil {
		x := terminal.Exec{}
		if opts.Verbose {
			x.Stdout = formatter.Diagnostics()
			x.Stderr = formatter.Diagnostics()
		}
		invoker = x
	}

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, stopping sweep", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	runner := &sweep.Runner{
		Terminal:    terminalPath(opts.Terminal),
		Source:      def,
		Symbols:     symbols,
		Periods:     periods,
		ArtifactDir: opts.ArtifactDir,
		Invoker:     invoker,
		Observer:    progressObserver(formatter),
		IDs:         opts.IDs,
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return formatter.Fail(ExitCommandError, ErrCodeInterrupted, "sweep interrupted", err, summary)
		}
		return commandError(formatter, "sweep aborted", err)
	}

	if formatter.IsJSON() {
		return formatter.JSON(summary)
	}
	fmt.Fprintf(formatter.Writer, "Sweep %s finished: %d attempted, %d succeeded, %d failed\n",
		summary.RunID, summary.Attempted, summary.Succeeded, summary.Failed)
	for _, f := range summary.Failures {
		fmt.Fprintf(formatter.Writer, "  ✗ [%d] %s %s: %s\n", f.Index, f.Coordinate, f.Set, f.Error)
	}
	return nil
}

// progressObserver prints one line per terminal run.
func progressObserver(f *OutputFormatter) sweep.Observer {
	w := f.Progress()
	return func(ev sweep.Event) {
		switch ev.Kind {
		case sweep.EventStart:
			fmt.Fprintf(w, "Sweep %s: %d run(s)\n", ev.RunID, ev.Total)
		case sweep.EventIteration:
			fmt.Fprintf(w, "[%d/%d] %s %s\n", ev.Index, ev.Total, ev.Coordinate, ev.Set)
		case sweep.EventFailure:
			fmt.Fprintf(w, "[%d/%d] ✗ %v\n", ev.Index, ev.Total, ev.Err)
		}
	}
}
