package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roach88/autoopti/internal/mtconfig"
	"github.com/roach88/autoopti/internal/param"
	"github.com/roach88/autoopti/internal/terminal"
)

// Invoker runs the terminal against one configuration artifact.
type Invoker interface {
	Invoke(ctx context.Context, executable, configPath string) error
}

// InvokerFunc adapts a function to Invoker.
type InvokerFunc func(ctx context.Context, executable, configPath string) error

// Invoke calls f.
func (f InvokerFunc) Invoke(ctx context.Context, executable, configPath string) error {
	return f(ctx, executable, configPath)
}

// Runner sweeps a parameter source over a symbol × period grid.
type Runner struct {
	// Terminal is the path to the terminal executable. It must exist.
	Terminal string

	Source  param.Source
	Symbols []string
	Periods []string

	// ArtifactDir holds the per-coordinate configuration artifacts.
	// Defaults to os.TempDir().
	ArtifactDir string

	// Invoker defaults to terminal.Exec{}.
	Invoker Invoker

	Observer Observer
	Logger   *slog.Logger

	// IDs defaults to UUIDv7Generator.
	IDs RunIDGenerator
}

// Summary is the outcome of a sweep.
type Summary struct {
	RunID     string    `json:"run_id"`
	Total     int       `json:"total"`
	Attempted int       `json:"attempted"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Failures  []Failure `json:"failures,omitempty"`
}

// Run performs the sweep. It returns a nil error once every iteration has
// been attempted, however many terminal runs failed; the Summary says how
// many. A non-nil error means the sweep was aborted and the Summary covers
// the iterations attempted so far.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	if r.Source == nil {
		return sum, errors.New("sweep has no parameter source")
	}
	if len(r.Symbols) == 0 || len(r.Periods) == 0 {
		return sum, ErrEmptyGrid
	}

	if err := terminal.CheckExecutable(r.Terminal); err != nil {
		return sum, &ExecutableNotFoundError{Path: r.Terminal, Err: err}
	}

	builder, err := mtconfig.NewBuilderFromFile(r.Source.BaseConfigPath())
	if err != nil {
		return sum, err
	}

	ids := r.IDs
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	sum.RunID = ids.Generate()
	sum.Total = Total(len(r.Symbols), len(r.Periods), r.Source.Count())

	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("run", sum.RunID)

	dir := r.ArtifactDir
	if dir == "" {
		dir = os.TempDir()
	}

	logger.Info("sweep starting",
		"source", r.Source.Name(),
		"symbols", len(r.Symbols),
		"periods", len(r.Periods),
		"sets", r.Source.Count(),
		"total", sum.Total,
	)
	r.emit(Event{Kind: EventStart, RunID: sum.RunID, Total: sum.Total})

	for _, coord := range Coordinates(r.Symbols, r.Periods) {
		if err := ConfigureCoordinate(builder, r.Source.Name(), coord).Err(); err != nil {
			return sum, err
		}

		artifact := filepath.Join(dir, ArtifactName(coord.Symbol, coord.Period))

		for set := range r.Source.Sets() {
			if err := ctx.Err(); err != nil {
				return sum, fmt.Errorf("sweep interrupted: %w", err)
			}

			sum.Attempted++
			ev := Event{
				RunID:      sum.RunID,
				Index:      sum.Attempted,
				Total:      sum.Total,
				Coordinate: coord,
				Set:        set.Name,
				Artifact:   artifact,
			}
			ev.Kind = EventIteration
			r.emit(ev)
			logger.Debug("running terminal", "coordinate", coord.String(), "set", set.Name, "index", ev.Index)

			err := r.iterate(ctx, builder, set, artifact, logger)
			switch {
			case err == nil:
				sum.Succeeded++
			case ctx.Err() != nil:
				return sum, fmt.Errorf("sweep interrupted: %w", ctx.Err())
			case terminal.IsInvocationError(err):
				sum.Failed++
				f := Failure{
					Index:      ev.Index,
					Coordinate: coord,
					Set:        set.Name,
					Artifact:   artifact,
					ExitCode:   -1,
					Error:      err.Error(),
				}
				var ie *terminal.InvocationError
				if errors.As(err, &ie) {
					f.ExitCode = ie.ExitCode
				}
				sum.Failures = append(sum.Failures, f)

				logger.Error("terminal run failed, continuing",
					"coordinate", coord.String(),
					"set", set.Name,
					"artifact", artifact,
					"exit_code", f.ExitCode,
					"error", err,
				)
				ev.Kind = EventFailure
				ev.Err = err
				r.emit(ev)
			default:
				return sum, err
			}
		}
	}

	logger.Info("sweep finished",
		"attempted", sum.Attempted,
		"succeeded", sum.Succeeded,
		"failed", sum.Failed,
	)
	r.emit(Event{Kind: EventDone, RunID: sum.RunID, Total: sum.Total, Summary: &sum})
	return sum, nil
}

// ConfigureCoordinate merges the sweep-wide Tester keys for one
// coordinate: shutdown and replace flags, symbol, period and report name.
func ConfigureCoordinate(b *mtconfig.Builder, source string, c Coordinate) *mtconfig.Builder {
	return b.UpsertTester(
		mtconfig.P(KeyShutdownTerminal, "1"),
		mtconfig.P(KeyReplaceReport, "1"),
		mtconfig.P(KeySymbol, c.Symbol),
		mtconfig.P(KeyPeriod, c.Period),
		mtconfig.P(KeyReport, ReportName(source, c.Symbol, c.Period)),
	)
}

// iterate merges one parameter set, writes the artifact and runs the
// terminal on it. The artifact is removed before iterate returns.
func (r *Runner) iterate(ctx context.Context, b *mtconfig.Builder, set param.Set, artifact string, logger *slog.Logger) error {
	cfg, err := b.UpsertSet(set).Build()
	if err != nil {
		return err
	}

	inv := r.Invoker
	if inv == nil {
		inv = terminal.Exec{}
	}

	return cfg.SaveTemp(func(path string) error {
		return inv.Invoke(ctx, r.Terminal, path)
	},
		mtconfig.TempPath(artifact),
		mtconfig.DeleteAfter(true),
		mtconfig.TempLogger(logger),
	)
}

func (r *Runner) emit(ev Event) {
	if r.Observer != nil {
		r.Observer(ev)
	}
}
