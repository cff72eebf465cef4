package cli

import (
	"errors"

	"github.com/roach88/autoopti/internal/mtconfig"
	"github.com/roach88/autoopti/internal/sweep"
	"github.com/roach88/autoopti/internal/sweepdef"
	"github.com/roach88/autoopti/internal/terminal"
)

// Error codes for failures outside definition loading. Definition load
// failures use the sweepdef codes (E0xx, E1xx).
const (
	ErrCodeGeneric          = sweepdef.ErrCodeGeneric
	ErrCodeWriteFailed      = "E007" // Output file write error
	ErrCodeBaseConfig       = "E201" // Base config missing or unreadable
	ErrCodeMissingSection   = "E202" // Base config lacks a required section
	ErrCodeInvalidInput     = "E203" // Input value cannot become a range
	ErrCodeUnknownSet       = "E204" // Named parameter set not in definition
	ErrCodeEmptyGrid        = "E205" // No symbols or no periods
	ErrCodeTerminalNotFound = "E301" // Terminal executable missing
	ErrCodeInterrupted      = "E302" // Sweep cancelled by signal
)

// loadDefinition loads a sweep definition file.
func loadDefinition(path string) (*sweepdef.Definition, error) {
	return sweepdef.Load(path)
}

// resolveGrid picks the command-line symbols and periods, falling back to
// the definition's defaults for whichever list was not given.
func resolveGrid(def *sweepdef.Definition, symbols, periods []string) ([]string, []string) {
	if len(symbols) == 0 {
		symbols = def.Symbols
	}
	if len(periods) == 0 {
		periods = def.Periods
	}
	return symbols, periods
}

// errorCode maps a fatal error to its CLI error code.
func errorCode(err error) string {
	var le *sweepdef.LoadError
	var nf *terminal.NotFoundError
	switch {
	case errors.As(err, &le):
		return le.Code
	case mtconfig.IsNotFound(err):
		return ErrCodeBaseConfig
	case mtconfig.IsMissingSection(err):
		return ErrCodeMissingSection
	case mtconfig.IsInvalidInput(err):
		return ErrCodeInvalidInput
	case sweep.IsExecutableNotFound(err), errors.As(err, &nf):
		return ErrCodeTerminalNotFound
	case errors.Is(err, sweep.ErrEmptyGrid):
		return ErrCodeEmptyGrid
	default:
		return ErrCodeGeneric
	}
}

// commandError reports a fatal err under its mapped code.
func commandError(f *OutputFormatter, message string, err error) error {
	return f.Fail(ExitCommandError, errorCode(err), message, err, nil)
}
