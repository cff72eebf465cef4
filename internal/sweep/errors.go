package sweep

import (
	"errors"
	"fmt"
)

// ErrEmptyGrid is returned when there are no symbols or no periods to sweep.
var ErrEmptyGrid = errors.New("sweep needs at least one symbol and one period")

// ExecutableNotFoundError aborts a sweep whose terminal does not exist.
// It is returned before any configuration is loaded or written.
type ExecutableNotFoundError struct {
	Path string
	Err  error
}

func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("terminal executable not found: %s", e.Path)
}

func (e *ExecutableNotFoundError) Unwrap() error { return e.Err }

// IsExecutableNotFound reports whether err is an ExecutableNotFoundError.
func IsExecutableNotFound(err error) bool {
	var e *ExecutableNotFoundError
	return errors.As(err, &e)
}

// Failure records one iteration whose terminal run failed.
type Failure struct {
	Index      int        `json:"index"`
	Coordinate Coordinate `json:"coordinate"`
	Set        string     `json:"set"`
	Artifact   string     `json:"artifact"`
	ExitCode   int        `json:"exit_code"`
	Error      string     `json:"error"`
}
