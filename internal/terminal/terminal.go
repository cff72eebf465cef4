// Package terminal runs the MetaTrader 5 terminal against a generated
// configuration file.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"time"
)

// WaitDelay bounds how long a cancelled terminal may take to exit after it
// has been interrupted before it is killed.
const WaitDelay = 10 * time.Second

// ConfigArg is the command-line form the terminal expects for its
// configuration file.
func ConfigArg(configPath string) string {
	return "/config:" + configPath
}

// NotFoundError reports a missing terminal executable.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("terminal not found at %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("terminal not found at %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// CheckExecutable verifies that path names an existing regular file.
func CheckExecutable(path string) error {
	if path == "" {
		return &NotFoundError{Path: path, Err: errors.New("empty path")}
	}
	info, err := os.Stat(path)
	if err != nil {
		return &NotFoundError{Path: path, Err: err}
	}
	if info.IsDir() {
		return &NotFoundError{Path: path, Err: errors.New("is a directory")}
	}
	return nil
}

// InvocationError reports a terminal run that did not exit cleanly.
type InvocationError struct {
	Executable string
	ConfigPath string

	// ExitCode is the process exit status, or -1 if it never started or
	// was terminated by a signal.
	ExitCode int

	Err error
}

func (e *InvocationError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("terminal run failed with exit code %d (config=%s)", e.ExitCode, e.ConfigPath)
	}
	return fmt.Sprintf("terminal run failed (config=%s): %v", e.ConfigPath, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// IsInvocationError reports whether err is (or wraps) an InvocationError.
func IsInvocationError(err error) bool {
	var ie *InvocationError
	return errors.As(err, &ie)
}

// Command builds the terminal command for configPath. Cancelling ctx
// interrupts the process (kills it on Windows) and, after WaitDelay,
// kills it.
func Command(ctx context.Context, executable, configPath string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, executable, ConfigArg(configPath))
	cmd.Cancel = func() error {
		if runtime.GOOS == "windows" {
			return cmd.Process.Kill()
		}
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = WaitDelay
	return cmd
}

// Exec runs the terminal as a child process.
type Exec struct {
	// Stdout and Stderr receive the terminal's output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Invoke runs the terminal against configPath and blocks until it exits.
// Any outcome other than a zero exit status is returned as an
// *InvocationError. If ctx was cancelled the error also wraps ctx.Err().
func (x Exec) Invoke(ctx context.Context, executable, configPath string) error {
	cmd := Command(ctx, executable, configPath)
	cmd.Stdout = x.Stdout
	cmd.Stderr = x.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	ie := &InvocationError{
		Executable: executable,
		ConfigPath: configPath,
		ExitCode:   -1,
		Err:        err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		ie.ExitCode = exitErr.ExitCode()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		ie.Err = fmt.Errorf("%w: %w", ctxErr, err)
	}
	return ie
}
