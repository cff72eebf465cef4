package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// FakeTerminal is a shell script standing in for the terminal executable.
// Each run appends its arguments to a log file and exits with ExitCode.
type FakeTerminal struct {
	Path     string
	LogPath  string
	ExitCode int
}

// NewFakeTerminal writes a fake terminal into dir. It skips the test on
// Windows, where the script cannot run.
func NewFakeTerminal(t testing.TB, dir string, exitCode int) *FakeTerminal {
	t.Helper()
	return newScript(t, dir, exitCode, "")
}

// NewSlowTerminal writes a fake terminal that logs its arguments and then
// sleeps, for cancellation tests.
func NewSlowTerminal(t testing.TB, dir string) *FakeTerminal {
	t.Helper()
	return newScript(t, dir, 0, "exec sleep 30\n")
}

func newScript(t testing.TB, dir string, exitCode int, body string) *FakeTerminal {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake terminal needs a POSIX shell")
	}

	ft := &FakeTerminal{
		Path:     filepath.Join(dir, "terminal.sh"),
		LogPath:  filepath.Join(dir, "terminal.log"),
		ExitCode: exitCode,
	}
	script := fmt.Sprintf("#!/bin/sh\necho \"$@\" >> %q\n%sexit %d\n", ft.LogPath, body, exitCode)
	require.NoError(t, os.WriteFile(ft.Path, []byte(script), 0o755))
	return ft
}

// Calls returns the argument lines logged so far, one per run.
func (ft *FakeTerminal) Calls(t testing.TB) []string {
	t.Helper()
	data, err := os.ReadFile(ft.LogPath)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
