package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/autoopti/internal/testutil"
)

const macrossYAML = `name: MACross
base_config: base.ini
symbols: [EURUSD, GBPUSD]
periods: [H1]
parameter_sets:
  - name: coarse
    inputs:
      SlowPeriod: {start: 100, step: 10, end: 200}
      FastPeriod: [10, 5, 50]
    split: {input: SlowPeriod, parts: 2}
  - name: fine
    inputs:
      FastPeriod: [10, 1, 20]
`

// writeSweepFixture writes a base config and a MACross definition into a
// temp dir and returns the definition path.
func writeSweepFixture(t *testing.T) string {
	t.Helper()
	return writeDefinition(t, t.TempDir(), macrossYAML)
}

func writeDefinition(t *testing.T, dir, body string) string {
	t.Helper()
	testutil.WriteBaseConfig(t, dir)
	path := filepath.Join(dir, "macross.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// writeTerminal creates a placeholder terminal executable.
func writeTerminal(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "terminal64.exe")
	require.NoError(t, os.WriteFile(path, []byte("stub"), 0o755))
	return path
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
