package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "autoopti", cmd.Use)
	assert.Contains(t, cmd.Short, "MetaTrader 5")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"sweep", "plan", "render", "validate"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestSweepCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	sweepCmd, _, err := cmd.Find([]string{"sweep"})
	require.NoError(t, err)

	terminalFlag := sweepCmd.Flags().Lookup("terminal")
	require.NotNil(t, terminalFlag)
	assert.Equal(t, "", terminalFlag.DefValue)

	symbolFlag := sweepCmd.Flags().Lookup("symbol")
	require.NotNil(t, symbolFlag)
	assert.Equal(t, "s", symbolFlag.Shorthand)

	periodFlag := sweepCmd.Flags().Lookup("period")
	require.NotNil(t, periodFlag)
	assert.Equal(t, "p", periodFlag.Shorthand)

	require.NotNil(t, sweepCmd.Flags().Lookup("artifact-dir"))
}

func TestPlanCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	planCmd, _, err := cmd.Find([]string{"plan"})
	require.NoError(t, err)

	csvFlag := planCmd.Flags().Lookup("csv")
	require.NotNil(t, csvFlag)
	assert.Equal(t, "false", csvFlag.DefValue)
}

func TestRenderCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	renderCmd, _, err := cmd.Find([]string{"render"})
	require.NoError(t, err)

	outputFlag := renderCmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)

	require.NotNil(t, renderCmd.Flags().Lookup("set"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "xml", "plan", "macross.yaml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestExecute(t *testing.T) {
	defPath := writeSweepFixture(t)
	missing := filepath.Join(t.TempDir(), "nope.exe")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
		once       string
	}{
		{
			name:       "invalid format is printed",
			args:       []string{"--format", "xml", "plan", defPath},
			wantCode:   ExitFailure,
			wantStderr: "invalid format",
		},
		{
			name:       "unknown command is printed",
			args:       []string{"frobnicate"},
			wantCode:   ExitFailure,
			wantStderr: "unknown command",
		},
		{
			name:       "reported error is printed once",
			args:       []string{"sweep", "--terminal", missing, "--artifact-dir", t.TempDir(), defPath},
			wantCode:   ExitCommandError,
			wantStdout: "Error [E301]",
			once:       "terminal executable not found",
		},
		{
			name:     "success",
			args:     []string{"plan", defPath},
			wantCode: ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			code := Execute(tt.args, stdout, stderr)

			assert.Equal(t, tt.wantCode, code)
			if tt.wantStdout != "" {
				assert.Contains(t, stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" {
				assert.Contains(t, stderr.String(), tt.wantStderr)
			}
			if tt.once != "" {
				assert.Equal(t, 1, strings.Count(stdout.String()+stderr.String(), tt.once))
			}
			if tt.wantCode == ExitSuccess {
				assert.Empty(t, stderr.String())
			}
		})
	}
}
