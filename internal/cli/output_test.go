package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.JSON(map[string]int{"attempted": 4}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]any{"attempted": float64(4)}, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_Error(t *testing.T) {
	details := map[string]string{"path": "base.ini"}
	tests := []struct {
		name    string
		format  string
		verbose bool
		want    string
	}{
		{"text", "text", false, "Error [E201]: base config missing\n"},
		{"text verbose", "text", true, "Error [E201]: base config missing\nDetails: map[path:base.ini]\n"},
		{"json", "json", false, `{"status":"error","error":{"code":"E201","message":"base config missing","details":{"path":"base.ini"}}}` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: tt.format, Writer: buf, Verbose: tt.verbose}

			require.NoError(t, formatter.Error(ErrCodeBaseConfig, "base config missing", details))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestOutputFormatter_Fail(t *testing.T) {
	out := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: out}
	cause := errors.New("terminal executable not found: /mt5")

	exitErr := formatter.Fail(ExitCommandError, ErrCodeTerminalNotFound, "sweep aborted", cause, nil)

	assert.Equal(t, "Error [E301]: terminal executable not found: /mt5\n", out.String())
	assert.Equal(t, ExitCommandError, exitErr.Code)
	assert.True(t, exitErr.Reported)
	assert.ErrorIs(t, exitErr, cause)
	assert.True(t, isReported(fmt.Errorf("outer: %w", exitErr)))
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			errOut := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:    "json",
				Writer:    out,
				ErrWriter: errOut,
				Verbose:   tt.verbose,
			}

			formatter.VerboseLog("Loaded %s", "macross.yaml")

			assert.Empty(t, out.String(), "diagnostics never go to stdout")
			if tt.wantLog {
				assert.Equal(t, "Loaded macross.yaml\n", errOut.String())
			} else {
				assert.Empty(t, errOut.String())
			}
		})
	}
}

func TestOutputFormatter_Writers(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	text := &OutputFormatter{Format: "text", Writer: out, ErrWriter: errOut}
	assert.Same(t, out, text.Progress())
	assert.Same(t, errOut, text.Diagnostics())

	jsonFormatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut}
	assert.Same(t, errOut, jsonFormatter.Progress())

	noErr := &OutputFormatter{Format: "json", Writer: out}
	assert.Same(t, out, noErr.Diagnostics())
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitFailure},
		{"exit error", &ExitError{Code: ExitCommandError, Message: "aborted"}, ExitCommandError},
		{"wrapped exit error", fmt.Errorf("outer: %w", &ExitError{Code: ExitFailure, Message: "invalid"}), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestExitError(t *testing.T) {
	cause := errors.New("terminal missing")
	err := &ExitError{Code: ExitCommandError, Message: "sweep aborted", Err: cause}

	assert.Equal(t, "sweep aborted: terminal missing", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.False(t, isReported(err))
	assert.Equal(t, "aborted", (&ExitError{Message: "aborted"}).Error())
}
