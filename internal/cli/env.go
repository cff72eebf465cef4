package cli

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// EnvTerminal names the environment variable holding the default terminal
// path.
const EnvTerminal = "AUTOOPTI_TERMINAL"

// loadEnv reads .env from the working directory if one exists. Variables
// already set in the environment win.
func loadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// terminalPath returns the --terminal flag, or $AUTOOPTI_TERMINAL when the
// flag is empty.
func terminalPath(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(EnvTerminal)
}

// configureLogging installs a text slog handler on w, at debug level when
// verbose.
func configureLogging(w io.Writer, verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
