package mtconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
)

// TempOption configures SaveTemp.
type TempOption func(*tempOptions)

type tempOptions struct {
	path   string
	delete *bool
	logger *slog.Logger
}

// TempPath writes the artifact to path instead of a fresh temporary file.
// Caller paths are kept after use unless DeleteAfter(true) is also given.
func TempPath(path string) TempOption {
	return func(o *tempOptions) { o.path = path }
}

// DeleteAfter overrides whether the artifact is removed when the scope
// exits.
func DeleteAfter(del bool) TempOption {
	return func(o *tempOptions) { o.delete = &del }
}

// TempLogger sets the logger used to report cleanup failures.
func TempLogger(l *slog.Logger) TempOption {
	return func(o *tempOptions) { o.logger = l }
}

// TempPattern is the os.CreateTemp pattern for auto-allocated artifacts.
const TempPattern = "autoopti-*.ini"

// SaveTemp writes the configuration to a file, calls use with its path and
// then, if deletion is enabled, removes the file.
//
// The file is fully written and closed before use runs. Removal happens on
// every exit path, including when use returns an error or panics. Removal
// failures are logged and never replace the error returned by use. If the
// write fails, use is not called and a file SaveTemp created is removed; a
// pre-existing file at a caller path is left in place.
func (c *Config) SaveTemp(use func(path string) error, opts ...TempOption) (err error) {
	o := tempOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	path := o.path
	del := path == ""
	if o.delete != nil {
		del = *o.delete
	}

	if path == "" {
		path, err = c.writeTemp()
	} else {
		_, statErr := os.Lstat(path)
		created := errors.Is(statErr, fs.ErrNotExist)
		err = c.WriteFile(path)
		if err != nil && created {
			// Do not leave a partially written artifact behind. A file that
			// was already there belongs to the caller.
			_ = os.Remove(path)
		}
	}
	if err != nil {
		return err
	}

	if del {
		defer func() {
			if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				logger.Warn("failed to remove config artifact", "path", path, "error", rmErr)
			}
		}()
	}

	return use(path)
}

// writeTemp writes the configuration to a new file from os.CreateTemp.
func (c *Config) writeTemp() (string, error) {
	f, err := os.CreateTemp("", TempPattern)
	if err != nil {
		return "", fmt.Errorf("create temp config: %w", err)
	}
	path := f.Name()

	_, werr := c.WriteTo(f)
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write temp config %s: %w", path, werr)
	}
	return path, nil
}
