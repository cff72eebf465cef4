// Package testutil provides fixtures shared by package tests: UTF-16
// configuration files and a scriptable fake terminal.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

// BaseConfig is a minimal terminal configuration with the sections a
// sweep writes to. Keys are deliberately mixed-case.
const BaseConfig = "[Common]\r\n" +
	"Login=12345\r\n" +
	"\r\n" +
	"[Tester]\r\n" +
	"Expert=Examples\\MACD\\MACD Sample.ex5\r\n" +
	"Model=1\r\n" +
	"Optimization=2\r\n" +
	"\r\n" +
	"[TesterInputs]\r\n" +
	"Lots=0.1||0.1||0.01||1.0||N\r\n" +
	"InpTakeProfit=50||50||5||100||N\r\n"

var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)

// WriteUTF16 writes text to path as UTF-16LE with a BOM and returns path.
func WriteUTF16(t testing.TB, path, text string) string {
	t.Helper()
	data, err := utf16LE.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// ReadUTF16 reads a UTF-16 file written by WriteUTF16 or mtconfig.
func ReadUTF16(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text, err := utf16LE.NewDecoder().Bytes(data)
	require.NoError(t, err)
	return string(text)
}

// WriteBaseConfig writes BaseConfig to dir/base.ini and returns its path.
func WriteBaseConfig(t testing.TB, dir string) string {
	t.Helper()
	return WriteUTF16(t, filepath.Join(dir, "base.ini"), BaseConfig)
}

// ListDir returns the names of the entries in dir.
func ListDir(t testing.TB, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

// AssertGolden compares data against testdata/golden/<name>.golden in the
// calling package. Run with -update to rewrite the fixture.
func AssertGolden(t *testing.T, name string, data []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
