package mtconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/autoopti/internal/testutil"
)

func TestParse(t *testing.T) {
	text := "; leading comment\r\n" +
		"[Tester]\r\n" +
		"Expert = Examples\\MACD.ex5\r\n" +
		"Model: 1\r\n" +
		"# another comment\r\n" +
		"Description=first\r\n" +
		"  second\r\n" +
		"\r\n" +
		"[TesterInputs]\r\n" +
		"Lots=0.1||0.1||0.01||1.0||N\r\n"

	cfg, err := Parse(strings.NewReader(text))
	require.NoError(t, err)

	assert.Equal(t, []string{"Tester", "TesterInputs"}, cfg.SectionNames())
	tester := mustSection(t, cfg, "Tester")
	assert.Equal(t, []string{"Expert", "Model", "Description"}, tester.Keys())
	v, _ := tester.Get("Expert")
	assert.Equal(t, `Examples\MACD.ex5`, v)
	v, _ = tester.Get("Description")
	assert.Equal(t, "first\nsecond", v)
	v, _ = cfg.Get("TesterInputs", "Lots")
	assert.Equal(t, "0.1||0.1||0.01||1.0||N", v)
}

func TestParse_IndentedKeys(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Pair
	}{
		{
			name: "evenly indented keys",
			text: "[Tester]\r\n  Expert=X\r\n  Model=1\r\n",
			want: []Pair{{Key: "Expert", Value: "X"}, {Key: "Model", Value: "1"}},
		},
		{
			name: "deeper continuation under indented key",
			text: "[Tester]\r\n  Description=first\r\n      second\r\n  Model=1\r\n",
			want: []Pair{{Key: "Description", Value: "first\nsecond"}, {Key: "Model", Value: "1"}},
		},
		{
			name: "key after indented key returns to column zero",
			text: "[Tester]\r\n\tExpert=X\r\nModel=1\r\n",
			want: []Pair{{Key: "Expert", Value: "X"}, {Key: "Model", Value: "1"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(strings.NewReader(tt.text))
			require.NoError(t, err)
			assert.Equal(t, tt.want, mustSection(t, cfg, "Tester").Pairs())
		})
	}
}

func TestParse_IndentedKeysUpdateInPlace(t *testing.T) {
	cfg, err := Parse(strings.NewReader("[Tester]\r\n  Expert=X\r\n  Model=1\r\n"))
	require.NoError(t, err)

	require.NoError(t, cfg.UpdateSection("Tester", P("Model", "4")))

	assert.Equal(t, "[Tester]\r\nExpert = X\r\nModel = 4\r\n\r\n", cfg.String())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"key before section", "a=b\n", "line 1: assignment before first section header"},
		{"unterminated header", "[Tester\n", "unterminated section header"},
		{"empty section", "[ ]\n", "empty section name"},
		{"duplicate section", "[A]\n[A]\n", "duplicate section [A]"},
		{"duplicate key", "[A]\nk=1\nk=2\n", `duplicate key "k" in [A]`},
		{"no separator", "[A]\njunk\n", "expected key=value"},
		{"empty key", "[A]\n=1\n", "empty key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.text))
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Contains(t, pe.Error(), tt.want)
		})
	}
}

func TestReadFile(t *testing.T) {
	path := testutil.WriteBaseConfig(t, t.TempDir())

	cfg, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Common", "Tester", "TesterInputs"}, cfg.SectionNames())
	v, _ := cfg.Get("Tester", "Expert")
	assert.Equal(t, `Examples\MACD\MACD Sample.ex5`, v)
}

func TestReadFile_NotFound(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string {
			return filepath.Join(dir, "missing.ini")
		}},
		{"odd byte count", func(t *testing.T) string {
			p := filepath.Join(dir, "odd.ini")
			require.NoError(t, os.WriteFile(p, []byte{0xFF, 0xFE, 'a'}, 0o644))
			return p
		}},
		{"unpaired surrogate", func(t *testing.T) string {
			p := filepath.Join(dir, "surrogate.ini")
			require.NoError(t, os.WriteFile(p, []byte{0xFF, 0xFE, 0x00, 0xD8, 'a', 0x00}, 0o644))
			return p
		}},
		{"unpaired low surrogate", func(t *testing.T) string {
			p := filepath.Join(dir, "low.ini")
			require.NoError(t, os.WriteFile(p, []byte{0xFF, 0xFE, 'a', 0x00, 0x00, 0xDC}, 0o644))
			return p
		}},
		{"trailing high surrogate", func(t *testing.T) string {
			p := filepath.Join(dir, "trailing.ini")
			require.NoError(t, os.WriteFile(p, []byte{0xFF, 0xFE, 'a', 0x00, 0x3D, 0xD8}, 0o644))
			return p
		}},
		{"malformed", func(t *testing.T) string {
			return testutil.WriteUTF16(t, filepath.Join(dir, "bad.ini"), "orphan=1\r\n")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)
			_, err := ReadFile(path)
			require.Error(t, err)
			assert.True(t, IsNotFound(err), "got %v", err)

			var ce *Error
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, path, ce.Path)
		})
	}
}

func TestConfig_WriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg, err := ReadFile(testutil.WriteBaseConfig(t, dir))
	require.NoError(t, err)
	require.NoError(t, cfg.UpdateSection("Tester", P("Symbol", "EURUSD")))

	out := filepath.Join(dir, "out.ini")
	require.NoError(t, cfg.WriteFile(out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xFF, 0xFE}), "UTF-16LE BOM")

	reread, err := ReadFile(out)
	require.NoError(t, err)
	assert.True(t, cfg.Equal(reread))
	assert.Equal(t, cfg.String(), testutil.ReadUTF16(t, out))
}

func TestConfig_ReplacementCharacterRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, cfg.UpdateSection("Tester", P("Description", "a\uFFFDb \U0001F600")))

	path := filepath.Join(t.TempDir(), "fffd.ini")
	require.NoError(t, cfg.WriteFile(path))

	reread, err := ReadFile(path)
	require.NoError(t, err)
	v, _ := reread.Get("Tester", "Description")
	assert.Equal(t, "a\uFFFDb \U0001F600", v)
}

func TestReadFile_BigEndian(t *testing.T) {
	path := filepath.Join(t.TempDir(), "be.ini")
	// BOM FE FF followed by "[A]\nk=\U0001F600" as big-endian code units.
	data := []byte{0xFE, 0xFF, 0x00, '[', 0x00, 'A', 0x00, ']', 0x00, '\n', 0x00, 'k', 0x00, '=', 0xD8, 0x3D, 0xDE, 0x00}
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := ReadFile(path)
	require.NoError(t, err)
	v, _ := cfg.Get("A", "k")
	assert.Equal(t, "\U0001F600", v)
}

func TestConfig_WriteTo(t *testing.T) {
	cfg := testConfig(t)

	var buf bytes.Buffer
	n, err := cfg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	// Two bytes per ASCII code unit plus the BOM.
	assert.Equal(t, 2+2*len(cfg.String()), buf.Len())
}

func TestConfig_StringContinuation(t *testing.T) {
	cfg := &Config{}
	cfg.AddSection("A").set("k", "one\ntwo")

	assert.Equal(t, "[A]\r\nk = one\r\n\ttwo\r\n\r\n", cfg.String())

	reread, err := Parse(strings.NewReader(cfg.String()))
	require.NoError(t, err)
	assert.True(t, cfg.Equal(reread))
}
