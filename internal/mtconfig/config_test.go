package mtconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg := &Config{}
	cfg.AddSection("Common").set("Login", "1")
	tester := cfg.AddSection("Tester")
	tester.set("Expert", "MACD.ex5")
	tester.set("Model", "1")
	cfg.AddSection("TesterInputs")
	return cfg
}

func TestConfig_UpdateSectionKeepsOrder(t *testing.T) {
	cfg := testConfig(t)

	require.NoError(t, cfg.UpdateSection("Tester", P("Symbol", "EURUSD"), P("Model", "4")))

	s, ok := cfg.Section("Tester")
	require.True(t, ok)
	assert.Equal(t, []Pair{
		{Key: "Expert", Value: "MACD.ex5"},
		{Key: "Model", Value: "4"},
		{Key: "Symbol", Value: "EURUSD"},
	}, s.Pairs())
}

func TestConfig_UpdateSectionIdempotent(t *testing.T) {
	once := testConfig(t)
	twice := testConfig(t)
	pairs := []Pair{P("Symbol", "EURUSD"), P("Period", "H1")}

	require.NoError(t, once.UpdateSection("Tester", pairs...))
	require.NoError(t, twice.UpdateSection("Tester", pairs...))
	require.NoError(t, twice.UpdateSection("Tester", pairs...))

	assert.True(t, once.Equal(twice))
}

func TestConfig_UpdateSectionMissing(t *testing.T) {
	cfg := testConfig(t)

	err := cfg.UpdateSection("Nope", P("a", "b"))

	require.Error(t, err)
	assert.True(t, IsMissingSection(err))
	assert.False(t, cfg.HasSection("Nope"), "update must not create sections")
}

func TestConfig_KeysAreCaseSensitive(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, cfg.UpdateSection("Tester", P("model", "9")))

	v, _ := cfg.Get("Tester", "Model")
	assert.Equal(t, "1", v)
	v, _ = cfg.Get("Tester", "model")
	assert.Equal(t, "9", v)
}

func TestConfig_CloneIsIndependent(t *testing.T) {
	base := testConfig(t)
	clone := New(base)

	require.NoError(t, clone.UpdateSection("Tester", P("Model", "4"), P("Symbol", "GBPUSD")))
	clone.AddSection("Extra")

	v, _ := base.Get("Tester", "Model")
	assert.Equal(t, "1", v)
	_, ok := base.Get("Tester", "Symbol")
	assert.False(t, ok)
	assert.Equal(t, []string{"Common", "Tester", "TesterInputs"}, base.SectionNames())
	assert.False(t, base.Equal(clone))
}

func TestConfig_ZeroValue(t *testing.T) {
	var cfg Config
	assert.Empty(t, cfg.SectionNames())
	_, ok := cfg.Get("Tester", "Model")
	assert.False(t, ok)

	cfg.AddSection("Tester")
	assert.True(t, cfg.HasSection("Tester"))
	assert.Same(t, cfg.AddSection("Tester"), mustSection(t, &cfg, "Tester"))
}

func mustSection(t *testing.T, cfg *Config, name string) *Section {
	t.Helper()
	s, ok := cfg.Section(name)
	require.True(t, ok)
	return s
}
