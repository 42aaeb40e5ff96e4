package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.05, c.Alpha)
	assert.Equal(t, 10.0, c.BinWidth)
	assert.True(t, c.Percentiles)
	assert.Equal(t, "host_is_superhost", c.GroupColumn)
	assert.Equal(t, "t", c.SuperValue)
	assert.Equal(t, "png", c.ImageFormat)
	assert.Equal(t, []string{"price"}, c.PriceColumns)
}

func TestSaveLoadRoundTrip_AndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "nested", "config.yaml")

	c := &Global{
		Alpha: 0.01, BinWidth: 25, Clip99: true, GroupColumn: "is_super", SuperValue: "yes",
		Delimiter: ";", ImageFormat: "svg", LogLevel: "debug",
	}
	require.NoError(t, Save(c, p))

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 0.01, got.Alpha)
	assert.Equal(t, 25.0, got.BinWidth)
	assert.True(t, got.Clip99)
	assert.Equal(t, "is_super", got.GroupColumn)
	r, err := got.DelimiterRune()
	require.NoError(t, err)
	assert.Equal(t, ';', r)

	t.Setenv("HOSTCOMPARE_ALPHA", "0.1")
	got, err = Load(p)
	require.NoError(t, err)
	assert.Equal(t, 0.1, got.Alpha)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("alpha: 2\n"), 0o644))
	_, err := Load(p)
	assert.ErrorContains(t, err, "invalid alpha")

	require.NoError(t, os.WriteFile(p, []byte("delimiter: '#'\n"), 0o644))
	_, err = Load(p)
	assert.ErrorContains(t, err, "unsupported delimiter")

	require.NoError(t, os.WriteFile(p, []byte("alpha: [unclosed\n"), 0o644))
	_, err = Load(p)
	assert.ErrorContains(t, err, "read config")
}
