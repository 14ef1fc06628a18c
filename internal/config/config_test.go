package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
log:
  level: debug
window:
  scale: 2
headless:
  enabled: true
  ticks: 600
game:
  seed: 42
metrics:
  addr: ":2112"
`))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Encoding, "unset keys keep defaults")
	assert.Equal(t, 2, cfg.Window.Scale)
	assert.Equal(t, 60, cfg.Window.TPS)
	assert.Equal(t, 960, cfg.Framebuffer.Width)
	assert.True(t, cfg.Headless.Enabled)
	assert.Equal(t, 60, cfg.Headless.Hz)
	assert.Equal(t, uint64(600), cfg.Headless.Ticks)
	assert.Equal(t, uint32(42), cfg.Game.Seed)
	assert.Equal(t, ":2112", cfg.Metrics.Addr)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte("window:\n  scale: 0\n"))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Parse([]byte("log:\n  encoding: xml\n"))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Parse([]byte("window: [1, 2"))
	assert.Error(t, err)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wireboids.yaml")
	require.NoError(t, os.WriteFile(path, []byte("framebuffer:\n  width: 320\n  height: 180\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Framebuffer.Width)

	t.Setenv(EnvPath, path)
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 180, cfg.Framebuffer.Height)

	t.Setenv(EnvPath, "")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshalRoundTrip(t *testing.T) {
	in := Default()
	in.Game.Seed = 9
	data, err := in.Marshal()
	require.NoError(t, err)
	out, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
