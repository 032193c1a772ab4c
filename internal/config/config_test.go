package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Assets.Verify)
	assert.Equal(t, 60, cfg.Render.FPS)
	assert.Equal(t, 44100, cfg.Audio.SampleRate)
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(p, []byte("log:\n  level: debug\nrender:\n  fps: 30\n"), 0o644))

	cfg, src, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, p, src)
	assert.Equal(t, log.DebugLevel, cfg.Level())
	assert.Equal(t, 30, cfg.Render.FPS)
	assert.True(t, cfg.Audio.Enabled, "unset keys keep their defaults")
}

func TestLoadEnvOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(p, []byte("debug: false\n"), 0o644))
	t.Setenv("MILLENNIUM_DEBUG", "true")
	t.Setenv("MILLENNIUM_LOGIC_FPS", "120")

	cfg, _, err := Load(p)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 120, cfg.Logic.FPS)
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, src, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Embedded, src)
	assert.Equal(t, Default(), cfg)
}

func TestLoadLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", FileName), []byte("audio:\n  enabled: false\n"), 0o644))

	cfg, src, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("configs", FileName), src)
	assert.False(t, cfg.Audio.Enabled)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"level":       func(c *Config) { c.Log.Level = "loud" },
		"logic fps":   func(c *Config) { c.Logic.FPS = -1 },
		"render fps":  func(c *Config) { c.Render.FPS = 0 },
		"sample rate": func(c *Config) { c.Audio.SampleRate = 100 },
		"tick rate":   func(c *Config) { c.Platform.TickRate = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
