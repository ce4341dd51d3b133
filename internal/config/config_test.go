package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rulerush.yaml")
	data := []byte(`
game:
  max_mistakes: 5
  tick_interval: 50ms
rules:
  negation_probability: 0.25
server:
  addr: ":9090"
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Game.MaxMistakes)
	assert.Equal(t, 50*time.Millisecond, cfg.Game.TickInterval)
	assert.InDelta(t, 0.25, cfg.Rules.NegationProbability, 1e-9)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	// untouched keys keep defaults
	assert.Equal(t, 500, cfg.Generator.ValidAttempts)
	assert.Equal(t, 15*time.Second, cfg.Game.TimerBase)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("RULERUSH_ADDR", ":7000")
	t.Setenv("RULERUSH_MAX_MISTAKES", "4")
	t.Setenv("RULERUSH_NEGATION_PROBABILITY", "0.5")
	t.Setenv("RULERUSH_TICK_INTERVAL", "200ms")
	t.Setenv("RULERUSH_VALID_ATTEMPTS", "not-a-number")

	cfg := FromEnv(Default())
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 4, cfg.Game.MaxMistakes)
	assert.InDelta(t, 0.5, cfg.Rules.NegationProbability, 1e-9)
	assert.Equal(t, 200*time.Millisecond, cfg.Game.TickInterval)
	assert.Equal(t, 500, cfg.Generator.ValidAttempts)
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no mistakes allowed", func(c *Config) { c.Game.MaxMistakes = 0 }},
		{"max below base objects", func(c *Config) { c.Game.MaxObjects = 2 }},
		{"probability above one", func(c *Config) { c.Rules.NegationProbability = 1.5 }},
		{"inverted thresholds", func(c *Config) { c.Rules.GreaterThanMin = 7 }},
		{"zero attempts", func(c *Config) { c.Generator.DistractorAttempts = 0 }},
		{"timer min above base", func(c *Config) { c.Game.TimerMin = time.Minute }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
