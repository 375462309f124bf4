package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/attack15/internal/engine"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "attack15.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, engine.DefaultRules(), cfg.Game)
	assert.Equal(t, time.Second/60, cfg.Session.TickInterval())
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9000"
game:
  round_duration: 90s
  reset_interval: 10s
  target_sum: 12
session:
  tick_rate: 30
  idle_timeout: 90s
log:
  level: debug
  development: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 90*time.Second, cfg.Game.RoundDuration)
	assert.Equal(t, 10*time.Second, cfg.Game.ResetInterval)
	assert.Equal(t, 12, cfg.Game.TargetSum)
	assert.Equal(t, 3, cfg.Game.Rows, "keys missing from the file keep their defaults")
	assert.Equal(t, 30, cfg.Session.TickRate)
	assert.Equal(t, 90*time.Second, cfg.Session.IdleTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":9000\"\n")
	t.Setenv("ATTACK15_ADDR", ":7000")
	t.Setenv("ATTACK15_ROUND_DURATION", "2m")
	t.Setenv("ATTACK15_TICK_RATE", "20")
	t.Setenv("ATTACK15_IDLE_TIMEOUT", "0s")
	t.Setenv("ATTACK15_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 2*time.Minute, cfg.Game.RoundDuration)
	assert.Equal(t, 20, cfg.Session.TickRate)
	assert.Zero(t, cfg.Session.IdleTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.Server.AllowedOrigins)
}

func TestLoadFailsFast(t *testing.T) {
	cases := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "non-positive round duration", body: "game:\n  round_duration: 0s\n"},
		{name: "negative reset interval", body: "game:\n  reset_interval: -5s\n"},
		{name: "zero tick rate", body: "session:\n  tick_rate: 0\n"},
		{name: "negative idle timeout", body: "session:\n  idle_timeout: -1m\n"},
		{name: "unknown log level", body: "log:\n  level: shouty\n"},
		{name: "bad env duration", env: map[string]string{"ATTACK15_RESET_INTERVAL": "soon"}},
		{name: "bad env int", env: map[string]string{"ATTACK15_TICK_RATE": "fast"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			path := ""
			if tc.body != "" {
				path = writeConfig(t, tc.body)
			}
			_, err := Load(path)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadInvalidRulesKeepsEngineError(t *testing.T) {
	path := writeConfig(t, "game:\n  target_sum: -3\n")
	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.ErrorIs(t, err, engine.ErrInvalidRules)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
