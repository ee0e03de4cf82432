package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.Tournament.MinPlayers)
	assert.Len(t, cfg.Tournament.Courts, 4)
	assert.True(t, cfg.Tournament.AvoidRepeatPartners)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()

	err := cfg.applyEnv(lookupFrom(map[string]string{
		"REDIS_ADDR":            "redis:6380",
		"REDIS_DB":              "2",
		"DISCORD_TOKEN":         "token",
		"COURTS":                "Center, , Side ",
		"MIN_PLAYERS":           "8",
		"RANDOM_SEED":           "99",
		"LOG_LEVEL":             "debug",
		"AVOID_REPEAT_PARTNERS": "false",
	}))
	require.NoError(t, err)

	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "token", cfg.Discord.Token)
	assert.Equal(t, []string{"Center", "Side"}, cfg.Tournament.Courts)
	assert.Equal(t, 8, cfg.Tournament.MinPlayers)
	assert.Equal(t, int64(99), cfg.Tournament.RandomSeed)
	assert.False(t, cfg.Tournament.AvoidRepeatPartners)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestApplyEnv_InvalidNumbers(t *testing.T) {
	for _, key := range []string{"REDIS_DB", "MIN_PLAYERS", "RANDOM_SEED", "AVOID_REPEAT_PARTNERS"} {
		t.Run(key, func(t *testing.T) {
			err := Default().applyEnv(lookupFrom(map[string]string{key: "nope"}))
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no redis", func(c *Config) { c.Redis.Addr = "" }},
		{"negative db", func(c *Config) { c.Redis.DB = -1 }},
		{"no courts", func(c *Config) { c.Tournament.Courts = nil }},
		{"min players", func(c *Config) { c.Tournament.MinPlayers = 0 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mexicano.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
redis:
  addr: file:6379
  db: 1
tournament:
  courts: [North, South]
  min_players: 6
metrics_addr: ":9100"
`), 0o600))

	t.Setenv(FileEnv, path)
	t.Setenv("REDIS_ADDR", "env:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env:6379", cfg.Redis.Addr)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, []string{"North", "South"}, cfg.Tournament.Courts)
	assert.Equal(t, 6, cfg.Tournament.MinPlayers)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	// untouched by the file
	assert.True(t, cfg.Tournament.AvoidRepeatPartners)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv(FileEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
