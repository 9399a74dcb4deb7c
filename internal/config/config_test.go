package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/dayline/internal/scheduler"
	"github.com/alexanderramin/dayline/internal/timeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDB, EnvLogLevel, EnvBlockMinutes, EnvWindowFallback, EnvAddr} {
		t.Setenv(k, "")
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 15, cfg.Schedule.BlockMinutes)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, scheduler.DefaultPolicy(), cfg.Policy())
	assert.Len(t, cfg.SeedBlocks(), 3)
}

func TestLoadFile_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile_OverlaysFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
db_path: /tmp/dl.db
log:
  level: debug
schedule:
  block_minutes: 30
  window_fallback: true
  default_quality: b
time_blocks:
  - name: night
    start: "22:00"
    end: "02:00"
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/dl.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format, "unset keys keep defaults")
	assert.Equal(t, 30, cfg.Schedule.BlockMinutes)
	assert.Equal(t, scheduler.DefaultPriority, cfg.Schedule.DefaultPriority)

	p := cfg.Policy()
	assert.True(t, p.WindowFallback)
	assert.Equal(t, "B", p.DefaultQuality)

	grid, err := cfg.Grid()
	require.NoError(t, err)
	assert.Equal(t, 48, grid.Blocks())

	require.Len(t, cfg.TimeBlocks, 1)
	assert.Equal(t, "night", cfg.SeedBlocks()[0].Name)
}

func TestLoadFile_EmptyFile(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFile(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile_RejectsUnknownKeys(t *testing.T) {
	clearEnv(t)
	_, err := LoadFile(writeConfig(t, "schedule:\n  block_size: 10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block_size")
}

func TestLoadFile_EnvBeatsFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "schedule:\n  block_minutes: 30\nserver:\n  addr: 0.0.0.0:1\n")
	t.Setenv(EnvBlockMinutes, "10")
	t.Setenv(EnvAddr, "127.0.0.1:9999")
	t.Setenv(EnvWindowFallback, "true")
	t.Setenv(EnvDB, "/data/x.db")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Schedule.BlockMinutes)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.True(t, cfg.Schedule.WindowFallback)
	assert.Equal(t, "/data/x.db", cfg.DBPath)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFile_BadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBlockMinutes, "ten")
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvBlockMinutes)
}

func TestLoad_UsesConfigEnvPath(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfig, writeConfig(t, "server:\n  addr: 127.0.0.1:1234\n"))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:1234", cfg.Server.Addr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"block size not a divisor", func(c *Config) { c.Schedule.BlockMinutes = 7 }, "block_minutes"},
		{"zero block size", func(c *Config) { c.Schedule.BlockMinutes = 0 }, "block_minutes"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad quality", func(c *Config) { c.Schedule.DefaultQuality = "E" }, "default_quality"},
		{"empty quality", func(c *Config) { c.Schedule.DefaultQuality = "" }, "default_quality"},
		{"negative priority", func(c *Config) { c.Schedule.DefaultPriority = -1 }, "default_priority"},
		{"empty db path", func(c *Config) { c.DBPath = " " }, "db_path"},
		{"bad block clock", func(c *Config) {
			c.TimeBlocks = []TimeBlockSeed{{Name: "x", Start: "25:00", End: "26:00"}}
		}, "time_blocks[0]"},
		{"duplicate block", func(c *Config) {
			c.TimeBlocks = []TimeBlockSeed{
				{Name: "Focus", Start: "09:00", End: "10:00"},
				{Name: "focus", Start: "11:00", End: "12:00"},
			}
		}, "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_BlockSizeWrapsSentinel(t *testing.T) {
	cfg := Default()
	cfg.Schedule.BlockMinutes = 7
	assert.ErrorIs(t, cfg.Validate(), timeline.ErrInvalidBlockSize)
}

func TestScheduler_UsesConfiguredGrid(t *testing.T) {
	cfg := Default()
	cfg.Schedule.BlockMinutes = 5
	s, err := cfg.Scheduler()
	require.NoError(t, err)
	assert.Equal(t, 288, s.Grid().Blocks())
}
