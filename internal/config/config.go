// Package config loads dayline settings from built-in defaults, an optional
// YAML file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/dayline/internal/domain"
	"github.com/alexanderramin/dayline/internal/scheduler"
	"github.com/alexanderramin/dayline/internal/timeline"
)

const (
	EnvConfig         = "DAYLINE_CONFIG"
	EnvDB             = "DAYLINE_DB"
	EnvLogLevel       = "DAYLINE_LOG_LEVEL"
	EnvBlockMinutes   = "DAYLINE_BLOCK_MINUTES"
	EnvWindowFallback = "DAYLINE_WINDOW_FALLBACK"
	EnvAddr           = "DAYLINE_ADDR"

	DefaultAddr = "127.0.0.1:8420"
)

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ScheduleConfig struct {
	BlockMinutes       int    `yaml:"block_minutes"`
	DefaultPriority    int    `yaml:"default_priority"`
	DefaultQuality     string `yaml:"default_quality"`
	WindowFallback     bool   `yaml:"window_fallback"`
	CollisionNameLimit int    `yaml:"collision_name_limit"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// TimeBlockSeed is a named window inserted at startup when no block with
// that name exists yet.
type TimeBlockSeed struct {
	Name  string `yaml:"name"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type Config struct {
	DBPath     string          `yaml:"db_path"`
	Log        LogConfig       `yaml:"log"`
	Schedule   ScheduleConfig  `yaml:"schedule"`
	Server     ServerConfig    `yaml:"server"`
	TimeBlocks []TimeBlockSeed `yaml:"time_blocks"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DBPath: defaultDBPath(),
		Log:    LogConfig{Level: "info", Format: "console"},
		Schedule: ScheduleConfig{
			BlockMinutes:       timeline.CanonicalBlockMinutes,
			DefaultPriority:    scheduler.DefaultPriority,
			DefaultQuality:     scheduler.DefaultQuality,
			WindowFallback:     false,
			CollisionNameLimit: scheduler.DefaultCollisionNameLimit,
		},
		Server: ServerConfig{Addr: DefaultAddr},
		TimeBlocks: []TimeBlockSeed{
			{Name: "morning", Start: "06:00", End: "12:00"},
			{Name: "afternoon", Start: "12:00", End: "18:00"},
			{Name: "evening", Start: "18:00", End: "23:00"},
		},
	}
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dayline"
	}
	return filepath.Join(home, ".dayline")
}

func defaultDBPath() string {
	return filepath.Join(defaultDir(), "dayline.db")
}

// DefaultPath is the config file used when DAYLINE_CONFIG is unset.
func DefaultPath() string {
	return filepath.Join(defaultDir(), "config.yaml")
}

// Load reads the config file named by DAYLINE_CONFIG, or the default path,
// then applies environment overrides. A missing file is not an error.
func Load() (Config, error) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		path = DefaultPath()
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit file path.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("opening config %s: %w", path, err)
	default:
		defer f.Close()
		if err := decode(f, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decode overlays r onto cfg. Unknown keys are rejected.
func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDB); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvBlockMinutes); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBlockMinutes, err)
		}
		c.Schedule.BlockMinutes = n
	}
	if v := os.Getenv(EnvWindowFallback); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWindowFallback, err)
		}
		c.Schedule.WindowFallback = b
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	return nil
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks every field that the rest of the program trusts.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("db_path is required")
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level %q: want debug, info, warn or error", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format %q: want console or json", c.Log.Format)
	}
	if _, err := timeline.NewGrid(c.Schedule.BlockMinutes); err != nil {
		return fmt.Errorf("schedule.block_minutes: %w", err)
	}
	if c.Schedule.DefaultPriority < 0 {
		return fmt.Errorf("schedule.default_priority must be >= 0, got %d", c.Schedule.DefaultPriority)
	}
	if q, ok := domain.ParseQuality(c.Schedule.DefaultQuality); !ok || q == "" {
		return fmt.Errorf("schedule.default_quality %q: want one of A, B, C, D", c.Schedule.DefaultQuality)
	}
	seen := make(map[string]bool, len(c.TimeBlocks))
	for i, tb := range c.TimeBlocks {
		block := domain.TimeBlock{Name: tb.Name, Start: tb.Start, End: tb.End}
		if err := block.Validate(); err != nil {
			return fmt.Errorf("time_blocks[%d]: %w", i, err)
		}
		key := strings.ToLower(strings.TrimSpace(tb.Name))
		if seen[key] {
			return fmt.Errorf("time_blocks[%d]: duplicate name %q", i, tb.Name)
		}
		seen[key] = true
	}
	return nil
}

// Grid returns the timeline grid for the configured block size.
func (c Config) Grid() (timeline.Grid, error) {
	return timeline.NewGrid(c.Schedule.BlockMinutes)
}

// Policy returns the scheduler policy.
func (c Config) Policy() scheduler.Policy {
	q, _ := domain.ParseQuality(c.Schedule.DefaultQuality)
	return scheduler.Policy{
		DefaultPriority:    c.Schedule.DefaultPriority,
		DefaultQuality:     string(q),
		WindowFallback:     c.Schedule.WindowFallback,
		CollisionNameLimit: c.Schedule.CollisionNameLimit,
	}
}

// Scheduler builds a scheduler from Grid and Policy.
func (c Config) Scheduler() (*scheduler.Scheduler, error) {
	grid, err := c.Grid()
	if err != nil {
		return nil, err
	}
	return scheduler.New(grid, c.Policy()), nil
}

// SeedBlocks converts the time_blocks list to domain values.
func (c Config) SeedBlocks() []domain.TimeBlock {
	out := make([]domain.TimeBlock, 0, len(c.TimeBlocks))
	for _, tb := range c.TimeBlocks {
		out = append(out, domain.TimeBlock{Name: tb.Name, Start: tb.Start, End: tb.End})
	}
	return out
}
