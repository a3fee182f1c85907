// Package config loads frontend settings from .env, SNAKE_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"grid-snake/game"
	"grid-snake/game/types"

	"github.com/joho/godotenv"
)

type Config struct {
	Resolution     int
	TileSize       int
	TicksPerSecond int
	MovesPerSecond int
	Seed           uint64
	LogLevel       string
	LogFile        string
	Sound          bool
}

// Default is the classic 10x10 board at 60 ticks and 6 moves per second
func Default() Config {
	return Config{
		Resolution:     types.DefaultResolution,
		TileSize:       types.DefaultTileSize,
		TicksPerSecond: types.DefaultTicksPerSecond,
		MovesPerSecond: types.DefaultMovesPerSecond,
		LogLevel:       "info",
	}
}

// Load starts from defaults, applies .env and the environment, then parses
// args as flags for the program called name
func Load(name string, args []string, defaults Config) (Config, error) {
	// A missing .env is normal outside development
	_ = godotenv.Load()

	cfg := defaults
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.IntVar(&cfg.Resolution, "resolution", cfg.Resolution, "board side in pixels")
	fs.IntVar(&cfg.TileSize, "tile", cfg.TileSize, "tile size in pixels, must divide the resolution")
	fs.IntVar(&cfg.TicksPerSecond, "tps", cfg.TicksPerSecond, "simulation ticks per second")
	fs.IntVar(&cfg.MovesPerSecond, "speed", cfg.MovesPerSecond, "snake moves per second")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "food placement seed, 0 for random")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "zerolog level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file instead of stderr")
	fs.BoolVar(&cfg.Sound, "sound", cfg.Sound, "play audio cues")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	ints := map[string]*int{
		"SNAKE_RESOLUTION":       &c.Resolution,
		"SNAKE_TILE_SIZE":        &c.TileSize,
		"SNAKE_TICKS_PER_SECOND": &c.TicksPerSecond,
		"SNAKE_MOVES_PER_SECOND": &c.MovesPerSecond,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", types.ErrConfiguration, key, v)
		}
		*dst = n
	}

	if v := os.Getenv("SNAKE_SEED"); v != "" {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: SNAKE_SEED=%q is not an unsigned integer", types.ErrConfiguration, v)
		}
		c.Seed = n
	}
	if v := os.Getenv("SNAKE_SOUND"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: SNAKE_SOUND=%q is not a boolean", types.ErrConfiguration, v)
		}
		c.Sound = b
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.LogFile = v
	}
	return nil
}

// Validate checks the grid and cadence the same way a session would
func (c Config) Validate() error {
	if _, err := types.NewGrid(c.Resolution, c.TileSize); err != nil {
		return err
	}
	if _, err := game.NewCadence(c.TicksPerSecond, c.MovesPerSecond); err != nil {
		return err
	}
	return nil
}

// Game returns the session configuration
func (c Config) Game() game.Config {
	return game.Config{
		Resolution:     c.Resolution,
		TileSize:       c.TileSize,
		TicksPerSecond: c.TicksPerSecond,
		MovesPerSecond: c.MovesPerSecond,
		Seed:           c.Seed,
	}
}
