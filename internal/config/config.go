package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates the settings of the cheese_hunt demo.
type Config struct {
	Maze    MazeConfig
	Arena   ArenaConfig
	Logging LoggingConfig
}

// MazeConfig governs maze generation.
type MazeConfig struct {
	Width          int
	Height         int
	Seed           int64
	WallDensity    float64
	MudProbability float64
	CheeseCount    int
}

// ArenaConfig governs the match itself.
type ArenaConfig struct {
	Policies         []string // one planner policy per agent
	ClusterThreshold int64
	MaxTurns         int
	Refine           bool
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

const (
	defaultWidth            = 21
	defaultHeight           = 15
	defaultSeed             = 1
	defaultWallDensity      = 0.7
	defaultMudProbability   = 0.1
	defaultCheeseCount      = 41
	defaultPolicies         = "greedy-each-turn,cluster-weighted"
	defaultClusterThreshold = 5
	defaultMaxTurns         = 2000
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Arena: ArenaConfig{
			Policies: splitCSV(valueOrDefault("ARENA_POLICIES", defaultPolicies)),
			Refine:   parseBoolWithDefault("TOUR_REFINEMENT", false),
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
			IncludeCaller: parseBoolWithDefault("LOG_INCLUDE_CALLER", false),
		},
	}

	var err error
	if cfg.Maze.Seed, err = parseInt64("MAZE_SEED", defaultSeed); err != nil {
		return Config{}, err
	}
	if cfg.Maze.Width, err = parsePositive("MAZE_WIDTH", defaultWidth); err != nil {
		return Config{}, err
	}
	if cfg.Maze.Height, err = parsePositive("MAZE_HEIGHT", defaultHeight); err != nil {
		return Config{}, err
	}
	if cfg.Maze.CheeseCount, err = parsePositive("CHEESE_COUNT", defaultCheeseCount); err != nil {
		return Config{}, err
	}
	if cfg.Arena.MaxTurns, err = parsePositive("MAX_TURNS", defaultMaxTurns); err != nil {
		return Config{}, err
	}
	if cfg.Maze.WallDensity, err = parseProbability("MAZE_WALL_DENSITY", defaultWallDensity); err != nil {
		return Config{}, err
	}
	if cfg.Maze.MudProbability, err = parseProbability("MAZE_MUD_PROBABILITY", defaultMudProbability); err != nil {
		return Config{}, err
	}

	if cfg.Arena.ClusterThreshold, err = parseInt64("CLUSTER_THRESHOLD", defaultClusterThreshold); err != nil {
		return Config{}, err
	}
	if cfg.Arena.ClusterThreshold < 0 {
		return Config{}, fmt.Errorf("CLUSTER_THRESHOLD %d must be non-negative", cfg.Arena.ClusterThreshold)
	}

	if cells := cfg.Maze.Width * cfg.Maze.Height; cfg.Maze.CheeseCount+len(cfg.Arena.Policies) > cells {
		return Config{}, fmt.Errorf("%d cheese and %d agents do not fit a %dx%d maze",
			cfg.Maze.CheeseCount, len(cfg.Arena.Policies), cfg.Maze.Width, cfg.Maze.Height)
	}
	if len(cfg.Arena.Policies) == 0 {
		return Config{}, fmt.Errorf("ARENA_POLICIES names no policy")
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseInt64(key string, fallback int64) (int64, error) {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		return n, nil
	}
	return fallback, nil
}

func parsePositive(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if n <= 0 {
			return 0, fmt.Errorf("%s %d must be positive", key, n)
		}
		return n, nil
	}
	return fallback, nil
}

func parseProbability(key string, fallback float64) (float64, error) {
	if v := os.Getenv(key); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if p < 0 || p > 1 {
			return 0, fmt.Errorf("%s %g is outside [0,1]", key, p)
		}
		return p, nil
	}
	return fallback, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
