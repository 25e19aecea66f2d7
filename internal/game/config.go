package game

import (
	"math"
	"os"
	"strconv"
	"time"
)

// Config holds game configuration options, populated from the
// environment (a .env file is loaded by main before this runs).
type Config struct {
	// Seed is the master seed all level seeds derive from. Zero means
	// roll one from the clock.
	Seed int64

	// FOV is the viewer field of view in radians.
	FOV float64

	// MaxDepth is the ray range in tiles; walls beyond it fade to
	// background.
	MaxDepth float64

	// SpawnExclusionRadius keeps spawns away from the level entry.
	SpawnExclusionRadius int

	// MaxMonsters and MaxItems bound per-level entity placement. The
	// actual count also scales with depth.
	MaxMonsters int
	MaxItems    int
}

// ConfigFromEnv builds a config from DEEPDELVE_* environment variables,
// falling back to defaults for anything unset or malformed.
func ConfigFromEnv() Config {
	cfg := Config{
		Seed:                 time.Now().UnixNano(),
		FOV:                  math.Pi / 3,
		MaxDepth:             12,
		SpawnExclusionRadius: 4,
		MaxMonsters:          8,
		MaxItems:             5,
	}

	if v, err := strconv.ParseInt(os.Getenv("DEEPDELVE_SEED"), 10, 64); err == nil && v != 0 {
		cfg.Seed = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("DEEPDELVE_FOV_DEGREES"), 64); err == nil && v > 10 && v < 170 {
		cfg.FOV = v * math.Pi / 180
	}
	if v, err := strconv.ParseFloat(os.Getenv("DEEPDELVE_MAX_DEPTH"), 64); err == nil && v > 1 {
		cfg.MaxDepth = v
	}
	if v, err := strconv.Atoi(os.Getenv("DEEPDELVE_SPAWN_EXCLUSION")); err == nil && v >= 0 {
		cfg.SpawnExclusionRadius = v
	}
	return cfg
}
