// Package setup composes the full generation pipeline: noise seeding,
// cellular-automata shaping, connectivity repair, physics-aware placement,
// and final validation. Each stage consumes the previous stage's output;
// grids are copied, never mutated in place.
package setup

import (
	"fmt"
	"time"

	"cavernfall/pkg/engine/rng"
	"cavernfall/pkg/engine/world"
	"cavernfall/pkg/game/connectivity"
	"cavernfall/pkg/game/generator"
	"cavernfall/pkg/game/level"
	"cavernfall/pkg/game/levelgen"
	"cavernfall/pkg/game/physics"
	"cavernfall/pkg/game/regions"
)

// Config collects every stage's parameters plus the run seed.
type Config struct {
	Seed            string
	Seeder          generator.SeederConfig
	Automata        generator.AutomataConfig
	Connectivity    connectivity.Config
	Physics         physics.Physics
	Spawn           levelgen.SpawnConfig
	Goal            levelgen.GoalConfig
	Coins           levelgen.CoinConfig
	Platforms       levelgen.PlatformConfig
	Enemies         levelgen.EnemyConfig
	SmoothingPasses int
}

// DefaultConfig returns a full default configuration for the given seed.
func DefaultConfig(seed string) Config {
	return Config{
		Seed:         seed,
		Seeder:       generator.DefaultSeederConfig(),
		Automata:     generator.DefaultAutomataConfig(),
		Connectivity: connectivity.DefaultConfig(),
		Physics:      physics.DefaultPhysics(),
		Spawn:        levelgen.DefaultSpawnConfig(),
		Goal:         levelgen.DefaultGoalConfig(),
		Coins:        levelgen.DefaultCoinConfig(),
		Platforms:    levelgen.DefaultPlatformConfig(),
		Enemies:      levelgen.DefaultEnemyConfig(),
	}
}

// Validate checks every stage's configuration before the run starts.
func (c Config) Validate() error {
	if c.Seed == "" {
		return fmt.Errorf("setup: seed must not be empty")
	}
	if err := c.Seeder.Validate(); err != nil {
		return err
	}
	if err := c.Automata.Validate(); err != nil {
		return err
	}
	if err := c.Connectivity.Validate(); err != nil {
		return err
	}
	if err := c.Physics.Validate(); err != nil {
		return err
	}
	if err := c.Platforms.Validate(); err != nil {
		return err
	}
	if c.SmoothingPasses < 0 {
		return fmt.Errorf("setup: smoothing passes must be non-negative, got %d", c.SmoothingPasses)
	}
	return nil
}

// StageTiming records how long one pipeline stage took. Reporting only;
// the connectivity fallback is the sole stage where time drives control.
type StageTiming struct {
	Name    string
	Elapsed time.Duration
}

// Result is a generated level plus run diagnostics.
type Result struct {
	Level          *level.Level
	Connectivity   connectivity.Report
	ReachableRatio float64
	GoalRelocated  bool
	Timings        []StageTiming
}

// Generate runs the whole pipeline for one seed. Generation failure
// (placement exhaustion, unconnectable cave) returns an error naming the
// constraint so the caller can retry with a new seed; contract violations
// inside stages panic.
func Generate(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := rng.New(cfg.Seed)
	result := &Result{}

	timed := func(name string, fn func()) {
		start := time.Now()
		fn()
		result.Timings = append(result.Timings, StageTiming{Name: name, Elapsed: time.Since(start)})
	}

	seeder, err := generator.NewSeeder(cfg.Seeder)
	if err != nil {
		return nil, err
	}
	var gen generator.GridGenerator = seeder

	var grid *world.Grid
	timed("seed", func() {
		grid, err = gen.Generate(r)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", gen.Name(), err)
	}

	timed("automata", func() {
		grid = generator.Simulate(grid, cfg.Automata)
	})

	timed("connectivity", func() {
		grid, result.Connectivity = connectivity.ValidateWithFallback(grid, cfg.Connectivity, r)
	})
	if !result.Connectivity.Connected {
		return nil, fmt.Errorf("cave could not be connected (%s after %d attempts, score %.2f)",
			result.Connectivity.Outcome, result.Connectivity.Attempts, result.Connectivity.Score)
	}

	if cfg.SmoothingPasses > 0 {
		timed("smoothing", func() {
			grid = generator.MicroSmooth(grid, cfg.SmoothingPasses)
		})
		// Smoothing can pinch a corridor shut; re-check rather than
		// hand a disconnected cave to the placers.
		labeling := regions.Detect(grid)
		if !connectivity.IsConnected(labeling, cfg.Connectivity) {
			grid, result.Connectivity = connectivity.ValidateWithFallback(grid, cfg.Connectivity, r)
			if !result.Connectivity.Connected {
				return nil, fmt.Errorf("cave disconnected by smoothing and could not be repaired")
			}
		}
	}

	if v := grid.Validate(); v != "" {
		panic("Generated invalid grid: " + v)
	}

	lvl := &level.Level{Grid: grid, Seed: cfg.Seed}

	timed("spawn", func() {
		lvl.Spawn, err = levelgen.PlaceSpawn(grid, cfg.Spawn, r)
	})
	if err != nil {
		return nil, fmt.Errorf("generation aborted: %w", err)
	}

	var goal levelgen.GoalPlacement
	timed("goal", func() {
		goal, err = levelgen.PlaceGoal(grid, lvl.Spawn, cfg.Physics, cfg.Goal, r)
	})
	if err != nil {
		return nil, fmt.Errorf("generation aborted: %w", err)
	}
	lvl.Goal = goal.Point

	var platforms levelgen.PlatformResult
	timed("platforms", func() {
		platforms = levelgen.PlacePlatforms(grid, lvl.Spawn, lvl.Goal, cfg.Physics, cfg.Platforms, r)
	})
	lvl.Platforms = platforms.Platforms
	result.ReachableRatio = platforms.ReachableRatio

	// The goal was deliberately unreachable by walking; platforms must
	// have connected it. If not, re-place it in post-platform mode.
	if !levelgen.ValidateGoalWithPlatforms(grid, lvl.Platforms, lvl.Spawn, lvl.Goal, cfg.Physics) {
		goal, err = levelgen.PlaceGoalWithPlatforms(grid, lvl.Platforms, lvl.Spawn, cfg.Physics, cfg.Goal, r)
		if err != nil {
			return nil, fmt.Errorf("generation aborted: goal unreachable after platform placement: %w", err)
		}
		lvl.Goal = goal.Point
		result.GoalRelocated = true
	}

	timed("coins", func() {
		lvl.Coins, err = levelgen.PlaceCoins(grid, lvl.Platforms, lvl.Spawn, lvl.Goal, cfg.Physics, cfg.Coins, r)
	})
	if err != nil {
		return nil, fmt.Errorf("generation aborted: %w", err)
	}

	timed("enemies", func() {
		lvl.Enemies, err = levelgen.PlaceEnemies(platforms.Augmented, lvl.Spawn, lvl.Goal, cfg.Physics, cfg.Enemies, r)
	})
	if err != nil {
		return nil, fmt.Errorf("generation aborted: %w", err)
	}

	if err := lvl.Validate(); err != nil {
		panic("Generated invalid level: " + err.Error())
	}

	result.Level = lvl
	return result, nil
}
