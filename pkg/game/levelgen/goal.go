package levelgen

import (
	"fmt"

	"cavernfall/pkg/engine/rng"
	"cavernfall/pkg/engine/world"
	"cavernfall/pkg/game/level"
	"cavernfall/pkg/game/physics"
)

// GoalConfig controls goal placement.
type GoalConfig struct {
	MaxAttempts          int
	MinDistanceFromSpawn int
}

// DefaultGoalConfig returns the standard goal placement parameters.
func DefaultGoalConfig() GoalConfig {
	return GoalConfig{
		MaxAttempts:          150,
		MinDistanceFromSpawn: 20,
	}
}

// GoalPlacement is a placed goal plus whether the player can see it from
// spawn (straight line of sight with no wall in between).
type GoalPlacement struct {
	Point        world.Point
	Discoverable bool
}

// PlaceGoal picks a goal cell in pre-platform mode: footing, at least
// MinDistanceFromSpawn away (Manhattan), and deliberately not reachable
// from spawn by walking and dropping alone, so finishing the level
// requires the platforms placed later. Candidates are sampled from the
// injected source up to MaxAttempts.
func PlaceGoal(grid *world.Grid, spawn world.Point, phys physics.Physics, cfg GoalConfig, r *rng.Source) (GoalPlacement, error) {
	analyzer := physics.NewAnalyzer(grid, phys)
	walkable := analyzer.WalkReachable(spawn)

	candidates := standingCells(grid)
	if len(candidates) == 0 {
		return GoalPlacement{}, &PlacementError{
			Entity:   "goal",
			Attempts: 0,
			Reason:   "no floor cell with footing",
		}
	}

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		p := candidates[r.Intn(len(candidates))]
		if p == spawn {
			continue
		}
		if world.ManhattanDistance(p, spawn) < cfg.MinDistanceFromSpawn {
			continue
		}
		if walkable.Standing.Has(p) {
			continue
		}
		return GoalPlacement{
			Point:        p,
			Discoverable: hasLineOfSight(grid, spawn, p),
		}, nil
	}

	return GoalPlacement{}, &PlacementError{
		Entity:   "goal",
		Attempts: cfg.MaxAttempts,
		Reason: fmt.Sprintf("no footed cell at least %d tiles from spawn and off the walkable area",
			cfg.MinDistanceFromSpawn),
	}
}

// PlaceGoalWithPlatforms picks a goal in post-platform mode: the invariant
// flips, the goal must be reachable from spawn once the platform set is
// applied. Used when the pre-platform goal could not be connected.
func PlaceGoalWithPlatforms(grid *world.Grid, platforms []level.Platform, spawn world.Point, phys physics.Physics, cfg GoalConfig, r *rng.Source) (GoalPlacement, error) {
	augmented := level.ApplyPlatforms(grid, platforms)
	analyzer := physics.NewAnalyzer(augmented, phys)
	reachable := analyzer.Analyze(spawn, physics.Unlimited)

	candidates := setToSlice(augmented, reachable.Standing)
	if len(candidates) == 0 {
		return GoalPlacement{}, &PlacementError{
			Entity:   "goal",
			Attempts: 0,
			Reason:   "no reachable standing cell on the platform-augmented grid",
		}
	}
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		p := candidates[r.Intn(len(candidates))]
		if p == spawn || world.ManhattanDistance(p, spawn) < cfg.MinDistanceFromSpawn {
			continue
		}
		return GoalPlacement{
			Point:        p,
			Discoverable: hasLineOfSight(augmented, spawn, p),
		}, nil
	}

	return GoalPlacement{}, &PlacementError{
		Entity:   "goal",
		Attempts: cfg.MaxAttempts,
		Reason:   "no platform-reachable cell far enough from spawn",
	}
}

// ValidateGoalWithPlatforms checks the post-platform invariant for an
// already-placed goal: reachable from spawn on the augmented grid.
func ValidateGoalWithPlatforms(grid *world.Grid, platforms []level.Platform, spawn, goal world.Point, phys physics.Physics) bool {
	augmented := level.ApplyPlatforms(grid, platforms)
	analyzer := physics.NewAnalyzer(augmented, phys)
	return analyzer.Reachable(spawn, physics.Unlimited).Has(goal)
}
