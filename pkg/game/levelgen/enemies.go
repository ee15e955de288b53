package levelgen

import (
	"cavernfall/pkg/engine/rng"
	"cavernfall/pkg/engine/world"
	"cavernfall/pkg/game/level"
	"cavernfall/pkg/game/physics"
)

// EnemyConfig controls enemy placement.
type EnemyConfig struct {
	Count                int
	MinDistanceFromSpawn int
	MinDistanceFromGoal  int
	MaxAttempts          int
}

// DefaultEnemyConfig returns the standard enemy placement parameters.
func DefaultEnemyConfig() EnemyConfig {
	return EnemyConfig{
		Count:                4,
		MinDistanceFromSpawn: 8,
		MinDistanceFromGoal:  5,
		MaxAttempts:          200,
	}
}

// PlaceEnemies places enemies on the platform-augmented grid subject to
// minimum distances from spawn and goal plus a solvability guard: with the
// enemy's tile treated as blocked, the reachable set from spawn must keep
// every previously reachable position except the enemy's own tile, and the
// goal must stay reachable. Placement is best-effort up to MaxAttempts;
// an error is returned only when no enemy at all could be placed while at
// least one was requested.
func PlaceEnemies(augmented *world.Grid, spawn, goal world.Point, phys physics.Physics, cfg EnemyConfig, r *rng.Source) ([]level.Enemy, error) {
	if cfg.Count <= 0 {
		return nil, nil
	}

	analyzer := physics.NewAnalyzer(augmented, phys)
	before := analyzer.Analyze(spawn, physics.Unlimited)
	candidates := setToSlice(augmented, before.Standing)
	if len(candidates) == 0 {
		return nil, &PlacementError{
			Entity:   "enemies",
			Attempts: 0,
			Reason:   "no reachable standing cell to patrol",
		}
	}

	var enemies []level.Enemy
	var chosen []world.Point

	for attempt := 0; attempt < cfg.MaxAttempts && len(enemies) < cfg.Count; attempt++ {
		p := candidates[r.Intn(len(candidates))]
		if p == spawn || p == goal {
			continue
		}
		if world.ManhattanDistance(p, spawn) < cfg.MinDistanceFromSpawn {
			continue
		}
		if world.ManhattanDistance(p, goal) < cfg.MinDistanceFromGoal {
			continue
		}
		if !minSeparationOK(p, chosen, 2) {
			continue
		}
		if !placementPreservesSolvability(augmented, spawn, goal, p, phys, before) {
			continue
		}

		patrol := patrolExtent(augmented, p)
		kind := level.EnemyCrawler
		if patrol < 3 {
			kind = level.EnemySentry
		}
		enemies = append(enemies, level.Enemy{X: p.X, Y: p.Y, Kind: kind, PatrolWidth: patrol})
		chosen = append(chosen, p)
	}

	if len(enemies) == 0 {
		return nil, &PlacementError{
			Entity:   "enemies",
			Attempts: cfg.MaxAttempts,
			Reason:   "every candidate violated distance or solvability constraints",
		}
	}
	return enemies, nil
}

// placementPreservesSolvability blocks the enemy tile and re-runs the
// reachability oracle: every standing position reachable before must stay
// reachable (the enemy's own tile excepted), goal included.
func placementPreservesSolvability(grid *world.Grid, spawn, goal, enemy world.Point, phys physics.Physics, before *physics.Result) bool {
	blocked := grid.Clone()
	blocked.Set(enemy.X, enemy.Y, world.Wall)

	after := physics.NewAnalyzer(blocked, phys).Analyze(spawn, physics.Unlimited)
	if !after.Standing.Has(goal) {
		return false
	}

	lost := false
	before.Standing.Each(func(p world.Point) {
		if p == enemy {
			return
		}
		if !after.Standing.Has(p) {
			lost = true
		}
	})
	return !lost
}

// patrolExtent measures the contiguous standing stretch through p, clamped
// to a sane patrol length.
func patrolExtent(grid *world.Grid, p world.Point) int {
	const maxPatrol = 8
	extent := 1
	for x := p.X - 1; grid.HasFooting(x, p.Y) && extent < maxPatrol; x-- {
		extent++
	}
	for x := p.X + 1; grid.HasFooting(x, p.Y) && extent < maxPatrol; x++ {
		extent++
	}
	return extent
}
