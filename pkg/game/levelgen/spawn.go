package levelgen

import (
	"cavernfall/pkg/engine/rng"
	"cavernfall/pkg/engine/world"
)

// SpawnConfig controls spawn placement.
type SpawnConfig struct {
	MaxAttempts int
	// SafetyRadius is how many tiles to each side of the spawn must be
	// solid standing ground, so the player does not materialize next to
	// a drop or inside a pocket.
	SafetyRadius int
	// LeftBandRatio restricts candidates to x < width*ratio when > 0,
	// biasing spawn toward the level's left side.
	LeftBandRatio float64
}

// DefaultSpawnConfig returns the standard spawn placement parameters.
func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		MaxAttempts:   150,
		SafetyRadius:  1,
		LeftBandRatio: 0.4,
	}
}

// PlaceSpawn samples candidate standing cells until one passes the safety
// checks: footing (always, by construction of the candidate pool), the
// optional left-band constraint, and a clear landing zone of SafetyRadius
// standing tiles on both sides. Returns a *PlacementError naming the failed
// constraint when the attempt budget runs out.
func PlaceSpawn(grid *world.Grid, cfg SpawnConfig, r *rng.Source) (world.Point, error) {
	candidates := standingCells(grid)
	if cfg.LeftBandRatio > 0 {
		limit := int(float64(grid.Width()) * cfg.LeftBandRatio)
		var banded []world.Point
		for _, c := range candidates {
			if c.X < limit {
				banded = append(banded, c)
			}
		}
		candidates = banded
	}
	if len(candidates) == 0 {
		return world.Point{}, &PlacementError{
			Entity:   "spawn",
			Attempts: 0,
			Reason:   "no floor cell with footing in the spawn band",
		}
	}

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		p := candidates[r.Intn(len(candidates))]
		if spawnZoneSafe(grid, p, cfg.SafetyRadius) {
			return p, nil
		}
	}

	return world.Point{}, &PlacementError{
		Entity:   "spawn",
		Attempts: cfg.MaxAttempts,
		Reason:   "no candidate with a safe landing zone of the required radius",
	}
}

// spawnZoneSafe requires solid standing ground for radius tiles on both
// sides of p, so the spawn has no adjacent ledge or pocket.
func spawnZoneSafe(grid *world.Grid, p world.Point, radius int) bool {
	for dx := -radius; dx <= radius; dx++ {
		if !grid.HasFooting(p.X+dx, p.Y) {
			return false
		}
	}
	return true
}
