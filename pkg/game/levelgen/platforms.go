package levelgen

import (
	"fmt"

	"cavernfall/pkg/engine/rng"
	"cavernfall/pkg/engine/world"
	"cavernfall/pkg/game/level"
	"cavernfall/pkg/game/physics"
)

// PlatformConfig controls the reachability-restoring platform pass.
type PlatformConfig struct {
	// TargetReachableRatio is the fraction of floor tiles the search
	// must touch before the pass stops adding platforms.
	TargetReachableRatio float64
	// MaxPlatforms is the placement budget.
	MaxPlatforms int
	// MaxWidth clamps platform width in tiles.
	MaxWidth int
	// ClutterRadius and MaxClutter bound visual impact: a proposal is
	// rejected when more than MaxClutter already-placed platform cells
	// lie within ClutterRadius of it.
	ClutterRadius int
	MaxClutter    int
	// MaxProposalsPerRound bounds how many candidate placements one
	// iteration tries before giving up on the round.
	MaxProposalsPerRound int
}

// DefaultPlatformConfig returns the standard platform pass parameters.
func DefaultPlatformConfig() PlatformConfig {
	return PlatformConfig{
		TargetReachableRatio: 0.85,
		MaxPlatforms:         24,
		MaxWidth:             4,
		ClutterRadius:        3,
		MaxClutter:           4,
		MaxProposalsPerRound: 12,
	}
}

// Validate checks the configuration before the pass runs.
func (c PlatformConfig) Validate() error {
	if c.TargetReachableRatio <= 0 || c.TargetReachableRatio > 1 {
		return fmt.Errorf("platforms: target reachable ratio must be in (0,1], got %v", c.TargetReachableRatio)
	}
	if c.MaxPlatforms < 0 {
		return fmt.Errorf("platforms: max platforms must be non-negative, got %d", c.MaxPlatforms)
	}
	if c.MaxWidth <= 0 {
		return fmt.Errorf("platforms: max width must be positive, got %d", c.MaxWidth)
	}
	return nil
}

// PlatformResult reports what the platform pass achieved.
type PlatformResult struct {
	Platforms []level.Platform
	// Augmented is the grid with every accepted platform stamped solid.
	Augmented *world.Grid
	// ReachableRatio is the final fraction of floor tiles touched by the
	// search from spawn.
	ReachableRatio float64
	Rounds         int
}

// PlacePlatforms grows the area reachable from spawn toward the target
// ratio. Each round: analyze reachability, cluster the untouched floor,
// compute the critical ring, and for each ring tile propose platforms
// bridging toward its cluster. A proposal is validated by re-running the
// search from its ring tile on a scratch grid (scoped to the frontier, not
// the whole grid) and kept only if it reclaims untouched floor and passes
// the clutter heuristic. Stops at the target ratio, the platform budget,
// or a round that places nothing.
func PlacePlatforms(grid *world.Grid, spawn, goal world.Point, phys physics.Physics, cfg PlatformConfig, r *rng.Source) PlatformResult {
	work := grid.Clone()
	floorTotal := grid.FloorCount()
	var placed []level.Platform

	result := PlatformResult{}

	for len(placed) < cfg.MaxPlatforms {
		analyzer := physics.NewAnalyzer(work, phys)
		res := analyzer.Analyze(spawn, physics.Unlimited)
		result.ReachableRatio = float64(res.Covered.Size()) / float64(floorTotal)
		if result.ReachableRatio >= cfg.TargetReachableRatio {
			break
		}
		result.Rounds++

		ring := analyzer.CriticalRing(res)
		if len(ring) == 0 {
			break
		}
		clusters := physics.Clusters(analyzer.UnreachableFloor(res))

		roundPlaced := 0
		proposals := 0
		for _, ringTile := range ring {
			if len(placed) >= cfg.MaxPlatforms || proposals >= cfg.MaxProposalsPerRound {
				break
			}
			target, ok := nearestClusterCell(ringTile, clusters)
			if !ok {
				continue
			}
			// The ring tile may be mid-air (an arc apex); the platform
			// is proposed, and the re-simulation seeded, from the
			// nearest standing position instead.
			anchor, ok := nearestStanding(work, res, ringTile)
			if !ok {
				continue
			}
			proposals++

			platform, ok := proposePlatform(work, anchor, target, spawn, goal, cfg, r)
			if !ok {
				continue
			}
			if clutterTooHigh(placed, platform, cfg) {
				continue
			}

			// Validation oracle: the platform must actually reclaim
			// floor when re-simulating from its anchor.
			scratch := level.ApplyPlatforms(work, []level.Platform{platform})
			scoped := physics.NewAnalyzer(scratch, phys).Analyze(anchor, physics.Unlimited)
			if !reclaimsNewFloor(scoped, res) {
				continue
			}

			work = scratch
			placed = append(placed, platform)
			roundPlaced++
		}

		if roundPlaced == 0 {
			break
		}
	}

	// Final ratio after the last accepted platform.
	finalRes := physics.NewAnalyzer(work, phys).Analyze(spawn, physics.Unlimited)
	result.ReachableRatio = float64(finalRes.Covered.Size()) / float64(floorTotal)
	result.Platforms = placed
	result.Augmented = work
	return result
}

// nearestStanding finds the reachable standing position closest to a ring
// tile, scanning row-major for determinism.
func nearestStanding(grid *world.Grid, res *physics.Result, ringTile world.Point) (world.Point, bool) {
	var best world.Point
	bestDist := -1
	for _, p := range setToSlice(grid, res.Standing) {
		d := world.ManhattanDistance(p, ringTile)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best, bestDist >= 0
}

// nearestClusterCell finds the closest unreachable cell to the anchor
// across all clusters.
func nearestClusterCell(anchor world.Point, clusters [][]world.Point) (world.Point, bool) {
	var best world.Point
	bestDist := -1
	for _, cluster := range clusters {
		for _, c := range cluster {
			d := world.ManhattanDistance(anchor, c)
			if bestDist < 0 || d < bestDist {
				bestDist = d
				best = c
			}
		}
	}
	return best, bestDist >= 0
}

// proposePlatform sizes a platform to the gap between a reachable anchor
// and an unreachable target and positions it between them. Horizontal gaps
// get a bridge at the anchor's height partway across; vertical gaps get a
// ledge stepping upward. Every occupied cell must currently be open floor,
// stay off the border, and avoid spawn and goal columns' standing cells.
func proposePlatform(grid *world.Grid, anchor, target, spawn, goal world.Point, cfg PlatformConfig, r *rng.Source) (level.Platform, bool) {
	dx := target.X - anchor.X
	dy := target.Y - anchor.Y

	kind := level.PlatformBridge
	if abs(dy) > abs(dx) {
		kind = level.PlatformLedge
	}

	width := abs(dx)/2 + 1
	if width > cfg.MaxWidth {
		width = cfg.MaxWidth
	}
	if width < 2 {
		width = 2
	}

	midX := anchor.X + dx/2 - width/2
	var midY int
	if kind == level.PlatformBridge {
		// Bridge slightly below the anchor row so a walk-off or short
		// hop lands on it.
		midY = anchor.Y + 1
		if dy != 0 {
			midY = anchor.Y + dy/2 + 1
		}
	} else {
		// Ledge halfway up (or down) the climb.
		midY = anchor.Y + dy/2
	}

	// Nudge a blocked proposal around its midpoint before giving up.
	offsets := []int{0, -1, 1, -2, 2}
	r.Shuffle(len(offsets), func(i, j int) { offsets[i], offsets[j] = offsets[j], offsets[i] })

	for _, off := range offsets {
		p := level.Platform{X: midX + off, Y: midY, Width: width, Height: 1, Kind: kind}
		if platformFits(grid, p, spawn, goal) {
			return p, true
		}
	}
	return level.Platform{}, false
}

// platformFits requires every platform cell to be interior open floor and
// keeps the cells, and the standing positions above them, clear of spawn
// and goal.
func platformFits(grid *world.Grid, p level.Platform, spawn, goal world.Point) bool {
	for _, c := range p.Cells() {
		if !grid.IsInterior(c.X, c.Y) || grid.At(c.X, c.Y).IsWall() {
			return false
		}
		if c == spawn || c == goal {
			return false
		}
		above := world.Point{X: c.X, Y: c.Y - 1}
		if above == spawn || above == goal {
			return false
		}
	}
	return true
}

// clutterTooHigh rejects proposals landing in an already platform-dense
// neighborhood.
func clutterTooHigh(placed []level.Platform, proposal level.Platform, cfg PlatformConfig) bool {
	count := 0
	for _, existing := range placed {
		for _, c := range existing.Cells() {
			for _, pc := range proposal.Cells() {
				if world.ManhattanDistance(c, pc) <= cfg.ClutterRadius {
					count++
				}
			}
		}
	}
	return count > cfg.MaxClutter
}

// reclaimsNewFloor reports whether the scoped re-simulation touched floor
// the original search missed.
func reclaimsNewFloor(scoped, original *physics.Result) bool {
	gained := false
	scoped.Covered.Each(func(p world.Point) {
		if !original.Covered.Has(p) {
			gained = true
		}
	})
	return gained
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
