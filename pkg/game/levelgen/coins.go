package levelgen

import (
	"cavernfall/pkg/engine/rng"
	"cavernfall/pkg/engine/world"
	"cavernfall/pkg/game/level"
	"cavernfall/pkg/game/physics"
)

// CoinWeights splits the coin budget across placement categories.
// They are normalized, so any positive scale works.
type CoinWeights struct {
	DeadEnd  float64
	Frontier float64
	Stash    float64
}

// CoinConfig controls collectible placement.
type CoinConfig struct {
	Count         int
	MinSeparation int
	Weights       CoinWeights
	MaxAttempts   int
}

// DefaultCoinConfig returns the standard coin placement parameters.
func DefaultCoinConfig() CoinConfig {
	return CoinConfig{
		Count:         12,
		MinSeparation: 4,
		Weights:       CoinWeights{DeadEnd: 0.4, Frontier: 0.35, Stash: 0.25},
		MaxAttempts:   400,
	}
}

// PlaceCoins distributes collectibles across dead-end tiles, frontier
// tiles and stash tiles (floor the walk/jump search from spawn never
// touched, unlocked later by platforms), honoring the pairwise minimum
// separation and the same separation from spawn and goal. The platform
// set restricts placement to tiles that are or will become reachable:
// every candidate must stand on the platform-augmented grid's reachable
// set. Returns however many coins fit plus a *PlacementError only when
// not a single coin could be placed.
func PlaceCoins(grid *world.Grid, platforms []level.Platform, spawn, goal world.Point, phys physics.Physics, cfg CoinConfig, r *rng.Source) ([]level.Coin, error) {
	if cfg.Count <= 0 {
		return nil, nil
	}

	base := physics.NewAnalyzer(grid, phys).Analyze(spawn, physics.Unlimited)
	augmented := level.ApplyPlatforms(grid, platforms)
	finalReach := physics.NewAnalyzer(augmented, phys).Analyze(spawn, physics.Unlimited)

	anchors := []world.Point{spawn, goal}
	eligible := func(p world.Point) bool {
		return p != spawn && p != goal && minSeparationOK(p, anchors, cfg.MinSeparation)
	}

	// Categories draw from the base-grid analysis; eligibility is always
	// judged against the final (platform-augmented) reachable set.
	var deadEnds, frontier, stash []world.Point
	for _, p := range setToSlice(augmented, finalReach.Standing) {
		if !eligible(p) {
			continue
		}
		switch {
		case !base.Covered.Has(p):
			stash = append(stash, p)
		case isDeadEnd(grid, p):
			deadEnds = append(deadEnds, p)
		}
	}
	for _, p := range physics.NewAnalyzer(grid, phys).Frontier(base) {
		if eligible(p) && finalReach.Standing.Has(p) {
			frontier = append(frontier, p)
		}
	}

	quotaDeadEnd, quotaFrontier, quotaStash := splitQuota(cfg.Count, cfg.Weights)

	var coins []level.Coin
	var chosen []world.Point
	attempts := 0

	pick := func(pool []world.Point, quota int, kind level.CoinKind) {
		if len(pool) == 0 || quota <= 0 {
			return
		}
		placed := 0
		for placed < quota && attempts < cfg.MaxAttempts {
			attempts++
			p := pool[r.Intn(len(pool))]
			if !minSeparationOK(p, chosen, cfg.MinSeparation) {
				continue
			}
			coins = append(coins, level.Coin{X: p.X, Y: p.Y, Kind: kind})
			chosen = append(chosen, p)
			placed++
		}
	}

	pick(deadEnds, quotaDeadEnd, level.CoinDeadEnd)
	pick(frontier, quotaFrontier, level.CoinFrontier)
	pick(stash, quotaStash, level.CoinStash)

	// Fill any shortfall from the general reachable pool.
	if len(coins) < cfg.Count {
		var pool []world.Point
		for _, p := range setToSlice(augmented, finalReach.Standing) {
			if eligible(p) {
				pool = append(pool, p)
			}
		}
		pick(pool, cfg.Count-len(coins), level.CoinFiller)
	}

	if len(coins) == 0 {
		return nil, &PlacementError{
			Entity:   "coins",
			Attempts: attempts,
			Reason:   "no reachable tile satisfies the separation constraint",
		}
	}
	return coins, nil
}

// splitQuota turns normalized weights into per-category coin counts,
// assigning rounding leftovers to the dead-end category.
func splitQuota(count int, w CoinWeights) (deadEnd, frontier, stash int) {
	total := w.DeadEnd + w.Frontier + w.Stash
	if total <= 0 {
		return count, 0, 0
	}
	frontier = int(float64(count) * w.Frontier / total)
	stash = int(float64(count) * w.Stash / total)
	deadEnd = count - frontier - stash
	return deadEnd, frontier, stash
}
