// Package level defines the placed-entity types and the data contract the
// pipeline hands to external consumers (renderer, exporter).
package level

import (
	"fmt"

	"cavernfall/pkg/engine/world"
)

// CoinKind records which placement category produced a coin.
type CoinKind string

const (
	// CoinDeadEnd rewards exploring a passage that goes nowhere else.
	CoinDeadEnd CoinKind = "dead_end"
	// CoinFrontier sits at the edge of the initially reachable area.
	CoinFrontier CoinKind = "frontier"
	// CoinStash starts out unreachable and is unlocked by platforms.
	CoinStash CoinKind = "stash"
	// CoinFiller tops up the budget from the general reachable pool when
	// the category pools run dry.
	CoinFiller CoinKind = "filler"
)

// Coin is a placed collectible.
type Coin struct {
	X    int      `json:"x"`
	Y    int      `json:"y"`
	Kind CoinKind `json:"type"`
}

// Point returns the coin's grid coordinate.
func (c Coin) Point() world.Point {
	return world.Point{X: c.X, Y: c.Y}
}

// PlatformKind records why a platform exists.
type PlatformKind string

const (
	// PlatformBridge closes a horizontal gap between reachable and
	// unreachable area.
	PlatformBridge PlatformKind = "bridge"
	// PlatformLedge provides an intermediate step for a vertical climb.
	PlatformLedge PlatformKind = "ledge"
)

// Platform is a placed solid platform. X/Y is the top-left cell.
type Platform struct {
	X      int          `json:"x"`
	Y      int          `json:"y"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Kind   PlatformKind `json:"type"`
}

// Cells returns every grid cell the platform occupies, row-major.
func (p Platform) Cells() []world.Point {
	cells := make([]world.Point, 0, p.Width*p.Height)
	for dy := 0; dy < p.Height; dy++ {
		for dx := 0; dx < p.Width; dx++ {
			cells = append(cells, world.Point{X: p.X + dx, Y: p.Y + dy})
		}
	}
	return cells
}

// EnemyKind selects enemy behavior.
type EnemyKind string

const (
	// EnemyCrawler patrols a stretch of floor.
	EnemyCrawler EnemyKind = "crawler"
	// EnemySentry holds a single tile.
	EnemySentry EnemyKind = "sentry"
)

// Enemy is a placed enemy with its patrol extent in tiles.
type Enemy struct {
	X           int       `json:"x"`
	Y           int       `json:"y"`
	Kind        EnemyKind `json:"type"`
	PatrolWidth int       `json:"patrol_width"`
}

// Point returns the enemy's grid coordinate.
func (e Enemy) Point() world.Point {
	return world.Point{X: e.X, Y: e.Y}
}

// Level is the pipeline's final product: solid geometry plus every placed
// entity, all in grid coordinates.
type Level struct {
	Grid      *world.Grid
	Seed      string
	Spawn     world.Point
	Goal      world.Point
	Coins     []Coin
	Platforms []Platform
	Enemies   []Enemy
}

// ApplyPlatforms stamps the platforms into a copy of the grid as solid
// cells, so reachability analysis sees them as standable ground. The
// input grid is never mutated.
func ApplyPlatforms(grid *world.Grid, platforms []Platform) *world.Grid {
	if len(platforms) == 0 {
		return grid.Clone()
	}
	out := grid.Clone()
	for _, p := range platforms {
		for _, c := range p.Cells() {
			out.Set(c.X, c.Y, world.Wall)
		}
	}
	return out
}

// Validate re-checks the structural invariants the placers guaranteed:
// spawn and goal have footing on the platform-augmented grid, and every
// entity sits inside the grid. Returns an error description of the first
// violation found.
func (l *Level) Validate() error {
	if l.Grid == nil {
		return fmt.Errorf("level: nil grid")
	}
	augmented := ApplyPlatforms(l.Grid, l.Platforms)
	if !augmented.HasFootingAt(l.Spawn) {
		return fmt.Errorf("level: spawn at (%d,%d) has no footing", l.Spawn.X, l.Spawn.Y)
	}
	if !augmented.HasFootingAt(l.Goal) {
		return fmt.Errorf("level: goal at (%d,%d) has no footing", l.Goal.X, l.Goal.Y)
	}
	for _, c := range l.Coins {
		if !l.Grid.InBounds(c.X, c.Y) {
			return fmt.Errorf("level: coin at (%d,%d) out of bounds", c.X, c.Y)
		}
	}
	for _, p := range l.Platforms {
		for _, cell := range p.Cells() {
			if !l.Grid.InBounds(cell.X, cell.Y) {
				return fmt.Errorf("level: platform cell at (%d,%d) out of bounds", cell.X, cell.Y)
			}
		}
	}
	for _, e := range l.Enemies {
		if !augmented.HasFootingAt(e.Point()) {
			return fmt.Errorf("level: enemy at (%d,%d) has no footing", e.X, e.Y)
		}
	}
	return nil
}
