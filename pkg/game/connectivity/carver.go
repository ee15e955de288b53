package connectivity

import (
	"time"

	"cavernfall/pkg/engine/rng"
	"cavernfall/pkg/engine/world"
	"cavernfall/pkg/game/regions"
)

// Outcome says how a fallback run ended.
type Outcome int

const (
	OutcomeConnected Outcome = iota
	OutcomeExhausted
	OutcomeTimedOut
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeConnected:
		return "connected"
	case OutcomeExhausted:
		return "attempts exhausted"
	case OutcomeTimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// Report describes the result of a fallback validation run.
type Report struct {
	Connected       bool
	Outcome         Outcome
	Attempts        int
	CorridorsCarved int
	Score           float64
	Regions         int
	Elapsed         time.Duration
}

// Carve joins every non-dominant region to the largest region with L-shaped
// corridors and returns the carved copy plus the corridor count. The input
// grid is never mutated. For each stray region the globally closest cell
// pair to the hub (by Manhattan distance, brute force over both cell sets)
// anchors the corridor; horizontal-first vs vertical-first comes from the
// injected source.
//
// Panics on an empty region set: by the time carving runs the grid must
// have floor, so that is a contract failure upstream.
func Carve(grid *world.Grid, labeling *regions.Labeling, r *rng.Source) (*world.Grid, int) {
	hub := labeling.Largest()
	if hub == nil {
		panic("connectivity: carving with empty region set")
	}

	carved := grid.Clone()
	hubCells := labeling.CellsOf(hub.Label)
	count := 0

	for _, region := range labeling.Regions {
		if region.Label == hub.Label {
			continue
		}
		carveCorridor(carved, hubCells, labeling.CellsOf(region.Label), r)
		count++
	}

	return carved, count
}

// carveCorridor opens a 2-tile-thick L-shaped floor path between the closest
// pair of cells of two regions. Border cells are never opened so the rim
// stays solid.
func carveCorridor(grid *world.Grid, regionA, regionB []world.Point, r *rng.Source) {
	bestA := regionA[0]
	bestB := regionB[0]
	bestDist := world.ManhattanDistance(bestA, bestB)

	for _, a := range regionA {
		for _, b := range regionB {
			if d := world.ManhattanDistance(a, b); d < bestDist {
				bestDist = d
				bestA = a
				bestB = b
			}
		}
	}

	if r.Coin() {
		carveHorizontal(grid, bestA.Y, bestA.X, bestB.X)
		carveVertical(grid, bestB.X, bestA.Y, bestB.Y)
	} else {
		carveVertical(grid, bestA.X, bestA.Y, bestB.Y)
		carveHorizontal(grid, bestB.Y, bestA.X, bestB.X)
	}
}

// carveHorizontal opens a horizontal run at row y, two tiles thick.
func carveHorizontal(grid *world.Grid, y, startX, endX int) {
	if startX > endX {
		startX, endX = endX, startX
	}
	for x := startX; x <= endX; x++ {
		openCell(grid, x, y)
		openCell(grid, x, y+1)
	}
}

// carveVertical opens a vertical run at column x, two tiles thick.
func carveVertical(grid *world.Grid, x, startY, endY int) {
	if startY > endY {
		startY, endY = endY, startY
	}
	for y := startY; y <= endY; y++ {
		openCell(grid, x, y)
		openCell(grid, x+1, y)
	}
}

func openCell(grid *world.Grid, x, y int) {
	if grid.IsInterior(x, y) {
		grid.Set(x, y, world.Floor)
	}
}

// ValidateWithFallback measures connectivity and, while the grid is below
// threshold, re-detects regions and carves corridors, up to
// MaxFallbackAttempts within FallbackTimeout of wall-clock time. The budget
// is checked before each attempt, never preemptively. A grid that is
// already connected comes back unchanged with zero corridors carved.
func ValidateWithFallback(grid *world.Grid, cfg Config, r *rng.Source) (*world.Grid, Report) {
	start := time.Now()
	current := grid
	report := Report{}

	for {
		labeling := regions.Detect(current)
		report.Score = Score(labeling)
		report.Regions = len(labeling.Regions)

		if IsConnected(labeling, cfg) {
			report.Connected = true
			report.Outcome = OutcomeConnected
			report.Elapsed = time.Since(start)
			return current, report
		}
		if report.Attempts >= cfg.MaxFallbackAttempts {
			report.Outcome = OutcomeExhausted
			report.Elapsed = time.Since(start)
			return current, report
		}
		if time.Since(start) >= cfg.FallbackTimeout {
			report.Outcome = OutcomeTimedOut
			report.Elapsed = time.Since(start)
			return current, report
		}

		report.Attempts++
		var carvedCount int
		current, carvedCount = Carve(current, labeling, r)
		report.CorridorsCarved += carvedCount
	}
}
