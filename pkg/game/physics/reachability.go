package physics

import (
	"math"

	"github.com/zyedidia/generic/mapset"

	"cavernfall/pkg/engine/world"
)

// Unlimited removes the move budget: the search runs to a fixed point.
const Unlimited = -1

// arcTimeStep is the simulation step for jump arcs, small enough that no
// sample skips a whole tile at the speeds DefaultPhysics produces.
const arcTimeStep = 0.02

// maxArcSamples bounds a single arc simulation; arcs normally die far
// earlier by hitting a wall or landing.
const maxArcSamples = 1000

// jumpSpeedFactors are the horizontal takeoff speeds tried per standing
// position, as multiples of WalkSpeed in both directions. A straight-up
// jump lands back on its own tile, so zero is omitted.
var jumpSpeedFactors = []float64{-1.5, -1.0, -0.5, 0.5, 1.0, 1.5}

// Result is the outcome of a reachability analysis.
type Result struct {
	Start world.Point
	// Standing holds every position the player can stop on (floor with
	// footing). This is the reachable-tile set.
	Standing mapset.Set[world.Point]
	// Covered additionally holds tiles merely passed through by jump
	// arcs and falls. Platform placement measures progress against it.
	Covered mapset.Set[world.Point]
	// Moves counts the move-edges expanded during the search.
	Moves int
}

// Analyzer runs reachability searches over one grid with fixed physics.
type Analyzer struct {
	grid *world.Grid
	phys Physics
}

// NewAnalyzer creates an analyzer. Panics on a nil grid; callers construct
// grids before analyzers, so this is a contract failure.
func NewAnalyzer(grid *world.Grid, phys Physics) *Analyzer {
	if grid == nil {
		panic("physics: nil grid")
	}
	return &Analyzer{grid: grid, phys: phys}
}

// Grid returns the grid this analyzer simulates on.
func (a *Analyzer) Grid() *world.Grid {
	return a.grid
}

// CanStand reports whether the player can occupy (x, y) at rest: a floor
// cell with solid ground directly below.
func (a *Analyzer) CanStand(p world.Point) bool {
	return a.grid.HasFooting(p.X, p.Y)
}

type searchNode struct {
	p     world.Point
	depth int
}

// Analyze computes the tiles reachable from start by walking, jumping and
// falling. With maxMoves == Unlimited the breadth-first search runs until
// no new standing position appears; a non-negative budget stops expanding
// nodes that already cost that many move-edges, so the unlimited result is
// a superset of any budgeted one. The start point is always a member of
// its own reachable set.
func (a *Analyzer) Analyze(start world.Point, maxMoves int) *Result {
	return a.search(start, maxMoves, true)
}

// WalkReachable computes the tiles reachable from start by walking and
// dropping off ledges alone, with no jumps. Goal placement uses it to
// guarantee that reaching the goal requires platform-assisted jumps.
func (a *Analyzer) WalkReachable(start world.Point) *Result {
	return a.search(start, Unlimited, false)
}

// Reachable is the plain reachable-tile set: standing positions only.
func (a *Analyzer) Reachable(start world.Point, maxMoves int) mapset.Set[world.Point] {
	return a.Analyze(start, maxMoves).Standing
}

func (a *Analyzer) search(start world.Point, maxMoves int, withJumps bool) *Result {
	res := &Result{
		Start:    start,
		Standing: mapset.New[world.Point](),
		Covered:  mapset.New[world.Point](),
	}
	res.Standing.Put(start)
	res.Covered.Put(start)

	if !a.CanStand(start) {
		return res
	}

	queue := []searchNode{{p: start, depth: 0}}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		if maxMoves != Unlimited && node.depth >= maxMoves {
			continue
		}

		for _, next := range a.edges(node.p, withJumps, res.Covered) {
			res.Moves++
			if res.Standing.Has(next) {
				continue
			}
			res.Standing.Put(next)
			res.Covered.Put(next)
			queue = append(queue, searchNode{p: next, depth: node.depth + 1})
		}
	}

	return res
}

// edges enumerates the standing positions one move away from p. Tiles a
// fall or arc passes through are recorded into covered as a side effect.
func (a *Analyzer) edges(p world.Point, withJumps bool, covered mapset.Set[world.Point]) []world.Point {
	var out []world.Point

	// Walking, and walking off a ledge into a straight fall.
	for _, dx := range []int{-1, 1} {
		q := world.Point{X: p.X + dx, Y: p.Y}
		if !a.grid.InBounds(q.X, q.Y) || a.grid.AtPoint(q).IsWall() {
			continue
		}
		if a.CanStand(q) {
			out = append(out, q)
			continue
		}
		if landing, ok := a.fall(q, covered); ok {
			out = append(out, landing)
		}
	}

	if withJumps {
		for _, factor := range jumpSpeedFactors {
			if landing, ok := a.jumpArc(p, factor*a.phys.WalkSpeed, covered); ok {
				out = append(out, landing)
			}
		}
	}

	return out
}

// fall drops straight down from an open tile to the first footed tile,
// recording the tiles passed through.
func (a *Analyzer) fall(from world.Point, covered mapset.Set[world.Point]) (world.Point, bool) {
	q := from
	for a.grid.InBounds(q.X, q.Y) && a.grid.AtPoint(q).IsFloor() {
		covered.Put(q)
		if a.CanStand(q) {
			return q, true
		}
		q.Y++
	}
	return world.Point{}, false
}

// jumpArc simulates one discretized projectile arc from p with horizontal
// speed vx and the physics' takeoff speed, at arcTimeStep granularity. The
// arc dies when a sampled tile is a wall or out of bounds; it lands when,
// while descending, the sampled tile has footing. Returns the landing tile.
func (a *Analyzer) jumpArc(p world.Point, vx float64, covered mapset.Set[world.Point]) (world.Point, bool) {
	v0 := a.phys.InitialJumpSpeed()
	x0 := float64(p.X) + 0.5
	y0 := float64(p.Y) + 0.5

	for i := 1; i < maxArcSamples; i++ {
		t := float64(i) * arcTimeStep
		fx := x0 + vx*t
		fy := y0 - v0*t + 0.5*a.phys.Gravity*t*t

		tx := int(math.Floor(fx))
		ty := int(math.Floor(fy))
		tile := world.Point{X: tx, Y: ty}

		if !a.grid.InBounds(tx, ty) {
			return world.Point{}, false
		}
		if a.grid.At(tx, ty).IsWall() {
			return world.Point{}, false
		}
		if tile != p {
			covered.Put(tile)
		}

		descending := v0 < a.phys.Gravity*t
		if descending && tile != p && a.CanStand(tile) {
			return tile, true
		}
	}

	return world.Point{}, false
}
