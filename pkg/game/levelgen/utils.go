package levelgen

import (
	"github.com/zyedidia/generic/mapset"

	"cavernfall/pkg/engine/world"
)

// standingCells returns every floor cell with footing, in row-major scan
// order. This is the base candidate pool for all placers.
func standingCells(grid *world.Grid) []world.Point {
	var cells []world.Point
	grid.ForEachCell(func(x, y int, _ world.CellValue) {
		if grid.HasFooting(x, y) {
			cells = append(cells, world.Point{X: x, Y: y})
		}
	})
	return cells
}

// isDeadEnd reports whether a standing cell has exactly one standing
// horizontal neighbor: a passage that goes nowhere else.
func isDeadEnd(grid *world.Grid, p world.Point) bool {
	open := 0
	for _, dx := range []int{-1, 1} {
		if grid.HasFooting(p.X+dx, p.Y) {
			open++
		}
	}
	return open == 1
}

// hasLineOfSight walks the straight segment between two points and reports
// whether it crosses no wall. Used for the goal's discoverability flag.
func hasLineOfSight(grid *world.Grid, a, b world.Point) bool {
	steps := world.ManhattanDistance(a, b)
	if steps == 0 {
		return true
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(float64(a.X) + t*float64(b.X-a.X) + 0.5)
		y := int(float64(a.Y) + t*float64(b.Y-a.Y) + 0.5)
		if !grid.InBounds(x, y) || grid.At(x, y).IsWall() {
			return false
		}
	}
	return true
}

// minSeparationOK reports whether p keeps at least minSep Manhattan
// distance from every already-chosen point.
func minSeparationOK(p world.Point, chosen []world.Point, minSep int) bool {
	for _, q := range chosen {
		if world.ManhattanDistance(p, q) < minSep {
			return false
		}
	}
	return true
}

// setToSlice collects a point set into row-major scan order over the grid,
// for deterministic iteration.
func setToSlice(grid *world.Grid, set mapset.Set[world.Point]) []world.Point {
	var out []world.Point
	grid.ForEachCell(func(x, y int, _ world.CellValue) {
		p := world.Point{X: x, Y: y}
		if set.Has(p) {
			out = append(out, p)
		}
	})
	return out
}
