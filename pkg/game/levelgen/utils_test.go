package levelgen

import (
	"testing"

	"cavernfall/pkg/engine/world"
)

func TestIsDeadEnd(t *testing.T) {
	grid := buildGrid(t, []string{
		"#######",
		"#.....#",
		"#######",
	})
	cases := []struct {
		p    world.Point
		want bool
	}{
		{world.Point{X: 1, Y: 1}, true},  // wall to the left
		{world.Point{X: 5, Y: 1}, true},  // wall to the right
		{world.Point{X: 3, Y: 1}, false}, // open both ways
	}
	for _, c := range cases {
		if got := isDeadEnd(grid, c.p); got != c.want {
			t.Errorf("isDeadEnd(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestHasLineOfSight(t *testing.T) {
	grid := buildGrid(t, []string{
		"#######",
		"#..#..#",
		"#.....#",
		"#######",
	})
	a := world.Point{X: 1, Y: 1}
	if !hasLineOfSight(grid, a, world.Point{X: 2, Y: 1}) {
		t.Error("adjacent open cells have no line of sight")
	}
	if hasLineOfSight(grid, a, world.Point{X: 5, Y: 1}) {
		t.Error("line of sight through the wall at (3,1)")
	}
	if !hasLineOfSight(grid, a, a) {
		t.Error("no line of sight to self")
	}
	if !hasLineOfSight(grid, world.Point{X: 1, Y: 2}, world.Point{X: 5, Y: 2}) {
		t.Error("no line of sight along the open row")
	}
}

func TestMinSeparationOK(t *testing.T) {
	chosen := []world.Point{{X: 5, Y: 5}}
	if minSeparationOK(world.Point{X: 6, Y: 5}, chosen, 3) {
		t.Error("distance 1 passed a separation of 3")
	}
	if !minSeparationOK(world.Point{X: 8, Y: 5}, chosen, 3) {
		t.Error("distance 3 failed a separation of 3")
	}
	if !minSeparationOK(world.Point{X: 0, Y: 0}, nil, 10) {
		t.Error("empty chosen set failed")
	}
}

func TestStandingCells_ScanOrder(t *testing.T) {
	grid := buildGrid(t, []string{
		"#####",
		"#...#",
		"#.###",
		"#####",
	})
	cells := standingCells(grid)
	// (2,1) and (3,1) stand on the wall below; (1,1) is over open floor.
	// (1,2) stands on the border.
	want := []world.Point{{X: 2, Y: 1}, {X: 3, Y: 1}, {X: 1, Y: 2}}
	if len(cells) != len(want) {
		t.Fatalf("standing cells = %v, want %v", cells, want)
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("cell %d = %v, want %v", i, cells[i], want[i])
		}
	}
}
