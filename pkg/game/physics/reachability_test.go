package physics

import (
	"math"
	"testing"

	"cavernfall/pkg/engine/world"
)

// buildGrid builds a grid from rows of '#' (wall) and '.' (floor).
func buildGrid(t *testing.T, rows []string) *world.Grid {
	t.Helper()
	g := world.NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, ch := range row {
			if ch == '#' {
				g.Set(x, y, world.Wall)
			}
		}
	}
	return g
}

func TestPhysics_Validate(t *testing.T) {
	if err := DefaultPhysics().Validate(); err != nil {
		t.Fatalf("default physics rejected: %v", err)
	}
	bad := []Physics{
		{JumpHeight: 0, Gravity: 18, WalkSpeed: 4},
		{JumpHeight: 3.5, Gravity: -1, WalkSpeed: 4},
		{JumpHeight: 3.5, Gravity: 18, WalkSpeed: 0},
	}
	for _, p := range bad {
		if err := p.Validate(); err == nil {
			t.Errorf("Validate(%+v) accepted invalid physics", p)
		}
	}
}

func TestInitialJumpSpeed(t *testing.T) {
	got := DefaultPhysics().InitialJumpSpeed()
	want := math.Sqrt(2 * 18.0 * 3.5)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("InitialJumpSpeed = %v, want %v", got, want)
	}
}

func TestNewAnalyzer_PanicsOnNilGrid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewAnalyzer(nil) did not panic")
		}
	}()
	NewAnalyzer(nil, DefaultPhysics())
}

func TestAnalyze_CorridorWalk(t *testing.T) {
	grid := buildGrid(t, []string{
		"##########",
		"#........#",
		"##########",
	})
	a := NewAnalyzer(grid, DefaultPhysics())
	res := a.Analyze(world.Point{X: 1, Y: 1}, Unlimited)

	for x := 1; x <= 8; x++ {
		if !res.Standing.Has(world.Point{X: x, Y: 1}) {
			t.Errorf("corridor tile (%d,1) not reachable", x)
		}
	}
	if res.Standing.Size() != 8 {
		t.Errorf("Standing size = %d, want 8", res.Standing.Size())
	}
}

func TestAnalyze_StartAlwaysInResult(t *testing.T) {
	grid := buildGrid(t, []string{
		"#####",
		"#...#",
		"#####",
	})
	a := NewAnalyzer(grid, DefaultPhysics())

	// A start in open air cannot be stood on; the search still reports it
	// as its own reachable tile and expands nothing.
	air := buildGrid(t, []string{
		"#####",
		"#...#",
		"#...#",
		"#####",
	})
	aa := NewAnalyzer(air, DefaultPhysics())
	res := aa.Analyze(world.Point{X: 2, Y: 1}, Unlimited)
	if !res.Standing.Has(world.Point{X: 2, Y: 1}) {
		t.Error("start missing from its own reachable set")
	}
	if res.Moves != 0 {
		t.Errorf("unstandable start expanded %d moves, want 0", res.Moves)
	}

	res = a.Analyze(world.Point{X: 1, Y: 1}, Unlimited)
	if !res.Standing.Has(world.Point{X: 1, Y: 1}) {
		t.Error("standable start missing from its own reachable set")
	}
}

func TestAnalyze_BudgetLimitsDepth(t *testing.T) {
	grid := buildGrid(t, []string{
		"##########",
		"#........#",
		"##########",
	})
	a := NewAnalyzer(grid, DefaultPhysics())
	start := world.Point{X: 1, Y: 1}

	budgeted := a.Analyze(start, 3)
	if budgeted.Standing.Has(world.Point{X: 8, Y: 1}) {
		t.Error("tile 7 moves away reported reachable within 3 moves")
	}
	if !budgeted.Standing.Has(world.Point{X: 4, Y: 1}) {
		t.Error("tile 3 moves away not reachable within 3 moves")
	}

	full := a.Analyze(start, Unlimited)
	budgeted.Standing.Each(func(p world.Point) {
		if !full.Standing.Has(p) {
			t.Errorf("budgeted result contains %v missing from unlimited result", p)
		}
	})
}

// pitGrid has two elevated ground slabs separated by a one-tile-deep pit.
// Standing on the slabs is at y=5, in the pit at y=6. Getting from the
// left slab to the right one needs a jump; walking only reaches the pit.
func pitGrid(t *testing.T) *world.Grid {
	t.Helper()
	return buildGrid(t, []string{
		"############",
		"#..........#",
		"#..........#",
		"#..........#",
		"#..........#",
		"#..........#",
		"#####..#####",
		"############",
	})
}

func TestAnalyze_JumpCrossesPit(t *testing.T) {
	grid := pitGrid(t)
	a := NewAnalyzer(grid, DefaultPhysics())
	res := a.Analyze(world.Point{X: 1, Y: 5}, Unlimited)

	for x := 7; x <= 10; x++ {
		if !res.Standing.Has(world.Point{X: x, Y: 5}) {
			t.Errorf("right slab tile (%d,5) not reachable by jumping", x)
		}
	}
	if !res.Standing.Has(world.Point{X: 5, Y: 6}) || !res.Standing.Has(world.Point{X: 6, Y: 6}) {
		t.Error("pit floor not reachable")
	}
}

func TestAnalyze_FallRecordsCoveredTiles(t *testing.T) {
	grid := pitGrid(t)
	a := NewAnalyzer(grid, DefaultPhysics())
	res := a.Analyze(world.Point{X: 1, Y: 5}, Unlimited)

	// Walking off the slab edge at (4,5) passes through (5,5) before
	// landing on the pit floor.
	if !res.Covered.Has(world.Point{X: 5, Y: 5}) {
		t.Error("fall-through tile (5,5) missing from covered set")
	}
	if res.Standing.Has(world.Point{X: 5, Y: 5}) {
		t.Error("mid-air tile (5,5) reported as a standing position")
	}
}

func TestWalkReachable_StopsAtPit(t *testing.T) {
	grid := pitGrid(t)
	a := NewAnalyzer(grid, DefaultPhysics())
	res := a.WalkReachable(world.Point{X: 1, Y: 5})

	for x := 1; x <= 4; x++ {
		if !res.Standing.Has(world.Point{X: x, Y: 5}) {
			t.Errorf("left slab tile (%d,5) not walk-reachable", x)
		}
	}
	// Dropping off the edge is allowed without jumps.
	if !res.Standing.Has(world.Point{X: 5, Y: 6}) {
		t.Error("pit floor not walk-reachable by dropping")
	}
	// Climbing back out or crossing is not.
	if res.Standing.Has(world.Point{X: 7, Y: 5}) {
		t.Error("right slab walk-reachable without jumps")
	}
	if res.Standing.Size() != 6 {
		t.Errorf("walk-reachable standing size = %d, want 6", res.Standing.Size())
	}
}

func TestAnalyze_SupersetOfWalkReachable(t *testing.T) {
	grid := pitGrid(t)
	a := NewAnalyzer(grid, DefaultPhysics())
	start := world.Point{X: 1, Y: 5}

	walk := a.WalkReachable(start)
	full := a.Analyze(start, Unlimited)
	walk.Standing.Each(func(p world.Point) {
		if !full.Standing.Has(p) {
			t.Errorf("walk-reachable tile %v missing from full result", p)
		}
	})
}

func TestAnalyze_CeilingBlocksJumps(t *testing.T) {
	// A one-tile-high corridor: every arc dies immediately on the
	// ceiling, so jumps add nothing over walking.
	grid := buildGrid(t, []string{
		"########",
		"#..#...#",
		"########",
	})
	a := NewAnalyzer(grid, DefaultPhysics())
	res := a.Analyze(world.Point{X: 1, Y: 1}, Unlimited)

	if res.Standing.Has(world.Point{X: 4, Y: 1}) {
		t.Error("reachability crossed a solid wall")
	}
	if res.Standing.Size() != 2 {
		t.Errorf("Standing size = %d, want 2", res.Standing.Size())
	}
}

func TestAnalyze_LedgeWithinJumpHeight(t *testing.T) {
	// Ledge standing position 3 tiles above the ground, inside the 3.5
	// tile jump apex.
	grid := buildGrid(t, []string{
		"#######",
		"#.....#",
		"#.....#",
		"#..#..#",
		"#.....#",
		"#.....#",
		"#######",
	})
	a := NewAnalyzer(grid, DefaultPhysics())
	res := a.Analyze(world.Point{X: 1, Y: 5}, Unlimited)

	if !res.Standing.Has(world.Point{X: 3, Y: 2}) {
		t.Error("ledge 3 tiles up not reachable with 3.5 tile jump height")
	}
}

func TestAnalyze_LedgeAboveJumpHeight(t *testing.T) {
	// Ledge standing position 5 tiles above the ground, beyond any arc.
	grid := buildGrid(t, []string{
		"#########",
		"#.......#",
		"#...#...#",
		"#.......#",
		"#.......#",
		"#.......#",
		"#.......#",
		"#########",
	})
	a := NewAnalyzer(grid, DefaultPhysics())
	res := a.Analyze(world.Point{X: 1, Y: 6}, Unlimited)

	if res.Standing.Has(world.Point{X: 4, Y: 1}) {
		t.Error("ledge 5 tiles up reachable despite 3.5 tile jump height")
	}
	for x := 1; x <= 7; x++ {
		if !res.Standing.Has(world.Point{X: x, Y: 6}) {
			t.Errorf("ground tile (%d,6) not reachable", x)
		}
	}
}

func TestCanStand(t *testing.T) {
	grid := pitGrid(t)
	a := NewAnalyzer(grid, DefaultPhysics())

	cases := []struct {
		p    world.Point
		want bool
	}{
		{world.Point{X: 2, Y: 5}, true},  // slab top
		{world.Point{X: 5, Y: 6}, true},  // pit floor
		{world.Point{X: 5, Y: 5}, false}, // open air
		{world.Point{X: 2, Y: 6}, false}, // inside a wall
	}
	for _, c := range cases {
		if got := a.CanStand(c.p); got != c.want {
			t.Errorf("CanStand(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}
