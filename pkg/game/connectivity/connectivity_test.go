package connectivity

import (
	"testing"
	"time"

	"cavernfall/pkg/engine/rng"
	"cavernfall/pkg/engine/world"
	"cavernfall/pkg/game/regions"
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

func TestScore_SingleRegionIsOne(t *testing.T) {
	grid := buildGrid(t, []string{
		"#####",
		"#...#",
		"#####",
	})
	if s := Score(regions.Detect(grid)); s != 1 {
		t.Errorf("Score = %v, want 1", s)
	}
}

func TestScore_UnequalRegions(t *testing.T) {
	grid := buildGrid(t, []string{
		"##########",
		"#......#.#",
		"##########",
	})
	labeling := regions.Detect(grid)
	if len(labeling.Regions) != 2 {
		t.Fatalf("regions = %d, want 2", len(labeling.Regions))
	}
	want := 6.0 / 7.0
	if s := Score(labeling); s != want {
		t.Errorf("Score = %v, want %v", s, want)
	}
}

func TestIsConnected_ScoreRuleWinsAtBoundary(t *testing.T) {
	// Two regions, but the dominant one holds 6/7 of the floor. With a
	// threshold below that the grid counts as connected even though the
	// region count is 2; with a stricter threshold it does not.
	grid := buildGrid(t, []string{
		"##########",
		"#......#.#",
		"##########",
	})
	labeling := regions.Detect(grid)

	loose := DefaultConfig()
	loose.ConnectivityThreshold = 0.8
	if !IsConnected(labeling, loose) {
		t.Error("score 6/7 with threshold 0.8 reported disconnected")
	}

	strict := DefaultConfig()
	strict.ConnectivityThreshold = 0.95
	if IsConnected(labeling, strict) {
		t.Error("score 6/7 with threshold 0.95 reported connected")
	}
}

func TestCarve_JoinsAllRegionsIntoOne(t *testing.T) {
	grid := buildGrid(t, []string{
		"##########",
		"#..###...#",
		"#..###...#",
		"#..###...#",
		"##########",
	})
	labeling := regions.Detect(grid)
	if len(labeling.Regions) != 2 {
		t.Fatalf("regions before carve = %d, want 2", len(labeling.Regions))
	}

	carved, count := Carve(grid, labeling, rng.New("carve"))
	if count != 1 {
		t.Errorf("corridors carved = %d, want 1", count)
	}
	after := regions.Detect(carved)
	if len(after.Regions) != 1 {
		t.Errorf("regions after carve = %d, want 1", len(after.Regions))
	}
}

func TestCarve_DoesNotMutateInput(t *testing.T) {
	grid := buildGrid(t, []string{
		"########",
		"#.####.#",
		"########",
	})
	before := grid.Clone()
	Carve(grid, regions.Detect(grid), rng.New("carve-copy"))
	if !grid.Equal(before) {
		t.Error("Carve mutated its input grid")
	}
}

func TestCarve_KeepsBorderSolid(t *testing.T) {
	grid := buildGrid(t, []string{
		"########",
		"#.####.#",
		"#.####.#",
		"########",
	})
	carved, _ := Carve(grid, regions.Detect(grid), rng.New("border"))
	carved.ForEachCell(func(x, y int, v world.CellValue) {
		if carved.IsEdge(x, y) && !v.IsWall() {
			t.Errorf("carving opened border cell (%d,%d)", x, y)
		}
	})
}

func TestCarve_ManyRegions(t *testing.T) {
	grid := buildGrid(t, []string{
		"###########",
		"#.#..#.#..#",
		"#.#..#.#..#",
		"###########",
	})
	labeling := regions.Detect(grid)
	if len(labeling.Regions) != 4 {
		t.Fatalf("regions = %d, want 4", len(labeling.Regions))
	}
	carved, count := Carve(grid, labeling, rng.New("many"))
	if count != 3 {
		t.Errorf("corridors carved = %d, want 3", count)
	}
	if after := regions.Detect(carved); len(after.Regions) != 1 {
		t.Errorf("regions after carve = %d, want 1", len(after.Regions))
	}
}

func TestValidateWithFallback_AlreadyConnectedIsNoOp(t *testing.T) {
	// The bridged-halves fixture: visually two blocks, but the open
	// middle row already joins them, so validation must not modify the
	// grid at all.
	grid := buildGrid(t, []string{
		"..##..",
		"..##..",
		"......",
		"..##..",
		"..##..",
	})
	out, report := ValidateWithFallback(grid, DefaultConfig(), rng.New("noop"))
	if !report.Connected {
		t.Fatal("already-connected grid reported unconnected")
	}
	if report.Outcome != OutcomeConnected {
		t.Errorf("outcome = %v, want %v", report.Outcome, OutcomeConnected)
	}
	if report.Attempts != 0 || report.CorridorsCarved != 0 {
		t.Errorf("no-op run carved: attempts=%d corridors=%d", report.Attempts, report.CorridorsCarved)
	}
	if !out.Equal(grid) {
		t.Error("no-op validation modified the grid")
	}
}

func TestValidateWithFallback_RepairsSplitGrid(t *testing.T) {
	grid := buildGrid(t, []string{
		"##########",
		"#...##...#",
		"#...##...#",
		"##########",
	})
	out, report := ValidateWithFallback(grid, DefaultConfig(), rng.New("repair"))
	if !report.Connected {
		t.Fatalf("split grid not repaired: %+v", report)
	}
	if report.Attempts < 1 || report.CorridorsCarved < 1 {
		t.Errorf("repair did no work: attempts=%d corridors=%d", report.Attempts, report.CorridorsCarved)
	}
	if after := regions.Detect(out); len(after.Regions) != 1 {
		t.Errorf("regions after repair = %d, want 1", len(after.Regions))
	}
	if report.Score != 1 {
		t.Errorf("final score = %v, want 1", report.Score)
	}
}

func TestValidateWithFallback_TimeoutReported(t *testing.T) {
	grid := buildGrid(t, []string{
		"##########",
		"#...##...#",
		"##########",
	})
	cfg := DefaultConfig()
	cfg.FallbackTimeout = time.Nanosecond
	_, report := ValidateWithFallback(grid, cfg, rng.New("timeout"))
	if report.Connected {
		return // carving won the race against the clock; acceptable
	}
	if report.Outcome != OutcomeTimedOut {
		t.Errorf("outcome = %v, want %v", report.Outcome, OutcomeTimedOut)
	}
}

func TestConfig_RejectsInvalid(t *testing.T) {
	cases := []Config{
		{ConnectivityThreshold: 0, MaxFallbackAttempts: 3, FallbackTimeout: time.Second},
		{ConnectivityThreshold: 1.2, MaxFallbackAttempts: 3, FallbackTimeout: time.Second},
		{ConnectivityThreshold: 0.9, MaxFallbackAttempts: 0, FallbackTimeout: time.Second},
		{ConnectivityThreshold: 0.9, MaxFallbackAttempts: 3, FallbackTimeout: 0},
	}
	for _, cfg := range cases {
		if err := cfg.Validate(); err == nil {
			t.Errorf("Validate(%+v) accepted invalid config", cfg)
		}
	}
}

func TestOutcome_String(t *testing.T) {
	if OutcomeConnected.String() != "connected" {
		t.Errorf("OutcomeConnected = %q", OutcomeConnected.String())
	}
	if OutcomeExhausted.String() != "attempts exhausted" {
		t.Errorf("OutcomeExhausted = %q", OutcomeExhausted.String())
	}
	if OutcomeTimedOut.String() != "timed out" {
		t.Errorf("OutcomeTimedOut = %q", OutcomeTimedOut.String())
	}
}
