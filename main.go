package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/leonelquinteros/gotext"

	"cavernfall/pkg/game/renderer/tui"
	"cavernfall/pkg/game/setup"
)

func main() {
	seed := flag.String("seed", "", "generation seed (random when empty)")
	width := flag.Int("width", 60, "cave width in tiles")
	height := flag.Int("height", 60, "cave height in tiles")
	wallRatio := flag.Float64("wall-ratio", 0.45, "initial wall noise ratio")
	steps := flag.Int("steps", 5, "cellular automata steps")
	birth := flag.Int("birth", 5, "automata birth threshold")
	survival := flag.Int("survival", 4, "automata survival threshold")
	smoothing := flag.Int("smoothing", 0, "micro-smoothing passes after carving")
	jumpHeight := flag.Float64("jump-height", 3.5, "jump apex height in tiles")
	gravity := flag.Float64("gravity", 18.0, "gravity in tiles per second squared")
	targetReach := flag.Float64("target-reach", 0.85, "target reachable floor ratio")
	coins := flag.Int("coins", 12, "coin count")
	enemies := flag.Int("enemies", 4, "enemy count")
	preview := flag.Bool("preview", true, "print the generated cave")
	timings := flag.Bool("timings", false, "print per-stage timings")
	flag.Parse()

	if *seed == "" {
		*seed = strconv.FormatInt(time.Now().UnixNano(), 10)
	}

	cfg := setup.DefaultConfig(*seed)
	cfg.Seeder.Width = *width
	cfg.Seeder.Height = *height
	cfg.Seeder.InitialWallRatio = *wallRatio
	cfg.Automata.SimulationSteps = *steps
	cfg.Automata.BirthThreshold = *birth
	cfg.Automata.SurvivalThreshold = *survival
	cfg.SmoothingPasses = *smoothing
	cfg.Physics.JumpHeight = *jumpHeight
	cfg.Physics.Gravity = *gravity
	cfg.Platforms.TargetReachableRatio = *targetReach
	cfg.Coins.Count = *coins
	cfg.Enemies.Count = *enemies

	result, err := setup.Generate(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, gotext.Get("Generation failed: %v\n"), err)
		os.Exit(1)
	}

	lvl := result.Level
	if *preview {
		fmt.Print(tui.New().Render(lvl))
		fmt.Println()
	}

	fmt.Printf(gotext.Get("Seed: %s\n"), lvl.Seed)
	fmt.Printf(gotext.Get("Connectivity: %s (score %.2f, %d corridors carved)\n"),
		result.Connectivity.Outcome, result.Connectivity.Score, result.Connectivity.CorridorsCarved)
	fmt.Printf(gotext.Get("Reachable floor: %.0f%%\n"), result.ReachableRatio*100)
	fmt.Printf(gotext.Get("Spawn (%d,%d), goal (%d,%d)"), lvl.Spawn.X, lvl.Spawn.Y, lvl.Goal.X, lvl.Goal.Y)
	if result.GoalRelocated {
		fmt.Print(gotext.Get(" [goal relocated after platform pass]"))
	}
	fmt.Println()
	fmt.Printf(gotext.Get("Placed %d coins, %d platforms, %d enemies\n"),
		len(lvl.Coins), len(lvl.Platforms), len(lvl.Enemies))

	if *timings {
		for _, t := range result.Timings {
			fmt.Printf("  %-12s %v\n", t.Name, t.Elapsed)
		}
	}
}
