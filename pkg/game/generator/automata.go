package generator

import (
	"fmt"

	"cavernfall/pkg/engine/world"
)

// AutomataConfig controls the cellular automata smoothing of the noise grid.
type AutomataConfig struct {
	SimulationSteps   int
	BirthThreshold    int
	SurvivalThreshold int
}

// DefaultAutomataConfig returns the standard cave-shaping parameters.
func DefaultAutomataConfig() AutomataConfig {
	return AutomataConfig{
		SimulationSteps:   5,
		BirthThreshold:    5,
		SurvivalThreshold: 4,
	}
}

// Validate checks the configuration before any simulation runs.
func (c AutomataConfig) Validate() error {
	if c.SimulationSteps < 0 {
		return fmt.Errorf("automata: simulation steps must be non-negative, got %d", c.SimulationSteps)
	}
	if c.BirthThreshold < 0 || c.BirthThreshold > 8 {
		return fmt.Errorf("automata: birth threshold must be in [0,8], got %d", c.BirthThreshold)
	}
	if c.SurvivalThreshold < 0 || c.SurvivalThreshold > 8 {
		return fmt.Errorf("automata: survival threshold must be in [0,8], got %d", c.SurvivalThreshold)
	}
	return nil
}

// Simulate applies the configured number of synchronous generations and
// returns a fresh grid; the input is never mutated. Every cell updates
// from the same prior-generation snapshot, and out-of-bounds neighbors
// count as walls.
func Simulate(grid *world.Grid, cfg AutomataConfig) *world.Grid {
	current := grid.Clone()
	for i := 0; i < cfg.SimulationSteps; i++ {
		current = step(current, cfg)
	}
	return current
}

// step computes one synchronous generation.
func step(grid *world.Grid, cfg AutomataConfig) *world.Grid {
	next := grid.Clone()
	grid.ForEachCell(func(x, y int, v world.CellValue) {
		n := grid.CountWallNeighbors(x, y)
		if v.IsWall() {
			if n >= cfg.SurvivalThreshold {
				next.Set(x, y, world.Wall)
			} else {
				next.Set(x, y, world.Floor)
			}
		} else {
			if n >= cfg.BirthThreshold {
				next.Set(x, y, world.Wall)
			} else {
				next.Set(x, y, world.Floor)
			}
		}
	})
	return next
}

// MicroSmooth runs interior-only polish passes after corridor carving:
// a cell with more than 5 wall neighbors solidifies, fewer than 3 opens.
// Border cells are untouched so the rim stays solid.
func MicroSmooth(grid *world.Grid, passes int) *world.Grid {
	current := grid.Clone()
	for i := 0; i < passes; i++ {
		next := current.Clone()
		current.ForEachCell(func(x, y int, _ world.CellValue) {
			if !current.IsInterior(x, y) {
				return
			}
			n := current.CountWallNeighbors(x, y)
			if n > 5 {
				next.Set(x, y, world.Wall)
			} else if n < 3 {
				next.Set(x, y, world.Floor)
			}
		})
		current = next
	}
	return current
}
