package generator

import (
	"fmt"

	"cavernfall/pkg/engine/rng"
	"cavernfall/pkg/engine/world"
)

// SeederConfig controls the initial noise grid.
type SeederConfig struct {
	Width            int
	Height           int
	InitialWallRatio float64
}

// DefaultSeederConfig returns the standard cave dimensions.
func DefaultSeederConfig() SeederConfig {
	return SeederConfig{
		Width:            60,
		Height:           60,
		InitialWallRatio: 0.45,
	}
}

// Validate checks the configuration before any simulation runs.
func (c SeederConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("seeder: dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.InitialWallRatio < 0 || c.InitialWallRatio > 1 {
		return fmt.Errorf("seeder: initial wall ratio must be in [0,1], got %v", c.InitialWallRatio)
	}
	return nil
}

// Seeder fills a grid with random wall noise at a target ratio.
// The border is always solid so the cave has no open edge.
type Seeder struct {
	cfg SeederConfig
}

// NewSeeder creates a seeder, validating its configuration eagerly.
func NewSeeder(cfg SeederConfig) (*Seeder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Seeder{cfg: cfg}, nil
}

// Name returns the name of this generator
func (s *Seeder) Name() string {
	return "Noise Seeder"
}

// Generate fills a fresh grid in a single row-major pass. Each interior
// cell is wall with probability InitialWallRatio; exactly one random draw
// is consumed per interior cell, so the same source state always yields
// the same grid.
func (s *Seeder) Generate(r *rng.Source) (*world.Grid, error) {
	grid := world.NewGrid(s.cfg.Width, s.cfg.Height)
	grid.ForEachCell(func(x, y int, _ world.CellValue) {
		if grid.IsEdge(x, y) {
			grid.Set(x, y, world.Wall)
			return
		}
		if r.Float64() < s.cfg.InitialWallRatio {
			grid.Set(x, y, world.Wall)
		}
	})
	return grid, nil
}
