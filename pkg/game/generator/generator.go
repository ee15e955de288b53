// Package generator produces the raw cave geometry: a noise-seeded grid
// reshaped by cellular automata into organic caverns.
package generator

import (
	"cavernfall/pkg/engine/rng"
	"cavernfall/pkg/engine/world"
)

// GridGenerator is an interface for map generation algorithms
type GridGenerator interface {
	Generate(r *rng.Source) (*world.Grid, error)
	Name() string
}
