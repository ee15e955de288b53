// Package connectivity measures how much of a cave's floor belongs to its
// dominant region and carves corridors to join stray regions to it, with a
// bounded-retry, wall-clock-budgeted fallback protocol.
package connectivity

import (
	"fmt"
	"time"

	"cavernfall/pkg/game/regions"
)

// Config controls connectivity validation and the fallback carving loop.
type Config struct {
	// ConnectivityThreshold is the minimum fraction of floor cells the
	// largest region must hold for the grid to count as connected. The
	// default is high enough that in practice a connected grid is a
	// single region.
	ConnectivityThreshold float64
	MaxFallbackAttempts   int
	FallbackTimeout       time.Duration
}

// DefaultConfig returns the standard connectivity parameters.
func DefaultConfig() Config {
	return Config{
		ConnectivityThreshold: 0.95,
		MaxFallbackAttempts:   5,
		FallbackTimeout:       2 * time.Second,
	}
}

// Validate checks the configuration before any carving runs.
func (c Config) Validate() error {
	if c.ConnectivityThreshold <= 0 || c.ConnectivityThreshold > 1 {
		return fmt.Errorf("connectivity: threshold must be in (0,1], got %v", c.ConnectivityThreshold)
	}
	if c.MaxFallbackAttempts <= 0 {
		return fmt.Errorf("connectivity: max fallback attempts must be positive, got %d", c.MaxFallbackAttempts)
	}
	if c.FallbackTimeout <= 0 {
		return fmt.Errorf("connectivity: fallback timeout must be positive, got %v", c.FallbackTimeout)
	}
	return nil
}

// Score returns largest-region area divided by total floor area, or 1 for a
// grid with no floor (nothing to connect).
func Score(l *regions.Labeling) float64 {
	total := l.FloorArea()
	if total == 0 {
		return 1
	}
	return float64(l.Largest().Area) / float64(total)
}

// IsConnected reports whether a labeling satisfies the connectivity rule:
// at most one region, or a score at or above the threshold. The score rule
// wins at the boundary, so two very-unequal regions can already count as
// connected without carving.
func IsConnected(l *regions.Labeling, cfg Config) bool {
	if len(l.Regions) <= 1 {
		return true
	}
	return Score(l) >= cfg.ConnectivityThreshold
}
