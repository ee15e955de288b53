// Package physics computes which tiles of a cave a player can actually
// stand on, by searching the implicit movement graph whose nodes are
// standing positions and whose edges are walk, jump-arc and fall
// transitions under the configured movement constants.
package physics

import (
	"fmt"
	"math"
)

// Physics holds the movement constants the reachability search simulates.
// Units are tiles and seconds; gravity points down the +Y axis.
type Physics struct {
	// JumpHeight is the apex height of a standing jump, in tiles.
	JumpHeight float64
	// Gravity is the downward acceleration in tiles per second squared.
	Gravity float64
	// WalkSpeed is the horizontal speed carried into a jump, in tiles
	// per second.
	WalkSpeed float64
}

// DefaultPhysics returns the standard platformer movement constants.
func DefaultPhysics() Physics {
	return Physics{
		JumpHeight: 3.5,
		Gravity:    18.0,
		WalkSpeed:  4.0,
	}
}

// Validate checks the constants before any simulation runs.
func (p Physics) Validate() error {
	if p.JumpHeight <= 0 {
		return fmt.Errorf("physics: jump height must be positive, got %v", p.JumpHeight)
	}
	if p.Gravity <= 0 {
		return fmt.Errorf("physics: gravity must be positive, got %v", p.Gravity)
	}
	if p.WalkSpeed <= 0 {
		return fmt.Errorf("physics: walk speed must be positive, got %v", p.WalkSpeed)
	}
	return nil
}

// InitialJumpSpeed returns the takeoff speed that reaches JumpHeight under
// Gravity, from the projectile relation v0 = sqrt(2*g*h).
func (p Physics) InitialJumpSpeed() float64 {
	return math.Sqrt(2 * p.Gravity * p.JumpHeight)
}
