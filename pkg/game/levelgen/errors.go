// Package levelgen places spawn, goal, coins, platforms and enemies onto a
// generated cave, using the reachability analyzer as its validation oracle.
// Placement failure is an expected, recoverable outcome (the caller retries
// with a new seed), so every placer returns a structured error instead of
// panicking; panics are reserved for violated pipeline contracts.
package levelgen

import "fmt"

// PlacementError reports that a bounded placement search ran out of
// attempts, naming the constraint that could not be satisfied.
type PlacementError struct {
	Entity   string
	Attempts int
	Reason   string
}

// Error implements the error interface.
func (e *PlacementError) Error() string {
	return fmt.Sprintf("could not place %s after %d attempts: %s", e.Entity, e.Attempts, e.Reason)
}
