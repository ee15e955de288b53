// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based game.
package world

// CellValue is the logical state of a single grid cell.
type CellValue uint8

// Cell state constants. Wall is 1 so a region label grid can keep the raw
// wall value while floor components receive labels starting at 2.
const (
	Floor CellValue = 0
	Wall  CellValue = 1
)

// IsFloor returns true if the cell is open space.
func (v CellValue) IsFloor() bool {
	return v == Floor
}

// IsWall returns true if the cell is solid.
func (v CellValue) IsWall() bool {
	return v == Wall
}

// String returns the string representation of a cell value.
func (v CellValue) String() string {
	switch v {
	case Floor:
		return "Floor"
	case Wall:
		return "Wall"
	default:
		return "Unknown"
	}
}
