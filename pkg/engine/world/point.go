package world

// Point is an integer grid coordinate. X grows rightward, Y grows downward;
// the origin is the top-left corner.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ManhattanDistance returns the Manhattan distance between two points.
func ManhattanDistance(a, b Point) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
