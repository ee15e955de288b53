package world

// Grid represents a cave map as a dense row-major array of floor/wall cells
// with encapsulated storage. Pipeline stages treat grids as immutable inputs:
// a stage that reshapes the map works on a Clone and returns it.
type Grid struct {
	width  int
	height int
	cells  []CellValue
}

// NewGrid creates a new all-floor grid with the given dimensions.
// Panics on non-positive dimensions; callers validate configuration
// before a grid ever exists, so this is a contract failure.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic("Grid dimensions must be positive")
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]CellValue, width*height),
	}
}

// Width returns the number of columns in the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows in the grid
func (g *Grid) Height() int {
	return g.height
}

// InBounds checks if an x/y position is within grid bounds
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// IsEdge checks if a position is on the outer border of the grid
func (g *Grid) IsEdge(x, y int) bool {
	return x == 0 || y == 0 || x == g.width-1 || y == g.height-1
}

// IsInterior checks if a position is inside the playable area (not on the
// border). Generators keep the border solid so the map has no open edge.
func (g *Grid) IsInterior(x, y int) bool {
	return g.InBounds(x, y) && !g.IsEdge(x, y)
}

// At returns the cell value at the given position.
// Panics when out of bounds; use AtOrWall for neighbor scans.
func (g *Grid) At(x, y int) CellValue {
	if !g.InBounds(x, y) {
		panic("Grid position out of bounds")
	}
	return g.cells[y*g.width+x]
}

// AtPoint returns the cell value at the given point.
func (g *Grid) AtPoint(p Point) CellValue {
	return g.At(p.X, p.Y)
}

// AtOrWall returns the cell value at the given position, treating
// out-of-bounds positions as solid. Edge-neighbor scans rely on this.
func (g *Grid) AtOrWall(x, y int) CellValue {
	if !g.InBounds(x, y) {
		return Wall
	}
	return g.cells[y*g.width+x]
}

// Set writes the cell value at the given position. Returns false if out of bounds.
func (g *Grid) Set(x, y int, v CellValue) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.cells[y*g.width+x] = v
	return true
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]CellValue, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// Equal reports whether two grids have identical dimensions and cells.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for i, v := range g.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}

// ForEachCell iterates over all cells row-major, calling the provided function for each
func (g *Grid) ForEachCell(fn func(x, y int, v CellValue)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(x, y, g.cells[y*g.width+x])
		}
	}
}

// FloorCount returns the number of floor cells in the grid.
func (g *Grid) FloorCount() int {
	n := 0
	for _, v := range g.cells {
		if v.IsFloor() {
			n++
		}
	}
	return n
}

// WallRatio returns the fraction of cells that are walls.
func (g *Grid) WallRatio() float64 {
	return 1 - float64(g.FloorCount())/float64(len(g.cells))
}

// CountWallNeighbors counts wall cells among the 8-neighborhood of (x, y).
// Out-of-bounds neighbors count as walls, so edge cells see a solid rim.
func (g *Grid) CountWallNeighbors(x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.AtOrWall(x+dx, y+dy).IsWall() {
				count++
			}
		}
	}
	return count
}

// HasFooting reports whether (x, y) is a floor cell with solid ground
// directly below it. Below-the-grid counts as solid, matching the
// out-of-bounds-is-wall convention, though generators keep the bottom
// border walled anyway.
func (g *Grid) HasFooting(x, y int) bool {
	return g.InBounds(x, y) && g.At(x, y).IsFloor() && g.AtOrWall(x, y+1).IsWall()
}

// HasFootingAt reports whether the point is a floor cell with solid ground below.
func (g *Grid) HasFootingAt(p Point) bool {
	return g.HasFooting(p.X, p.Y)
}

// Validate checks the grid for common issues and returns an error description
// or empty string if valid
func (g *Grid) Validate() string {
	if g.width <= 0 || g.height <= 0 {
		return "Grid has invalid dimensions"
	}
	if len(g.cells) != g.width*g.height {
		return "Grid cell storage does not match dimensions"
	}
	if g.FloorCount() == 0 {
		return "Grid has no floor cells"
	}
	return ""
}
