// Package regions labels maximal 4-connected floor components of a cave
// grid and records per-region area and bounding box.
package regions

import (
	"cavernfall/pkg/engine/world"
)

// FirstLabel is the label of the first discovered region. Labels 0 and 1
// are reserved for the raw floor/wall cell values.
const FirstLabel = 2

// WallLabel is the label kept by wall cells in the label grid.
const WallLabel = int(world.Wall)

// Region describes one maximal 4-connected floor component.
type Region struct {
	Label int
	Area  int
	Min   world.Point
	Max   world.Point
}

// Labeling is the result of region detection: a label grid parallel to the
// cave grid plus per-region metadata in discovery (label) order.
type Labeling struct {
	width   int
	height  int
	labels  []int
	Regions []Region
}

// LabelAt returns the label at (x, y): WallLabel for walls, a region label
// >= FirstLabel for floor cells.
func (l *Labeling) LabelAt(x, y int) int {
	return l.labels[y*l.width+x]
}

// FloorArea returns the total floor cell count across all regions.
func (l *Labeling) FloorArea() int {
	total := 0
	for _, r := range l.Regions {
		total += r.Area
	}
	return total
}

// Largest returns the region with the greatest area, or nil if the grid has
// no floor at all. Ties resolve to the earliest-discovered region.
func (l *Labeling) Largest() *Region {
	var best *Region
	for i := range l.Regions {
		if best == nil || l.Regions[i].Area > best.Area {
			best = &l.Regions[i]
		}
	}
	return best
}

// CellsOf returns the member cells of a label in row-major scan order.
func (l *Labeling) CellsOf(label int) []world.Point {
	var cells []world.Point
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			if l.labels[y*l.width+x] == label {
				cells = append(cells, world.Point{X: x, Y: y})
			}
		}
	}
	return cells
}

// Detect scans the grid row-major and flood-fills each unlabeled floor cell's
// component with the next unused label, starting at FirstLabel. Every floor
// cell is labeled exactly once; wall cells keep WallLabel. Runs in time
// linear in the cell count.
func Detect(grid *world.Grid) *Labeling {
	if grid == nil {
		panic("regions: nil grid")
	}
	w := grid.Width()
	h := grid.Height()
	labeling := &Labeling{
		width:  w,
		height: h,
		labels: make([]int, w*h),
	}

	grid.ForEachCell(func(x, y int, v world.CellValue) {
		if v.IsWall() {
			labeling.labels[y*w+x] = WallLabel
		}
	})

	nextLabel := FirstLabel
	qx := make([]int, 0, w*h)
	qy := make([]int, 0, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if labeling.labels[idx] != int(world.Floor) || grid.At(x, y).IsWall() {
				continue
			}

			region := Region{
				Label: nextLabel,
				Min:   world.Point{X: x, Y: y},
				Max:   world.Point{X: x, Y: y},
			}
			labeling.labels[idx] = nextLabel
			qx = qx[:0]
			qy = qy[:0]
			qx = append(qx, x)
			qy = append(qy, y)

			for len(qx) > 0 {
				cx := qx[0]
				cy := qy[0]
				qx = qx[1:]
				qy = qy[1:]

				region.Area++
				if cx < region.Min.X {
					region.Min.X = cx
				}
				if cy < region.Min.Y {
					region.Min.Y = cy
				}
				if cx > region.Max.X {
					region.Max.X = cx
				}
				if cy > region.Max.Y {
					region.Max.Y = cy
				}

				for _, dir := range world.AllDirections() {
					dx, dy := dir.Delta()
					nx, ny := cx+dx, cy+dy
					if !grid.InBounds(nx, ny) || grid.At(nx, ny).IsWall() {
						continue
					}
					nidx := ny*w + nx
					if labeling.labels[nidx] == int(world.Floor) {
						labeling.labels[nidx] = nextLabel
						qx = append(qx, nx)
						qy = append(qy, ny)
					}
				}
			}

			labeling.Regions = append(labeling.Regions, region)
			nextLabel++
		}
	}

	return labeling
}
