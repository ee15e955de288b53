package physics

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"cavernfall/pkg/engine/world"
)

// Frontier returns the reachable tiles (touched by walking, a jump arc or
// a fall) that border at least one floor tile the search never touched, in
// row-major scan order. Platform placement works outward from these.
func (a *Analyzer) Frontier(res *Result) []world.Point {
	var frontier []world.Point
	a.grid.ForEachCell(func(x, y int, v world.CellValue) {
		p := world.Point{X: x, Y: y}
		if !res.Covered.Has(p) {
			return
		}
		for _, dir := range world.AllDirections() {
			q := dir.Step(p)
			if a.grid.InBounds(q.X, q.Y) && a.grid.AtPoint(q).IsFloor() && !res.Covered.Has(q) {
				frontier = append(frontier, p)
				return
			}
		}
	})
	return frontier
}

// UnreachableFloor returns the floor tiles the search never touched, in
// row-major scan order.
func (a *Analyzer) UnreachableFloor(res *Result) []world.Point {
	var out []world.Point
	a.grid.ForEachCell(func(x, y int, v world.CellValue) {
		p := world.Point{X: x, Y: y}
		if v.IsFloor() && !res.Covered.Has(p) {
			out = append(out, p)
		}
	})
	return out
}

// Clusters groups cells into maximal 4-connected components, preserving
// scan order within and across clusters.
func Clusters(cells []world.Point) [][]world.Point {
	pending := mapset.New[world.Point]()
	for _, c := range cells {
		pending.Put(c)
	}

	var clusters [][]world.Point
	for _, c := range cells {
		if !pending.Has(c) {
			continue
		}
		var cluster []world.Point
		queue := []world.Point{c}
		pending.Remove(c)
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			cluster = append(cluster, cur)
			for _, dir := range world.AllDirections() {
				n := dir.Step(cur)
				if pending.Has(n) {
					pending.Remove(n)
					queue = append(queue, n)
				}
			}
		}
		clusters = append(clusters, cluster)
	}
	return clusters
}

// CriticalRing picks the minimal frontier subset worth augmenting with
// platforms: unreachable floor is clustered, every frontier tile is scored
// by the total area of the clusters it is closest to, and tiles are taken
// greedily (largest reclaim first) until every cluster has a
// representative. Platform placement then re-simulates only from these
// tiles instead of rescanning the whole grid.
func (a *Analyzer) CriticalRing(res *Result) []world.Point {
	frontier := a.Frontier(res)
	clusters := Clusters(a.UnreachableFloor(res))
	if len(frontier) == 0 || len(clusters) == 0 {
		return nil
	}

	// Nearest frontier tile per cluster; a frontier tile may serve
	// several clusters, and its reclaim score is their combined area.
	type candidate struct {
		tile  world.Point
		area  int
		order int
	}
	byTile := make(map[world.Point]*candidate)
	served := make(map[world.Point][]int)

	for ci, cluster := range clusters {
		best := frontier[0]
		bestDist := -1
		for _, f := range frontier {
			for _, c := range cluster {
				d := world.ManhattanDistance(f, c)
				if bestDist < 0 || d < bestDist {
					bestDist = d
					best = f
				}
			}
		}
		cand, ok := byTile[best]
		if !ok {
			cand = &candidate{tile: best, order: len(byTile)}
			byTile[best] = cand
		}
		cand.area += len(cluster)
		served[best] = append(served[best], ci)
	}

	candidates := make([]*candidate, 0, len(byTile))
	for _, c := range byTile {
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].area != candidates[j].area {
			return candidates[i].area > candidates[j].area
		}
		return candidates[i].order < candidates[j].order
	})

	coveredClusters := make(map[int]bool)
	var ring []world.Point
	for _, c := range candidates {
		fresh := false
		for _, ci := range served[c.tile] {
			if !coveredClusters[ci] {
				coveredClusters[ci] = true
				fresh = true
			}
		}
		if fresh {
			ring = append(ring, c.tile)
		}
		if len(coveredClusters) == len(clusters) {
			break
		}
	}
	return ring
}
