package world

import (
	"github.com/zyedidia/generic/mapset"
)

// Reachable returns the set of walkable cells 4-connected to start.
func Reachable(g *Grid, start Point) mapset.Set[Point] {
	reached := mapset.New[Point]()
	if !g.InBounds(start.X, start.Y) || !g.At(start).IsWalkable() {
		return reached
	}

	reached.Put(start)
	queue := []Point{start}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, step := range cardinals {
			next := curr.Add(step)
			if g.InBounds(next.X, next.Y) && g.At(next).IsWalkable() && !reached.Has(next) {
				reached.Put(next)
				queue = append(queue, next)
			}
		}
	}
	return reached
}

// Unreached returns walkable cells not connected to start, in row-major order.
func Unreached(g *Grid, start Point) []Point {
	reached := Reachable(g, start)
	var out []Point
	g.ForEach(func(x, y int, c Cell) {
		p := Point{x, y}
		if c.IsWalkable() && !reached.Has(p) {
			out = append(out, p)
		}
	})
	return out
}

// Stitch carves corridors until every walkable cell is connected to start.
// Each pass links the reached set to the nearest disconnected cell and
// returns the number of corridors carved.
func Stitch(g *Grid, start Point) int {
	stitched := 0
	// every pass merges at least one component, so walkable cells bound it
	for limit := g.WalkableCount(); limit > 0; limit-- {
		reached := Reachable(g, start)
		if reached.Size() == g.WalkableCount() {
			break
		}
		// row-major so the carved corridor does not depend on map order
		var sources []Point
		g.ForEach(func(x, y int, _ Cell) {
			if p := (Point{x, y}); reached.Has(p) {
				sources = append(sources, p)
			}
		})
		if !carveLink(g, sources, func(p Point) bool {
			return g.At(p).IsWalkable() && !reached.Has(p)
		}) {
			break
		}
		stitched++
	}
	return stitched
}

// carveLink finds the shortest interior route from any source to a cell
// matching isTarget and carves its wall cells into corridor. Sources are
// expanded in the given order so the result is deterministic for a fixed
// source order. It returns false when no target is reachable.
func carveLink(g *Grid, sources []Point, isTarget func(Point) bool) bool {
	if len(sources) == 0 {
		return false
	}
	w := g.Width()
	parent := make([]int, w*g.Height())
	for i := range parent {
		parent[i] = -2
	}

	queue := make([]Point, 0, len(sources))
	for _, s := range sources {
		i := s.Y*w + s.X
		if parent[i] == -2 {
			parent[i] = -1
			queue = append(queue, s)
		}
	}

	for head := 0; head < len(queue); head++ {
		curr := queue[head]
		for _, step := range cardinals {
			next := curr.Add(step)
			if !g.Interior(next.X, next.Y) {
				continue
			}
			i := next.Y*w + next.X
			if parent[i] != -2 {
				continue
			}
			parent[i] = curr.Y*w + curr.X
			if isTarget(next) {
				for j := parent[i]; j >= 0; j = parent[j] {
					x, y := j%w, j/w
					if g.Get(x, y) == CellWall {
						g.Set(x, y, CellPath)
					}
				}
				return true
			}
			queue = append(queue, next)
		}
	}
	return false
}
