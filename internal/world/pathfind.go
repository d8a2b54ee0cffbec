package world

// Unreachable is the distance recorded for cells BFS never visits.
const Unreachable = -1

// PathResult is the outcome of a breadth-first search from a start cell.
type PathResult struct {
	Start    Point
	Farthest Point // First-discovered cell at the maximum distance
	Distance int   // Hop count from Start to Farthest
	Reached  int   // Number of cells visited, Start included

	width int
	dist  []int
}

// DistanceTo returns the hop count from Start to p, or Unreachable.
func (r PathResult) DistanceTo(p Point) int {
	if p.X < 0 || p.Y < 0 || p.X >= r.width || r.width == 0 {
		return Unreachable
	}
	i := p.Y*r.width + p.X
	if i >= len(r.dist) {
		return Unreachable
	}
	return r.dist[i]
}

// FindFarthest runs a breadth-first search over the 4-connected walkable
// cells of g and returns the cell farthest from start by hop count.
//
// Neighbors are expanded N, S, W, E and a cell only replaces the current best
// when strictly farther, so ties resolve to the first cell discovered. If start
// is a wall nothing is reached and Farthest is start itself.
func FindFarthest(g *Grid, start Point) PathResult {
	res := PathResult{
		Start:    start,
		Farthest: start,
		width:    g.Width(),
		dist:     make([]int, g.Width()*g.Height()),
	}
	for i := range res.dist {
		res.dist[i] = Unreachable
	}
	if !g.At(start).IsWalkable() {
		return res
	}

	res.dist[start.Y*res.width+start.X] = 0
	res.Reached = 1
	queue := []Point{start}

	for head := 0; head < len(queue); head++ {
		curr := queue[head]
		d := res.dist[curr.Y*res.width+curr.X]

		for _, step := range cardinals {
			next := curr.Add(step)
			if !g.InBounds(next.X, next.Y) || !g.At(next).IsWalkable() {
				continue
			}
			i := next.Y*res.width + next.X
			if res.dist[i] != Unreachable {
				continue
			}
			res.dist[i] = d + 1
			res.Reached++
			if d+1 > res.Distance {
				res.Distance = d + 1
				res.Farthest = next
			}
			queue = append(queue, next)
		}
	}

	return res
}
