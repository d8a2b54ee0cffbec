package world

import (
	"fmt"
	"math/rand"
)

// Maze neighbors sit two cells away; the cell in between is the connection.
var mazeSteps = [4]Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

// carveFrame is one level of the backtracker: a maze cell and its shuffled
// directions, with next pointing at the first direction not yet tried.
type carveFrame struct {
	at   Point
	dirs [4]Point
	next int
}

// CarveMaze carves a perfect maze into g starting at start, which must be an
// interior cell at odd coordinates. It returns the number of connections
// carved, which for a perfect maze equals the number of maze cells minus one.
//
// The backtracker keeps its frontier on an explicit stack. Each frame shuffles
// its four directions once and tries them in that order, so the visit order
// is the same as the recursive formulation.
func CarveMaze(g *Grid, start Point, rng *rand.Rand) int {
	if !g.Interior(start.X, start.Y) || start.X%2 == 0 || start.Y%2 == 0 {
		panic(fmt.Sprintf("world: maze start (%d,%d) must be an odd interior cell", start.X, start.Y))
	}

	g.Set(start.X, start.Y, CellPath)
	stack := []carveFrame{newCarveFrame(start, rng)}
	connections := 0

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}

		d := top.dirs[top.next]
		top.next++

		target := top.at.Add(d)
		if !g.Interior(target.X, target.Y) || g.At(target) != CellWall {
			continue
		}

		g.Set(top.at.X+d.X/2, top.at.Y+d.Y/2, CellPath)
		g.Set(target.X, target.Y, CellPath)
		connections++

		// top is invalidated by the append
		stack = append(stack, newCarveFrame(target, rng))
	}

	return connections
}

func newCarveFrame(at Point, rng *rand.Rand) carveFrame {
	f := carveFrame{at: at, dirs: mazeSteps}
	rng.Shuffle(len(f.dirs), func(i, j int) {
		f.dirs[i], f.dirs[j] = f.dirs[j], f.dirs[i]
	})
	return f
}

// MazeCellCount returns the number of odd-coordinate interior cells, i.e. the
// nodes a perfect maze on a width x height grid spans.
func MazeCellCount(width, height int) int {
	return ((width - 1) / 2) * ((height - 1) / 2)
}
