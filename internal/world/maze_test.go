package world

import (
	"math/rand"
	"testing"
)

func TestCarveMazeIsPerfect(t *testing.T) {
	for _, size := range [][2]int{{5, 5}, {7, 5}, {9, 13}, {31, 31}, {51, 17}} {
		for seed := int64(1); seed <= 5; seed++ {
			g := NewGrid(size[0], size[1])
			rng := rand.New(rand.NewSource(seed))

			connections := CarveMaze(g, Entrance, rng)

			cells := MazeCellCount(size[0], size[1])
			if connections != cells-1 {
				t.Errorf("%dx%d seed %d: %d connections, want %d", size[0], size[1], seed, connections, cells-1)
			}
			// a spanning tree carves every maze cell plus one connector per edge
			if got := g.Count(CellPath); got != 2*cells-1 {
				t.Errorf("%dx%d seed %d: %d path cells, want %d", size[0], size[1], seed, got, 2*cells-1)
			}
			if missing := Unreached(g, Entrance); len(missing) > 0 {
				t.Errorf("%dx%d seed %d: %d path cells unreachable", size[0], size[1], seed, len(missing))
			}
			for x := 0; x < g.Width(); x++ {
				if g.Get(x, 0) != CellWall || g.Get(x, g.Height()-1) != CellWall {
					t.Fatalf("%dx%d seed %d: border carved at column %d", size[0], size[1], seed, x)
				}
			}
			for y := 0; y < g.Height(); y++ {
				if g.Get(0, y) != CellWall || g.Get(g.Width()-1, y) != CellWall {
					t.Fatalf("%dx%d seed %d: border carved at row %d", size[0], size[1], seed, y)
				}
			}
		}
	}
}

func TestCarveMazeVisitsOnlyOddCells(t *testing.T) {
	g := NewGrid(21, 21)
	CarveMaze(g, Entrance, rand.New(rand.NewSource(3)))

	g.ForEach(func(x, y int, c Cell) {
		if c != CellPath {
			return
		}
		// even-even cells are wall pillars between four maze cells
		if x%2 == 0 && y%2 == 0 {
			t.Errorf("pillar (%d,%d) was carved", x, y)
		}
	})
}

func TestCarveMazeDeterministic(t *testing.T) {
	g1, g2 := NewGrid(25, 25), NewGrid(25, 25)
	CarveMaze(g1, Entrance, rand.New(rand.NewSource(99)))
	CarveMaze(g2, Entrance, rand.New(rand.NewSource(99)))

	if g1.String() != g2.String() {
		t.Error("same seed produced different mazes")
	}
}

func TestCarveMazeRejectsEvenStart(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("CarveMaze() from an even cell should panic")
		}
	}()
	CarveMaze(NewGrid(7, 7), Point{2, 1}, rand.New(rand.NewSource(1)))
}
