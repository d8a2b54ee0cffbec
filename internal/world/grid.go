package world

import (
	"fmt"
	"strings"
)

// Grid is a fixed-size two-dimensional array of cells.
//
// Get and Set panic on out-of-bounds coordinates: an out-of-range access is
// a defect in carving or placement, not a runtime condition. A grid is frozen
// when its level is published; any Set after that panics.
type Grid struct {
	width  int
	height int
	cells  []Cell
	frozen bool
}

// NewGrid allocates a width x height grid filled with walls.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("world: invalid grid size %dx%d", width, height))
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height), // CellWall is the zero value
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds returns true if (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Interior returns true if (x, y) lies inside the grid and off the outer ring.
func (g *Grid) Interior(x, y int) bool {
	return x > 0 && x < g.width-1 && y > 0 && y < g.height-1
}

// OnBorder returns true if (x, y) is on the outer 1-cell ring.
func (g *Grid) OnBorder(x, y int) bool {
	return g.InBounds(x, y) && !g.Interior(x, y)
}

func (g *Grid) index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("world: cell (%d,%d) out of bounds for %dx%d grid", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// Get returns the cell at (x, y).
func (g *Grid) Get(x, y int) Cell {
	return g.cells[g.index(x, y)]
}

// At returns the cell at p.
func (g *Grid) At(p Point) Cell {
	return g.Get(p.X, p.Y)
}

// Set stores c at (x, y).
func (g *Grid) Set(x, y int, c Cell) {
	if g.frozen {
		panic(fmt.Sprintf("world: set (%d,%d) on a published grid", x, y))
	}
	g.cells[g.index(x, y)] = c
}

// IsPassable reports whether (x, y) is a walkable cell. Unlike Get it accepts
// any coordinate: positions outside the grid are not passable. Use it for
// queries driven by player positions rather than generation logic.
func (g *Grid) IsPassable(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.cells[y*g.width+x].IsWalkable()
}

// Count returns the number of cells of type c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

// Find returns the coordinates of every cell of type c in row-major order.
func (g *Grid) Find(c Cell) []Point {
	var out []Point
	for i, v := range g.cells {
		if v == c {
			out = append(out, Point{i % g.width, i / g.width})
		}
	}
	return out
}

// WalkableCount returns the number of non-wall cells.
func (g *Grid) WalkableCount() int {
	return len(g.cells) - g.Count(CellWall)
}

// ForEach calls fn for every cell in row-major order.
func (g *Grid) ForEach(fn func(x, y int, c Cell)) {
	for i, v := range g.cells {
		fn(i%g.width, i/g.width, v)
	}
}

// Freeze marks the grid as published.
func (g *Grid) Freeze() { g.frozen = true }

// Frozen reports whether the grid has been published.
func (g *Grid) Frozen() bool { return g.frozen }

// Clone returns an unfrozen copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// String renders the grid one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			b.WriteRune(g.cells[y*g.width+x].Rune())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseGrid builds a grid from the String format. Rows must share one width.
func ParseGrid(s string) (*Grid, error) {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	width := len(strings.TrimRight(lines[0], "\r"))
	if width == 0 {
		return nil, fmt.Errorf("parse grid: empty input")
	}
	g := NewGrid(width, len(lines))
	for y, line := range lines {
		line = strings.TrimRight(line, "\r")
		if len(line) != width {
			return nil, fmt.Errorf("parse grid: row %d has width %d, want %d", y, len(line), width)
		}
		for x, r := range line {
			c, ok := cellFromRune(r)
			if !ok {
				return nil, fmt.Errorf("parse grid: unknown cell %q at (%d,%d)", r, x, y)
			}
			g.Set(x, y, c)
		}
	}
	return g, nil
}

func cellFromRune(r rune) (Cell, bool) {
	for c := CellWall; c <= CellDoorEnd; c++ {
		if c.Rune() == r {
			return c, true
		}
	}
	return CellWall, false
}
