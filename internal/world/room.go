package world

// Room represents a rectangular room stamped onto the grid.
type Room struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the room
}

// Center returns the center coordinates of the room.
func (r Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects returns true if this room overlaps with another room.
func (r Room) Intersects(other Room) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Expand returns the room grown by n cells on every side.
func (r Room) Expand(n int) Room {
	return Room{X: r.X - n, Y: r.Y - n, Width: r.Width + 2*n, Height: r.Height + 2*n}
}

// Cells returns every covered coordinate in row-major order.
func (r Room) Cells() []Point {
	out := make([]Point, 0, r.Width*r.Height)
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			out = append(out, Point{x, y})
		}
	}
	return out
}

// Inside returns true if the room lies entirely within the grid interior.
func (r Room) Inside(g *Grid) bool {
	return r.Width > 0 && r.Height > 0 &&
		g.Interior(r.X, r.Y) &&
		g.Interior(r.X+r.Width-1, r.Y+r.Height-1)
}
