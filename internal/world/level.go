package world

import (
	"math"

	"github.com/google/uuid"
)

// Level is the immutable output of one generation pass. It is replaced
// wholesale on regeneration; its grid is frozen and must not be mutated.
type Level struct {
	ID   uuid.UUID
	Seq  uint64 // Increments with every level a Generator publishes
	Seed int64  // Regenerating with this seed reproduces the level

	Grid     *Grid
	Rooms    []Room
	Start    Point // Entrance door cell
	End      Point // Exit door cell
	CellSize float64

	ExitDistance int // BFS hop count from Start to End
	Stats        Stats
}

// Stats records how a generation pass went, including recovered degeneracies.
type Stats struct {
	MazeConnections int
	RoomTarget      int
	RoomAttempts    int
	RoomsLinked     int
	Stitched        int
	TunnelLength    int
	ExitFallback    bool
}

// Width returns the grid width.
func (l *Level) Width() int { return l.Grid.Width() }

// Height returns the grid height.
func (l *Level) Height() int { return l.Grid.Height() }

// CellCenter returns the world-space (x, z) center of grid cell p. Grid x
// maps to world X and grid y maps to world Z.
func (l *Level) CellCenter(p Point) (float64, float64) {
	return CellCenter(l.Width(), l.Height(), l.CellSize, p)
}

// CellAt returns the grid cell containing world-space (x, z). The result may
// lie outside the grid.
func (l *Level) CellAt(x, z float64) Point {
	return CellAt(l.Width(), l.Height(), l.CellSize, x, z)
}

// CellCenter maps grid cell p to world space:
// world = (grid - dimension/2 + 0.5) * cellSize.
func CellCenter(width, height int, cellSize float64, p Point) (float64, float64) {
	x := (float64(p.X) - float64(width)/2 + 0.5) * cellSize
	z := (float64(p.Y) - float64(height)/2 + 0.5) * cellSize
	return x, z
}

// CellAt is the inverse of CellCenter for any point inside a cell.
func CellAt(width, height int, cellSize float64, x, z float64) Point {
	gx := math.Floor(x/cellSize + float64(width)/2)
	gy := math.Floor(z/cellSize + float64(height)/2)
	return Point{int(gx), int(gy)}
}

// RoomIndexAt returns the index of the room containing p, or -1 outside rooms.
func (l *Level) RoomIndexAt(p Point) int {
	for i, room := range l.Rooms {
		if room.Contains(p.X, p.Y) {
			return i
		}
	}
	return -1
}
