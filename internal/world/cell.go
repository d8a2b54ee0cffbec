// Package world provides level generation: maze carving, room placement,
// exit placement and the immutable level descriptor.
package world

// Cell represents the type of a single grid cell.
type Cell uint8

const (
	// CellWall is solid rock. Every cell starts as a wall.
	CellWall Cell = iota
	// CellPath is a carved maze corridor.
	CellPath
	// CellRoomFloor is floor stamped by a room.
	CellRoomFloor
	// CellDoorStart marks the level entrance.
	CellDoorStart
	// CellDoorEnd marks the level exit.
	CellDoorEnd
)

// IsWalkable returns true for every cell type except walls.
func (c Cell) IsWalkable() bool {
	return c != CellWall
}

// IsDoor returns true for the entrance and exit cells.
func (c Cell) IsDoor() bool {
	return c == CellDoorStart || c == CellDoorEnd
}

// Rune returns the cell's display character.
func (c Cell) Rune() rune {
	switch c {
	case CellWall:
		return '#'
	case CellPath:
		return '.'
	case CellRoomFloor:
		return '_'
	case CellDoorStart:
		return 'S'
	case CellDoorEnd:
		return 'E'
	default:
		return '?'
	}
}

// String returns a human-readable cell name.
func (c Cell) String() string {
	switch c {
	case CellWall:
		return "wall"
	case CellPath:
		return "path"
	case CellRoomFloor:
		return "room_floor"
	case CellDoorStart:
		return "door_start"
	case CellDoorEnd:
		return "door_end"
	default:
		return "unknown"
	}
}

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Add returns p offset by q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Cardinal neighbor offsets in BFS visitation order: N, S, W, E.
var cardinals = [4]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
