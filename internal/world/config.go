package world

import (
	"errors"
	"fmt"
	"math"
)

const (
	// Default level dimensions (both must be odd)
	DefaultWidth  = 31
	DefaultHeight = 31

	// DefaultCellSize is the world-space side of one cell.
	DefaultCellSize = 1.5

	// Room parameters
	defaultMinRooms     = 3
	defaultMaxRooms     = 5
	defaultMinRoomSize  = 3
	defaultMaxRoomSize  = 5
	defaultRoomAttempts = 50

	// MinDimension is the smallest legal grid side.
	MinDimension = 5
)

// Configuration errors. Generate wraps them with the offending values.
var (
	ErrEvenDimension     = errors.New("grid dimension must be odd")
	ErrDimensionTooSmall = errors.New("grid dimension too small")
	ErrCellSize          = errors.New("cell size must be positive")
	ErrRoomCount         = errors.New("invalid room count range")
	ErrRoomSize          = errors.New("invalid room size range")
	ErrRoomAttempts      = errors.New("room attempts must not be negative")
)

// Config holds level generation options.
type Config struct {
	Width    int     // Columns, odd and >= MinDimension
	Height   int     // Rows, odd and >= MinDimension
	CellSize float64 // World units per cell

	MinRooms     int // Inclusive range the target room count is drawn from
	MaxRooms     int
	MinRoomSize  int // Inclusive range for room width and height
	MaxRoomSize  int
	RoomAttempts int // Candidate rectangles tried before giving up

	// Seed for random number generation. A seed of 0 means a random seed
	// will be generated.
	Seed int64
}

// DefaultConfig returns the standard 31x31 level configuration.
func DefaultConfig() Config {
	return Config{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		CellSize:     DefaultCellSize,
		MinRooms:     defaultMinRooms,
		MaxRooms:     defaultMaxRooms,
		MinRoomSize:  defaultMinRoomSize,
		MaxRoomSize:  defaultMaxRoomSize,
		RoomAttempts: defaultRoomAttempts,
	}
}

// Validate rejects configurations a generation pass cannot honor. Values are
// never rounded or clamped into range.
func (c Config) Validate() error {
	for _, d := range []struct {
		name  string
		value int
	}{{"width", c.Width}, {"height", c.Height}} {
		if d.value < MinDimension {
			return fmt.Errorf("%s %d: %w (minimum %d)", d.name, d.value, ErrDimensionTooSmall, MinDimension)
		}
		if d.value%2 == 0 {
			return fmt.Errorf("%s %d: %w", d.name, d.value, ErrEvenDimension)
		}
	}
	if !(c.CellSize > 0) || math.IsInf(c.CellSize, 0) {
		return fmt.Errorf("cell size %v: %w", c.CellSize, ErrCellSize)
	}
	if c.MinRooms < 0 || c.MaxRooms < c.MinRooms {
		return fmt.Errorf("rooms %d..%d: %w", c.MinRooms, c.MaxRooms, ErrRoomCount)
	}
	if c.MinRoomSize < 1 || c.MaxRoomSize < c.MinRoomSize {
		return fmt.Errorf("room size %d..%d: %w", c.MinRoomSize, c.MaxRoomSize, ErrRoomSize)
	}
	if c.RoomAttempts < 0 {
		return fmt.Errorf("room attempts %d: %w", c.RoomAttempts, ErrRoomAttempts)
	}
	return nil
}
