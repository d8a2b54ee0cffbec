package world

import (
	"math/rand"
)

// Placement summarizes one room placement pass.
type Placement struct {
	Rooms    []Room
	Target   int // Rooms requested for this pass
	Attempts int // Candidate rectangles tried
	Linked   int // Rooms that needed a carved link to the maze
}

// PlaceRooms stamps up to a random number of rooms in [MinRooms, MaxRooms]
// onto g by repeated random trial. A candidate is rejected if it leaves the
// grid interior or comes within one cell of an already placed room. The pass
// stops after cfg.RoomAttempts candidates even if fewer rooms were placed.
//
// Accepted rooms overwrite walls and corridors alike. A room whose footprint
// neither covers nor borders a corridor is linked to the nearest walkable cell.
func PlaceRooms(g *Grid, cfg Config, rng *rand.Rand) Placement {
	p := Placement{
		Target: cfg.MinRooms + rng.Intn(cfg.MaxRooms-cfg.MinRooms+1),
	}

	for p.Attempts < cfg.RoomAttempts && len(p.Rooms) < p.Target {
		p.Attempts++

		w := cfg.MinRoomSize + rng.Intn(cfg.MaxRoomSize-cfg.MinRoomSize+1)
		h := cfg.MinRoomSize + rng.Intn(cfg.MaxRoomSize-cfg.MinRoomSize+1)

		// x in [1, width-1-w] keeps x+w-1 off the outer ring
		spanX, spanY := g.Width()-1-w, g.Height()-1-h
		if spanX < 1 || spanY < 1 {
			continue
		}
		room := Room{
			X:      1 + rng.Intn(spanX),
			Y:      1 + rng.Intn(spanY),
			Width:  w,
			Height: h,
		}
		if !room.Inside(g) || overlapsAny(room, p.Rooms) {
			continue
		}

		connected := touchesWalkable(g, room)
		stampRoom(g, room)
		if !connected {
			linkRoom(g, room)
			p.Linked++
		}
		p.Rooms = append(p.Rooms, room)
	}

	return p
}

// overlapsAny tests room against every placed room with a one-cell margin so
// two rooms never share a wall.
func overlapsAny(room Room, placed []Room) bool {
	for _, other := range placed {
		if room.Intersects(other.Expand(1)) {
			return true
		}
	}
	return false
}

// touchesWalkable reports whether any covered or edge-adjacent cell is
// already walkable. It must run before the room is stamped.
func touchesWalkable(g *Grid, room Room) bool {
	outer := room.Expand(1)
	for y := outer.Y; y < outer.Y+outer.Height; y++ {
		for x := outer.X; x < outer.X+outer.Width; x++ {
			corner := (x == outer.X || x == outer.X+outer.Width-1) &&
				(y == outer.Y || y == outer.Y+outer.Height-1)
			if corner || !g.InBounds(x, y) {
				continue
			}
			if g.Get(x, y).IsWalkable() {
				return true
			}
		}
	}
	return false
}

func stampRoom(g *Grid, room Room) {
	for _, c := range room.Cells() {
		g.Set(c.X, c.Y, CellRoomFloor)
	}
}

func linkRoom(g *Grid, room Room) bool {
	return carveLink(g, room.Cells(), func(p Point) bool {
		return !room.Contains(p.X, p.Y) && g.At(p).IsWalkable()
	})
}
