package world

import (
	"math/rand"
	"testing"
)

func TestPlaceRoomsRespectsBoundsAndSpacing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinRooms, cfg.MaxRooms = 4, 8

	for seed := int64(1); seed <= 30; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := NewGrid(31, 31)
		CarveMaze(g, Entrance, rng)

		p := PlaceRooms(g, cfg, rng)

		if p.Attempts > cfg.RoomAttempts {
			t.Errorf("seed %d: %d attempts exceeds budget %d", seed, p.Attempts, cfg.RoomAttempts)
		}
		if len(p.Rooms) > p.Target {
			t.Errorf("seed %d: placed %d rooms, target %d", seed, len(p.Rooms), p.Target)
		}
		for i, a := range p.Rooms {
			if !a.Inside(g) {
				t.Errorf("seed %d: room %+v leaves the interior", seed, a)
			}
			for _, c := range a.Cells() {
				if g.At(c) != CellRoomFloor {
					t.Errorf("seed %d: room %d cell %v is %v", seed, i, c, g.At(c))
				}
			}
			for _, b := range p.Rooms[i+1:] {
				if a.Intersects(b) {
					t.Errorf("seed %d: rooms %+v and %+v overlap", seed, a, b)
				}
			}
		}
		if missing := Unreached(g, Entrance); len(missing) > 0 {
			t.Errorf("seed %d: rooms left %d cells disconnected", seed, len(missing))
		}
	}
}

func TestPlaceRoomsGivesUpWithinBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinRooms, cfg.MaxRooms = 10, 10
	cfg.MinRoomSize, cfg.MaxRoomSize = 4, 4
	cfg.RoomAttempts = 20

	rng := rand.New(rand.NewSource(5))
	g := NewGrid(9, 9)
	CarveMaze(g, Entrance, rng)

	p := PlaceRooms(g, cfg, rng)
	if p.Attempts != cfg.RoomAttempts {
		t.Errorf("Attempts = %d, want the whole budget %d", p.Attempts, cfg.RoomAttempts)
	}
	if len(p.Rooms) >= p.Target {
		t.Errorf("placed %d rooms on a 9x9 grid, expected fewer than %d", len(p.Rooms), p.Target)
	}
}

func TestPlaceRoomsTooLargeForGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinRoomSize, cfg.MaxRoomSize = 10, 12

	rng := rand.New(rand.NewSource(1))
	g := NewGrid(7, 7)
	CarveMaze(g, Entrance, rng)

	if p := PlaceRooms(g, cfg, rng); len(p.Rooms) != 0 {
		t.Errorf("placed %d oversized rooms", len(p.Rooms))
	}
}

func TestPlaceRoomsLinksIsolatedRoom(t *testing.T) {
	// a lone corridor on the left; any room must be linked to it
	g, err := ParseGrid(`
#########
#.#######
#.#######
#.#######
#.#######
#.#######
#.#######
#.#######
#########`)
	if err != nil {
		t.Fatalf("ParseGrid() error = %v", err)
	}
	room := Room{X: 5, Y: 3, Width: 2, Height: 2}
	if touchesWalkable(g, room) {
		t.Fatal("room should start isolated")
	}
	stampRoom(g, room)
	if !linkRoom(g, room) {
		t.Fatal("linkRoom() found no corridor")
	}
	if missing := Unreached(g, Point{1, 1}); len(missing) > 0 {
		t.Errorf("room still disconnected:\n%s", g)
	}
}

func TestRoomIntersects(t *testing.T) {
	r1 := Room{0, 0, 10, 10}
	r2 := Room{5, 5, 10, 10}  // Overlaps
	r3 := Room{20, 20, 5, 5}  // Disjoint
	r4 := Room{10, 0, 3, 3}   // Edge-adjacent

	if !r1.Intersects(r2) {
		t.Error("Rooms should intersect")
	}
	if r1.Intersects(r3) {
		t.Error("Rooms should NOT intersect")
	}
	if r1.Intersects(r4) {
		t.Error("Edge-adjacent rooms should NOT intersect")
	}
	if !r4.Intersects(r1.Expand(1)) {
		t.Error("Edge-adjacent room should hit the one-cell margin")
	}
}
