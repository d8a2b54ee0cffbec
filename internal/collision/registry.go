// Package collision holds the solid volumes derived from a level and answers
// ray queries against them.
package collision

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/samdwyer/mazedelve/internal/vmath"
	"github.com/samdwyer/mazedelve/internal/world"
)

// World is the read-only view the movement resolver probes.
type World interface {
	// Raycast returns the distance to the nearest solid hit by the segment
	// origin + t*dir, t in [0, maxDist]. dir must be a unit vector.
	Raycast(origin, dir vmath.Vec3, maxDist float64) (float64, bool)
	// Len returns the number of live solids. A released world has none.
	Len() int
	// LevelID identifies the level the world was built from.
	LevelID() uuid.UUID
}

// Handle identifies one registered solid. Handles are owned by the registry
// that issued them and die with it.
type Handle uuid.UUID

func (h Handle) String() string { return uuid.UUID(h).String() }

type solid struct {
	handle Handle
	box    vmath.AABB
}

// Registry is a set of axis-aligned solids bucketed by grid cell. It is
// populated by a Builder and then only read until Release.
type Registry struct {
	level    uuid.UUID
	width    int
	height   int
	cellSize float64

	mu      sync.RWMutex
	solids  []solid
	buckets map[world.Point][]int
	owned   []Handle

	released atomic.Bool
}

// NewRegistry creates an empty registry for a width x height grid of
// cellSize cells belonging to level.
func NewRegistry(level uuid.UUID, width, height int, cellSize float64) *Registry {
	return &Registry{
		level:    level,
		width:    width,
		height:   height,
		cellSize: cellSize,
		buckets:  make(map[world.Point][]int),
	}
}

// Add registers a cell-sized solid centered on c and returns its handle.
// The solid is indexed under the cell containing its center, which may lie
// outside the grid.
func (r *Registry) Add(c vmath.Vec3) Handle {
	h := Handle(uuid.New())
	box := vmath.Cube(c, r.cellSize)
	cell := world.CellAt(r.width, r.height, r.cellSize, c.X, c.Z)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released.Load() {
		panic("collision: Add on a released registry")
	}
	r.solids = append(r.solids, solid{handle: h, box: box})
	r.buckets[cell] = append(r.buckets[cell], len(r.solids)-1)
	r.owned = append(r.owned, h)
	return h
}

// handles returns a copy of the ownership list in registration order.
func (r *Registry) handles() []Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Handle(nil), r.owned...)
}

// Release drops every solid the registry owns and returns how many were
// released. Later queries see an empty world. Releasing twice is a no-op.
func (r *Registry) Release() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released.Swap(true) {
		return 0
	}
	n := len(r.owned)
	r.solids = nil
	r.buckets = nil
	r.owned = nil
	return n
}

// LevelID implements World.
func (r *Registry) LevelID() uuid.UUID {
	return r.level
}

// Len implements World.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.solids)
}

// Raycast implements World. Only solids bucketed in cells the segment can
// touch are tested.
func (r *Registry) Raycast(origin, dir vmath.Vec3, maxDist float64) (float64, bool) {
	if maxDist < 0 {
		return 0, false
	}
	end := origin.Add(dir.Scale(maxDist))
	lo := world.CellAt(r.width, r.height, r.cellSize, math.Min(origin.X, end.X), math.Min(origin.Z, end.Z))
	hi := world.CellAt(r.width, r.height, r.cellSize, math.Max(origin.X, end.X), math.Max(origin.Z, end.Z))

	r.mu.RLock()
	defer r.mu.RUnlock()

	best, hit := maxDist, false
	for y := lo.Y - 1; y <= hi.Y+1; y++ {
		for x := lo.X - 1; x <= hi.X+1; x++ {
			for _, i := range r.buckets[world.Point{X: x, Y: y}] {
				if d, ok := r.solids[i].box.Raycast(origin, dir, best); ok && d <= best {
					best, hit = d, true
				}
			}
		}
	}
	if !hit {
		return 0, false
	}
	return best, true
}

// boxes returns the solids currently registered.
func (r *Registry) boxes() []vmath.AABB {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]vmath.AABB, len(r.solids))
	for i, s := range r.solids {
		out[i] = s.box
	}
	return out
}
