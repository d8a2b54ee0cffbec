package vmath

import (
	"math"
)

// AABB is an axis-aligned box.
type AABB struct {
	Min, Max Vec3
}

// Cube returns the box of side size centered on c.
func Cube(c Vec3, size float64) AABB {
	h := size / 2
	return AABB{
		Min: Vec3{c.X - h, c.Y - h, c.Z - h},
		Max: Vec3{c.X + h, c.Y + h, c.Z + h},
	}
}

// Center returns the box center.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Raycast intersects the ray origin + t*dir, t in [0, maxDist], with the box
// using the slab method. dir must be a unit vector for t to be a distance.
// A ray starting inside the box hits at distance 0.
func (b AABB) Raycast(origin, dir Vec3, maxDist float64) (float64, bool) {
	tMin, tMax := 0.0, maxDist

	o := [3]float64{origin.X, origin.Y, origin.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if math.Abs(d[axis]) < 1e-12 {
			// parallel to this slab: must already be between its planes
			if o[axis] < lo[axis] || o[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		inv := 1.0 / d[axis]
		t1 := (lo[axis] - o[axis]) * inv
		t2 := (hi[axis] - o[axis]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}
