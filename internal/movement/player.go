package movement

import (
	"math"
	"time"

	"github.com/samdwyer/mazedelve/internal/vmath"
)

// MaxPitch bounds how far the camera looks up or down (89 degrees).
const MaxPitch = 89 * math.Pi / 180

// Input is one tick's snapshot of player controls.
type Input struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Use     bool

	Yaw   float64 // Radians; 0 looks down -Z, positive turns left
	Pitch float64 // Radians; presentation only

	Elapsed time.Duration
}

// Player is the movement subsystem's view of the player.
type Player struct {
	Position vmath.Vec3
	Yaw      float64
	Pitch    float64
	Radius   float64
}

// Facing returns the full look vector.
func (p Player) Facing() vmath.Vec3 {
	return vmath.LookDirection(p.Yaw, p.Pitch)
}

// Basis returns the planar forward and right unit vectors. Pitch never
// leaks into either.
func (p Player) Basis() (forward, right vmath.Vec3) {
	forward = p.Facing().Flatten()
	if forward.IsZero() {
		forward = vmath.LookDirection(p.Yaw, 0)
	}
	right = forward.Cross(vmath.Up)
	return forward, right
}

// ClampPitch limits pitch to +/-MaxPitch.
func ClampPitch(pitch float64) float64 {
	return math.Max(-MaxPitch, math.Min(MaxPitch, pitch))
}

// WrapYaw maps yaw into [0, 2pi).
func WrapYaw(yaw float64) float64 {
	yaw = math.Mod(yaw, 2*math.Pi)
	if yaw < 0 {
		yaw += 2 * math.Pi
	}
	return yaw
}
