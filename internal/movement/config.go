// Package movement resolves per-tick player input against the collision
// world of the current level.
package movement

import (
	"errors"
	"fmt"
)

const (
	DefaultColliderRadius = 0.3
	DefaultSpeed          = 3.0 // world units per second
	DefaultTurnSpeed      = 2.5 // radians per second
	DefaultProbeEpsilon   = 0.05
	DefaultMaxStep        = 0.25
	DefaultEyeHeight      = 0.75
)

var (
	ErrSpeed  = errors.New("movement speed must be positive")
	ErrRadius = errors.New("collider radius must be positive")
	ErrStep   = errors.New("probe epsilon must be non-negative and max step positive")
)

// Config holds player movement parameters.
type Config struct {
	ColliderRadius float64
	Speed          float64
	TurnSpeed      float64
	ProbeEpsilon   float64
	MaxStep        float64 // Largest displacement applied per sub-step
	EyeHeight      float64
}

// DefaultConfig returns the standard movement tuning.
func DefaultConfig() Config {
	return Config{
		ColliderRadius: DefaultColliderRadius,
		Speed:          DefaultSpeed,
		TurnSpeed:      DefaultTurnSpeed,
		ProbeEpsilon:   DefaultProbeEpsilon,
		MaxStep:        DefaultMaxStep,
		EyeHeight:      DefaultEyeHeight,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Speed <= 0 {
		return fmt.Errorf("%w: got %v", ErrSpeed, c.Speed)
	}
	if c.ColliderRadius <= 0 {
		return fmt.Errorf("%w: got %v", ErrRadius, c.ColliderRadius)
	}
	if c.ProbeEpsilon < 0 || c.MaxStep <= 0 {
		return fmt.Errorf("%w: epsilon %v, max step %v", ErrStep, c.ProbeEpsilon, c.MaxStep)
	}
	return nil
}
