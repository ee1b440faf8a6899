package world

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/tomz197/ballworld/internal/physics"
)

// Frame defaults.
const (
	DefaultFrameDT     = 1.0   // One time unit per frame; velocities are per frame
	DefaultEpsilon     = 1e-2  // Remaining frame time below this is dropped
	DefaultMaxSubsteps = 10000 // Safety cap on sub-steps per frame
)

// BodySpec describes one body at initialization. Speed is in units per
// time unit and Angle in degrees, counter-clockwise with y pointing down.
type BodySpec struct {
	X, Y    float64
	Radius  float64
	Speed   float64
	Angle   float64
	Reserve bool // Pre-allocated but inactive until activated
}

// Config describes a world at initialization.
type Config struct {
	Container physics.Box
	Bodies    []BodySpec

	// Capacity is the roster size. Every slot needs a preset body, so a
	// non-zero Capacity must equal len(Bodies). Zero means len(Bodies).
	Capacity int

	FrameDT     float64 // Zero means DefaultFrameDT
	Epsilon     float64 // Zero means DefaultEpsilon
	MaxSubsteps int     // Zero means DefaultMaxSubsteps

	// DisableDrift turns off the per-sub-step velocity nudge on
	// collision-free diagonal motion.
	DisableDrift bool

	Logger *log.Logger // Nil discards log output
}

// withDefaults fills zero fields with their defaults.
func (c Config) withDefaults() Config {
	if c.FrameDT == 0 {
		c.FrameDT = DefaultFrameDT
	}
	if c.Epsilon == 0 {
		c.Epsilon = DefaultEpsilon
	}
	if c.MaxSubsteps == 0 {
		c.MaxSubsteps = DefaultMaxSubsteps
	}
	if c.Capacity == 0 {
		c.Capacity = len(c.Bodies)
	}
	return c
}

// validate checks a config that already has defaults applied.
func (c Config) validate() error {
	if !c.Container.Valid() {
		return fmt.Errorf("%w: container %+v has no area", ErrInvalidConfiguration, c.Container)
	}
	if !positive(c.FrameDT) {
		return fmt.Errorf("%w: frame duration %v", ErrInvalidConfiguration, c.FrameDT)
	}
	if !positive(c.Epsilon) || c.Epsilon >= c.FrameDT {
		return fmt.Errorf("%w: epsilon %v must be in (0, %v)", ErrInvalidConfiguration, c.Epsilon, c.FrameDT)
	}
	if c.MaxSubsteps < 0 {
		return fmt.Errorf("%w: sub-step cap %d", ErrInvalidConfiguration, c.MaxSubsteps)
	}
	if len(c.Bodies) > c.Capacity {
		return fmt.Errorf("%w: %d bodies exceed capacity %d", ErrInvalidConfiguration, len(c.Bodies), c.Capacity)
	}
	if len(c.Bodies) < c.Capacity {
		return fmt.Errorf("%w: capacity %d has only %d preset bodies", ErrInvalidConfiguration, c.Capacity, len(c.Bodies))
	}
	for i, b := range c.Bodies {
		if !positive(b.Radius) {
			return fmt.Errorf("%w: body %d radius %v", ErrInvalidConfiguration, i, b.Radius)
		}
		if !finite(b.X) || !finite(b.Y) || !finite(b.Speed) || !finite(b.Angle) {
			return fmt.Errorf("%w: body %d has non-finite motion", ErrInvalidConfiguration, i)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positive(v float64) bool {
	return finite(v) && v > 0
}
