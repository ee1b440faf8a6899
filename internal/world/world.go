// Package world advances a fixed roster of balls inside a rectangular
// container one frame at a time, resolving every collision in the order it
// happens.
//
// A World is not safe for concurrent use. Callers serialize frames and
// configuration changes, and read state only between frames.
package world

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/golang/geo/r2"
	"github.com/tomz197/ballworld/internal/object"
	"github.com/tomz197/ballworld/internal/physics"
)

// World is an arena with a fixed-capacity roster of balls. The first
// Active() balls take part in the simulation; the rest wait in reserve.
type World struct {
	balls     []*object.Ball
	baseline  []r2.Point // Preset velocity of each ball, by roster slot
	active    int
	container object.Container
	scale     float64

	frameDT     float64
	epsilon     float64
	maxSubsteps int
	drift       float64

	frame  uint64
	stats  FrameStats
	logger *log.Logger

	afterSubstep func() // Test hook, nil in normal use
}

// New builds a world from cfg. Active bodies fill the roster first in the
// order given, followed by reserve bodies in the order given.
func New(cfg Config) (*World, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w := &World{
		balls:       make([]*object.Ball, 0, len(cfg.Bodies)),
		baseline:    make([]r2.Point, 0, len(cfg.Bodies)),
		scale:       1,
		frameDT:     cfg.FrameDT,
		epsilon:     cfg.Epsilon,
		maxSubsteps: cfg.MaxSubsteps,
		drift:       object.DefaultDrift,
		logger:      logger,
	}
	w.container.Box = cfg.Container

	if cfg.DisableDrift {
		w.drift = 0
		logger.Info("velocity drift disabled")
	}

	for _, reserve := range [...]bool{false, true} {
		for _, spec := range cfg.Bodies {
			if spec.Reserve != reserve {
				continue
			}
			b := object.NewBall(spec.X, spec.Y, spec.Radius, spec.Speed, spec.Angle)
			w.balls = append(w.balls, b)
			w.baseline = append(w.baseline, b.Vel)
			if !reserve {
				w.active++
			}
		}
	}

	logger.Debug("world created", "active", w.active, "capacity", len(w.balls), "container", cfg.Container)
	return w, nil
}

// AdvanceFrame runs one frame: repeatedly find the earliest collision among
// all active balls and the walls, move everything up to that instant,
// resolve it, and continue with the time that is left. Remaining time
// below the epsilon is dropped.
//
// If the frame needs more sub-steps than the cap allows it stops early and
// returns a *SubstepError; the world is still consistent and the next
// frame starts normally.
func (w *World) AdvanceFrame() error {
	roster := w.balls[:w.active]
	for _, b := range roster {
		b.ResetPending()
	}

	w.frame++
	stats := FrameStats{Frame: w.frame}
	remaining := w.frameDT

	for remaining > w.epsilon {
		if stats.Substeps >= w.maxSubsteps {
			stats.Remaining = remaining
			w.stats = stats
			return &SubstepError{Substeps: stats.Substeps, Remaining: remaining}
		}

		tMin := w.earliestImpact(roster, remaining)
		for _, b := range roster {
			if b.Advance(tMin, w.drift) {
				stats.Collisions++
			}
		}

		remaining -= tMin
		stats.Substeps++
		if w.afterSubstep != nil {
			w.afterSubstep()
		}
	}

	w.stats = stats
	return nil
}

// earliestImpact records on every ball its earliest collision no later
// than limit, and returns the earliest time found overall (or limit). The
// bound tightens as the search goes, which only prunes candidates that
// could not be the earliest anyway.
func (w *World) earliestImpact(roster []*object.Ball, limit float64) float64 {
	tMin := limit

	for i, a := range roster {
		for _, b := range roster[i+1:] {
			a.CheckBall(b, tMin)
			tMin = math.Min(tMin, math.Min(a.Pending().T, b.Pending().T))
		}
	}

	for _, b := range roster {
		b.CheckWall(&w.container, tMin)
		tMin = math.Min(tMin, b.Pending().T)
	}

	return tMin
}

// Active returns the number of balls taking part in the simulation.
func (w *World) Active() int {
	return w.active
}

// Capacity returns the roster size, active and reserve together.
func (w *World) Capacity() int {
	return len(w.balls)
}

// Container returns the current container bounds.
func (w *World) Container() physics.Box {
	return w.container.Box
}

// VelocityScale returns the factor last applied with SetVelocityScale.
func (w *World) VelocityScale() float64 {
	return w.scale
}

// LastFrame returns statistics for the most recent frame.
func (w *World) LastFrame() FrameStats {
	return w.stats
}

// BodyState returns a copy of the ball in roster slot i. Reserve balls can
// be read too; their state is their preset.
func (w *World) BodyState(i int) (BodyState, error) {
	if i < 0 || i >= len(w.balls) {
		return BodyState{}, fmt.Errorf("%w: %d not in [0, %d)", ErrBodyIndex, i, len(w.balls))
	}
	return stateOf(w.balls[i], i < w.active), nil
}

// Bodies appends a copy of every active ball's state to dst and returns
// the extended slice.
func (w *World) Bodies(dst []BodyState) []BodyState {
	for _, b := range w.balls[:w.active] {
		dst = append(dst, stateOf(b, true))
	}
	return dst
}

// Ball returns the ball in roster slot i, or nil if i is out of range.
// The returned ball must not be modified while frames are running.
func (w *World) Ball(i int) *object.Ball {
	if i < 0 || i >= len(w.balls) {
		return nil
	}
	return w.balls[i]
}

// SetContainerBounds replaces the container. Apply it between frames only.
func (w *World) SetContainerBounds(minX, minY, maxX, maxY float64) error {
	box := physics.Box{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
	if !box.Valid() {
		return fmt.Errorf("%w: container %+v has no area", ErrInvalidConfiguration, box)
	}
	w.container.Set(minX, minY, maxX, maxY)
	w.logger.Debug("container resized", "container", box)
	return nil
}

// SetVelocityScale sets every active ball's velocity to its preset
// velocity times factor, discarding whatever collisions did to it. Reserve
// balls keep their preset until activated. Apply it between frames only.
func (w *World) SetVelocityScale(factor float64) error {
	if !positive(factor) {
		return fmt.Errorf("%w: velocity scale %v", ErrInvalidConfiguration, factor)
	}
	for i, b := range w.balls[:w.active] {
		b.Vel = w.baseline[i].Mul(factor)
	}
	w.scale = factor
	w.logger.Debug("velocity scale set", "factor", factor)
	return nil
}

// ActivateBody moves reserve ball i into the active roster at pos, keeping
// its preset velocity. The roster stays packed: the activated ball takes
// the first reserve slot, and the ball that held that slot takes slot i.
// Apply it between frames only.
func (w *World) ActivateBody(i int, pos r2.Point) error {
	if w.active == len(w.balls) {
		return ErrRosterFull
	}
	if i < w.active || i >= len(w.balls) {
		return fmt.Errorf("%w: %d is not a reserve slot in [%d, %d)", ErrBodyIndex, i, w.active, len(w.balls))
	}
	if !finite(pos.X) || !finite(pos.Y) {
		return fmt.Errorf("%w: activation position %v", ErrInvalidConfiguration, pos)
	}

	slot := w.active
	w.balls[i], w.balls[slot] = w.balls[slot], w.balls[i]
	w.baseline[i], w.baseline[slot] = w.baseline[slot], w.baseline[i]

	b := w.balls[slot]
	b.Pos = pos
	b.ResetPending()
	w.active++

	if !w.container.Holds(pos, b.Radius(), 0) {
		w.logger.Warn("body activated outside container", "slot", slot, "pos", pos)
	}
	for _, other := range w.balls[:slot] {
		if physics.CirclesOverlap(pos, b.Radius(), other.Pos, other.Radius()) {
			w.logger.Warn("body activated overlapping another", "slot", slot, "pos", pos)
			break
		}
	}
	w.logger.Debug("body activated", "slot", slot, "active", w.active)
	return nil
}

// Launch activates the next reserve ball at pos.
func (w *World) Launch(pos r2.Point) error {
	return w.ActivateBody(w.active, pos)
}

// TotalMomentum returns the summed momentum of the active balls.
func (w *World) TotalMomentum() r2.Point {
	var p r2.Point
	for _, b := range w.balls[:w.active] {
		p = p.Add(b.Momentum())
	}
	return p
}

// TotalKineticEnergy returns the summed kinetic energy of the active balls.
func (w *World) TotalKineticEnergy() float64 {
	var e float64
	for _, b := range w.balls[:w.active] {
		e += b.KineticEnergy()
	}
	return e
}
