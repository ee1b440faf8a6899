package world

import (
	"github.com/golang/geo/r2"
	"github.com/tomz197/ballworld/internal/object"
)

// BodyState is a read-only copy of one ball.
type BodyState struct {
	Pos    r2.Point
	Vel    r2.Point
	Radius float64
	Active bool
}

// Sprite returns a drawable picture of the body.
func (s BodyState) Sprite() object.Sprite {
	return object.Sprite{Pos: s.Pos, Radius: s.Radius}
}

// FrameStats summarises one call to AdvanceFrame.
type FrameStats struct {
	Frame      uint64  // Frame counter, starting at 1
	Substeps   int     // Sub-steps run
	Collisions int     // Balls that took a collision response
	Remaining  float64 // Frame time left unresolved; non-zero only when the cap was hit
}

func stateOf(b *object.Ball, active bool) BodyState {
	return BodyState{
		Pos:    b.Pos,
		Vel:    b.Vel,
		Radius: b.Radius(),
		Active: active,
	}
}
