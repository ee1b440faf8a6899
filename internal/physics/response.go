package physics

import (
	"math"

	"github.com/golang/geo/r2"
)

// NoCollision is the time of impact reported when nothing is hit. It is
// larger than any valid time limit.
const NoCollision = math.MaxFloat64

// TimeTolerance is the window inside which two impact times count as
// simultaneous.
const TimeTolerance = 1e-9

// CollisionResponse describes one predicted impact for a single disc: when
// it happens, measured from the start of the current search, and the
// velocity the disc leaves with.
type CollisionResponse struct {
	T   float64
	Vel r2.Point
}

// None returns a response that reports no collision.
func None() CollisionResponse {
	return CollisionResponse{T: NoCollision}
}

// Found reports whether the response holds an impact.
func (r CollisionResponse) Found() bool {
	return r.T < NoCollision
}

// Earlier reports whether r happens strictly before o. Times within
// TimeTolerance of each other are a tie, and a tie is not earlier.
func (r CollisionResponse) Earlier(o CollisionResponse) bool {
	if !r.Found() {
		return false
	}
	if !o.Found() {
		return true
	}
	return r.T < o.T-TimeTolerance
}

// Position returns where a disc starting at pos with velocity vel is at
// the moment of impact.
func (r CollisionResponse) Position(pos, vel r2.Point) r2.Point {
	return pos.Add(vel.Mul(r.T))
}

// clampTime maps times that are NaN, negative or beyond limit to
// NoCollision.
func clampTime(t, limit float64) float64 {
	if math.IsNaN(t) || t < 0 || t > limit {
		return NoCollision
	}
	return t
}
