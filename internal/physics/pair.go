package physics

import (
	"math"

	"github.com/golang/geo/r2"
)

// PairImpact finds the earliest time within [0, timeLimit] at which the
// two discs touch, and the velocities each one leaves with. Both
// responses carry the same time.
//
// Discs that are not approaching each other never collide. Discs that
// already touch or overlap and are still approaching collide at t = 0, so
// an overlapping pair that is separating is left alone until it parts.
func PairImpact(a, b Disc, timeLimit float64) (CollisionResponse, CollisionResponse) {
	d := b.Pos.Sub(a.Pos)
	w := b.Vel.Sub(a.Vel)
	r := a.Radius + b.Radius

	// |d + w·t|² = r² expands to aa·t² + 2·hb·t + cc = 0.
	aa := w.Dot(w)
	hb := d.Dot(w)
	cc := d.Dot(d) - r*r

	if aa == 0 || hb >= 0 {
		return None(), None()
	}

	var t float64
	if cc > 0 {
		disc := hb*hb - aa*cc
		if disc < 0 {
			return None(), None()
		}
		// Smaller root, written to avoid cancellation when hb² ≫ aa·cc.
		t = cc / (-hb + math.Sqrt(disc))
	}

	t = clampTime(t, timeLimit)
	if t == NoCollision {
		return None(), None()
	}

	va, vb := Bounce(a, b, t)
	return CollisionResponse{T: t, Vel: va}, CollisionResponse{T: t, Vel: vb}
}

// Bounce resolves a perfectly elastic impact between two discs that touch
// after moving for time t. Velocity components along the line of centers
// are exchanged using the two-body elastic formula weighted by mass; the
// tangential components are unchanged.
func Bounce(a, b Disc, t float64) (r2.Point, r2.Point) {
	pa := a.Pos.Add(a.Vel.Mul(t))
	pb := b.Pos.Add(b.Vel.Mul(t))

	n := pb.Sub(pa).Normalize()
	if n == (r2.Point{}) {
		// Coincident centers: push apart along the relative motion.
		n = a.Vel.Sub(b.Vel).Normalize()
	}

	ma, mb := a.Mass(), b.Mass()
	ua, ub := a.Vel.Dot(n), b.Vel.Dot(n)

	tanA := a.Vel.Sub(n.Mul(ua))
	tanB := b.Vel.Sub(n.Mul(ub))

	ua2 := ((ma-mb)*ua + 2*mb*ub) / (ma + mb)
	ub2 := ((mb-ma)*ub + 2*ma*ua) / (ma + mb)

	return tanA.Add(n.Mul(ua2)), tanB.Add(n.Mul(ub2))
}
