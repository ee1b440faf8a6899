package object

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/tomz197/ballworld/internal/physics"
)

// DefaultDrift is the per-axis velocity nudge applied after collision-free
// motion. Each component moves toward zero by this amount whenever the
// ball travels diagonally, which bends its path on every free sub-step.
// It is not gravity or drag; set a ball world's drift to 0 to turn it off.
const DefaultDrift = 0.01

// Ball is a rigid disc owned by a world roster. It remembers the single
// earliest collision found for it during the current sub-step search.
type Ball struct {
	Pos r2.Point // Center
	Vel r2.Point // Units per unit of simulation time

	radius  float64
	pending physics.CollisionResponse
}

// NewBall creates a ball at (x, y). The angle is in degrees measured
// counter-clockwise with the screen's y axis pointing down, so a positive
// angle moves the ball up.
func NewBall(x, y, radius, speed, angleDeg float64) *Ball {
	cos, sin := direction(angleDeg)
	return &Ball{
		Pos:     r2.Point{X: x, Y: y},
		Vel:     r2.Point{X: speed * cos, Y: -speed * sin},
		radius:  radius,
		pending: physics.None(),
	}
}

// direction returns the cosine and sine of an angle in degrees. Multiples
// of 90 are exact so axis-aligned balls carry no stray component.
func direction(angleDeg float64) (float64, float64) {
	switch math.Mod(angleDeg, 360) {
	case 0:
		return 1, 0
	case 90, -270:
		return 0, 1
	case 180, -180:
		return -1, 0
	case 270, -90:
		return 0, -1
	}
	return math.Cos(angleDeg * math.Pi / 180), math.Sin(angleDeg * math.Pi / 180)
}

// Radius returns the ball's radius.
func (b *Ball) Radius() float64 {
	return b.radius
}

// Mass returns the ball's mass, derived from its radius.
func (b *Ball) Mass() float64 {
	return physics.Mass(b.radius)
}

// Speed returns the magnitude of the ball's velocity.
func (b *Ball) Speed() float64 {
	return b.Vel.Norm()
}

// MoveAngle returns the direction of travel in degrees, y axis inverted.
func (b *Ball) MoveAngle() float64 {
	return math.Atan2(-b.Vel.Y, b.Vel.X) * 180 / math.Pi
}

// KineticEnergy returns ½·m·|v|².
func (b *Ball) KineticEnergy() float64 {
	return 0.5 * b.Mass() * b.Vel.Dot(b.Vel)
}

// Momentum returns m·v.
func (b *Ball) Momentum() r2.Point {
	return b.Vel.Mul(b.Mass())
}

// Disc returns the ball's current motion as a physics disc.
func (b *Ball) Disc() physics.Disc {
	return physics.Disc{Pos: b.Pos, Vel: b.Vel, Radius: b.radius}
}

// Pending returns the earliest collision recorded since the last reset.
func (b *Ball) Pending() physics.CollisionResponse {
	return b.pending
}

// ResetPending forgets any recorded collision.
func (b *Ball) ResetPending() {
	b.pending = physics.None()
}

// CheckWall records a collision with the container walls if it happens
// strictly earlier than the one already pending.
func (b *Ball) CheckWall(c *Container, timeLimit float64) {
	b.merge(physics.WallImpact(b.Disc(), c.Box, timeLimit))
}

// CheckBall records a collision with another ball on both balls, each
// keeping it only if it is strictly earlier than what it already holds.
func (b *Ball) CheckBall(other *Ball, timeLimit float64) {
	mine, theirs := physics.PairImpact(b.Disc(), other.Disc(), timeLimit)
	other.merge(theirs)
	b.merge(mine)
}

func (b *Ball) merge(r physics.CollisionResponse) {
	if r.Earlier(b.pending) {
		b.pending = r
	}
}

// Advance moves the ball through a sub-step of length dt and reports
// whether it collided. A ball whose pending collision falls within dt
// stops at the impact point and takes on the response velocity; the rest
// of dt is left for the next sub-step. Otherwise it travels the full dt
// and the drift nudge is applied. The pending collision is cleared either
// way.
func (b *Ball) Advance(dt, drift float64) bool {
	defer b.ResetPending()

	if b.pending.Found() && b.pending.T <= dt+physics.TimeTolerance {
		b.Pos = b.pending.Position(b.Pos, b.Vel)
		b.Vel = b.pending.Vel
		return true
	}

	b.Pos = b.Pos.Add(b.Vel.Mul(dt))
	b.applyDrift(drift)
	return false
}

// applyDrift moves both velocity components toward zero by drift when the
// ball is travelling diagonally. Axis-aligned or resting balls are left
// untouched.
func (b *Ball) applyDrift(drift float64) {
	if drift == 0 || b.Vel.X == 0 || b.Vel.Y == 0 {
		return
	}
	if b.Vel.X < 0 {
		b.Vel.X += drift
	} else {
		b.Vel.X -= drift
	}
	if b.Vel.Y < 0 {
		b.Vel.Y += drift
	} else {
		b.Vel.Y -= drift
	}
}

// String formats the ball for diagnostics.
func (b *Ball) String() string {
	return fmt.Sprintf("@(%3.0f,%3.0f) r=%3.0f V=(%3.0f,%3.0f) S=%4.1f Θ=%4.0f KE=%3.0f",
		b.Pos.X, b.Pos.Y, b.radius, b.Vel.X, b.Vel.Y, b.Speed(), b.MoveAngle(), b.KineticEnergy())
}
