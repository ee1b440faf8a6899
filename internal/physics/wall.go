package physics

import "math"

// WallImpact finds the earliest time within [0, timeLimit] at which the
// disc's leading edge reaches one of the box walls, and the velocity it
// reflects to. Walls the disc is moving away from or parallel to are
// ignored. A disc that already touches or crosses a wall it is moving
// toward is hit at t = 0. When a vertical and a horizontal wall are hit at
// the same instant (a corner) both velocity components are reflected.
func WallImpact(d Disc, box Box, timeLimit float64) CollisionResponse {
	tx := NoCollision
	switch {
	case d.Vel.X > 0:
		tx = approachTime(box.MaxX-d.Radius-d.Pos.X, d.Vel.X, timeLimit)
	case d.Vel.X < 0:
		tx = approachTime(d.Pos.X-(box.MinX+d.Radius), -d.Vel.X, timeLimit)
	}

	ty := NoCollision
	switch {
	case d.Vel.Y > 0:
		ty = approachTime(box.MaxY-d.Radius-d.Pos.Y, d.Vel.Y, timeLimit)
	case d.Vel.Y < 0:
		ty = approachTime(d.Pos.Y-(box.MinY+d.Radius), -d.Vel.Y, timeLimit)
	}

	t := math.Min(tx, ty)
	if t == NoCollision {
		return None()
	}

	vel := d.Vel
	if tx <= t+TimeTolerance {
		vel.X = -vel.X
	}
	if ty <= t+TimeTolerance {
		vel.Y = -vel.Y
	}
	return CollisionResponse{T: t, Vel: vel}
}

// approachTime solves gap = closing * t for a closing speed > 0.
func approachTime(gap, closing, timeLimit float64) float64 {
	if gap <= 0 {
		return 0
	}
	return clampTime(gap/closing, timeLimit)
}
