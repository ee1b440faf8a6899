// Package physics provides continuous collision detection and elastic
// response for moving discs inside an axis-aligned box.
package physics

import (
	"math"

	"github.com/golang/geo/r2"
)

// Disc is a circle moving in a straight line. Velocity is in units per
// unit of simulation time.
type Disc struct {
	Pos    r2.Point
	Vel    r2.Point
	Radius float64
}

// Mass returns the disc's mass, proportional to the cube of its radius.
func (d Disc) Mass() float64 {
	return Mass(d.Radius)
}

// Mass derives the mass of a disc from its radius.
func Mass(radius float64) float64 {
	return radius * radius * radius / 1000
}

// Box is an axis-aligned rectangle. Its walls are motionless and have
// infinite mass.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the vertical extent of the box.
func (b Box) Height() float64 {
	return b.MaxY - b.MinY
}

// Valid reports whether all bounds are finite and the box has positive area.
func (b Box) Valid() bool {
	for _, v := range [...]float64{b.MinX, b.MinY, b.MaxX, b.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.Width() > 0 && b.Height() > 0
}

// Holds reports whether a disc of the given radius centered at p lies
// entirely inside the box, allowing tol of slack on every side.
func (b Box) Holds(p r2.Point, radius, tol float64) bool {
	return p.X >= b.MinX+radius-tol && p.X <= b.MaxX-radius+tol &&
		p.Y >= b.MinY+radius-tol && p.Y <= b.MaxY-radius+tol
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b r2.Point) float64 {
	return b.Sub(a).Norm()
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b r2.Point) float64 {
	d := b.Sub(a)
	return d.Dot(d)
}

// CirclesOverlap checks if two circles overlap.
func CirclesOverlap(a r2.Point, ra float64, b r2.Point, rb float64) bool {
	minDist := ra + rb
	return DistanceSquared(a, b) < minDist*minDist
}
