package object

import (
	"math"
	"strings"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/tomz197/ballworld/internal/physics"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewBallAngleConvention(t *testing.T) {
	tests := []struct {
		name   string
		angle  float64
		wantVX float64
		wantVY float64
	}{
		{"east", 0, 10, 0},
		{"north is up", 90, 0, -10},
		{"west", 180, -10, 0},
		{"south is down", -90, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBall(0, 0, 1, 10, tt.angle)
			if !near(b.Vel.X, tt.wantVX) || !near(b.Vel.Y, tt.wantVY) {
				t.Errorf("Vel = %v, want (%v, %v)", b.Vel, tt.wantVX, tt.wantVY)
			}
			if !near(b.MoveAngle(), tt.angle) && !near(math.Abs(b.MoveAngle()), 180) {
				t.Errorf("MoveAngle = %v, want %v", b.MoveAngle(), tt.angle)
			}
		})
	}
}

func TestNewBallAxisAnglesAreExact(t *testing.T) {
	for _, angle := range []float64{0, 90, 180, 270, -90, 360, 450} {
		b := NewBall(0, 0, 1, 7, angle)
		if b.Vel.X != 0 && b.Vel.Y != 0 {
			t.Errorf("angle %v: Vel = %v, want one zero component", angle, b.Vel)
		}
	}
}

func TestBallMass(t *testing.T) {
	b := NewBall(0, 0, 10, 0, 0)
	if b.Mass() != 1 {
		t.Errorf("Mass = %v, want 1", b.Mass())
	}
	if b.Pending().Found() {
		t.Error("new ball should have no pending collision")
	}
}

func TestAdvanceFreeFlight(t *testing.T) {
	b := NewBall(10, 10, 1, 0, 0)
	b.Vel = r2.Point{X: 3, Y: 0}

	if b.Advance(2, DefaultDrift) {
		t.Error("free flight reported a collision")
	}
	if b.Pos != (r2.Point{X: 16, Y: 10}) {
		t.Errorf("Pos = %v, want (16, 10)", b.Pos)
	}
	// Axis-aligned motion is never nudged.
	if b.Vel != (r2.Point{X: 3, Y: 0}) {
		t.Errorf("Vel = %v, want (3, 0)", b.Vel)
	}
}

func TestAdvanceDrift(t *testing.T) {
	tests := []struct {
		name string
		vel  r2.Point
		want r2.Point
	}{
		{"up-left", r2.Point{X: -1, Y: -1}, r2.Point{X: -0.99, Y: -0.99}},
		{"up-right", r2.Point{X: 1, Y: -1}, r2.Point{X: 0.99, Y: -0.99}},
		{"down-right", r2.Point{X: 1, Y: 1}, r2.Point{X: 0.99, Y: 0.99}},
		{"down-left", r2.Point{X: -1, Y: 1}, r2.Point{X: -0.99, Y: 0.99}},
		{"resting", r2.Point{}, r2.Point{}},
		{"vertical", r2.Point{X: 0, Y: 2}, r2.Point{X: 0, Y: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBall(50, 50, 1, 0, 0)
			b.Vel = tt.vel
			b.Advance(1, DefaultDrift)
			if !near(b.Vel.X, tt.want.X) || !near(b.Vel.Y, tt.want.Y) {
				t.Errorf("Vel = %v, want %v", b.Vel, tt.want)
			}
		})
	}
}

func TestAdvanceDriftDisabled(t *testing.T) {
	b := NewBall(50, 50, 1, 0, 0)
	b.Vel = r2.Point{X: 1, Y: 1}
	b.Advance(1, 0)
	if b.Vel != (r2.Point{X: 1, Y: 1}) {
		t.Errorf("Vel = %v, want unchanged", b.Vel)
	}
}

func TestAdvanceStopsAtImpact(t *testing.T) {
	c := NewContainer(0, 0, 100, 100)
	b := NewBall(90, 50, 1, 0, 0)
	b.Vel = r2.Point{X: 4, Y: 0}

	b.CheckWall(c, 10)
	if got := b.Pending().T; !near(got, 2.25) {
		t.Fatalf("pending T = %v, want 2.25", got)
	}

	if !b.Advance(5, DefaultDrift) {
		t.Fatal("expected a collision within dt")
	}
	if !near(b.Pos.X, 99) {
		t.Errorf("Pos.X = %v, want 99 (stopped at impact)", b.Pos.X)
	}
	if b.Vel != (r2.Point{X: -4, Y: 0}) {
		t.Errorf("Vel = %v, want (-4, 0)", b.Vel)
	}
	if b.Pending().Found() {
		t.Error("pending collision not cleared after Advance")
	}
}

func TestAdvanceIgnoresLaterImpact(t *testing.T) {
	c := NewContainer(0, 0, 100, 100)
	b := NewBall(90, 50, 1, 0, 0)
	b.Vel = r2.Point{X: 4, Y: 0}
	b.CheckWall(c, 10)

	if b.Advance(1, DefaultDrift) {
		t.Error("impact at 2.25 must not resolve within dt = 1")
	}
	if !near(b.Pos.X, 94) {
		t.Errorf("Pos.X = %v, want 94", b.Pos.X)
	}
	if b.Pending().Found() {
		t.Error("pending collision not cleared after Advance")
	}
}

func TestCheckKeepsEarliest(t *testing.T) {
	c := NewContainer(0, 0, 100, 100)
	a := NewBall(50, 50, 1, 0, 0)
	a.Vel = r2.Point{X: 5, Y: 0}
	other := NewBall(60, 50, 1, 0, 0)

	a.CheckBall(other, 100)
	pairT := a.Pending().T
	if !other.Pending().Found() || other.Pending().T != pairT {
		t.Fatalf("other ball did not record the pair collision")
	}

	// The wall is further away and must not replace the pair collision.
	a.CheckWall(c, 100)
	if a.Pending().T != pairT {
		t.Errorf("pending T = %v, want pair time %v", a.Pending().T, pairT)
	}
}

func TestCheckTieKeepsFirst(t *testing.T) {
	// Two resting balls hit at the same instant, one on either side.
	a := NewBall(50, 50, 1, 0, 0)
	a.Vel = r2.Point{X: 0, Y: 5}
	left := NewBall(49, 60, 1, 0, 0)
	right := NewBall(51, 60, 1, 0, 0)

	a.CheckBall(left, 100)
	first := a.Pending()
	a.CheckBall(right, 100)
	if a.Pending() != first {
		t.Errorf("tie replaced the first collision: %v -> %v", first, a.Pending())
	}
}

func TestBallString(t *testing.T) {
	b := NewBall(10, 20, 5, 0, 0)
	s := b.String()
	if !strings.HasPrefix(s, "@( 10, 20) r=  5") {
		t.Errorf("String() = %q", s)
	}
}

func TestContainerSet(t *testing.T) {
	c := NewContainer(0, 0, 10, 10)
	c.Set(1, 2, 30, 40)
	want := physics.Box{MinX: 1, MinY: 2, MaxX: 30, MaxY: 40}
	if c.Box != want {
		t.Errorf("Box = %+v, want %+v", c.Box, want)
	}
}
