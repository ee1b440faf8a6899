package physics

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
)

var arena = Box{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}

func TestWallImpactRightWall(t *testing.T) {
	d := Disc{Pos: r2.Point{X: 50, Y: 50}, Vel: r2.Point{X: 5, Y: 0}, Radius: 1}

	resp := WallImpact(d, arena, 20)
	if !resp.Found() {
		t.Fatal("expected a wall impact")
	}
	want := (arena.MaxX - d.Radius - d.Pos.X) / 5
	if math.Abs(resp.T-want) > 1e-12 {
		t.Errorf("T = %v, want %v", resp.T, want)
	}
	if resp.Vel != (r2.Point{X: -5, Y: 0}) {
		t.Errorf("Vel = %v, want (-5, 0)", resp.Vel)
	}
}

func TestWallImpactEachWall(t *testing.T) {
	tests := []struct {
		name    string
		pos     r2.Point
		vel     r2.Point
		wantT   float64
		wantVel r2.Point
	}{
		{"left", r2.Point{X: 11, Y: 50}, r2.Point{X: -2, Y: 1}, 5, r2.Point{X: 2, Y: 1}},
		{"right", r2.Point{X: 89, Y: 50}, r2.Point{X: 2, Y: -1}, 5, r2.Point{X: -2, Y: -1}},
		{"top", r2.Point{X: 50, Y: 21}, r2.Point{X: 1, Y: -4}, 5, r2.Point{X: 1, Y: 4}},
		{"bottom", r2.Point{X: 50, Y: 79}, r2.Point{X: -1, Y: 4}, 5, r2.Point{X: -1, Y: -4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := WallImpact(Disc{Pos: tt.pos, Vel: tt.vel, Radius: 1}, arena, 10)
			if math.Abs(resp.T-tt.wantT) > 1e-12 {
				t.Errorf("T = %v, want %v", resp.T, tt.wantT)
			}
			if resp.Vel != tt.wantVel {
				t.Errorf("Vel = %v, want %v", resp.Vel, tt.wantVel)
			}
		})
	}
}

func TestWallImpactBeyondLimit(t *testing.T) {
	d := Disc{Pos: r2.Point{X: 50, Y: 50}, Vel: r2.Point{X: 5, Y: 0}, Radius: 1}
	if resp := WallImpact(d, arena, 1); resp.Found() {
		t.Errorf("expected no impact within limit, got T = %v", resp.T)
	}
}

func TestWallImpactStationary(t *testing.T) {
	d := Disc{Pos: r2.Point{X: 50, Y: 50}, Radius: 1}
	if resp := WallImpact(d, arena, 1e6); resp.Found() {
		t.Errorf("stationary disc reported impact at T = %v", resp.T)
	}
}

func TestWallImpactTouchingAndLeaving(t *testing.T) {
	// Resting on the left wall and moving away must not re-trigger.
	d := Disc{Pos: r2.Point{X: 1, Y: 50}, Vel: r2.Point{X: 10, Y: 0}, Radius: 1}
	if resp := WallImpact(d, arena, 1); resp.Found() {
		t.Errorf("disc leaving the wall reported impact at T = %v", resp.T)
	}
}

func TestWallImpactTouchingAndApproaching(t *testing.T) {
	d := Disc{Pos: r2.Point{X: 1, Y: 1}, Vel: r2.Point{X: -10, Y: 0}, Radius: 1}
	resp := WallImpact(d, arena, 1)
	if resp.T != 0 {
		t.Fatalf("T = %v, want 0", resp.T)
	}
	if resp.Vel != (r2.Point{X: 10, Y: 0}) {
		t.Errorf("Vel = %v, want (10, 0)", resp.Vel)
	}
}

func TestWallImpactPenetratingApproaching(t *testing.T) {
	d := Disc{Pos: r2.Point{X: 99.5, Y: 50}, Vel: r2.Point{X: 3, Y: 0}, Radius: 1}
	resp := WallImpact(d, arena, 1)
	if resp.T != 0 || resp.Vel.X != -3 {
		t.Errorf("got T = %v Vel = %v, want immediate reflection", resp.T, resp.Vel)
	}
}

func TestWallImpactCorner(t *testing.T) {
	d := Disc{Pos: r2.Point{X: 89, Y: 89}, Vel: r2.Point{X: 2, Y: 2}, Radius: 1}
	resp := WallImpact(d, arena, 10)
	if math.Abs(resp.T-5) > 1e-12 {
		t.Errorf("T = %v, want 5", resp.T)
	}
	if resp.Vel != (r2.Point{X: -2, Y: -2}) {
		t.Errorf("Vel = %v, want (-2, -2)", resp.Vel)
	}
}

func TestWallImpactPicksNearestWall(t *testing.T) {
	d := Disc{Pos: r2.Point{X: 89, Y: 50}, Vel: r2.Point{X: 2, Y: 2}, Radius: 1}
	resp := WallImpact(d, arena, 100)
	if math.Abs(resp.T-5) > 1e-12 {
		t.Errorf("T = %v, want 5", resp.T)
	}
	if resp.Vel != (r2.Point{X: -2, Y: 2}) {
		t.Errorf("Vel = %v, want (-2, 2)", resp.Vel)
	}
}
