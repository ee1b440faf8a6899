// Package object holds the entities of a ball world and how they are drawn.
package object

import (
	"io"

	"github.com/golang/geo/r2"
	"github.com/tomz197/ballworld/internal/draw"
)

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // High-resolution canvas (2x vertical)
	Writer io.Writer    // Direct terminal output (for text overlays)
}

// Drawable is anything that renders itself onto a draw context.
type Drawable interface {
	Draw(ctx DrawContext) error
}

// Sprite is a read-only picture of a ball: where it is and how big.
type Sprite struct {
	Pos    r2.Point
	Radius float64
}

// Draw renders the sprite as a filled disc.
func (s Sprite) Draw(ctx DrawContext) error {
	ctx.Canvas.DrawCircle(draw.Point{X: s.Pos.X, Y: s.Pos.Y}, s.Radius, true)
	return nil
}

// Sprite returns a drawable copy of the ball's current position.
func (b *Ball) Sprite() Sprite {
	return Sprite{Pos: b.Pos, Radius: b.radius}
}

var (
	_ Drawable = Sprite{}
	_ Drawable = (*Container)(nil)
)
