package object

import (
	"github.com/tomz197/ballworld/internal/draw"
	"github.com/tomz197/ballworld/internal/physics"
)

// Container is the rectangular arena the balls bounce around in.
type Container struct {
	physics.Box
}

// NewContainer creates a container with the given bounds.
func NewContainer(minX, minY, maxX, maxY float64) *Container {
	c := &Container{}
	c.Set(minX, minY, maxX, maxY)
	return c
}

// Set replaces the container bounds.
func (c *Container) Set(minX, minY, maxX, maxY float64) {
	c.Box = physics.Box{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// Draw renders the container outline.
func (c *Container) Draw(ctx DrawContext) error {
	corners := [4]draw.Point{
		{X: c.MinX, Y: c.MinY},
		{X: c.MaxX - 1, Y: c.MinY},
		{X: c.MaxX - 1, Y: c.MaxY - 1},
		{X: c.MinX, Y: c.MaxY - 1},
	}
	for i := range corners {
		ctx.Canvas.DrawLine(corners[i], corners[(i+1)%len(corners)])
	}
	return nil
}
