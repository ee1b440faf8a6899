package server

import (
	"github.com/tomz197/ballworld/internal/physics"
	"github.com/tomz197/ballworld/internal/world"
)

// WorldSnapshot is an immutable copy of the world taken after a tick.
// Every snapshot owns its Bodies slice, so clients may hold on to it while
// the server moves on.
type WorldSnapshot struct {
	Bodies        []world.BodyState
	Container     physics.Box
	Active        int
	Capacity      int
	SpeedPercent  int
	Paused        bool
	Stats         world.FrameStats
	KineticEnergy float64
	Viewers       int
}

// CommandKind identifies what a Command asks the server to do.
type CommandKind int

const (
	CommandLaunch CommandKind = iota
	CommandSetSpeed
	CommandAdjustSpeed
	CommandSetBounds
	CommandTogglePause
)

// Command is a request from a client. Commands are applied between frames
// in the order they arrive.
type Command struct {
	Kind    CommandKind
	Percent int         // CommandSetSpeed: new percent; CommandAdjustSpeed: delta
	Bounds  physics.Box // CommandSetBounds
}

// Launch asks for the next reserve ball to enter at the launch point.
func Launch() Command {
	return Command{Kind: CommandLaunch}
}

// SetSpeedPercent sets every active ball to p percent of its preset
// velocity.
func SetSpeedPercent(p int) Command {
	return Command{Kind: CommandSetSpeed, Percent: p}
}

// AdjustSpeedPercent moves the speed slider by delta percent.
func AdjustSpeedPercent(delta int) Command {
	return Command{Kind: CommandAdjustSpeed, Percent: delta}
}

// SetBounds replaces the container.
func SetBounds(minX, minY, maxX, maxY float64) Command {
	return Command{
		Kind:   CommandSetBounds,
		Bounds: physics.Box{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY},
	}
}

// TogglePause stops or resumes frame advancement.
func TogglePause() Command {
	return Command{Kind: CommandTogglePause}
}

// clientCommand is a command tagged with the client that sent it.
type clientCommand struct {
	ClientID int
	Command  Command
}
