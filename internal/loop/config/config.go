// Package config centralizes all tunable arena and loop parameters.
package config

import "time"

// Arena size in world units. The default scenario fills it, and the
// canvas maps it onto the terminal.
const (
	ViewWidth  = 640
	ViewHeight = 400
)

// UnitsPerPixel is how many world units one canvas sub-pixel covers when
// the terminal is large enough to show the whole arena.
const UnitsPerPixel = 5

// Speed slider, in percent of each ball's preset velocity.
const (
	SpeedPercentMin     = 5
	SpeedPercentMax     = 200
	SpeedPercentStep    = 5
	SpeedPercentDefault = 100
)

// LaunchInset is the distance from the bottom-left corner of the container
// at which reserve balls enter the arena.
const LaunchInset = 20

// Render size limits (terminal cells).
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 30
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate. One tick advances the world by one frame.
const (
	ServerTickRate = 30
	ServerTickTime = time.Second / ServerTickRate
)

// ClampSpeedPercent limits p to the slider range.
func ClampSpeedPercent(p int) int {
	return max(SpeedPercentMin, min(SpeedPercentMax, p))
}
