// Command headless runs a scenario without a terminal and logs the outcome.
package main

import (
	"errors"
	"os"

	"github.com/golang/geo/r2"

	"github.com/tomz197/ballworld/internal/config"
	loopconfig "github.com/tomz197/ballworld/internal/loop/config"
	"github.com/tomz197/ballworld/internal/world"
)

// launchEvery is the number of frames between reserve ball launches.
const launchEvery = 10

func main() {
	logger := config.NewLogger("headless")

	scenario, err := config.FromEnv()
	if err != nil {
		logger.Fatal("loading scenario", "err", err)
	}
	w, err := scenario.NewWorld(logger)
	if err != nil {
		logger.Fatal("building world", "err", err)
	}

	if scale := config.GetEnvFloat("BALLWORLD_SPEED_SCALE", 1); scale != 1 {
		if err := w.SetVelocityScale(scale); err != nil {
			logger.Fatal("speed scale", "err", err)
		}
	}

	frames := config.GetEnvInt("BALLWORLD_FRAMES", 300)
	logger.Info("running", "scenario", scenario.Name, "frames", frames,
		"active", w.Active(), "capacity", w.Capacity())

	var overruns int
	for frame := range frames {
		if frame%launchEvery == 0 && w.Active() < w.Capacity() {
			box := w.Container()
			pos := r2.Point{X: box.MinX + loopconfig.LaunchInset, Y: box.MaxY - loopconfig.LaunchInset}
			if err := w.Launch(pos); err != nil {
				logger.Error("launch", "frame", frame, "err", err)
			}
		}

		if err := w.AdvanceFrame(); err != nil {
			if !errors.Is(err, world.ErrSubstepBudgetExceeded) {
				logger.Fatal("frame", "frame", frame, "err", err)
			}
			overruns++
			logger.Warn("frame cut short", "frame", frame, "err", err)
		}
	}

	p := w.TotalMomentum()
	logger.Info("done",
		"frames", frames,
		"active", w.Active(),
		"overruns", overruns,
		"kinetic_energy", w.TotalKineticEnergy(),
		"momentum_x", p.X,
		"momentum_y", p.Y,
	)
	for i := range w.Active() {
		logger.Info("ball", "slot", i, "state", w.Ball(i).String())
	}

	if overruns > 0 {
		os.Exit(2)
	}
}
