package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	loopconfig "github.com/tomz197/ballworld/internal/loop/config"
	"github.com/tomz197/ballworld/internal/physics"
	"github.com/tomz197/ballworld/internal/world"
)

// Scenario is the on-disk description of an arena and its balls.
type Scenario struct {
	Name         string      `yaml:"name"`
	Container    Bounds      `yaml:"container"`
	FrameDT      float64     `yaml:"frame_dt,omitempty"`
	Epsilon      float64     `yaml:"epsilon,omitempty"`
	MaxSubsteps  int         `yaml:"max_substeps,omitempty"`
	Capacity     int         `yaml:"capacity,omitempty"`
	DisableDrift bool        `yaml:"disable_drift,omitempty"`
	Balls        []BallEntry `yaml:"balls"`
}

// Bounds is a container rectangle.
type Bounds struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// BallEntry describes one ball, or Count identical ones.
type BallEntry struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Radius  float64 `yaml:"radius"`
	Speed   float64 `yaml:"speed,omitempty"`
	Angle   float64 `yaml:"angle,omitempty"` // Degrees, counter-clockwise, y down
	Reserve bool    `yaml:"reserve,omitempty"`
	Count   int     `yaml:"count,omitempty"` // Zero means one
}

// Starting rack: fifteen resting balls in a triangle with a ball-sized
// gap between rows, plus the reserve the launcher draws from.
const (
	rackRadius    = 14.5
	reserveCount  = 10
	reserveRadius = 15
	reserveSpeed  = 50
	reserveAngle  = 45
)

var rack = [...]struct{ x, y float64 }{
	{350, 150}, {320, 150}, {290, 150}, {260, 150}, {230, 150},
	{335, 175}, {305, 175}, {275, 175}, {245, 175},
	{320, 200}, {290, 200}, {260, 200},
	{305, 225}, {275, 225},
	{290, 250},
}

// Default returns the built-in arena: the starting rack at rest and ten
// reserve balls waiting at the launch point.
func Default() *Scenario {
	s := &Scenario{
		Name: "default",
		Container: Bounds{
			MaxX: loopconfig.ViewWidth,
			MaxY: loopconfig.ViewHeight,
		},
		Capacity: len(rack) + reserveCount,
	}
	for _, p := range rack {
		s.Balls = append(s.Balls, BallEntry{X: p.x, Y: p.y, Radius: rackRadius})
	}
	s.Balls = append(s.Balls, BallEntry{
		X:       loopconfig.LaunchInset,
		Y:       loopconfig.ViewHeight - loopconfig.LaunchInset,
		Radius:  reserveRadius,
		Speed:   reserveSpeed,
		Angle:   reserveAngle,
		Reserve: true,
		Count:   reserveCount,
	})
	return s
}

// ParseScenario decodes a YAML scenario. Unknown keys are rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parse scenario: empty document")
		}
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	for i, b := range s.Balls {
		if b.Count < 0 {
			return nil, fmt.Errorf("parse scenario: ball %d has negative count %d", i, b.Count)
		}
	}
	return &s, nil
}

// LoadScenario reads and decodes the scenario file at path. A scenario
// without a name is named after its file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	return s, nil
}

// FromEnv loads the scenario named by BALLWORLD_SCENARIO, or the default
// one when the variable is unset or empty.
func FromEnv() (*Scenario, error) {
	path := GetEnv("BALLWORLD_SCENARIO", "")
	if path == "" {
		return Default(), nil
	}
	return LoadScenario(path)
}

// WorldConfig converts the scenario into a world configuration. Validation
// is left to world.New.
func (s *Scenario) WorldConfig(logger *log.Logger) world.Config {
	cfg := world.Config{
		Container: physics.Box{
			MinX: s.Container.MinX,
			MinY: s.Container.MinY,
			MaxX: s.Container.MaxX,
			MaxY: s.Container.MaxY,
		},
		Capacity:     s.Capacity,
		FrameDT:      s.FrameDT,
		Epsilon:      s.Epsilon,
		MaxSubsteps:  s.MaxSubsteps,
		DisableDrift: s.DisableDrift,
		Logger:       logger,
	}
	for _, b := range s.Balls {
		spec := world.BodySpec{
			X:       b.X,
			Y:       b.Y,
			Radius:  b.Radius,
			Speed:   b.Speed,
			Angle:   b.Angle,
			Reserve: b.Reserve,
		}
		for range max(b.Count, 1) {
			cfg.Bodies = append(cfg.Bodies, spec)
		}
	}
	return cfg
}

// NewWorld builds a world from the scenario.
func (s *Scenario) NewWorld(logger *log.Logger) (*world.World, error) {
	w, err := world.New(s.WorldConfig(logger))
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return w, nil
}
