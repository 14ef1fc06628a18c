package game

import (
	"errors"
	"fmt"
	"time"

	"wireboids/engine/geom"
	"wireboids/engine/projection"
	"wireboids/engine/world"
)

// ErrInvalidConfig wraps every Config validation failure.
var ErrInvalidConfig = errors.New("invalid game config")

// Label is a fixed overlay string with its logical position and size.
// A zero Size means the sink's default.
type Label struct {
	Text string
	Pos  geom.Vec2
	Size int
}

// HUD holds every overlay the engine draws.
type HUD struct {
	Title       Label
	Instruction Label
	Inputs      Label
	Inputs2     Label
	Start       Label
	GameOver    Label
	Restart     Label
	Pause       Label

	// Formatted each frame or at game over; Text is a fmt layout.
	FPS      Label
	Distance Label
	Score    Label
}

// Config is the static tuning of one game. It is built once, validated,
// and never changed while the engine runs.
type Config struct {
	FPS int

	// WorldSize is the side of the square tunnel cross-section.
	WorldSize     float64
	BoundaryDepth float64

	MinCuboidDims geom.Vec3
	MaxCuboidDims geom.Vec3

	MinGroupSize int
	MaxGroupSize int

	MinColleagueGap int
	MaxColleagueGap int
	MinGroupGap     int
	MaxGroupGap     int

	GenerationDistance float64

	// Speeds are in world units per second.
	ForwardSpeed float64
	LateralSpeed geom.Vec2

	Surface geom.Vec3

	HUD HUD
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		FPS:                60,
		WorldSize:          1000,
		BoundaryDepth:      2000,
		MinCuboidDims:      geom.V3(200, 200, 50),
		MaxCuboidDims:      geom.V3(800, 800, 250),
		MinGroupSize:       1,
		MaxGroupSize:       4,
		MinColleagueGap:    50,
		MaxColleagueGap:    200,
		MinGroupGap:        500,
		MaxGroupGap:        1000,
		GenerationDistance: 2000,
		ForwardSpeed:       500,
		LateralSpeed:       geom.V2(500, 500),
		Surface:            projection.DefaultSurface,
		HUD: HUD{
			Title:       Label{Text: "WireBoids", Pos: geom.V2(600, 900), Size: 72},
			Instruction: Label{Text: "Go as far as you can while dodging cuboids.", Pos: geom.V2(700, 540)},
			Inputs:      Label{Text: "WSAD / Arrow Keys to move.", Pos: geom.V2(700, 510)},
			Inputs2:     Label{Text: "Space to Pause / Unpause.", Pos: geom.V2(700, 480)},
			Start:       Label{Text: "Press 'R' to start.", Pos: geom.V2(700, 420)},
			GameOver:    Label{Text: "Game Over", Pos: geom.V2(850, 600), Size: 36},
			Restart:     Label{Text: "Press 'R' to restart.", Pos: geom.V2(850, 400)},
			Pause:       Label{Text: "PAUSE", Pos: geom.V2(800, 150), Size: 48},
			FPS:         Label{Text: "%dfps", Pos: geom.V2(25, 1035)},
			Distance:    Label{Text: "distance: %.1fk", Pos: geom.V2(850, 1000)},
			Score:       Label{Text: "score: %.1fk", Pos: geom.V2(850, 500), Size: 24},
		},
	}
}

// FrameInterval is the target time between ticks.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// Boundary builds the starting boundary box: centred on the travel axis with
// its near face at z=1.
func (c Config) Boundary() *world.Cuboid {
	h := c.WorldSize / 2
	return world.NewCuboid(geom.V3(-h, -h, 1), geom.V3(h, h, c.BoundaryDepth))
}

// Validate reports the first inconsistency, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	case c.WorldSize <= 0:
		return fmt.Errorf("%w: world size must be positive, got %g", ErrInvalidConfig, c.WorldSize)
	case c.BoundaryDepth <= 1:
		return fmt.Errorf("%w: boundary depth must exceed 1, got %g", ErrInvalidConfig, c.BoundaryDepth)
	case c.GenerationDistance <= 0:
		return fmt.Errorf("%w: generation distance must be positive, got %g", ErrInvalidConfig, c.GenerationDistance)
	case c.ForwardSpeed < 0 || c.LateralSpeed.X < 0 || c.LateralSpeed.Y < 0:
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalidConfig)
	case c.Surface.Z == 0:
		return fmt.Errorf("%w: display surface z must be non-zero", ErrInvalidConfig)
	}

	if err := checkRange("group size", c.MinGroupSize, c.MaxGroupSize, 1); err != nil {
		return err
	}
	if err := checkRange("colleague gap", c.MinColleagueGap, c.MaxColleagueGap, 0); err != nil {
		return err
	}
	if err := checkRange("group gap", c.MinGroupGap, c.MaxGroupGap, 0); err != nil {
		return err
	}

	lo, hi := c.MinCuboidDims, c.MaxCuboidDims
	if lo.X <= 0 || lo.Y <= 0 || lo.Z <= 0 {
		return fmt.Errorf("%w: cuboid dimensions must be positive, got min %s", ErrInvalidConfig, lo)
	}
	if lo.X > hi.X || lo.Y > hi.Y || lo.Z > hi.Z {
		return fmt.Errorf("%w: cuboid min %s exceeds max %s", ErrInvalidConfig, lo, hi)
	}
	if hi.X > c.WorldSize || hi.Y > c.WorldSize {
		return fmt.Errorf("%w: cuboid max %s wider than world %g", ErrInvalidConfig, hi, c.WorldSize)
	}
	return nil
}

func checkRange(name string, lo, hi, floor int) error {
	if lo < floor {
		return fmt.Errorf("%w: min %s must be at least %d, got %d", ErrInvalidConfig, name, floor, lo)
	}
	if lo > hi {
		return fmt.Errorf("%w: min %s %d exceeds max %d", ErrInvalidConfig, name, lo, hi)
	}
	return nil
}
