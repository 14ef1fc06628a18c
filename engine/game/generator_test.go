package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireboids/engine/geom"
)

// scriptedSource replays values in order and fails the test when it runs dry.
type scriptedSource struct {
	t    *testing.T
	vals []int
}

func (s *scriptedSource) IntN(n int) int {
	s.t.Helper()
	require.NotEmpty(s.t, s.vals, "random source exhausted")
	v := s.vals[0]
	s.vals = s.vals[1:]
	require.Less(s.t, v, n)
	return v
}

func TestGeneratorClusterCadence(t *testing.T) {
	cfg := DefaultConfig()
	g := NewGenerator(&cfg, constSource{k: 2})
	boundary := cfg.Boundary()

	const groupSize = 3
	require.Equal(t, groupSize, g.GroupLeft())
	require.Equal(t, 0.0, g.NextZ())

	var total float64
	for i := 1; i <= 9; i++ {
		prev := g.NextZ()
		s := g.Generate(boundary)
		total += s.Cuboid.Size().Z + s.Gap

		assert.Equal(t, i%groupSize == 0, s.GroupEnd, "generation %d", i)
		if s.GroupEnd {
			assert.Equal(t, 502.0, s.Gap)
		} else {
			assert.Equal(t, 52.0, s.Gap)
		}
		assert.Equal(t, s.Cuboid.Size().Z+s.Gap, s.Advance)
		assert.Equal(t, prev+s.Advance, g.NextZ())
		assert.Equal(t, prev+cfg.GenerationDistance, s.Cuboid.Depth())
	}
	assert.Equal(t, total, g.NextZ())
}

func TestGeneratorScriptedPlacement(t *testing.T) {
	cfg := DefaultConfig()
	src := &scriptedSource{t: t, vals: []int{
		0, // group size 1
		// cx=0 cy=0, dims 300x400x100, colleague draw skipped: group ends
		500, 500, 100, 200, 50,
		1,   // next group size 2
		250, // group gap 750
	}}
	g := NewGenerator(&cfg, src)
	require.Equal(t, 1, g.GroupLeft())

	s := g.Generate(cfg.Boundary())
	assert.True(t, s.GroupEnd)
	assert.Equal(t, geom.V3(300, 400, 100), s.Cuboid.Size())
	assert.Equal(t, 750.0, s.Gap)
	assert.Equal(t, 850.0, g.NextZ())
	assert.Equal(t, 2, g.GroupLeft())

	c := s.Cuboid
	assert.Equal(t, -150.0, c.LowerX())
	assert.Equal(t, 150.0, c.HigherX())
	assert.Equal(t, -200.0, c.LowerY())
	assert.Equal(t, 200.0, c.HigherY())
	assert.Equal(t, 2000.0, c.LowerZ())
	assert.Equal(t, 2100.0, c.HigherZ())
	assert.Empty(t, src.vals)
}

func TestGeneratorShiftsBackInBounds(t *testing.T) {
	cfg := DefaultConfig()
	src := &scriptedSource{t: t, vals: []int{
		1,         // group size 2
		0, 1000,   // cx=-500 cy=500
		600, 0, 0, // dims 800x200x50
		10,        // colleague gap 60
	}}
	g := NewGenerator(&cfg, src)
	s := g.Generate(cfg.Boundary())

	c := s.Cuboid
	assert.Equal(t, geom.V3(800, 200, 50), c.Size(), "shifting keeps the size")
	assert.Equal(t, -500.0, c.LowerX())
	assert.Equal(t, 300.0, c.HigherX())
	assert.Equal(t, 300.0, c.LowerY())
	assert.Equal(t, 500.0, c.HigherY())
	assert.False(t, s.GroupEnd)
	assert.Equal(t, 110.0, g.NextZ())
}

func TestGeneratorDue(t *testing.T) {
	cfg := DefaultConfig()
	g := NewGenerator(&cfg, constSource{})
	assert.False(t, g.Due(0))
	assert.True(t, g.Due(0.001))
}

func TestShiftInside(t *testing.T) {
	assert.Equal(t, 10.0, shiftInside(-510, -300, -500, 500))
	assert.Equal(t, -5.0, shiftInside(300, 505, -500, 500))
	assert.Equal(t, 0.0, shiftInside(-500, 500, -500, 500))
}

func TestXorShiftDeterministic(t *testing.T) {
	a, b := NewXorShift(42), NewXorShift(42)
	for i := 0; i < 100; i++ {
		v := a.IntN(7)
		require.Equal(t, v, b.IntN(7))
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 7)
	}
	assert.Equal(t, 0, a.IntN(0))

	z := NewXorShift(0)
	seen := map[int]bool{}
	for i := 0; i < 50; i++ {
		seen[z.IntN(4)] = true
	}
	assert.Greater(t, len(seen), 1, "zero seed must not lock the generator")
}

func TestBetweenInclusive(t *testing.T) {
	assert.Equal(t, 5, between(constSource{k: 0}, 5, 9))
	assert.Equal(t, 9, between(constSource{k: 100}, 5, 9))
	assert.Equal(t, 3, between(constSource{k: 1}, 3, 3))
	assert.Equal(t, -498, between(constSource{k: 2}, -500, 500))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cases := map[string]func(*Config){
		"fps":          func(c *Config) { c.FPS = 0 },
		"world":        func(c *Config) { c.WorldSize = -1 },
		"depth":        func(c *Config) { c.BoundaryDepth = 1 },
		"distance":     func(c *Config) { c.GenerationDistance = 0 },
		"speed":        func(c *Config) { c.ForwardSpeed = -1 },
		"surface":      func(c *Config) { c.Surface.Z = 0 },
		"group size":   func(c *Config) { c.MinGroupSize = 0 },
		"group order":  func(c *Config) { c.MinGroupSize, c.MaxGroupSize = 5, 4 },
		"gap order":    func(c *Config) { c.MinColleagueGap = 300 },
		"group gap":    func(c *Config) { c.MinGroupGap = -1 },
		"dims zero":    func(c *Config) { c.MinCuboidDims.Z = 0 },
		"dims order":   func(c *Config) { c.MinCuboidDims.X = 900 },
		"dims too big": func(c *Config) { c.MaxCuboidDims.Y = 1200 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfigDerived(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 16666666*time.Nanosecond, cfg.FrameInterval())
	b := cfg.Boundary()
	assert.Equal(t, -500.0, b.LowerX())
	assert.Equal(t, 500.0, b.HigherY())
	assert.Equal(t, 1.0, b.Depth())
	assert.Equal(t, 2000.0, b.HigherZ())
	assert.Equal(t, "distance: 1.5k", FormatDistance(cfg.HUD.Distance.Text, 1500))
	assert.Equal(t, "game-over", StateGameOver.String())
	assert.True(t, StatePaused.Active())
	assert.False(t, StateGameOver.Active())
}
