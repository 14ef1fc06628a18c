package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"wireboids/engine/geom"
	"wireboids/engine/input"
	"wireboids/engine/render"
	"wireboids/engine/world"
	"wireboids/hal"
)

var t0 = time.Unix(1000, 0)

// constSource always answers k, capped to the requested range.
type constSource struct{ k int }

func (s constSource) IntN(n int) int {
	if s.k >= n {
		return n - 1
	}
	return s.k
}

// fixedClock reports whatever time the test set last.
type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type countingObserver struct {
	NopObserver
	started, over, generated, retired, ticks int
	lastDistance                             float64
}

func (o *countingObserver) GameStarted()            { o.started++ }
func (o *countingObserver) GameOver(d float64)      { o.over++; o.lastDistance = d }
func (o *countingObserver) Tick(time.Duration, int) { o.ticks++ }
func (o *countingObserver) Generated()              { o.generated++ }
func (o *countingObserver) Retired(n int)           { o.retired += n }

func newTestEngine(t *testing.T, opts Options) (*Engine, *render.Recorder) {
	t.Helper()
	rec := &render.Recorder{}
	if opts.Logger == nil {
		opts.Logger = zaptest.NewLogger(t)
	}
	if opts.Source == nil {
		opts.Source = constSource{k: 2}
	}
	e, err := New(DefaultConfig(), render.NewRenderer(rec), opts)
	require.NoError(t, err)
	return e, rec
}

func interval() time.Duration { return DefaultConfig().FrameInterval() }

func TestNewDrawsTitleScreen(t *testing.T) {
	e, rec := newTestEngine(t, Options{})
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, []string{
		"WireBoids",
		"Go as far as you can while dodging cuboids.",
		"WSAD / Arrow Keys to move.",
		"Space to Pause / Unpause.",
		"Press 'R' to start.",
	}, rec.Texts())
	assert.Equal(t, 72, rec.Commands()[1].Size)

	_, pending := e.Due()
	assert.False(t, pending)
	assert.False(t, e.Poll(t0.Add(time.Hour)))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Surface = geom.V3(960, 540, 0)
	_, err := New(cfg, render.NewRenderer(&render.Recorder{}), Options{})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestStartSchedulesFirstTick(t *testing.T) {
	obs := &countingObserver{}
	e, _ := newTestEngine(t, Options{Observer: obs})

	require.True(t, e.Start(t0))
	assert.Equal(t, StateRunning, e.State())
	due, pending := e.Due()
	require.True(t, pending)
	assert.Equal(t, t0.Add(interval()), due)
	assert.Equal(t, 1, obs.started)
	assert.Equal(t, 3, e.Generator().GroupLeft())

	assert.True(t, e.Renderer().Tracked(e.World().BoundaryHandle()))
	assert.Equal(t, 1, e.Renderer().Len())

	assert.False(t, e.Poll(due.Add(-time.Nanosecond)))
	assert.True(t, e.Poll(due))
	assert.InDelta(t, 500*interval().Seconds(), e.World().Player().Z, 1e-9)
	assert.InDelta(t, 1+500*interval().Seconds(), e.World().Boundary().Depth(), 1e-9)
}

func TestStartIsIdempotentWhileActive(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	require.True(t, e.Start(t0))
	require.True(t, e.Poll(t0.Add(interval())))

	before := e.Snapshot()
	require.Positive(t, before.Player.Z)
	require.Equal(t, 1, before.Active)

	assert.False(t, e.Start(t0.Add(interval())))
	assert.Equal(t, before, e.Snapshot())

	require.True(t, e.TogglePause(t0.Add(interval())))
	assert.False(t, e.Start(t0.Add(interval())))
	assert.Equal(t, StatePaused, e.State())
	assert.Equal(t, before.Player, e.World().Player())
}

func TestTogglePauseIgnoredUnlessActive(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	assert.False(t, e.TogglePause(t0))
	assert.Equal(t, StateIdle, e.State())
}

func TestNextTickAccountsForRunTime(t *testing.T) {
	clk := &fixedClock{}
	e, _ := newTestEngine(t, Options{Clock: clk})
	require.True(t, e.Start(t0))

	now := t0.Add(interval())
	clk.now = now.Add(5 * time.Millisecond)
	require.True(t, e.Poll(now))
	due, _ := e.Due()
	assert.Equal(t, now.Add(interval()), due)

	// Overrun: the next tick is due immediately after the slow one ends.
	now = due
	clk.now = now.Add(50 * time.Millisecond)
	require.True(t, e.Poll(now))
	due, _ = e.Due()
	assert.Equal(t, clk.now, due)
}

func TestCollisionIsLethalOnceAndRetires(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	obs := &countingObserver{}
	e, rec := newTestEngine(t, Options{Logger: zap.New(core), Observer: obs})
	require.True(t, e.Start(t0))

	w := e.World()
	h := w.AddObject(world.NewCuboid(geom.V3(-50, -50, 400), geom.V3(50, 50, 600)))
	e.Renderer().Track(h)
	w.SetPlayer(geom.V3(0, 0, 500))

	require.True(t, e.Poll(t0.Add(interval())))
	assert.Equal(t, StateGameOver, e.State())
	_, ok := w.Lookup(h)
	assert.False(t, ok, "obstacle must be retired")
	assert.False(t, e.Renderer().Tracked(h))
	assert.Equal(t, 1, obs.over)
	assert.Equal(t, 1, obs.retired)
	assert.Equal(t, uint64(1), e.Snapshot().Retired)

	assert.Equal(t, []string{"Game Over", "score: 0.5k", "Press 'R' to restart."}, rec.Texts())
	assert.Equal(t, 1, logs.FilterMessage("game over").Len())

	// No further ticks after game over.
	_, pending := e.Due()
	assert.False(t, pending)
	assert.False(t, e.Poll(t0.Add(time.Hour)))
	assert.Equal(t, 1, obs.over)
}

func TestCollisionBoundsAreInclusive(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	require.True(t, e.Start(t0))
	w := e.World()
	w.AddObject(world.NewCuboid(geom.V3(-50, -50, 400), geom.V3(50, 50, 600)))
	w.SetPlayer(geom.V3(50, -50, 500))

	require.True(t, e.Poll(t0.Add(interval())))
	assert.Equal(t, StateGameOver, e.State())
}

func TestPassedObstacleMissedIsRetired(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	require.True(t, e.Start(t0))
	w := e.World()
	missed := w.AddObject(world.NewCuboid(geom.V3(100, 100, 400), geom.V3(200, 200, 600)))
	ahead := w.AddObject(world.NewCuboid(geom.V3(-50, -50, 900), geom.V3(50, 50, 1000)))
	w.SetPlayer(geom.V3(0, 0, 500))

	require.True(t, e.Poll(t0.Add(interval())))
	assert.Equal(t, StateRunning, e.State())
	_, ok := w.Lookup(missed)
	assert.False(t, ok)
	_, ok = w.Lookup(ahead)
	assert.True(t, ok)
	_, ok = w.Lookup(w.BoundaryHandle())
	assert.True(t, ok, "boundary is never retired")
}

func TestInputMovesAndClampsPlayer(t *testing.T) {
	inbox := input.NewInbox[input.Event](8)
	e, _ := newTestEngine(t, Options{Inbox: inbox})
	require.True(t, e.Start(t0))

	require.True(t, inbox.TrySend(input.Event{Dir: input.DirRight, Pressed: true}))
	require.True(t, inbox.TrySend(input.Event{Dir: input.DirUp, Pressed: true}))
	require.True(t, e.Poll(t0.Add(interval())))

	dt := interval().Seconds()
	p := e.World().Player()
	assert.InDelta(t, 500*dt, p.X, 1e-9)
	assert.InDelta(t, 500*dt, p.Y, 1e-9)
	assert.Equal(t, geom.V2(1, 1), e.Axis().Vector())

	// A long frame pushes the player into the wall, where it stays.
	due, _ := e.Due()
	require.True(t, e.Poll(due.Add(10*time.Second)))
	p = e.World().Player()
	assert.Equal(t, 500.0, p.X)
	assert.Equal(t, 500.0, p.Y)

	require.True(t, inbox.TrySend(input.Event{Dir: input.DirAll}))
	due, _ = e.Due()
	require.True(t, e.Poll(due))
	assert.Equal(t, 500.0, e.World().Player().X)
}

func TestInputDrainsWhileIdleAndPaused(t *testing.T) {
	inbox := input.NewInbox[input.Event](input.DefaultInboxSlots)
	router := input.NewRouter(inbox, zaptest.NewLogger(t))
	e, _ := newTestEngine(t, Options{Inbox: inbox})

	now := t0
	key := func(code hal.KeyCode, press bool) {
		router.Handle(hal.KeyEvent{Code: code, Press: press})
		now = now.Add(interval())
		e.Poll(now)
	}
	mash := func() {
		for i := 0; i < inbox.Cap(); i++ {
			key(hal.KeyUp, true)
			key(hal.KeyUp, false)
		}
		key(hal.KeyRight, true)
		key(hal.KeyDown, true)
		key(hal.KeyDown, false)
		key(hal.KeyRight, false)
	}

	mash()
	require.Zero(t, router.Dropped())
	require.True(t, e.Start(now))

	require.True(t, e.TogglePause(now))
	due, _ := e.Due()
	require.True(t, e.Poll(due))
	now = due
	mash()
	assert.Zero(t, router.Dropped())
	assert.Equal(t, geom.Vec2{}, e.Axis().Vector())

	require.True(t, e.TogglePause(now))
	due, _ = e.Due()
	require.True(t, e.Poll(due))
	p := e.World().Player()
	assert.Zero(t, p.X)
	assert.Zero(t, p.Y)
	assert.Positive(t, p.Z)
}

func TestPauseDrawsOverlayAndStopsTicking(t *testing.T) {
	e, rec := newTestEngine(t, Options{})
	require.True(t, e.Start(t0))
	require.True(t, e.Poll(t0.Add(interval())))
	z := e.World().Player().Z

	require.True(t, e.TogglePause(t0.Add(interval()+time.Millisecond)))
	due, pending := e.Due()
	require.True(t, pending, "the scheduled tick stays queued")

	require.True(t, e.Poll(due))
	texts := rec.Texts()
	assert.Equal(t, "PAUSE", texts[len(texts)-1])
	assert.Equal(t, 48, rec.Commands()[len(rec.Commands())-1].Size)
	assert.Equal(t, z, e.World().Player().Z)

	_, pending = e.Due()
	assert.False(t, pending)
	assert.False(t, e.Poll(due.Add(time.Minute)))
	assert.Equal(t, StatePaused, e.State())
}

func TestResumeUsesFreshBaseline(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	require.True(t, e.Start(t0))
	require.True(t, e.Poll(t0.Add(interval())))
	require.True(t, e.TogglePause(t0.Add(interval())))
	require.True(t, e.Poll(t0.Add(2*interval())))
	z := e.World().Player().Z

	resume := t0.Add(time.Hour)
	require.True(t, e.TogglePause(resume))
	due, pending := e.Due()
	require.True(t, pending)
	assert.Equal(t, resume.Add(interval()), due)

	require.True(t, e.Poll(due))
	assert.InDelta(t, z+500*interval().Seconds(), e.World().Player().Z, 1e-9)
}

func TestQuickPauseResumeKeepsOnePendingTick(t *testing.T) {
	obs := &countingObserver{}
	e, rec := newTestEngine(t, Options{Observer: obs})
	require.True(t, e.Start(t0))
	first, _ := e.Due()

	require.True(t, e.TogglePause(t0.Add(time.Millisecond)))
	require.True(t, e.TogglePause(t0.Add(2*time.Millisecond)))
	due, pending := e.Due()
	require.True(t, pending)
	assert.Equal(t, first, due, "resume must not queue a second tick")

	require.True(t, e.Poll(due))
	assert.NotContains(t, rec.Texts(), "PAUSE")
	assert.False(t, e.Poll(due), "only one tick was pending")
	assert.Equal(t, 1, obs.ticks)
	assert.InDelta(t, 500*(interval()-2*time.Millisecond).Seconds(), e.World().Player().Z, 1e-9)
}

func TestRestartFromGameOver(t *testing.T) {
	obs := &countingObserver{}
	e, _ := newTestEngine(t, Options{Observer: obs})
	require.True(t, e.Start(t0))
	e.World().AddObject(world.NewCuboid(geom.V3(-50, -50, 0), geom.V3(50, 50, 1)))
	require.True(t, e.Poll(t0.Add(interval())))
	require.Equal(t, StateGameOver, e.State())
	assert.False(t, e.TogglePause(t0.Add(time.Second)))

	restart := t0.Add(2 * time.Second)
	require.True(t, e.Start(restart))
	s := e.Snapshot()
	assert.Equal(t, StateRunning, s.State)
	assert.True(t, s.Player.IsZero())
	assert.Equal(t, 0, s.Active)
	assert.Equal(t, 0.0, s.NextGenerationZ)
	assert.Equal(t, uint64(2), s.Games)
	assert.Equal(t, 1.0, e.World().Boundary().Depth())
	assert.Equal(t, 2, obs.started)
}

func TestHUDShowsFPSAndDistance(t *testing.T) {
	e, rec := newTestEngine(t, Options{})
	require.True(t, e.Start(t0))

	now := t0
	for i := 0; i < 61; i++ {
		now = now.Add(interval())
		require.True(t, e.Poll(now))
	}
	// 60 frames landed in the first wall-clock second.
	assert.Equal(t, 60, e.Snapshot().FPS)

	texts := rec.Texts()
	require.Len(t, texts, 2)
	assert.Equal(t, "60fps", texts[0])
	assert.Equal(t, "distance: 0.5k", texts[1])
}

func TestEngineGeneratesAheadOfPlayer(t *testing.T) {
	obs := &countingObserver{}
	e, _ := newTestEngine(t, Options{Observer: obs})
	require.True(t, e.Start(t0))
	require.True(t, e.Poll(t0.Add(interval())))

	s := e.Snapshot()
	assert.Equal(t, 1, s.Active)
	assert.Equal(t, uint64(1), s.Generated)
	assert.Equal(t, 1, obs.generated)
	assert.Equal(t, 2, e.Renderer().Len())
	// Depth 52 plus a colleague gap of 52.
	assert.Equal(t, 104.0, s.NextGenerationZ)
}
