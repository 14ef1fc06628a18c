// Package game runs the WireBoids simulation: a frame-paced state machine that
// flies the player forward, steers it from input, generates and retires
// obstacles, and detects the lethal hit.
//
// The engine is driven by Poll from a single host loop. It never sleeps; it
// keeps at most one pending tick and runs it once Poll reaches its due time.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"wireboids/engine/geom"
	"wireboids/engine/input"
	"wireboids/engine/projection"
	"wireboids/engine/render"
	"wireboids/engine/world"
)

// Clock reads the time at the end of a tick to measure its run time.
type Clock interface {
	Now() time.Time
}

// Options carries the engine's optional collaborators.
type Options struct {
	Logger   *zap.Logger
	Observer Observer
	Source   Source
	Clock    Clock
	Inbox    *input.Inbox[input.Event]
}

// Snapshot is a read-only view of the engine for tests, logs and tools.
type Snapshot struct {
	State           State
	Player          geom.Vec3
	Distance        float64
	Active          int
	Generated       uint64
	Retired         uint64
	Games           uint64
	FPS             int
	NextGenerationZ float64
	GroupLeft       int
}

// Engine owns the world, camera, generator and input axis of one game.
type Engine struct {
	cfg Config
	log *zap.Logger
	obs Observer
	clk Clock

	world    *world.World
	proj     *projection.Context
	renderer *render.Renderer
	gen      *Generator
	inbox    *input.Inbox[input.Event]
	axis     input.Axis

	state     State
	pending   bool
	due       time.Time
	lastFrame time.Time

	fpsSecond int64
	frames    int
	fps       int

	generated uint64
	retired   uint64
	games     uint64
}

// New validates cfg, builds an idle engine and draws the title screen.
func New(cfg Config, renderer *render.Renderer, opts Options) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	proj, err := projection.New(cfg.Surface)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Observer == nil {
		opts.Observer = NopObserver{}
	}
	if opts.Source == nil {
		opts.Source = NewXorShift(uint32(time.Now().UnixNano()))
	}
	if opts.Inbox == nil {
		opts.Inbox = input.NewInbox[input.Event](input.DefaultInboxSlots)
	}

	e := &Engine{
		cfg:      cfg,
		log:      opts.Logger,
		obs:      opts.Observer,
		clk:      opts.Clock,
		world:    world.New(cfg.Boundary()),
		proj:     proj,
		renderer: renderer,
		inbox:    opts.Inbox,
	}
	e.gen = NewGenerator(&e.cfg, opts.Source)
	e.drawTitle()
	return e, nil
}

func (e *Engine) Config() Config                   { return e.cfg }
func (e *Engine) State() State                     { return e.state }
func (e *Engine) World() *world.World              { return e.world }
func (e *Engine) Projection() *projection.Context  { return e.proj }
func (e *Engine) Renderer() *render.Renderer       { return e.renderer }
func (e *Engine) Inbox() *input.Inbox[input.Event] { return e.inbox }
func (e *Engine) Generator() *Generator            { return e.gen }

// Axis returns the held-direction state as of the last tick.
func (e *Engine) Axis() input.Axis { return e.axis }

// Due returns the time of the pending tick, if any.
func (e *Engine) Due() (time.Time, bool) { return e.due, e.pending }

// Start begins a new game at now. It is a no-op while a game is running or
// paused and reports whether a game was started.
func (e *Engine) Start(now time.Time) bool {
	e.drainInput()
	if e.state.Active() {
		return false
	}

	e.world.Reset()
	e.proj.Reset()
	e.gen.Reset()
	e.renderer.Reset()
	e.renderer.Track(e.world.BoundaryHandle())

	e.state = StateRunning
	e.lastFrame = now
	e.fpsSecond = now.Unix()
	e.frames = 0
	e.schedule(now.Add(e.cfg.FrameInterval()))

	e.games++
	e.obs.GameStarted()
	e.log.Info("game started",
		zap.Uint64("game", e.games),
		zap.Int("group_size", e.gen.GroupLeft()),
	)
	return true
}

// TogglePause pauses a running game or resumes a paused one. Anything else is
// a no-op. Resuming resets the frame baseline so time spent paused never
// reaches the integration step.
func (e *Engine) TogglePause(now time.Time) bool {
	e.drainInput()
	switch e.state {
	case StateRunning:
		e.state = StatePaused
		e.log.Debug("game paused", zap.Float64("distance", e.world.Player().Z))
	case StatePaused:
		e.state = StateRunning
		e.lastFrame = now
		if !e.pending {
			e.schedule(now.Add(e.cfg.FrameInterval()))
		}
		e.log.Debug("game resumed")
	default:
		return false
	}
	return true
}

// Poll applies queued input, then runs the pending tick if it is due at now.
// It reports whether a tick ran. Input is applied in every state so the inbox
// never fills up while nothing is ticking.
func (e *Engine) Poll(now time.Time) bool {
	e.drainInput()
	if !e.pending || now.Before(e.due) {
		return false
	}
	e.pending = false

	switch e.state {
	case StatePaused:
		// The tick scheduled before the pause sees the flag and stops here.
		e.drawPause()
	case StateRunning:
		e.tick(now)
	}
	return true
}

// Snapshot returns the current counters and player state.
func (e *Engine) Snapshot() Snapshot {
	p := e.world.Player()
	return Snapshot{
		State:           e.state,
		Player:          p,
		Distance:        p.Z,
		Active:          e.world.Len() - 1,
		Generated:       e.generated,
		Retired:         e.retired,
		Games:           e.games,
		FPS:             e.fps,
		NextGenerationZ: e.gen.NextZ(),
		GroupLeft:       e.gen.GroupLeft(),
	}
}

func (e *Engine) schedule(at time.Time) {
	e.due = at
	e.pending = true
}

func (e *Engine) tick(now time.Time) {
	dt := now.Sub(e.lastFrame).Seconds()
	e.lastFrame = now

	e.drainInput()

	e.integrateInput(dt)
	lethal := e.advance(dt)

	if lethal {
		e.gameOver()
		return
	}

	e.proj.SetCameraPosition(e.world.Player())
	e.renderer.Render(e.world, e.proj)

	end := now
	if e.clk != nil {
		if t := e.clk.Now(); t.After(now) {
			end = t
		}
	}
	runTime := end.Sub(now)

	e.countFrame(end)
	e.drawHUD()

	delay := e.cfg.FrameInterval() - runTime
	if delay < 0 {
		delay = 0
	}
	e.schedule(end.Add(delay))
	e.obs.Tick(runTime, e.world.Len()-1)
}

func (e *Engine) drainInput() {
	e.inbox.Drain(func(ev input.Event) { e.axis.Apply(ev) })
}

// integrateInput moves the player sideways and keeps it inside the boundary.
func (e *Engine) integrateInput(dt float64) {
	axis := e.axis.Vector()
	move := geom.V3(e.cfg.LateralSpeed.X*axis.X, e.cfg.LateralSpeed.Y*axis.Y, 0)
	if move.IsZero() {
		return
	}
	p := e.world.Player().Add(move.Scale(dt))
	b := e.world.Boundary()
	p.X = clamp(p.X, b.LowerX(), b.HigherX())
	p.Y = clamp(p.Y, b.LowerY(), b.HigherY())
	e.world.SetPlayer(p)
}

// advance flies forward, retires passed obstacles and generates new ones.
// It reports whether a retired obstacle was hit.
func (e *Engine) advance(dt float64) bool {
	fwd := geom.V3(0, 0, e.cfg.ForwardSpeed*dt)
	player := e.world.Player().Add(fwd)
	e.world.SetPlayer(player)
	e.world.Boundary().Translate(fwd)

	lethal := false
	retired := 0
	boundary := e.world.BoundaryHandle()
	e.world.Objects().Each(func(h world.Handle, obj world.Object) {
		if h == boundary {
			return
		}
		c, ok := obj.(*world.Cuboid)
		if !ok || c.Depth() >= player.Z {
			return
		}
		if !lethal && c.ContainsXY(player) {
			lethal = true
		}
		e.world.RemoveObject(h)
		e.renderer.Untrack(h)
		retired++
	})
	if retired > 0 {
		e.retired += uint64(retired)
		e.obs.Retired(retired)
	}

	if e.gen.Due(player.Z) {
		s := e.gen.Generate(e.world.Boundary())
		h := e.world.AddObject(s.Cuboid)
		e.renderer.Track(h)
		e.generated++
		e.obs.Generated()
		e.log.Debug("obstacle generated",
			zap.Stringer("handle", h),
			zap.Float64("depth", s.Cuboid.Depth()),
			zap.Stringer("size", s.Cuboid.Size()),
			zap.Bool("group_end", s.GroupEnd),
			zap.Float64("next_z", e.gen.NextZ()),
		)
	}
	return lethal
}

func (e *Engine) gameOver() {
	distance := e.world.Player().Z
	e.state = StateGameOver
	e.pending = false
	e.drawGameOver(distance)
	e.obs.GameOver(distance)
	e.log.Info("game over",
		zap.Uint64("game", e.games),
		zap.Float64("distance", distance),
		zap.Uint64("generated", e.generated),
	)
}

// countFrame keeps frames-per-second over whole wall-clock seconds.
func (e *Engine) countFrame(end time.Time) {
	if sec := end.Unix(); sec != e.fpsSecond {
		e.fps = e.frames
		e.fpsSecond = sec
		e.frames = 0
	}
	e.frames++
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
