// Package app wires the game engine to a HAL: keyboard events in, framebuffer
// frames out, one engine poll per host step.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"wireboids/engine/game"
	"wireboids/engine/input"
	"wireboids/engine/render"
	"wireboids/hal"
)

type Config struct {
	Game game.Config

	// Seed feeds obstacle generation. Zero picks one from the clock.
	Seed uint32

	// AutoStart begins a game on the first step, for runs without a keyboard.
	AutoStart bool

	// ExitOnGameOver ends the run with hal.ErrQuit once a game is lost.
	ExitOnGameOver bool
}

// DefaultConfig is the interactive setup.
func DefaultConfig() Config {
	return Config{Game: game.DefaultConfig()}
}

// DropObserver is implemented by observers that count lost input events.
type DropObserver interface {
	InputDropped()
}

// App is one running game bound to a HAL.
type App struct {
	cfg    Config
	log    *zap.Logger
	clock  hal.Clock
	keys   <-chan hal.KeyEvent
	fb     hal.Framebuffer
	sink   *render.FramebufferSink
	router *input.Router
	engine *game.Engine
}

// New builds the engine and its collaborators on top of h.
func New(h hal.HAL, cfg Config, log *zap.Logger, obs game.Observer) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fb := h.Display().Framebuffer()
	if fb == nil {
		return nil, fmt.Errorf("app: no framebuffer")
	}
	if fb.Format() != hal.PixelFormatRGB565 {
		return nil, fmt.Errorf("app: unsupported pixel format %d", fb.Format())
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint32(h.Clock().Now().UnixNano())
	}

	inbox := input.NewInbox[input.Event](input.DefaultInboxSlots)
	router := input.NewRouter(inbox, log.Named("input"))
	if d, ok := obs.(DropObserver); ok {
		router.OnDrop = func(input.Event) { d.InputDropped() }
	}

	sink := render.NewFramebufferSink(fb)
	eng, err := game.New(cfg.Game, render.NewRenderer(sink), game.Options{
		Logger:   log.Named("game"),
		Observer: obs,
		Source:   game.NewXorShift(seed),
		Clock:    h.Clock(),
		Inbox:    inbox,
	})
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:    cfg,
		log:    log,
		clock:  h.Clock(),
		fb:     fb,
		sink:   sink,
		router: router,
		engine: eng,
	}
	if kbd := h.Input().Keyboard(); kbd != nil {
		a.keys = kbd.Events()
	}

	log.Info("app ready",
		zap.Int("width", fb.Width()),
		zap.Int("height", fb.Height()),
		zap.Uint32("seed", seed),
		zap.Bool("auto_start", cfg.AutoStart),
	)
	if err := sink.Present(); err != nil {
		return nil, fmt.Errorf("present title: %w", err)
	}
	return a, nil
}

// NewStep adapts New to the host runners. A construction error is reported
// by the first step.
func NewStep(h hal.HAL, cfg Config, log *zap.Logger, obs game.Observer) func() error {
	a, err := New(h, cfg, log, obs)
	if err != nil {
		return func() error { return err }
	}
	return a.Step
}

func (a *App) Engine() *game.Engine  { return a.engine }
func (a *App) Router() *input.Router { return a.router }

// Step handles pending keys and polls the engine once.
func (a *App) Step() (err error) {
	defer a.recoverStep(&err)

	now := a.clock.Now()
	if err := a.handleKeys(now); err != nil {
		return err
	}

	if a.cfg.AutoStart && a.engine.State() == game.StateIdle {
		a.engine.Start(now)
	}

	if a.engine.Poll(now) {
		if err := a.sink.Present(); err != nil {
			return fmt.Errorf("present: %w", err)
		}
	}

	if a.cfg.ExitOnGameOver && a.engine.State() == game.StateGameOver {
		return hal.ErrQuit
	}
	return nil
}

func (a *App) handleKeys(now time.Time) error {
	if a.keys == nil {
		return nil
	}
	for {
		select {
		case ev := <-a.keys:
			switch a.router.Handle(ev) {
			case input.ActionStart:
				a.engine.Start(now)
			case input.ActionTogglePause:
				a.engine.TogglePause(now)
			case input.ActionQuit:
				a.log.Info("quit requested")
				return hal.ErrQuit
			}
		default:
			return nil
		}
	}
}
