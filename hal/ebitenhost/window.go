//go:build cgo

// Package ebitenhost opens a desktop window that shows the hal framebuffer
// and feeds keyboard input back into it.
package ebitenhost

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"wireboids/hal"
	"wireboids/internal/buildinfo"
)

// WindowConfig controls the window runner.
type WindowConfig struct {
	Host  hal.HostConfig
	Scale int
	TPS   int
	Title string
}

// RunWindow starts a desktop window that displays the framebuffer and forwards keyboard input.
// It blocks until the window closes, ctx is done, or the step function returns
// hal.ErrQuit.
func RunWindow(ctx context.Context, newApp func(hal.HAL) func() error, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	if cfg.Title == "" {
		cfg.Title = buildinfo.Title()
	}

	h := hal.NewHost(cfg.Host)
	g := &hostGame{
		ctx:  ctx,
		fb:   h.HostFramebuffer(),
		kbd:  newKeyboardPoller(h.HostKeyboard()),
		step: newApp(h),
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(g.fb.Width()*cfg.Scale, g.fb.Height()*cfg.Scale)
	ebiten.SetTPS(cfg.TPS)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	ctx   context.Context
	fb    *hal.HostFramebuffer
	kbd   *keyboardPoller
	step  func() error
	pix   []byte
	fbImg *ebiten.Image
}

func (g *hostGame) Update() error {
	g.kbd.poll()
	return runStep(g.ctx, g.step)
}

// runStep runs one step and maps the ways a run can end onto ebiten's
// termination error.
func runStep(ctx context.Context, step func() error) error {
	if ctx.Err() != nil {
		return ebiten.Termination
	}
	if step == nil {
		return nil
	}
	if err := step(); err != nil {
		if errors.Is(err, hal.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	w, h := g.fb.Width(), g.fb.Height()
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(w, h)
		g.pix = make([]byte, w*h*4)
	}
	g.fb.SnapshotRGBA(g.pix)
	g.fbImg.WritePixels(g.pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width(), g.fb.Height()
}
