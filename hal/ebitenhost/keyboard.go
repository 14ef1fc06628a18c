//go:build cgo

package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"wireboids/hal"
)

var keyMap = []struct {
	key  ebiten.Key
	code hal.KeyCode
}{
	{ebiten.KeyArrowUp, hal.KeyUp},
	{ebiten.KeyArrowDown, hal.KeyDown},
	{ebiten.KeyArrowLeft, hal.KeyLeft},
	{ebiten.KeyArrowRight, hal.KeyRight},
	{ebiten.KeyW, hal.KeyW},
	{ebiten.KeyA, hal.KeyA},
	{ebiten.KeyS, hal.KeyS},
	{ebiten.KeyD, hal.KeyD},
	{ebiten.KeyR, hal.KeyR},
	{ebiten.KeySpace, hal.KeySpace},
	{ebiten.KeyEscape, hal.KeyEscape},
}

type keyboardPoller struct {
	kbd     *hal.ChanKeyboard
	focused bool
}

func newKeyboardPoller(kbd *hal.ChanKeyboard) *keyboardPoller {
	return &keyboardPoller{kbd: kbd, focused: true}
}

// poll turns this frame's key edges into events. Losing window focus emits a
// single KeyFocusLost because releases are not delivered while unfocused.
func (p *keyboardPoller) poll() {
	focused := ebiten.IsFocused()
	if p.focused && !focused {
		p.kbd.Push(hal.KeyEvent{Code: hal.KeyFocusLost, Press: true})
	}
	p.focused = focused

	for _, m := range keyMap {
		if inpututil.IsKeyJustPressed(m.key) {
			p.kbd.Push(hal.KeyEvent{Code: m.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(m.key) {
			p.kbd.Push(hal.KeyEvent{Code: m.code, Press: false})
		}
	}
}
