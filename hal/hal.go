// Package hal is the game's only contact point with the host: a pixel
// framebuffer, a keyboard event source and a clock.
//
// Window hosting lives in hal/ebitenhost; this package stays free of any
// windowing dependency so the simulation can run and be tested headless.
package hal

import (
	"errors"
	"time"
)

// ErrQuit is returned by a step function to end a host run without error.
var ErrQuit = errors.New("hal: quit requested")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeyR
	KeySpace
	KeyEscape

	// KeyFocusLost is synthesized when the window loses focus; releases may
	// never arrive for keys held at that moment.
	KeyFocusLost
)

var keyNames = [...]string{
	KeyUnknown:   "unknown",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyW:         "w",
	KeyA:         "a",
	KeyS:         "s",
	KeyD:         "d",
	KeyR:         "r",
	KeySpace:     "space",
	KeyEscape:    "escape",
	KeyFocusLost: "focus-lost",
}

func (k KeyCode) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

// KeyEvent is a keyboard edge: one press or one release.
type KeyEvent struct {
	Code  KeyCode
	Press bool
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// Clock is the wall clock used for frame pacing.
type Clock interface {
	Now() time.Time
}

// HAL groups the host devices the game uses.
type HAL interface {
	Display() Display
	Input() Input
	Clock() Clock
}
