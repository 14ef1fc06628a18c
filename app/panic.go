package app

import (
	"errors"
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"wireboids/hal"
)

// ErrPanic wraps a panic recovered from a step.
var ErrPanic = errors.New("app: step panicked")

// recoverStep turns a panic into ErrPanic, logs it and paints a crash screen
// so a windowed run does not just vanish.
func (a *App) recoverStep(err *error) {
	v := recover()
	if v == nil {
		return
	}
	stack := debug.Stack()
	a.log.Error("step panicked", zap.Any("panic", v), zap.ByteString("stack", stack))
	drawCrashScreen(a.fb, v, stack)
	*err = fmt.Errorf("%w: %v", ErrPanic, v)
}

func drawCrashScreen(fb hal.Framebuffer, v any, stack []byte) {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	fb.ClearRGB(255, 255, 255)

	font := &proggy.TinySZ8pt7b
	const fontHeight, fontOffset = int16(10), int16(8)
	_, outboxWidth := tinyfont.LineWidth(font, "0")
	fontWidth := int16(outboxWidth)
	if fontWidth <= 0 {
		_ = fb.Present()
		return
	}

	lines := []string{"WireBoids crashed:", fmt.Sprintf("panic: %v", v)}
	for _, line := range strings.Split(string(stack), "\n") {
		if line != "" {
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	}

	d := crashDisplay{fb: fb}
	fg := color.RGBA{A: 255}
	cols := int16(fb.Width()) / fontWidth
	if cols <= 0 {
		cols = 1
	}

	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if int(y+fontHeight) > fb.Height() {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, font, 0, y+fontOffset, chunk, fg)
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

type crashDisplay struct {
	fb hal.Framebuffer
}

func (d crashDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d crashDisplay) SetPixel(x, y int16, c color.RGBA) {
	hal.PutPixel565(d.fb.Buffer(), d.fb.StrideBytes(), d.fb.Width(), d.fb.Height(),
		int(x), int(y), hal.RGB565(c.R, c.G, c.B))
}

func (d crashDisplay) Display() error { return nil }

// takeRunes splits s after at most n runes.
func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
