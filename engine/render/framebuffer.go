package render

import (
	"image/color"
	"math"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"

	"wireboids/engine/geom"
	"wireboids/hal"
)

var (
	DefaultBackground = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	DefaultInk        = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
)

// FramebufferSink rasterizes draw commands into an RGB565 hal.Framebuffer.
// Logical coordinates are scaled to the device and Y is flipped so logical
// up is device up. Segments are clipped to the device before rasterizing.
type FramebufferSink struct {
	fb   hal.Framebuffer
	disp *fbDisplay

	Background color.RGBA
	Ink        color.RGBA

	path   []geom.Vec2
	starts []int
}

func NewFramebufferSink(fb hal.Framebuffer) *FramebufferSink {
	return &FramebufferSink{
		fb:         fb,
		disp:       &fbDisplay{fb: fb},
		Background: DefaultBackground,
		Ink:        DefaultInk,
	}
}

// ToDevice maps a logical point to fractional device pixel coordinates.
func (s *FramebufferSink) ToDevice(p geom.Vec2) (x, y float64) {
	sx := float64(s.fb.Width()) / LogicalWidth
	sy := float64(s.fb.Height()) / LogicalHeight
	return p.X * sx, float64(s.fb.Height()) - p.Y*sy
}

func (s *FramebufferSink) Clear() {
	s.path = s.path[:0]
	s.starts = s.starts[:0]
	s.fb.ClearRGB(s.Background.R, s.Background.G, s.Background.B)
}

func (s *FramebufferSink) MoveTo(p geom.Vec2) {
	s.starts = append(s.starts, len(s.path))
	s.path = append(s.path, p)
}

func (s *FramebufferSink) LineTo(p geom.Vec2) {
	if len(s.starts) == 0 {
		s.MoveTo(p)
		return
	}
	s.path = append(s.path, p)
}

// Stroke draws every subpath since the last Stroke, then starts afresh.
func (s *FramebufferSink) Stroke() {
	for i, start := range s.starts {
		end := len(s.path)
		if i+1 < len(s.starts) {
			end = s.starts[i+1]
		}
		for j := start; j+1 < end; j++ {
			s.segment(s.path[j], s.path[j+1])
		}
	}
	s.path = s.path[:0]
	s.starts = s.starts[:0]
}

func (s *FramebufferSink) WriteText(text string, p geom.Vec2, size int) {
	if size <= 0 {
		size = DefaultTextSize
	}
	x, y := s.ToDevice(p)
	if !finite(x) || !finite(y) {
		return
	}
	px := float64(size) * float64(s.fb.Height()) / LogicalHeight
	tinyfont.WriteLine(s.disp, faceFor(px), int16(math.Round(x)), int16(math.Round(y)), text, s.Ink)
}

// Present flushes the frame to the host.
func (s *FramebufferSink) Present() error {
	return s.disp.Display()
}

func (s *FramebufferSink) segment(a, b geom.Vec2) {
	x0, y0 := s.ToDevice(a)
	x1, y1 := s.ToDevice(b)
	w, h := s.fb.Width(), s.fb.Height()
	x0, y0, x1, y1, ok := clipSegment(x0, y0, x1, y1, 0, 0, float64(w-1), float64(h-1))
	if !ok {
		return
	}
	drawLine(s.disp, int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)), s.Ink)
}

// faceFor picks a font by rendered pixel size.
func faceFor(px float64) tinyfont.Fonter {
	switch {
	case px < 12:
		return &proggy.TinySZ8pt7b
	case px < 24:
		return &freemono.Regular9pt7b
	case px < 36:
		return &freemono.Bold12pt7b
	default:
		return &freemono.Bold18pt7b
	}
}

func drawLine(d *fbDisplay, x0, y0, x1, y1 int, c color.RGBA) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		d.SetPixel(int16(x0), int16(y0), c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

const outInside = 0

const (
	outLeft = 1 << iota
	outRight
	outBottom
	outTop
)

func outcode(x, y, xmin, ymin, xmax, ymax float64) int {
	code := outInside
	if x < xmin {
		code |= outLeft
	} else if x > xmax {
		code |= outRight
	}
	if y < ymin {
		code |= outBottom
	} else if y > ymax {
		code |= outTop
	}
	return code
}

// clipSegment is Cohen-Sutherland clipping against an inclusive rectangle.
// Segments with non-finite endpoints are rejected.
func clipSegment(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	if !finite(x0) || !finite(y0) || !finite(x1) || !finite(y1) {
		return 0, 0, 0, 0, false
	}
	c0 := outcode(x0, y0, xmin, ymin, xmax, ymax)
	c1 := outcode(x1, y1, xmin, ymin, xmax, ymax)
	for {
		switch {
		case c0|c1 == 0:
			return x0, y0, x1, y1, true
		case c0&c1 != 0:
			return 0, 0, 0, 0, false
		}

		out := c0
		if out == 0 {
			out = c1
		}
		var x, y float64
		switch {
		case out&outTop != 0:
			x = x0 + (x1-x0)*(ymax-y0)/(y1-y0)
			y = ymax
		case out&outBottom != 0:
			x = x0 + (x1-x0)*(ymin-y0)/(y1-y0)
			y = ymin
		case out&outRight != 0:
			y = y0 + (y1-y0)*(xmax-x0)/(x1-x0)
			x = xmax
		default:
			y = y0 + (y1-y0)*(xmin-x0)/(x1-x0)
			x = xmin
		}
		if out == c0 {
			x0, y0 = x, y
			c0 = outcode(x0, y0, xmin, ymin, xmax, ymax)
		} else {
			x1, y1 = x, y
			c1 = outcode(x1, y1, xmin, ymin, xmax, ymax)
		}
	}
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var _ drivers.Displayer = (*fbDisplay)(nil)

// fbDisplay lets tinyfont draw straight into the framebuffer.
type fbDisplay struct {
	fb hal.Framebuffer
}

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	hal.PutPixel565(d.fb.Buffer(), d.fb.StrideBytes(), d.fb.Width(), d.fb.Height(),
		int(x), int(y), hal.RGB565(c.R, c.G, c.B))
}

func (d *fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	for py := int(y); py < int(y)+int(height); py++ {
		for px := int(x); px < int(x)+int(width); px++ {
			d.SetPixel(int16(px), int16(py), c)
		}
	}
	return nil
}

func (d *fbDisplay) SetRotation(drivers.Rotation) error { return nil }
