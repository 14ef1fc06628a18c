package hal

import "sync"

// HostFramebuffer is an in-memory RGB565 framebuffer.
//
// Writers use Buffer directly; the window runner copies frames out with
// SnapshotRGBA under the lock.
type HostFramebuffer struct {
	mu       sync.Mutex
	width    int
	height   int
	stride   int
	buf      []byte
	presents uint64
}

func NewHostFramebuffer(width, height int) *HostFramebuffer {
	stride := width * 2
	return &HostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *HostFramebuffer) Width() int          { return f.width }
func (f *HostFramebuffer) Height() int         { return f.height }
func (f *HostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *HostFramebuffer) StrideBytes() int    { return f.stride }
func (f *HostFramebuffer) Buffer() []byte      { return f.buf }

func (f *HostFramebuffer) Present() error {
	f.mu.Lock()
	f.presents++
	f.mu.Unlock()
	return nil
}

// Presents counts Present calls.
func (f *HostFramebuffer) Presents() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presents
}

func (f *HostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := RGB565(r, g, b)
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			PutPixel565(f.buf, f.stride, f.width, f.height, x, y, pixel)
		}
	}
}

// SnapshotRGBA converts the current frame into dst (4 bytes per pixel, opaque).
func (f *HostFramebuffer) SnapshotRGBA(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	j := 0
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			if j+3 >= len(dst) {
				return
			}
			dst[j], dst[j+1], dst[j+2] = RGB888From565(Pixel565(f.buf, f.stride, f.width, f.height, x, y))
			dst[j+3] = 0xFF
			j += 4
		}
	}
}

// PixelAt decodes the pixel at (x, y); out-of-range reads return black.
func (f *HostFramebuffer) PixelAt(x, y int) (r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return RGB888From565(Pixel565(f.buf, f.stride, f.width, f.height, x, y))
}
