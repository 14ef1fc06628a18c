package hal

// HostConfig sizes the host devices.
type HostConfig struct {
	Width  int
	Height int
}

const (
	DefaultWidth  = 960
	DefaultHeight = 540
)

// Host is the desktop HAL. Window and headless runners both drive it; only the
// window runner feeds its keyboard.
type Host struct {
	fb    *HostFramebuffer
	kbd   *ChanKeyboard
	clock Clock
}

// NewHost returns a host HAL with a framebuffer of the configured size.
func NewHost(cfg HostConfig) *Host {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	return &Host{
		fb:    NewHostFramebuffer(cfg.Width, cfg.Height),
		kbd:   NewChanKeyboard(64),
		clock: SystemClock{},
	}
}

func (h *Host) Display() Display { return hostDisplay{fb: h.fb} }
func (h *Host) Input() Input     { return hostInput{kbd: h.kbd} }
func (h *Host) Clock() Clock     { return h.clock }

// HostFramebuffer exposes the concrete framebuffer to host runners.
func (h *Host) HostFramebuffer() *HostFramebuffer { return h.fb }

// HostKeyboard exposes the keyboard so a host runner can push events.
func (h *Host) HostKeyboard() *ChanKeyboard { return h.kbd }

// SetClock replaces the clock; used by simulations running on virtual time.
func (h *Host) SetClock(c Clock) {
	if c != nil {
		h.clock = c
	}
}

type hostDisplay struct {
	fb *HostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *ChanKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
