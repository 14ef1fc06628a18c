package input

import (
	"sync/atomic"

	"go.uber.org/zap"

	"wireboids/hal"
)

// Action is a discrete command decoded from a key press.
type Action uint8

const (
	ActionNone Action = iota
	ActionStart
	ActionTogglePause
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionTogglePause:
		return "toggle-pause"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

var dirKeys = map[hal.KeyCode]Dir{
	hal.KeyW:     DirUp,
	hal.KeyUp:    DirUp,
	hal.KeyS:     DirDown,
	hal.KeyDown:  DirDown,
	hal.KeyA:     DirLeft,
	hal.KeyLeft:  DirLeft,
	hal.KeyD:     DirRight,
	hal.KeyRight: DirRight,
}

// Router decodes host key events. Direction edges go to the inbox for the next
// tick to drain; command keys come back to the caller as an Action on press.
type Router struct {
	inbox   *Inbox[Event]
	log     *zap.Logger
	dropped atomic.Uint64

	// OnDrop, if set, is called for every direction event lost to a full inbox.
	OnDrop func(Event)
}

func NewRouter(inbox *Inbox[Event], log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{inbox: inbox, log: log}
}

// Inbox returns the queue the router feeds.
func (r *Router) Inbox() *Inbox[Event] { return r.inbox }

// Dropped returns the number of direction events lost so far.
func (r *Router) Dropped() uint64 { return r.dropped.Load() }

// Handle routes one key event.
func (r *Router) Handle(ev hal.KeyEvent) Action {
	if d, ok := dirKeys[ev.Code]; ok {
		r.enqueue(Event{Dir: d, Pressed: ev.Press})
		return ActionNone
	}
	switch ev.Code {
	case hal.KeyFocusLost:
		r.enqueue(Event{Dir: DirAll})
	case hal.KeyR:
		if ev.Press {
			return ActionStart
		}
	case hal.KeySpace:
		if ev.Press {
			return ActionTogglePause
		}
	case hal.KeyEscape:
		if ev.Press {
			return ActionQuit
		}
	}
	return ActionNone
}

func (r *Router) enqueue(ev Event) {
	if r.inbox.TrySend(ev) {
		return
	}
	n := r.dropped.Add(1)
	r.log.Warn("input event dropped",
		zap.Stringer("dir", ev.Dir),
		zap.Bool("pressed", ev.Pressed),
		zap.Uint64("dropped_total", n),
	)
	if r.OnDrop != nil {
		r.OnDrop(ev)
	}
}
