package hal

// ChanKeyboard is a buffered keyboard fed by a host runner or a test.
type ChanKeyboard struct {
	ch chan KeyEvent
}

func NewChanKeyboard(buffer int) *ChanKeyboard {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChanKeyboard{ch: make(chan KeyEvent, buffer)}
}

func (k *ChanKeyboard) Events() <-chan KeyEvent { return k.ch }

// Push queues ev without blocking. It reports false when the buffer is full
// and the event was dropped.
func (k *ChanKeyboard) Push(ev KeyEvent) bool {
	select {
	case k.ch <- ev:
		return true
	default:
		return false
	}
}
