package game

// State is the engine's lifecycle phase.
type State uint8

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Active reports whether a game is in progress, paused or not.
func (s State) Active() bool { return s == StateRunning || s == StatePaused }
