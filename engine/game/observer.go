package game

import "time"

// Observer receives engine events for metrics. Calls happen on the tick
// goroutine and must not block.
type Observer interface {
	GameStarted()
	GameOver(distance float64)
	Tick(runTime time.Duration, active int)
	Generated()
	Retired(n int)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) GameStarted()            {}
func (NopObserver) GameOver(float64)        {}
func (NopObserver) Tick(time.Duration, int) {}
func (NopObserver) Generated()              {}
func (NopObserver) Retired(int)             {}
