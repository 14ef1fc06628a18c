//go:build !cgo

// Package ebitenhost opens a desktop window that shows the hal framebuffer
// and feeds keyboard input back into it.
package ebitenhost

import (
	"context"
	"errors"

	"wireboids/hal"
)

// WindowConfig controls the window runner.
type WindowConfig struct {
	Host  hal.HostConfig
	Scale int
	TPS   int
	Title string
}

// ErrNoWindow reports a build without the window backend.
var ErrNoWindow = errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")

func RunWindow(_ context.Context, _ func(hal.HAL) func() error, _ WindowConfig) error {
	return ErrNoWindow
}
