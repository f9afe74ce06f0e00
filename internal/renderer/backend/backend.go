// Package backend provides the output sinks frames are written to.
package backend

import (
	"errors"
	"io"
)

// ErrNotInitialized is returned when a backend is used before Init.
var ErrNotInitialized = errors.New("backend not initialized")

// ResizeEvent reports new terminal dimensions.
type ResizeEvent struct {
	Width  int
	Height int
}

// Backend is a byte sink with a size and a stream of resize events.
type Backend interface {
	io.Writer

	// Init prepares the output. Interactive backends hide the cursor.
	Init() error

	// Shutdown restores the output to its initial state.
	Shutdown()

	// Size returns the current dimensions in cells.
	Size() (width, height int)

	// Resizes delivers size changes. Only the latest pending event is
	// kept.
	Resizes() <-chan ResizeEvent

	// Interactive reports whether the sink is a terminal.
	Interactive() bool
}

// sendLatest delivers ev, replacing an unconsumed older event.
func sendLatest(ch chan ResizeEvent, ev ResizeEvent) {
	select {
	case ch <- ev:
	default:
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}
