package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrRendererOpen indicates the renderer could not create its view.
	ErrRendererOpen = errors.New("engine: renderer failed to open")

	// ErrConfig indicates invalid loop parameters.
	ErrConfig = errors.New("engine: invalid loop config")

	// ErrInterrupted is returned by Renderer.Poll when the user closed the
	// view. The loop treats it like a quit key.
	ErrInterrupted = errors.New("engine: renderer closed")
)

// TickError wraps a failure during a diffusion tick.
type TickError struct {
	Frame   int
	Tick    int
	Wrapped error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("frame %d (tick %d): %v", e.Frame, e.Tick, e.Wrapped)
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}
