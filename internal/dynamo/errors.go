package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrNoSurface indicates the host has no drawable surface; the simulation never starts.
	ErrNoSurface = errors.New("dynamo: no drawable surface")

	// ErrNoScheduler indicates the host has no frame scheduling primitive.
	ErrNoScheduler = errors.New("dynamo: no frame scheduler")

	// ErrInvalidViewport indicates a non-positive width or height.
	ErrInvalidViewport = errors.New("dynamo: viewport dimensions must be positive")

	// ErrInvalidState indicates a particle with NaN or Inf position or velocity.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Tick     int
	Particle int
	Wrapped  error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d particle %d: %v", e.Tick, e.Particle, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
