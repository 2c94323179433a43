// Package host wires a simulation to a frame loop for window and terminal
// hosts. A host owns one Session and calls it from its single frame goroutine.
package host

import (
	"github.com/san-kum/constellation/internal/dynamo"
	"github.com/san-kum/constellation/internal/loop"
	"github.com/san-kum/constellation/internal/sim"
)

type Session struct {
	Sim    *sim.Simulation
	Driver *loop.Driver
	Queue  *loop.FrameQueue
}

func NewSession(surface dynamo.Surface, cfg sim.Config, opts ...sim.Option) (*Session, error) {
	s, err := sim.New(surface, cfg, opts...)
	if err != nil {
		return nil, err
	}
	q := loop.NewFrameQueue()
	d, err := loop.NewDriver(q, s.Tick)
	if err != nil {
		return nil, err
	}
	return &Session{Sim: s, Driver: d, Queue: q}, nil
}

func (s *Session) Start() { s.Driver.Start() }
func (s *Session) Stop()  { s.Driver.Stop() }

func (s *Session) Running() bool { return s.Driver.State() == loop.Running }

// TogglePause flips between running and stopped and reports whether the
// session now runs.
func (s *Session) TogglePause() bool {
	if s.Running() {
		s.Driver.Stop()
		return false
	}
	s.Driver.Start()
	return true
}

// Frame is called once per repaint. A stopped session repaints its last
// state so window hosts keep showing it.
func (s *Session) Frame() {
	if s.Queue.Dispatch() == 0 {
		s.Sim.Redraw()
	}
}

// Pointer forwards a pointer sample; inside false means it left the surface.
func (s *Session) Pointer(x, y float64, inside bool) {
	if !inside {
		s.Sim.OnPointerLeave()
		return
	}
	s.Sim.OnPointerMove(x, y)
}

// Resize rebuilds the population only when the size actually changed.
func (s *Session) Resize(width, height int) error {
	vp := s.Sim.Viewport()
	if vp.Width == width && vp.Height == height {
		return nil
	}
	return s.Sim.OnResize(width, height)
}

// Sync applies one frame of window input: the current surface size and the
// pointer sample. The pointer is forwarded even when the size is rejected.
func (s *Session) Sync(width, height int, x, y float64, inside bool) error {
	err := s.Resize(width, height)
	s.Pointer(x, y, inside)
	return err
}
