// Package dynamo provides the core primitives shared by the constellation
// simulation and its hosts.
//
// The package defines the small vocabulary every other package speaks:
//
//   - [Viewport]: pixel dimensions of the drawable area
//   - [Cursor]: pointer position, or the distinct absent state
//   - [Surface]: drawing primitives a host must provide
//   - [Scheduler]: "run once before the next repaint" primitive
//
// # Example
//
//	s, err := sim.New(surface, sim.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	d := loop.NewDriver(queue, s.Tick)
//	d.Start()
//
// # Thread Safety
//
// None of the types here are safe for concurrent use. A simulation and the
// host that drives it live on a single goroutine.
package dynamo
