// Package physics holds the particle model of the constellation effect.
//
// It has three pieces, each usable on its own:
//
//   - [Particle]: position, velocity and fixed radius, advanced one unit step per tick
//   - [CursorImpulse]: the velocity delta produced by a nearby cursor
//   - [Linker]: pairwise proximity edges between particles
//
// Nothing here allocates per tick except [Linker.Links], which reuses an
// internal buffer between calls.
//
// # Cursor Impulse
//
// The impulse uses a hard cutoff: at or beyond the interaction radius the
// delta is exactly zero.
//
//	dvx, dvy := physics.CursorImpulse(p.X, p.Y, cursor, 150, 0.02)
package physics
