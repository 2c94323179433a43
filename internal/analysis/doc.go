// Package analysis characterizes recorded traces of a particle field.
//
//   - [PowerSpectrum]: windowed magnitude spectrum of a trace
//   - [Dominant]: strongest non-DC bin of a spectrum
//   - [DecayRate]: per-tick geometric decay fitted to a positive trace
//   - [SettleTick]: first tick a trace falls to a fraction of its start
//
// With no cursor present the kinetic energy of a field decays by exactly
// damping² per tick, so DecayRate on that trace recovers the damping:
//
//	rate, _ := analysis.DecayRate(kinetic)
//	damping := math.Sqrt(rate)
package analysis
