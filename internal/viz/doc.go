// Package viz hosts the constellation in a terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live simulation drawn on a braille [Canvas]
//   - [App]: preset picker that launches a [Model]
//   - [CanvasSurface]: adapts simulation coordinates to braille sub-pixels
//   - Theme selection with 5 built-in color schemes; the theme accent is the
//     particle fill color
//
// Mouse motion over the canvas moves the cursor; leaving the canvas or the
// terminal losing focus clears it.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Resample particles
//	T     - Cycle color themes
//	S     - Save the current frame as SVG
//	↑/↓   - Select a physics parameter
//	+/-   - Scale the selected parameter
package viz
