// Package viz renders Loewner traces in the terminal.
//
//   - [Canvas]: braille pixel canvas with a complex-plane viewport
//   - [Viewer]: Bubble Tea program for browsing traces
//
// # Key Bindings
//
//	D     - Cycle domain (chordal, radial, dipolar)
//	+/-   - Raise/lower the source parameter (kappa by 0.5, hurst by
//	        0.05, power coefficient by 0.5)
//	R     - New seed
//	Q     - Quit
//
// Traces are cached per configuration, so cycling back to a
// configuration does not recompute its O(n^2) zipper.
package viz
