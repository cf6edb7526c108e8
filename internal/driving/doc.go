// Package driving generates driving functions for the Loewner equation.
//
// The generators are the inputs of a simulation, not part of the zipper
// itself; anything producing a (t, u) pair with non-decreasing t will do.
//
//   - [Brownian]: standard Brownian motion with diffusion constant kappa,
//     the driving function of SLE(kappa)
//   - [Fractional]: fractional Brownian motion by the Davies-Harte method
//   - [BrownianSource], [FractionalSource], [PowerSource]: [loewner.Source]
//     implementations on a uniform time grid
package driving
