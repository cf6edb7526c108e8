// Package analysis provides statistics of driving functions.
//
// The estimators check that a sampled driving function has the scaling it
// was generated with:
//
//   - [EstimateKappa]: diffusion constant from the quadratic variation
//   - [EstimateHurst]: Hurst exponent from the variogram slope
//   - [PowerSpectrum]: magnitude spectrum of a series
//
// # Example
//
//	t, u := chordal.Drive(z, false)
//	kappa, _ := analysis.EstimateKappa(t, u)
//	// kappa close to 4 for an SLE(4) trace
package analysis
