// Package loewner provides the primitives shared by the zipper
// implementations of the Loewner equation.
//
// A trace is computed by composing elementary slit maps backwards in time:
//
//   - [Times]: sampled time instants, non-decreasing
//   - [Drive]: driving function values paired with [Times]
//   - [Trace]: complex curve points, one per time instant
//   - [ZipFunc]: elementary slit map applied in place to a suffix
//   - [Zip]: the backward recurrence shared by every geometry
//   - [Domain], [Inverter], [Source]: contracts implemented by the
//     chordal, radial and dipolar packages and the driving sources
//
// # Capacity
//
// Every geometry fixes the capacity growth rate so that elapsed time is the
// accumulated capacity. No capacity parameter is carried around.
//
// # Thread Safety
//
// All functions allocate their own output and keep no state, so concurrent
// calls on disjoint inputs need no synchronization.
package loewner
