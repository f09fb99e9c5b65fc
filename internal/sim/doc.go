// Package sim drives the attractor one host frame at a time.
//
// A [Session] replaces the loose module-level variables a render loop
// would otherwise keep: it owns the Lorenz parameters, the current
// state, the integrator and the trail. Each call to [Session.Frame]
// performs a fixed number of fixed-dt sub-steps, pushes every new state
// into the trail and returns a [Frame] for the renderer. Wall-clock time
// only feeds the cosmetic scene rotation, never the integration.
package sim
