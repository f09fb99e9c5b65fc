// Package dynamo provides core primitives for the attractor simulation.
//
// The package defines the interfaces and types shared by the simulation
// packages:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical integrator
//   - [Metric] and [Observer]: per-step instrumentation hooks
//
// # Example
//
//	dyn := physics.NewLorenz()
//	integ := integrators.NewEuler()
//	x := dyn.DefaultState()
//	x = integ.Step(dyn, x, 0, 0.01)
//
// # Thread Safety
//
// None of the types here are safe for concurrent mutation. Integrators
// and systems are pure with respect to their inputs, so distinct
// trajectories may be stepped from separate goroutines.
package dynamo
