// Package physics provides the Lorenz system.
//
// [Lorenz] implements [dynamo.System] with the classic three coupled
// equations
//
//	dx/dt = σ(y - x)
//	dy/dt = x(ρ - z) - y
//	dz/dt = xy - βz
//
// and [dynamo.Configurable] so the interactive views can tune σ, ρ and β
// at runtime.
package physics
