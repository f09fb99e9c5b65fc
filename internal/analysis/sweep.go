package analysis

import (
	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/physics"
)

// SweepPoint is the largest Lyapunov exponent measured at one ρ.
type SweepPoint struct {
	Rho    float64
	Lambda float64
}

// RhoSweep measures the largest exponent for each ρ in rhos, keeping σ and
// β from base. Runs are independent and spread over goroutines, so
// newInteg must return a fresh integrator per call.
func RhoSweep(
	base physics.Params,
	rhos []float64,
	newInteg func() dynamo.Integrator,
	x0 dynamo.State,
	dt, duration float64,
) []SweepPoint {
	out := make([]SweepPoint, len(rhos))
	dynamo.ParallelFor(len(rhos), 1, func(start, end int) {
		integ := newInteg()
		for i := start; i < end; i++ {
			p := base
			p.Rho = rhos[i]
			dyn := physics.NewLorenzWith(p)
			out[i] = SweepPoint{
				Rho:    rhos[i],
				Lambda: LyapunovExponent(dyn, integ, x0, dt, duration, 1e-8),
			}
		}
	})
	return out
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
