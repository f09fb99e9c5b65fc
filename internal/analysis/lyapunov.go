package analysis

import (
	"math"

	"github.com/san-kum/attractor/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent by following a
// companion trajectory d0 away from the reference and pulling it back to
// distance d0 after every step:
//
//	λ ≈ Σ ln(|δx_k| / d0) / (N·dt)
func LyapunovExponent(
	dyn dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt, duration float64,
	d0 float64,
) float64 {
	if len(x0) == 0 || d0 <= 0 || dt <= 0 {
		return 0
	}

	x := x0.Clone()
	xp := x0.Clone()
	xp[0] += d0

	sumLog := 0.0
	count := 0
	t := 0.0

	for t < duration {
		x = integ.Step(dyn, x, t, dt)
		xp = integ.Step(dyn, xp, t, dt)
		t += dt

		sep := xp.Sub(x).Norm()
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			break
		}
		sumLog += math.Log(sep / d0)
		count++

		scale := d0 / sep
		for i := range xp {
			xp[i] = x[i] + (xp[i]-x[i])*scale
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}

// LyapunovSpectrum estimates all exponents, largest first. One companion
// trajectory per dimension carries a tangent direction; the directions
// are re-orthonormalised (Gram-Schmidt) after every step and the log of
// each stretched length is accumulated.
func LyapunovSpectrum(
	dyn dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt, duration float64,
	d0 float64,
) []float64 {
	n := len(x0)
	if n == 0 || d0 <= 0 || dt <= 0 {
		return nil
	}

	basis := make([]dynamo.State, n)
	for i := range basis {
		basis[i] = make(dynamo.State, n)
		basis[i][i] = 1
	}

	sums := make([]float64, n)
	x := x0.Clone()
	t := 0.0
	count := 0

	for t < duration {
		next := integ.Step(dyn, x, t, dt)
		if !next.IsValid() {
			break
		}

		for i, v := range basis {
			xp := x.Add(v.Scale(d0))
			basis[i] = integ.Step(dyn, xp, t, dt).Sub(next).Scale(1 / d0)
		}

		for i := range basis {
			for j := 0; j < i; j++ {
				basis[i] = basis[i].Sub(basis[j].Scale(dot(basis[i], basis[j])))
			}
			norm := basis[i].Norm()
			if norm == 0 {
				return nil
			}
			sums[i] += math.Log(norm)
			basis[i] = basis[i].Scale(1 / norm)
		}

		x = next
		t += dt
		count++
	}

	if count == 0 {
		return nil
	}
	spectrum := make([]float64, n)
	for i := range sums {
		spectrum[i] = sums[i] / (float64(count) * dt)
	}
	return spectrum
}

func dot(a, b dynamo.State) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
