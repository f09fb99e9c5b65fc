// Package analysis provides chaos diagnostics for the attractor.
//
//   - [LyapunovExponent]: largest Lyapunov exponent (Benettin renormalisation)
//   - [LyapunovSpectrum]: all exponents via Gram-Schmidt on finite-difference tangents
//   - [RhoSweep]: largest exponent across a range of ρ, computed in parallel
//   - [PowerSpectrum] and [DominantFrequency]: FFT of a sampled coordinate
//   - [PoincareSection]: plane crossings, with [ScatterToASCII] for display
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(dyn, integ, x0, dt, duration, 1e-8)
//	if lambda > 0 {
//	    // System is chaotic
//	}
package analysis
