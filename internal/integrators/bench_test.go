package integrators

import (
	"testing"

	"github.com/san-kum/attractor/internal/physics"
)

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	dyn := physics.NewLorenz()
	x := dyn.DefaultState()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
		if i%100000 == 0 {
			x = dyn.DefaultState()
		}
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	dyn := physics.NewLorenz()
	x := dyn.DefaultState()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
		if i%100000 == 0 {
			x = dyn.DefaultState()
		}
	}
}
