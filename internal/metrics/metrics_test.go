package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/attractor/internal/dynamo"
)

func TestStability(t *testing.T) {
	m := NewStability(50)

	if m.Value() != 1.0 {
		t.Errorf("empty stability = %v, want 1", m.Value())
	}

	m.Observe(dynamo.State{1, 2, 3}, 0)
	m.Observe(dynamo.State{1, 2, 60}, 0)
	m.Observe(dynamo.State{math.NaN(), 0, 0}, 0)
	m.Observe(dynamo.State{-10, 20, 49}, 0)

	if got := m.Value(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("stability = %v, want 0.5", got)
	}

	m.Reset()
	if m.Value() != 1.0 {
		t.Error("expected stability 1 after reset")
	}
}

func TestLobeSwitches(t *testing.T) {
	m := NewLobeSwitches()
	xs := []float64{0, 1, 2, -1, -3, 0, -2, 4, 5, -1}
	for _, x := range xs {
		m.Observe(dynamo.State{x, 0, 0}, 0)
	}

	if got := m.Value(); got != 3 {
		t.Errorf("switches = %v, want 3", got)
	}
	if m.Name() != "lobe_switches" {
		t.Errorf("unexpected name %q", m.Name())
	}

	m.Reset()
	m.Observe(dynamo.State{-1, 0, 0}, 0)
	if m.Value() != 0 {
		t.Error("first observation after reset must not count as a switch")
	}
}
