package metrics

import "github.com/san-kum/attractor/internal/dynamo"

// LobeSwitches counts how often the trajectory crosses from one wing of
// the attractor to the other, i.e. sign changes of x.
type LobeSwitches struct {
	switches int
	side     int
}

func NewLobeSwitches() *LobeSwitches { return &LobeSwitches{} }

func (l *LobeSwitches) Name() string { return "lobe_switches" }

func (l *LobeSwitches) Observe(x dynamo.State, t float64) {
	if len(x) == 0 {
		return
	}
	side := 0
	switch {
	case x[0] > 0:
		side = 1
	case x[0] < 0:
		side = -1
	default:
		return
	}
	if l.side != 0 && side != l.side {
		l.switches++
	}
	l.side = side
}

func (l *LobeSwitches) Value() float64 { return float64(l.switches) }

func (l *LobeSwitches) Reset() {
	l.switches = 0
	l.side = 0
}
