package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/attractor/internal/dynamo"
)

// Params are the Lorenz vector field constants.
type Params struct {
	Sigma float64 `yaml:"sigma"`
	Rho   float64 `yaml:"rho"`
	Beta  float64 `yaml:"beta"`
}

// CanonicalParams returns the classic 1963 chaotic regime.
func CanonicalParams() Params { return Params{Sigma: 10.0, Rho: 28.0, Beta: 8.0 / 3.0} }

type Lorenz struct{ p Params }

func NewLorenz() *Lorenz                     { return &Lorenz{CanonicalParams()} }
func NewLorenzWith(p Params) *Lorenz         { return &Lorenz{p} }
func (l *Lorenz) StateDim() int              { return 3 }
func (l *Lorenz) Params() Params             { return l.p }
func (l *Lorenz) DefaultState() dynamo.State { return dynamo.State{0.1, 0.0, 0.0} }

// Derive calculates the Lorenz attractor derivatives.
func (l *Lorenz) Derive(s dynamo.State, _ float64) dynamo.State {
	return dynamo.State{
		l.p.Sigma * (s[1] - s[0]),
		s[0]*(l.p.Rho-s[2]) - s[1],
		s[0]*s[1] - l.p.Beta*s[2],
	}
}

func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.p.Sigma, "rho": l.p.Rho, "beta": l.p.Beta}
}

func (l *Lorenz) SetParam(n string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s=%v: %w", n, v, dynamo.ErrParameterBounds)
	}
	switch n {
	case "sigma":
		l.p.Sigma = v
	case "rho":
		l.p.Rho = v
	case "beta":
		l.p.Beta = v
	default:
		return fmt.Errorf("%q: %w", n, dynamo.ErrUnknownParam)
	}
	return nil
}

// Equilibria returns the fixed points C+ and C- for rho > 1, or only the
// origin otherwise.
func (l *Lorenz) Equilibria() []dynamo.State {
	origin := dynamo.State{0, 0, 0}
	if l.p.Rho <= 1 || l.p.Beta <= 0 {
		return []dynamo.State{origin}
	}
	r := math.Sqrt(l.p.Beta * (l.p.Rho - 1))
	z := l.p.Rho - 1
	return []dynamo.State{origin, {r, r, z}, {-r, -r, z}}
}
