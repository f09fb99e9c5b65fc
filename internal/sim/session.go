package sim

import (
	"fmt"

	"github.com/san-kum/attractor/internal/config"
	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/integrators"
	"github.com/san-kum/attractor/internal/physics"
	"github.com/san-kum/attractor/internal/scene"
	"github.com/san-kum/attractor/internal/trail"
)

// Frame is the render handoff produced by one host callback.
// Positions and Colors alias the trail's backing arrays and are only
// valid until the next call to Session.Frame.
type Frame struct {
	Positions []trail.Vec3
	Colors    []trail.Color
	Start     int
	Count     int
	Head      int
	Tracer    trail.Vec3
	RotationY float64
	Elapsed   float64
	Time      float64
	State     dynamo.State
}

// Session owns one attractor run: the system, its integrator, the
// current state and the trail fed from it. Not safe for concurrent use.
type Session struct {
	cfg       *config.Config
	lorenz    *physics.Lorenz
	integ     dynamo.Integrator
	state     dynamo.State
	initState dynamo.State
	t         float64
	steps     int
	trail     *trail.Buffer
	metrics   []dynamo.Metric
	observers []dynamo.Observer
	err       error
}

func NewSession(cfg *config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	integ, err := integrators.ByName(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	cfg = cfg.Clone()
	x0 := dynamo.State(cfg.GetInitState())
	return &Session{
		cfg:       cfg,
		lorenz:    physics.NewLorenzWith(cfg.Params),
		integ:     integ,
		state:     x0.Clone(),
		initState: x0,
		trail:     trail.New(cfg.Capacity, trail.WithScale(cfg.Scale), trail.WithColorMap(cfg.Color)),
	}, nil
}

func (s *Session) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Session) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Step advances one fixed dt and records the new state. After a
// divergence is detected the session stops advancing and every further
// call returns the same error.
func (s *Session) Step() error {
	if s.err != nil {
		return s.err
	}
	next := s.integ.Step(s.lorenz, s.state, s.t, s.cfg.Dt)
	if s.cfg.ValidateState && !next.IsValid() {
		s.err = &dynamo.SimulationError{Step: s.steps, Time: s.t, State: next, Wrapped: dynamo.ErrUnstable}
		return s.err
	}

	s.state = next
	s.t += s.cfg.Dt
	s.steps++
	s.trail.PushState(next[0], next[1], next[2])

	for _, m := range s.metrics {
		m.Observe(next, s.t)
	}
	for _, o := range s.observers {
		o.OnStep(next, s.t)
	}
	return nil
}

// Frame runs the configured number of sub-steps and returns what the
// renderer needs. elapsed is wall-clock seconds since start and only
// drives the scene rotation.
func (s *Session) Frame(elapsed float64) (Frame, error) {
	for i := 0; i < s.cfg.SubSteps; i++ {
		if err := s.Step(); err != nil {
			break
		}
	}
	return s.snapshot(elapsed), s.err
}

func (s *Session) snapshot(elapsed float64) Frame {
	start, count := s.trail.ActiveRange()
	return Frame{
		Positions: s.trail.Positions(),
		Colors:    s.trail.Colors(),
		Start:     start,
		Count:     count,
		Head:      s.trail.Head(),
		Tracer:    s.trail.Project(s.state[0], s.state[1], s.state[2]),
		RotationY: scene.Turntable(s.cfg.RotationSpeed, elapsed),
		Elapsed:   elapsed,
		Time:      s.t,
		State:     s.state.Clone(),
	}
}

// Reset restores the initial state and parameters and empties the trail.
func (s *Session) Reset() {
	s.state = s.initState.Clone()
	s.lorenz = physics.NewLorenzWith(s.cfg.Params)
	s.t, s.steps, s.err = 0, 0, nil
	s.trail.Reset()
	for _, m := range s.metrics {
		m.Reset()
	}
}

// SetParam tunes the live system without touching the configured
// defaults Reset returns to.
func (s *Session) SetParam(name string, v float64) error {
	if err := s.lorenz.SetParam(name, v); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	return nil
}

func (s *Session) Params() map[string]float64 { return s.lorenz.GetParams() }
func (s *Session) State() dynamo.State        { return s.state.Clone() }
func (s *Session) Time() float64              { return s.t }
func (s *Session) Steps() int                 { return s.steps }
func (s *Session) Trail() *trail.Buffer       { return s.trail }
func (s *Session) Config() *config.Config     { return s.cfg.Clone() }
func (s *Session) Err() error                 { return s.err }

func (s *Session) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
