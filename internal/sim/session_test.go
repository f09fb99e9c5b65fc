package sim_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/attractor/internal/config"
	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/integrators"
	"github.com/san-kum/attractor/internal/metrics"
	"github.com/san-kum/attractor/internal/physics"
	"github.com/san-kum/attractor/internal/sim"
	"github.com/san-kum/attractor/internal/trail"
)

type countingObserver struct{ calls int }

func (c *countingObserver) OnStep(x dynamo.State, t float64) { c.calls++ }

var _ = Describe("Session", func() {
	var (
		cfg     *config.Config
		session *sim.Session
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		cfg.Capacity = 100
	})

	JustBeforeEach(func() {
		var err error
		session, err = sim.NewSession(cfg)
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts at the configured initial state with an empty trail", func() {
		Expect(session.State()).To(Equal(dynamo.State{0.1, 0, 0}))
		Expect(session.Trail().Len()).To(Equal(0))
		Expect(session.Time()).To(BeZero())
	})

	It("advances one frame by the configured sub-steps", func() {
		frame, err := session.Frame(0)
		Expect(err).NotTo(HaveOccurred())

		Expect(frame.Start).To(Equal(0))
		Expect(frame.Count).To(Equal(cfg.SubSteps))
		Expect(session.Steps()).To(Equal(cfg.SubSteps))
		Expect(frame.Time).To(BeNumerically("~", 0.05, 1e-12))

		dyn, integ := physics.NewLorenz(), integrators.NewEuler()
		want := dyn.DefaultState()
		for i := 0; i < cfg.SubSteps; i++ {
			want = integ.Step(dyn, want, 0, cfg.Dt)
			pos, col := frame.Positions[i], frame.Colors[i]
			for k := 0; k < 3; k++ {
				Expect(pos[k]).To(BeNumerically("~", want[k]*cfg.Scale, 1e-12))
			}
			Expect(col).To(Equal(trail.ColorOf(want[2])))
		}
		Expect(frame.State).To(Equal(want))
	})

	It("places the tracer at the latest scaled state", func() {
		var frame sim.Frame
		for i := 0; i < 7; i++ {
			frame, _ = session.Frame(float64(i))
		}
		latest, ok := session.Trail().Latest()
		Expect(ok).To(BeTrue())
		Expect(frame.Tracer).To(Equal(latest))
	})

	It("derives rotation from elapsed time only", func() {
		frame, _ := session.Frame(12.5)
		Expect(frame.RotationY).To(BeNumerically("~", 1.25, 1e-12))
		Expect(frame.Elapsed).To(Equal(12.5))

		frame, _ = session.Frame(12.5)
		Expect(frame.Time).To(BeNumerically("~", 0.1, 1e-12))
	})

	It("saturates the trail and keeps ring semantics", func() {
		var frame sim.Frame
		for i := 0; i < 30; i++ {
			frame, _ = session.Frame(0)
		}
		Expect(frame.Count).To(Equal(cfg.Capacity))
		Expect(frame.Head).To(Equal((30 * cfg.SubSteps) % cfg.Capacity))
		Expect(frame.Positions).To(HaveLen(cfg.Capacity))
	})

	It("feeds metrics and observers on every sub-step", func() {
		obs := &countingObserver{}
		session.AddObserver(obs)
		session.AddMetric(metrics.NewStability(100))

		for i := 0; i < 4; i++ {
			_, err := session.Frame(0)
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(obs.calls).To(Equal(4 * cfg.SubSteps))
		Expect(session.Metrics()).To(HaveKeyWithValue("stability", 1.0))
	})

	It("tunes parameters live and restores them on reset", func() {
		Expect(session.SetParam("rho", 14)).To(Succeed())
		Expect(session.Params()["rho"]).To(Equal(14.0))

		err := session.SetParam("omega", 1)
		Expect(errors.Is(err, dynamo.ErrUnknownParam)).To(BeTrue())

		session.Frame(0)
		session.Reset()
		Expect(session.Params()["rho"]).To(Equal(28.0))
		Expect(session.Trail().Len()).To(Equal(0))
		Expect(session.State()).To(Equal(dynamo.State{0.1, 0, 0}))
		Expect(session.Steps()).To(BeZero())
	})

	Context("with the rk4 integrator", func() {
		BeforeEach(func() { cfg.Integrator = "rk4" })

		It("produces a different trajectory than euler", func() {
			frame, err := session.Frame(0)
			Expect(err).NotTo(HaveOccurred())

			euler := integrators.NewEuler()
			dyn := physics.NewLorenz()
			x := dyn.DefaultState()
			for i := 0; i < cfg.SubSteps; i++ {
				x = euler.Step(dyn, x, 0, cfg.Dt)
			}
			Expect(frame.State).NotTo(Equal(x))
		})
	})

	Context("when the state overflows", func() {
		BeforeEach(func() {
			cfg.InitState = config.InitStateConfig{X: 1e200, Y: 1e200, Z: 0}
		})

		It("stops and reports instability without recording the bad point", func() {
			frame, err := session.Frame(0)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, dynamo.ErrUnstable)).To(BeTrue())

			var simErr *dynamo.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Step).To(Equal(0))

			Expect(frame.Count).To(Equal(0))
			Expect(session.State().IsValid()).To(BeTrue())

			_, again := session.Frame(1)
			Expect(again).To(MatchError(err))
		})

		Context("and validation is disabled", func() {
			BeforeEach(func() { cfg.ValidateState = false })

			It("keeps pushing whatever the integrator returns", func() {
				frame, err := session.Frame(0)
				Expect(err).NotTo(HaveOccurred())
				Expect(frame.Count).To(Equal(cfg.SubSteps))
				Expect(math.IsInf(frame.State[2], 0) || math.IsNaN(frame.State[2])).To(BeTrue())
			})
		})
	})

	It("rejects an invalid config", func() {
		bad := config.DefaultConfig()
		bad.SubSteps = 0
		_, err := sim.NewSession(bad)
		Expect(err).To(MatchError(config.ErrInvalid))
	})
})
