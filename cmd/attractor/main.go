package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/attractor/internal/analysis"
	"github.com/san-kum/attractor/internal/config"
	"github.com/san-kum/attractor/internal/dynamo"
	"github.com/san-kum/attractor/internal/gui"
	"github.com/san-kum/attractor/internal/integrators"
	"github.com/san-kum/attractor/internal/metrics"
	"github.com/san-kum/attractor/internal/physics"
	"github.com/san-kum/attractor/internal/sim"
	"github.com/san-kum/attractor/internal/trail"
	"github.com/san-kum/attractor/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// stateBound is the |component| limit the stability metric tolerates; the
// canonical attractor stays well inside it.
const stateBound = 100.0

var (
	configFile string
	preset     string
	verbose    bool
	// Model parameters
	sigma float64
	rho   float64
	beta  float64
	// Integration
	dt         float64
	subSteps   int
	integrator string
	noValidate bool
	// Trail and display
	capacity  int
	frameRate int
	theme     string
	// run
	frames int
	// analyze
	duration float64
	rhoMin   float64
	rhoMax   float64
	rhoSteps int
	// cube
	cubeWindow bool
	// config
	outFile string

	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

// main registers the attractor commands and runs the live terminal view
// when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "attractor",
		Short: "lorenz attractor trail visualizer",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		},
		RunE:          runLive,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.Float64Var(&sigma, "sigma", 10.0, "sigma parameter")
	pf.Float64Var(&rho, "rho", 28.0, "rho parameter")
	pf.Float64Var(&beta, "beta", 8.0/3.0, "beta parameter")
	pf.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	pf.IntVar(&subSteps, "substeps", config.DefaultSubSteps, "integration steps per frame")
	pf.StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator ("+strings.Join(integrators.Names(), ", ")+")")
	pf.BoolVar(&noValidate, "no-validate", false, "keep integrating through non-finite states")
	pf.IntVar(&capacity, "capacity", trail.DefaultCapacity, "trail capacity")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "terminal color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the attractor in the terminal",
		RunE:  runLive,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the attractor in a window",
		RunE:  runGUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "drive frames headless and print a summary",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 600, "number of frames")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "lyapunov exponents, spectrum and poincaré section",
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().Float64Var(&duration, "time", 100.0, "integration time")
	analyzeCmd.Flags().Float64Var(&rhoMin, "rho-min", 0, "sweep start")
	analyzeCmd.Flags().Float64Var(&rhoMax, "rho-max", 0, "sweep end")
	analyzeCmd.Flags().IntVar(&rhoSteps, "rho-steps", 0, "sweep points (0 disables the sweep)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	cubeCmd := &cobra.Command{
		Use:   "cube",
		Short: "spinning cube demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cubeWindow {
				gui.RunCube(frameRate)
				return nil
			}
			_, err := tea.NewProgram(viz.NewCubeModel(theme, frameRate)).Run()
			return err
		},
	}
	cubeCmd.Flags().BoolVar(&cubeWindow, "window", false, "render in a window instead of the terminal")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration",
		RunE:  dumpConfig,
	}
	configCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(liveCmd, guiCmd, runCmd, analyzeCmd, presetsCmd, cubeCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

// resolveConfig layers preset, config file and explicit flags, in that
// order of increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOnto(cfg, configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("sigma") {
		cfg.Params.Sigma = sigma
	}
	if flags.Changed("rho") {
		cfg.Params.Rho = rho
	}
	if flags.Changed("beta") {
		cfg.Params.Beta = beta
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("substeps") {
		cfg.SubSteps = subSteps
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("no-validate") {
		cfg.ValidateState = !noValidate
	}
	if flags.Changed("capacity") {
		cfg.Capacity = capacity
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSession(cmd *cobra.Command) (*sim.Session, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	s, err := sim.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	s.AddMetric(metrics.NewStability(stateBound))
	s.AddMetric(metrics.NewLobeSwitches())

	logger.Debug("session ready",
		"sigma", cfg.Params.Sigma, "rho", cfg.Params.Rho, "beta", cfg.Params.Beta,
		"integrator", cfg.Integrator, "dt", cfg.Dt, "sub_steps", cfg.SubSteps,
		"capacity", cfg.Capacity)
	return s, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(s))
	if _, err := p.Run(); err != nil {
		return err
	}
	if err := s.Err(); err != nil {
		logger.Warn("run stopped", "err", err)
	}
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	if err := gui.Run(s, logger); err != nil {
		logger.Warn("run stopped", "err", err)
	}
	return nil
}

// runHeadless drives frames as a host would, at the configured frame
// rate of simulated wall-clock time.
func runHeadless(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	cfg := s.Config()

	xs := make([]float64, 0, frames)
	zs := make([]float64, 0, frames)
	frameDt := 1.0 / float64(cfg.FPS)

	start := time.Now()
	var frame sim.Frame
	for i := 1; i <= frames; i++ {
		frame, err = s.Frame(float64(i) * frameDt)
		if err != nil {
			var simErr *dynamo.SimulationError
			if errors.As(err, &simErr) {
				logger.Error("simulation diverged", "step", simErr.Step, "time", simErr.Time, "err", simErr.Wrapped)
			}
			return fmt.Errorf("frame %d: %w", i, err)
		}
		xs = append(xs, frame.State[0])
		zs = append(zs, frame.State[2])
	}
	elapsed := time.Since(start)

	if len(xs) > 1 {
		fmt.Println(asciigraph.Plot(xs, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("x per frame")))
		fmt.Println()
		fmt.Println(asciigraph.Plot(zs, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("z per frame")))
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "frames\t%d\n", frames)
	fmt.Fprintf(w, "steps\t%d\n", s.Steps())
	fmt.Fprintf(w, "sim time\t%.3f\n", s.Time())
	fmt.Fprintf(w, "wall time\t%v\n", elapsed)
	st := s.State()
	fmt.Fprintf(w, "final state\t(%.6f, %.6f, %.6f)\n", st[0], st[1], st[2])
	fmt.Fprintf(w, "tracer\t(%.4f, %.4f, %.4f)\n", frame.Tracer[0], frame.Tracer[1], frame.Tracer[2])
	fmt.Fprintf(w, "trail\t%d/%d (head %d)\n", frame.Count, s.Trail().Cap(), frame.Head)
	fmt.Fprintf(w, "rotation\t%.4f rad\n", frame.RotationY)
	for name, v := range s.Metrics() {
		fmt.Fprintf(w, "%s\t%.4f\n", name, v)
	}
	return w.Flush()
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	integ, err := integrators.ByName(cfg.Integrator)
	if err != nil {
		return err
	}
	dyn := physics.NewLorenzWith(cfg.Params)
	x0 := dynamo.State(cfg.GetInitState())

	fmt.Printf("lorenz σ=%.3f ρ=%.3f β=%.4f  %s dt=%.4f  t=%.0f\n\n",
		cfg.Params.Sigma, cfg.Params.Rho, cfg.Params.Beta, cfg.Integrator, cfg.Dt, duration)

	lambda := analysis.LyapunovExponent(dyn, integ, x0, cfg.Dt, duration, 1e-8)
	spectrum := analysis.LyapunovSpectrum(dyn, integ, x0, cfg.Dt, duration, 1e-8)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, eq := range dyn.Equilibria() {
		fmt.Fprintf(w, "equilibrium %d\t(%.4f, %.4f, %.4f)\n", i, eq[0], eq[1], eq[2])
	}
	fmt.Fprintf(w, "largest exponent\t%.4f\n", lambda)
	for i, l := range spectrum {
		fmt.Fprintf(w, "λ%d\t%.4f\n", i+1, l)
	}
	if lambda > 0 {
		fmt.Fprintln(w, "regime\tchaotic")
	} else {
		fmt.Fprintln(w, "regime\tregular")
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()

	n := 1
	for n*2 <= int(duration/cfg.Dt) {
		n *= 2
	}
	xs := make([]float64, 0, n)
	x := x0.Clone()
	for i := 0; i < n; i++ {
		x = integ.Step(dyn, x, float64(i)*cfg.Dt, cfg.Dt)
		if !x.IsValid() {
			return &dynamo.SimulationError{Step: i, Time: float64(i) * cfg.Dt, State: x, Wrapped: dynamo.ErrUnstable}
		}
		xs = append(xs, x[0])
	}
	ps := analysis.PowerSpectrum(xs)
	if len(ps) > 8 {
		fmt.Println(asciigraph.Plot(ps[1:len(ps)/8], asciigraph.Height(12), asciigraph.Width(80), asciigraph.Caption("power spectrum (x)")))
		fmt.Println()
	}
	if freq := analysis.DominantFrequency(xs, cfg.Dt); freq > 0 {
		fmt.Printf("dominant frequency: %.3f (period %.3f)\n\n", freq, 1/freq)
	}

	section := analysis.PoincareSection(dyn, integ, x0, 2, cfg.Params.Rho-1, 0, 1, cfg.Dt, duration)
	fmt.Printf("poincaré section z=%.2f: %d crossings\n", cfg.Params.Rho-1, len(section))
	if plot := analysis.ScatterToASCII(section, 60, 20); plot != "" {
		fmt.Println(plot)
	}

	if rhoSteps > 0 {
		if rhoMax <= rhoMin {
			return fmt.Errorf("rho-max (%v) must exceed rho-min (%v)", rhoMax, rhoMin)
		}
		logger.Debug("sweeping rho", "from", rhoMin, "to", rhoMax, "points", rhoSteps)
		points := analysis.RhoSweep(cfg.Params, analysis.Linspace(rhoMin, rhoMax, rhoSteps), func() dynamo.Integrator {
			i, _ := integrators.ByName(cfg.Integrator)
			return i
		}, x0, cfg.Dt, duration)
		lambdas := make([]float64, len(points))
		for i, p := range points {
			lambdas[i] = p.Lambda
		}
		if len(lambdas) > 1 {
			fmt.Println(asciigraph.Plot(lambdas, asciigraph.Height(10), asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("largest exponent, ρ %.1f..%.1f", rhoMin, rhoMax))))
		}
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tRHO\tINTEGRATOR\tDT\tSUB_STEPS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%.4f\t%d\n", name, p.Params.Rho, p.Integrator, p.Dt, p.SubSteps)
	}
	return w.Flush()
}

func dumpConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if outFile != "" {
		if err := config.Save(outFile, cfg); err != nil {
			return err
		}
		logger.Info("config written", "path", outFile)
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
