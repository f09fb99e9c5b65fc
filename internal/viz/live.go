package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/attractor/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300
)

type TickMsg time.Time

// Model drives a session from the terminal: every tick runs one
// Session.Frame and redraws the trail.
type Model struct {
	session       *sim.Session
	canvas        *Canvas
	camera        *Camera
	theme         Theme
	frame         sim.Frame
	fps           int
	elapsed       float64
	lastTick      time.Time
	ticks         int
	running       bool
	showHelp      bool
	showAxes      bool
	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
	xHistory      []float64
	zHistory      []float64
	notice        string
	err           error
}

// NewModel wraps session. Frame rate and theme come from the session's
// configuration.
func NewModel(session *sim.Session) Model {
	cfg := session.Config()
	params := session.Params()
	initialParams := make(map[string]float64, len(params))
	keys := make([]string, 0, len(params))
	for k, v := range params {
		initialParams[k] = v
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return Model{
		session:       session,
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(),
		theme:         GetTheme(cfg.Theme),
		fps:           cfg.FPS,
		running:       true,
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
		xHistory:      make([]float64, 0, historyCapacity),
		zHistory:      make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.err == nil {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "a":
			m.showAxes = !m.showAxes
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		}
		m.draw()
	case TickMsg:
		now := time.Time(msg)
		if m.running && m.err == nil {
			if !m.lastTick.IsZero() {
				m.elapsed += now.Sub(m.lastTick).Seconds()
			}
			m.advance()
		}
		m.lastTick = now
		m.ticks++
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

// advance runs one host frame. Rotation only sees time spent running.
func (m *Model) advance() {
	frame, err := m.session.Frame(m.elapsed)
	m.frame = frame
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.xHistory = pushBounded(m.xHistory, frame.State[0])
	m.zHistory = pushBounded(m.zHistory, frame.State[2])
}

func pushBounded(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	if err := m.session.SetParam(key, m.params[key]*factor); err != nil {
		m.notice = err.Error()
		return
	}
	m.params = m.session.Params()
	m.notice = ""
}

// reset restores the initial state and parameters.
func (m *Model) reset() {
	m.session.Reset()
	m.params = m.session.Params()
	m.frame = sim.Frame{}
	m.xHistory = m.xHistory[:0]
	m.zHistory = m.zHistory[:0]
	m.err = nil
	m.notice = ""
	m.running = true
}

// draw renders the active trail range, colored per record, and the tracer.
func (m *Model) draw() {
	m.canvas.Clear()
	m.camera.Spin = m.frame.RotationY

	wf := NewWireframe()
	if m.showAxes {
		axes := CreateAxesWireframe(10, m.theme.Muted)
		wf.Edges = append(wf.Edges, axes.Edges...)
	}

	f := m.frame
	if f.Count > 0 {
		prev := FromTrail(f.Positions[f.Start])
		for i := f.Start + 1; i < f.Start+f.Count; i++ {
			cur := FromTrail(f.Positions[i])
			wf.AddEdge(prev, cur, lipgloss.Color(f.Colors[i].Clamped().Hex()))
			prev = cur
		}
	}
	Render3D(m.canvas, wf, m.camera)

	if f.Count > 0 {
		x, y, _, ok := m.camera.Project(FromTrail(f.Tracer), m.canvas.Width*2, m.canvas.Height*4)
		if ok {
			m.canvas.Dot(x, y, 1, m.theme.Accent)
		}
	}
}

func (m Model) status() string {
	th := m.theme
	switch {
	case m.err != nil:
		return lipgloss.NewStyle().Bold(true).Foreground(th.Error).Render("UNSTABLE") + "\n" +
			lipgloss.NewStyle().Foreground(th.Muted).Width(40).Render(m.err.Error())
	case !m.running:
		return lipgloss.NewStyle().Bold(true).Foreground(th.Warning).Render("PAUSED")
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(th.Secondary).Render(AnimatedSpinner(m.ticks) + " RUNNING")
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	th := m.theme
	label := labelStyle.Foreground(th.Muted)
	value := lipgloss.NewStyle().Foreground(th.Text)

	var s strings.Builder
	s.WriteString(GradientText("LORENZ ATTRACTOR", th.Primary, th.Secondary) + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.zHistory) > 1 {
		chart := asciigraph.Plot(m.zHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("z(t)"))
		s.WriteString(graphStyle.Foreground(th.Secondary).Render(chart) + "\n")
	}
	s.WriteString(label.Render("x wings") + SparklineChart(m.xHistory, 30) + "\n\n")

	state := m.frame.State
	if len(state) < 3 {
		state = m.session.State()
	}
	tr := m.session.Trail()
	fill := float64(tr.Len()) / float64(tr.Cap())

	s.WriteString(label.Render("Time") + value.Render(fmt.Sprintf("%.2f", m.session.Time())) + "\n")
	s.WriteString(label.Render("Steps") + value.Render(fmt.Sprintf("%d", m.session.Steps())) + "\n")
	s.WriteString(label.Render("State") + value.Render(fmt.Sprintf("(%.2f, %.2f, %.2f)", state[0], state[1], state[2])) + "\n")
	s.WriteString(label.Render("Trail") + ProgressBar(fill, 12) + value.Render(fmt.Sprintf(" %d/%d", tr.Len(), tr.Cap())) + "\n")
	s.WriteString(label.Render("Spin") + value.Render(fmt.Sprintf("%.2f rad", m.frame.RotationY)) + "\n")

	metrics := m.session.Metrics()
	if len(metrics) > 0 {
		names := make([]string, 0, len(metrics))
		for k := range metrics {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			s.WriteString(label.Render(k) + value.Render(fmt.Sprintf("%.2f", metrics[k])) + "\n")
		}
	}

	s.WriteString("\n" + Separator(36, th.Border) + "\n")
	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(th.Text).Render("PARAMETERS") + "\n")
	active := lipgloss.NewStyle().Foreground(th.Primary).Bold(true)
	for i, k := range m.paramKeys {
		val, initial := m.params[k], m.initialParams[k]
		barWidth, ratio := 10, 0.0
		if initial != 0 {
			ratio = val / (2.0 * initial)
		}
		ratio = max(0, min(ratio, 1))
		filled := int(ratio * float64(barWidth))
		bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
		line := fmt.Sprintf("%-6s %s %.3f", k, bar, val)
		if i == m.selected {
			s.WriteString(active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + lipgloss.NewStyle().Foreground(th.Muted).Render(line) + "\n")
		}
	}
	if m.notice != "" {
		s.WriteString(lipgloss.NewStyle().Foreground(th.Warning).Render(m.notice) + "\n")
	}

	s.WriteString(helpStyle.Foreground(th.Muted).Render("SP:Pause R:Reset Q:Quit\nT:Theme  A:Axes  ?:Help\nTab ↑↓:Tune  XYZ:Orbit"))

	statsView := statsStyle.BorderForeground(th.Border).Render(s.String())
	canvasView := canvasStyle.Render(m.canvas.Render())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset simulation         ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  x/y/z    - Orbit (shift reverses)   ║
║  +/-      - Zoom                     ║
║  A        - Toggle axes              ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
