package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/attractor/internal/scene"
)

// CubeModel spins a wireframe cube about x and y at the spinner's rates.
type CubeModel struct {
	canvas   *Canvas
	camera   *Camera
	cube     *Wireframe
	spinner  scene.Spinner
	theme    Theme
	fps      int
	elapsed  float64
	lastTick time.Time
}

func NewCubeModel(theme string, fps int) CubeModel {
	if fps < 1 {
		fps = 60
	}
	return CubeModel{
		canvas:  NewCanvas(width, height),
		camera:  NewCameraAt(scene.CubeCameraZ, scene.CubeFOV),
		cube:    CreateCubeWireframe(scene.CubeSize, lipgloss.Color(scene.CubeColor)),
		spinner: scene.NewSpinner(),
		theme:   GetTheme(theme),
		fps:     fps,
	}
}

func (m CubeModel) Init() tea.Cmd { return m.tick() }

func (m CubeModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m CubeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "t":
			m.theme = NextTheme(m.theme.Name)
		}
	case TickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			m.elapsed += now.Sub(m.lastTick).Seconds()
		}
		m.lastTick = now
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

func (m *CubeModel) draw() {
	m.canvas.Clear()
	m.camera.RotX, m.camera.RotY = m.spinner.Rotation(m.elapsed)
	Render3D(m.canvas, m.cube, m.camera)
}

func (m CubeModel) View() string {
	caption := lipgloss.NewStyle().Foreground(m.theme.Muted).
		Render(fmt.Sprintf("t=%.1fs  rx=%.2f ry=%.2f  T:Theme Q:Quit", m.elapsed, m.camera.RotX, m.camera.RotY))
	return canvasStyle.Render(GradientText("CUBE", m.theme.Primary, m.theme.Secondary) + "\n" + m.canvas.Render() + caption)
}
