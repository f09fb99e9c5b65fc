package viz

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/attractor/internal/config"
	"github.com/san-kum/attractor/internal/sim"
)

func newTestModel(t *testing.T, cfg *config.Config) Model {
	t.Helper()
	session, err := sim.NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return NewModel(session)
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTickAdvancesSession(t *testing.T) {
	m := newTestModel(t, config.DefaultConfig())
	t0 := time.Unix(1000, 0)

	m = send(m, TickMsg(t0))
	m = send(m, TickMsg(t0.Add(time.Second)))

	if got := m.session.Steps(); got != 2*config.DefaultSubSteps {
		t.Errorf("expected %d steps after two ticks, got %d", 2*config.DefaultSubSteps, got)
	}
	if math.Abs(m.elapsed-1) > 1e-9 {
		t.Errorf("elapsed = %f, want 1", m.elapsed)
	}
	if math.Abs(m.frame.RotationY-config.DefaultRotationSpeed) > 1e-9 {
		t.Errorf("rotation = %f, want %f", m.frame.RotationY, config.DefaultRotationSpeed)
	}
	if m.frame.Count != 2*config.DefaultSubSteps {
		t.Errorf("frame should carry %d trail records, got %d", 2*config.DefaultSubSteps, m.frame.Count)
	}
	if len(m.zHistory) != 2 {
		t.Errorf("expected one z sample per tick, got %d", len(m.zHistory))
	}
}

func TestModelPause(t *testing.T) {
	m := newTestModel(t, config.DefaultConfig())
	t0 := time.Unix(1000, 0)

	m = send(m, TickMsg(t0))
	m = send(m, key(" "))
	m = send(m, TickMsg(t0.Add(5*time.Second)))

	if m.running {
		t.Fatal("space should pause")
	}
	if got := m.session.Steps(); got != config.DefaultSubSteps {
		t.Errorf("paused model should not step, got %d steps", got)
	}

	m = send(m, key(" "))
	m = send(m, TickMsg(t0.Add(6*time.Second)))
	if math.Abs(m.elapsed-1) > 1e-9 {
		t.Errorf("paused time should not count towards rotation, elapsed=%f", m.elapsed)
	}
}

func TestModelTuneAndReset(t *testing.T) {
	m := newTestModel(t, config.DefaultConfig())
	if len(m.paramKeys) != 3 || m.paramKeys[0] != "beta" {
		t.Fatalf("unexpected param keys %v", m.paramKeys)
	}

	m = send(m, key("tab"))
	m = send(m, key("up"))
	if got := m.session.Params()["rho"]; math.Abs(got-28*1.05) > 1e-9 {
		t.Errorf("rho = %f, want %f", got, 28*1.05)
	}

	m = send(m, TickMsg(time.Unix(1000, 0)))
	m = send(m, key("r"))
	if got := m.session.Params()["rho"]; got != 28 {
		t.Errorf("reset should restore rho, got %f", got)
	}
	if m.session.Steps() != 0 || m.frame.Count != 0 {
		t.Error("reset should clear the run")
	}
}

func TestModelUnstable(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.InitState = config.InitStateConfig{X: 1e200, Y: 1e200}
	m := newTestModel(t, cfg)

	m = send(m, TickMsg(time.Unix(1000, 0)))
	if m.err == nil || m.running {
		t.Fatal("divergence should stop the model")
	}
	m = send(m, key(" "))
	if m.running {
		t.Error("space should not resume a diverged run")
	}
	if !strings.Contains(m.View(), "UNSTABLE") {
		t.Error("view should report the divergence")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, config.DefaultConfig())
	t0 := time.Unix(1000, 0)
	for i := 0; i < 10; i++ {
		m = send(m, TickMsg(t0.Add(time.Duration(i)*time.Second/60)))
	}

	view := m.View()
	for _, want := range []string{"PARAMETERS", "rho", "sigma", "beta", "RUNNING"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = send(m, key("t"))
	if m.theme.Name != ThemeRetroGreen.Name {
		t.Errorf("t should cycle theme, got %s", m.theme.Name)
	}
	m = send(m, key("?"))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("? should show help")
	}
}

func TestCubeModelSpins(t *testing.T) {
	m := NewCubeModel("ocean", 60)
	t0 := time.Unix(1000, 0)

	next, _ := m.Update(TickMsg(t0))
	next, _ = next.Update(TickMsg(t0.Add(time.Second)))
	m = next.(CubeModel)

	if math.Abs(m.camera.RotX-0.7) > 1e-9 || math.Abs(m.camera.RotY-1.0) > 1e-9 {
		t.Errorf("after 1s rotation = (%f, %f), want (0.7, 1.0)", m.camera.RotX, m.camera.RotY)
	}
	if !strings.Contains(m.View(), "rx=0.70 ry=1.00") {
		t.Error("cube view should report the rotation")
	}
}
