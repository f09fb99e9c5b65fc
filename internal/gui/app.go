package gui

import (
	"fmt"
	"log/slog"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/attractor/internal/scene"
	"github.com/san-kum/attractor/internal/sim"
	"github.com/san-kum/attractor/internal/trail"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColError   = rl.NewColor(255, 80, 80, 255)
)

const (
	screenW = 1280
	screenH = 720
)

// App renders a session in a raylib window. Frame is called once per
// window frame with the seconds spent running.
type App struct {
	Session   *sim.Session
	Camera    rl.Camera3D
	Frame     sim.Frame
	Running   bool
	Elapsed   float64
	ParamKeys []string
	ParamSel  int
	Err       error

	lastTime float64
	log      *slog.Logger
}

func initWindow(title string, fps int) {
	rl.InitWindow(screenW, screenH, title)
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func NewApp(session *sim.Session, logger *slog.Logger) *App {
	keys := make([]string, 0, 3)
	for k := range session.Params() {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return &App{
		Session: session,
		Camera: rl.NewCamera3D(
			rl.NewVector3(0, 0, scene.AttractorCameraZ),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			scene.AttractorFOV,
			rl.CameraPerspective,
		),
		Running:   true,
		ParamKeys: keys,
		log:       logger,
	}
}

// Run opens the window and blocks until it is closed. The returned error
// is the session's divergence, if any occurred.
func Run(session *sim.Session, logger *slog.Logger) error {
	initWindow("attractor", session.Config().FPS)
	defer rl.CloseWindow()

	app := NewApp(session, logger)
	app.RunLoop()
	return app.Err
}

func (a *App) RunLoop() {
	a.lastTime = rl.GetTime()
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	now := rl.GetTime()
	dt := now - a.lastTime
	a.lastTime = now

	if rl.IsKeyPressed(rl.KeySpace) && a.Err == nil {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Session.Reset()
		a.Frame = sim.Frame{}
		a.Err = nil
		a.Running = true
		a.log.Debug("session reset")
	}
	if len(a.ParamKeys) > 0 {
		if rl.IsKeyPressed(rl.KeyTab) {
			a.ParamSel = (a.ParamSel + 1) % len(a.ParamKeys)
		}
		key := a.ParamKeys[a.ParamSel]
		factor := 1.0
		if rl.IsKeyPressed(rl.KeyUp) {
			factor = 1.05
		}
		if rl.IsKeyPressed(rl.KeyDown) {
			factor = 0.95
		}
		if factor != 1 {
			if err := a.Session.SetParam(key, a.Session.Params()[key]*factor); err != nil {
				a.log.Warn("tune rejected", "param", key, "err", err)
			}
		}
	}

	if !a.Running {
		return
	}
	a.Elapsed += dt
	frame, err := a.Session.Frame(a.Elapsed)
	a.Frame = frame
	if err != nil {
		a.Err = err
		a.Running = false
		a.log.Error("simulation diverged", "err", err)
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(a.Camera)
	a.RenderTrail()
	rl.EndMode3D()

	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	drawText("attractor", 30, 30, 24, ColSelect)
	drawText(":: lorenz", 170, 34, 16, ColText)

	status, col := "RUNNING", ColSelect
	switch {
	case a.Err != nil:
		status, col = "UNSTABLE", ColError
		drawText(a.Err.Error(), 30, 640, 14, ColError)
	case !a.Running:
		status, col = "PAUSED", ColTextDim
	}
	drawText(status, 1150, 30, 16, col)

	st := a.Frame.State
	if len(st) == 3 {
		drawText(fmt.Sprintf("t=%.2f  x=%.2f y=%.2f z=%.2f", a.Frame.Time, st[0], st[1], st[2]), 30, 70, 14, ColText)
	}
	drawText(fmt.Sprintf("trail %d/%d", a.Frame.Count, a.Session.Trail().Cap()), 30, 90, 14, ColText)

	params := a.Session.Params()
	y := 130
	for i, k := range a.ParamKeys {
		line := fmt.Sprintf("  %-6s %.3f", k, params[k])
		c := ColText
		if i == a.ParamSel {
			line, c = fmt.Sprintf("> %-6s %.3f", k, params[k]), ColSelect
		}
		drawText(line, 30, y, 16, c)
		y += 22
	}

	drawText("[SPACE] PAUSE  [R] RESET  [TAB] PARAM  [UP/DOWN] TUNE  [Q] QUIT", 660, 680, 14, ColTextDim)
	drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, 680, 14, ColTextDim)
}

func drawText(text string, x, y, size int, color rl.Color) {
	rl.DrawText(text, int32(x), int32(y), int32(size), color)
}

func toVector(p scene.Point) rl.Vector3 {
	return rl.NewVector3(float32(p[0]), float32(p[1]), float32(p[2]))
}

func toColor(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255)
}

func spun(p trail.Vec3, angle float64) rl.Vector3 {
	return toVector(scene.RotateY(scene.Point(p), angle))
}
