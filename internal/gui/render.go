package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/attractor/internal/scene"
)

// RenderTrail draws the frame's active range as one segment per
// consecutive pair, colored by the newer record, then the tracer.
func (a *App) RenderTrail() {
	f := a.Frame
	if f.Count == 0 {
		return
	}
	prev := spun(f.Positions[f.Start], f.RotationY)
	for i := f.Start + 1; i < f.Start+f.Count; i++ {
		cur := spun(f.Positions[i], f.RotationY)
		rl.DrawLine3D(prev, cur, toColor(f.Colors[i]))
		prev = cur
	}
	rl.DrawSphere(spun(f.Tracer, f.RotationY), 0.3, rl.White)
}

// RunCube opens a window with a wireframe cube spinning at the
// spinner's rates.
func RunCube(fps int) {
	initWindow("cube", fps)
	defer rl.CloseWindow()

	camera := rl.NewCamera3D(
		rl.NewVector3(0, 0, scene.CubeCameraZ),
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 1, 0),
		scene.CubeFOV,
		rl.CameraPerspective,
	)
	base, err := colorful.Hex(scene.CubeColor)
	if err != nil {
		base = colorful.Color{R: 1, G: 1, B: 1}
	}
	color := toColor(base)
	spinner := scene.NewSpinner()

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		rx, ry := spinner.Rotation(rl.GetTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(0x20, 0x21, 0x24, 255))
		rl.BeginMode3D(camera)
		for _, e := range scene.CubeEdges(scene.CubeSize, rx, ry) {
			rl.DrawLine3D(toVector(e[0]), toVector(e[1]), color)
		}
		rl.EndMode3D()
		drawText("cube", 30, 30, 24, ColSelect)
		rl.EndDrawing()
	}
}
