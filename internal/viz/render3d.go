package viz

import (
	"math"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/attractor/internal/scene"
	"github.com/san-kum/attractor/internal/trail"
)

type Vec3 struct {
	X, Y, Z float64
}

func FromTrail(p trail.Vec3) Vec3 { return Vec3{p[0], p[1], p[2]} }

// Vec3 methods.
func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Camera sits on the +z axis looking at the origin. Spin is the scene's
// own rotation about y; RotX/RotY/RotZ are user orbit offsets on top.
type Camera struct {
	Position         Vec3
	FOV, Near        float64
	RotX, RotY, RotZ float64
	Spin             float64
	Zoom             float64
}

// NewCamera matches the window renderer: eye at (0, 0, 40), 60° vertical
// field of view.
func NewCamera() *Camera {
	return NewCameraAt(scene.AttractorCameraZ, scene.AttractorFOV)
}

// NewCameraAt places the eye at (0, 0, z) with a vertical field of view
// in degrees.
func NewCameraAt(z, fovDeg float64) *Camera {
	return &Camera{Position: Vec3{0, 0, z}, FOV: fovDeg * math.Pi / 180, Near: 0.1, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint applies the scene spin, then the orbit offsets.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cs, ss := math.Cos(c.Spin), math.Sin(c.Spin)
	p.X, p.Z = p.X*cs+p.Z*ss, -p.X*ss+p.Z*cs
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts 3D world coordinates to 2D screen coordinates.
// Returns x, y, depth, and visibility.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	depth := c.Position.Z - rot.Z
	if depth <= c.Near {
		return 0, 0, 0, false
	}
	f := 1 / math.Tan(c.FOV/2)
	half := float64(sh) / 2
	sx := int((rot.X-c.Position.X)*f/depth*half) + sw/2
	sy := int(-(rot.Y-c.Position.Y)*f/depth*half) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End Vec3
	Color      lipgloss.Color
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe { return &Wireframe{Edges: make([]Edge, 0)} }

func (w *Wireframe) AddEdge(s, e Vec3, c lipgloss.Color) { w.Edges = append(w.Edges, Edge{s, e, c}) }
func (w *Wireframe) AddPoint(p Vec3, c lipgloss.Color)   { w.Edges = append(w.Edges, Edge{p, p, c}) }
func (w *Wireframe) Clear()                              { w.Edges = w.Edges[:0] }

type ProjectedEdge struct {
	X1, Y1, X2, Y2 int
	Depth          float64
	Color          lipgloss.Color
}

// Render3D draws the wireframe to the canvas using a simple painter's
// algorithm. The canvas is addressed in Braille sub-pixels.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.Width*2, c.Height*4
	proj := make([]ProjectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if v1 || v2 {
			proj = append(proj, ProjectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Color})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].Depth < proj[j].Depth })
	for _, e := range proj {
		if e.X1 == e.X2 && e.Y1 == e.Y2 {
			c.SetColor(e.X1, e.Y1, e.Color)
		} else {
			c.DrawLineColor(e.X1, e.Y1, e.X2, e.Y2, e.Color)
		}
	}
}

func CreateCubeWireframe(size float64, color lipgloss.Color) *Wireframe {
	w, s := NewWireframe(), size/2
	v := []Vec3{{-s, -s, -s}, {s, -s, -s}, {s, s, -s}, {-s, s, -s}, {-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s}}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]], color)
	}
	return w
}

func CreateAxesWireframe(l float64, color lipgloss.Color) *Wireframe {
	w, o := NewWireframe(), Vec3{0, 0, 0}
	w.AddEdge(o, Vec3{l, 0, 0}, color)
	w.AddEdge(o, Vec3{0, l, 0}, color)
	w.AddEdge(o, Vec3{0, 0, l}, color)
	return w
}
