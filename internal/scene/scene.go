// Package scene holds time-driven transforms shared by the renderers.
package scene

import "math"

// Spinner turns an object at fixed angular rates, in radians per second,
// about its x and y axes.
type Spinner struct {
	RateX, RateY float64
}

// NewSpinner returns the cube demo rates: 0.7 rad/s about x, 1.0 rad/s about y.
func NewSpinner() Spinner { return Spinner{RateX: 0.7, RateY: 1.0} }

// Rotation returns the x and y angles after elapsed seconds.
func (s Spinner) Rotation(elapsed float64) (rx, ry float64) {
	return s.RateX * elapsed, s.RateY * elapsed
}

// Turntable spins a scene about y only, as the attractor view does.
func Turntable(speed, elapsed float64) float64 { return speed * elapsed }

// Cube demo framing.
const (
	CubeSize    = 1.0
	CubeCameraZ = 3.0
	CubeFOV     = 75.0 // degrees, vertical
	CubeColor   = "#4fc3f7"
)

// Attractor view framing.
const (
	AttractorCameraZ = 40.0
	AttractorFOV     = 60.0 // degrees, vertical
)

type Point [3]float64

// RotateY turns p by a radians about the y axis.
func RotateY(p Point, a float64) Point {
	c, s := math.Cos(a), math.Sin(a)
	return Point{p[0]*c + p[2]*s, p[1], -p[0]*s + p[2]*c}
}

// RotateX turns p by a radians about the x axis.
func RotateX(p Point, a float64) Point {
	c, s := math.Cos(a), math.Sin(a)
	return Point{p[0], p[1]*c - p[2]*s, p[1]*s + p[2]*c}
}

// CubeEdges returns the 12 edges of an origin-centred cube of the given
// size, rotated about x by rx and then about y by ry.
func CubeEdges(size, rx, ry float64) [12][2]Point {
	s := size / 2
	v := [8]Point{{-s, -s, -s}, {s, -s, -s}, {s, s, -s}, {-s, s, -s}, {-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s}}
	for i := range v {
		v[i] = RotateY(RotateX(v[i], rx), ry)
	}
	ei := [12][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	var edges [12][2]Point
	for i, e := range ei {
		edges[i] = [2]Point{v[e[0]], v[e[1]]}
	}
	return edges
}
