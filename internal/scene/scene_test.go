package scene

import (
	"math"
	"testing"
)

func TestSpinnerRotation(t *testing.T) {
	tests := []struct {
		elapsed float64
		rx, ry  float64
	}{
		{0, 0, 0},
		{1, 0.7, 1.0},
		{10, 7, 10},
	}
	s := NewSpinner()
	for _, tt := range tests {
		rx, ry := s.Rotation(tt.elapsed)
		if math.Abs(rx-tt.rx) > 1e-12 || math.Abs(ry-tt.ry) > 1e-12 {
			t.Errorf("Rotation(%v) = (%v, %v), want (%v, %v)", tt.elapsed, rx, ry, tt.rx, tt.ry)
		}
	}
}

func TestTurntable(t *testing.T) {
	if got := Turntable(0.1, 12.5); math.Abs(got-1.25) > 1e-12 {
		t.Errorf("Turntable(0.1, 12.5) = %v, want 1.25", got)
	}
}

func TestRotateY(t *testing.T) {
	p := RotateY(Point{1, 2, 0}, math.Pi/2)
	want := Point{0, 2, -1}
	for i := range p {
		if math.Abs(p[i]-want[i]) > 1e-12 {
			t.Fatalf("RotateY = %v, want %v", p, want)
		}
	}
}

func TestRotateX(t *testing.T) {
	p := RotateX(Point{3, 1, 0}, math.Pi/2)
	want := Point{3, 0, 1}
	for i := range p {
		if math.Abs(p[i]-want[i]) > 1e-12 {
			t.Fatalf("RotateX = %v, want %v", p, want)
		}
	}
}

func TestCubeEdgesPreserveLength(t *testing.T) {
	for _, rot := range [][2]float64{{0, 0}, {0.7, 1.0}, {2.1, -3.3}} {
		for _, e := range CubeEdges(CubeSize, rot[0], rot[1]) {
			dx, dy, dz := e[1][0]-e[0][0], e[1][1]-e[0][1], e[1][2]-e[0][2]
			if l := math.Sqrt(dx*dx + dy*dy + dz*dz); math.Abs(l-CubeSize) > 1e-12 {
				t.Errorf("rotation %v: edge length %f, want %f", rot, l, CubeSize)
			}
		}
	}
}
