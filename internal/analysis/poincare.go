package analysis

import (
	"strings"

	"github.com/san-kum/attractor/internal/dynamo"
)

type Point2D struct{ X, Y float64 }

// PoincareSection records (recordX, recordY) each time x[crossIdx] crosses
// threshold upwards, linearly interpolated to the crossing.
func PoincareSection(
	dyn dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	crossIdx int,
	threshold float64,
	recordX, recordY int,
	dt, duration float64,
) []Point2D {
	if crossIdx >= len(x0) || recordX >= len(x0) || recordY >= len(x0) {
		return nil
	}

	points := make([]Point2D, 0)
	x := x0.Clone()
	t := 0.0

	for t < duration {
		next := integ.Step(dyn, x, t, dt)
		t += dt

		prevVal, currVal := x[crossIdx], next[crossIdx]
		if prevVal < threshold && currVal >= threshold {
			frac := (threshold - prevVal) / (currVal - prevVal)
			points = append(points, Point2D{
				X: x[recordX] + frac*(next[recordX]-x[recordX]),
				Y: x[recordY] + frac*(next[recordY]-x[recordY]),
			})
		}
		x = next
	}

	return points
}

// ScatterToASCII plots points on a width×height character grid with 10%
// padding and draws the axes when they fall inside the view.
func ScatterToASCII(points []Point2D, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			canvas[row][col] = '─'
		}
	}

	for _, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
