// Package viz renders the attractor in the terminal with Bubble Tea.
//
//   - [Model]: live view driving a [sim.Session] once per tick
//   - [CubeModel]: spinning wireframe cube
//   - [Canvas]: Braille pixel canvas with per-cell color
//   - [Camera] and [Render3D]: perspective projection of wireframes
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	T     - Cycle color themes
//	Tab   - Select parameter, Up/Down to tune it
//	x/y/z - Orbit the camera (shift reverses)
//	+/-   - Zoom
//	?     - Show help overlay
package viz
