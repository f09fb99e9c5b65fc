package trail

// Vec3 is a point in scene space.
type Vec3 [3]float64

// DefaultCapacity is the number of points kept by the attractor trail.
const DefaultCapacity = 8000

// Buffer is a fixed-capacity ring of positions and colors.
// It is not safe for concurrent use.
type Buffer struct {
	positions []Vec3
	colors    []Color
	head      int
	filled    int
	scale     float64
	colorMap  ColorMap
}

type Option func(*Buffer)

// WithScale sets the uniform factor applied by PushState.
func WithScale(s float64) Option { return func(b *Buffer) { b.scale = s } }

func WithColorMap(m ColorMap) Option { return func(b *Buffer) { b.colorMap = m } }

// New allocates a buffer holding capacity points. A non-positive
// capacity is a programming error and panics.
func New(capacity int, opts ...Option) *Buffer {
	if capacity <= 0 {
		panic("trail: capacity must be positive")
	}
	b := &Buffer{
		positions: make([]Vec3, capacity),
		colors:    make([]Color, capacity),
		scale:     1,
		colorMap:  DefaultColorMap,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Push stores pos and the color derived from key at the head slot, then
// advances the head.
func (b *Buffer) Push(pos Vec3, key float64) {
	b.positions[b.head] = pos
	b.colors[b.head] = b.colorMap.At(key)
	b.head = (b.head + 1) % len(b.positions)
	if b.filled < len(b.positions) {
		b.filled++
	}
}

// PushState scales a raw (x, y, z) state into scene space and pushes it,
// keying the color on the unscaled z.
func (b *Buffer) PushState(x, y, z float64) {
	b.Push(b.Project(x, y, z), z)
}

// Project returns the scene-space position of a raw state.
func (b *Buffer) Project(x, y, z float64) Vec3 {
	return Vec3{x * b.scale, y * b.scale, z * b.scale}
}

// ActiveRange is the slice of the backing arrays a renderer should draw.
// start is always 0 and length never exceeds Cap.
func (b *Buffer) ActiveRange() (start, length int) { return 0, b.filled }

func (b *Buffer) Len() int        { return b.filled }
func (b *Buffer) Cap() int        { return len(b.positions) }
func (b *Buffer) Head() int       { return b.head }
func (b *Buffer) Saturated() bool { return b.filled == len(b.positions) }

// Positions returns the backing array. Callers must treat it as read-only;
// it is rewritten in place by later pushes.
func (b *Buffer) Positions() []Vec3 { return b.positions }

// Colors returns the backing color array, parallel to Positions.
func (b *Buffer) Colors() []Color { return b.colors }

// At returns the record stored in slot i of the backing arrays.
func (b *Buffer) At(i int) (Vec3, Color) { return b.positions[i], b.colors[i] }

// Latest returns the most recently pushed position.
func (b *Buffer) Latest() (Vec3, bool) {
	if b.filled == 0 {
		return Vec3{}, false
	}
	i := (b.head - 1 + len(b.positions)) % len(b.positions)
	return b.positions[i], true
}

// Ordered returns copies of the active records oldest first.
func (b *Buffer) Ordered() ([]Vec3, []Color) {
	pos := make([]Vec3, 0, b.filled)
	col := make([]Color, 0, b.filled)
	start := 0
	if b.Saturated() {
		start = b.head
	}
	for k := 0; k < b.filled; k++ {
		i := (start + k) % len(b.positions)
		pos = append(pos, b.positions[i])
		col = append(col, b.colors[i])
	}
	return pos, col
}

// Reset empties the ring without releasing the backing arrays.
func (b *Buffer) Reset() {
	clear(b.positions)
	clear(b.colors)
	b.head, b.filled = 0, 0
}
