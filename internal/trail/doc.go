// Package trail holds the fixed-capacity ring of trajectory points that
// feeds the renderers.
//
// A [Buffer] owns two parallel backing arrays, positions and colors,
// allocated once at construction. Pushes write at the head cursor and
// advance it modulo the capacity; once the ring is full every push
// overwrites the oldest slot. Renderers draw the active range
// [0, Len()) straight out of the backing arrays, so the seam at the
// head cursor shows up as one stray segment once the ring has wrapped.
// Hosts that want a seamless line can use [Buffer.Ordered].
//
// Colors are derived from the raw z coordinate through a [ColorMap]:
// z is normalised against fixed bounds, clamped, mapped to a hue and
// converted from HSL to RGB.
package trail
