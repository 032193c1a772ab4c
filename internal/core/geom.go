// Package core holds the drawing primitives shared by scenes and the
// terminal platform: a colored cell grid, rectangles and key codes. It does
// not import Bubble Tea so scenes stay testable without a terminal.
package core

import "cmp"

// Rect is an axis-aligned area in cells.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center cell of r.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inset shrinks r by n cells on every side. The result never has a
// negative size.
func (r Rect) Inset(n int) Rect {
	return Rect{
		X: r.X + n,
		Y: r.Y + n,
		W: max(r.W-2*n, 0),
		H: max(r.H-2*n, 0),
	}
}

// Centered returns a w×h rectangle centered inside r.
func (r Rect) Centered(w, h int) Rect {
	return Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}

// Clamp restricts v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
