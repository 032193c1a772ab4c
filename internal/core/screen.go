package core

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell is one character position of a frame.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Screen is a cell grid that scenes draw into. The render loop owns the
// presented copy, so a Screen is never shared between goroutines: scenes
// draw into their own and submit a Clone.
type Screen struct {
	width  int
	height int
	cells  []Cell // row-major
}

// NewScreen creates a blank screen of the given size. Negative sizes are
// treated as zero.
func NewScreen(width, height int) *Screen {
	s := &Screen{width: max(width, 0), height: max(height, 0)}
	s.cells = make([]Cell, s.width*s.height)
	s.Clear()
	return s
}

// Width returns the screen width in cells.
func (s *Screen) Width() int { return s.width }

// Height returns the screen height in cells.
func (s *Screen) Height() int { return s.height }

// Bounds returns the screen area as a Rect at the origin.
func (s *Screen) Bounds() Rect { return NewRect(0, 0, s.width, s.height) }

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, false
	}
	return y*s.width + x, true
}

// Resize changes the dimensions, keeping the overlapping top-left content.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == s.width && height == s.height {
		return
	}
	old := s.cells
	oldW := s.width
	copyW, copyH := min(s.width, width), min(s.height, height)

	s.width, s.height = width, height
	s.cells = make([]Cell, width*height)
	s.Clear()
	for y := range copyH {
		copy(s.cells[y*width:y*width+copyW], old[y*oldW:y*oldW+copyW])
	}
}

// Clear fills the screen with blank cells.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
}

// Fill sets every cell to r in the default color.
func (s *Screen) Fill(r rune) {
	for i := range s.cells {
		s.cells[i] = Cell{Rune: r}
	}
}

// Set places r at (x, y) in the default color. Out-of-bounds writes are
// ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetCell(x, y, Cell{Rune: r})
}

// SetCell places c at (x, y). Out-of-bounds writes are ignored.
func (s *Screen) SetCell(x, y int, c Cell) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = c
	}
}

// Get returns the rune at (x, y), or a space when out of bounds.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y), or a blank cell when out of bounds.
func (s *Screen) GetCell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blank
}

// DrawText writes text from (x, y) in the default color, clipped to the
// screen.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColor(x, y, text, ColorDefault)
}

// DrawTextColor writes text from (x, y) in color c. Wide runes take two
// cells; the second is left blank.
func (s *Screen) DrawTextColor(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetCell(x, y, Cell{Rune: r, Color: c})
		w := runewidth.RuneWidth(r)
		if w == 2 {
			s.SetCell(x+1, y, Cell{Rune: 0, Color: c})
		}
		x += max(w, 1)
	}
}

// TextWidth returns the number of cells text occupies.
func TextWidth(text string) int {
	return runewidth.StringWidth(text)
}

// DrawTextCentered draws text centered horizontally on row y.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	s.DrawTextColor((s.width-TextWidth(text))/2, y, text, c)
}

// DrawRect fills r with the given rune.
func (s *Screen) DrawRect(r Rect, fill rune) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.Set(x, y, fill)
		}
	}
}

// DrawBox outlines r with box-drawing characters in color c.
func (s *Screen) DrawBox(r Rect, c Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	right, bottom := r.Right()-1, r.Bottom()-1
	s.SetCell(r.X, r.Y, Cell{'┌', c})
	s.SetCell(right, r.Y, Cell{'┐', c})
	s.SetCell(r.X, bottom, Cell{'└', c})
	s.SetCell(right, bottom, Cell{'┘', c})
	for x := r.X + 1; x < right; x++ {
		s.SetCell(x, r.Y, Cell{'─', c})
		s.SetCell(x, bottom, Cell{'─', c})
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.SetCell(r.X, y, Cell{'│', c})
		s.SetCell(right, y, Cell{'│', c})
	}
}

// Blit copies src onto s with its top-left corner at (x, y). Spaces in
// src are transparent.
func (s *Screen) Blit(x, y int, src *Screen) {
	for sy := range src.height {
		for sx := range src.width {
			c := src.cells[sy*src.width+sx]
			if c.Rune == ' ' {
				continue
			}
			s.SetCell(x+sx, y+sy, c)
		}
	}
}

// Clone returns an independent copy.
func (s *Screen) Clone() *Screen {
	c := &Screen{width: s.width, height: s.height, cells: make([]Cell, len(s.cells))}
	copy(c.cells, s.cells)
	return c
}

// Row returns row y as a string. Out-of-range rows are all spaces.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y*s.width : (y+1)*s.width] {
		if c.Rune != 0 {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}

// String renders the screen without color, rows joined by newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)
	for y := range s.height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}
