package core

// Color is a foreground color for a cell. The platform maps it to a
// terminal palette entry.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
	ColorBlack
)

// Fade returns the color c would show at the given opacity in [0, 1].
// Terminals have no alpha, so fading steps through the gray ramp.
func (c Color) Fade(alpha float64) Color {
	switch {
	case alpha <= 0:
		return ColorBlack
	case alpha < 0.34:
		return ColorDarkGray
	case alpha < 0.67:
		return ColorGray
	default:
		return c
	}
}

// Fade recolors every cell to its faded color.
func (s *Screen) Fade(alpha float64) {
	if alpha >= 1 {
		return
	}
	for i := range s.cells {
		s.cells[i].Color = s.cells[i].Color.Fade(alpha)
	}
}
