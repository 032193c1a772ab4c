package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/millennium-run/internal/render"
)

// FrameMsg carries a presented frame into the program.
type FrameMsg struct {
	Frame *render.Frame
}

// Surface is the render target of the terminal. Presented frames are handed
// to the Bubble Tea program, which draws them on its next view.
type Surface struct {
	mu     sync.Mutex
	send   func(tea.Msg)
	width  int
	height int
}

// NewSurface creates a surface that delivers frames through send.
func NewSurface(send func(tea.Msg)) *Surface {
	return &Surface{send: send}
}

// Configure records the grid size frames are expected to have.
func (s *Surface) Configure(width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
	return nil
}

// Size returns the configured grid size.
func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Present hands f to the program. A surface without a program is lost.
func (s *Surface) Present(f *render.Frame) error {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send == nil {
		return render.ErrSurfaceLost
	}
	send(FrameMsg{Frame: f})
	return nil
}
