package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/millennium-run/internal/app"
	"github.com/vovakirdan/millennium-run/internal/core"
	"github.com/vovakirdan/millennium-run/internal/event"
	"github.com/vovakirdan/millennium-run/internal/fatal"
	"github.com/vovakirdan/millennium-run/internal/render"
	"github.com/vovakirdan/millennium-run/internal/settings"
)

// helpHeight is the number of rows kept for the help footer.
const helpHeight = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Options configures the terminal program.
type Options struct {
	TickRate int
	// AltScreen keeps the alternate screen in Windowed mode too.
	AltScreen bool
	Mouse     bool
	Controls  settings.Controls
	// Display is the resolution and screen mode at start.
	Display event.SetDisplay

	// Grid maps the terminal size below the help footer to the logical grid
	// for a display. Nil uses the whole area.
	Grid func(d event.SetDisplay, cols, rows int) (int, int)

	// ProgramOptions are appended to the Bubble Tea options, for tests and
	// redirected input.
	ProgramOptions []tea.ProgramOption
}

// Model is the Bubble Tea model that acts as the OS event pump.
type Model struct {
	os       *app.OS
	keys     KeyMap
	help     help.Model
	tickRate int
	grid     func(d event.SetDisplay, cols, rows int) (int, int)
	display  event.SetDisplay
	keepAlt  bool
	alt      bool

	frame   *render.Frame
	width   int
	height  int
	mouseX  int
	mouseY  int
	button  core.Button
	fatal   *fatal.Error
	title   string
	stopped bool
}

// NewModel creates the pump for o.
func NewModel(o *app.OS, opts Options) Model {
	grid := opts.Grid
	if grid == nil {
		grid = func(_ event.SetDisplay, cols, rows int) (int, int) { return cols, rows }
	}
	return Model{
		os:       o,
		keys:     NewKeyMap(opts.Controls),
		help:     help.New(),
		tickRate: opts.TickRate,
		grid:     grid,
		display:  opts.Display,
		keepAlt:  opts.AltScreen,
		alt:      useAltScreen(opts.AltScreen, opts.Display.Mode),
		mouseX:   -1,
		mouseY:   -1,
	}
}

// useAltScreen reports whether mode takes the alternate screen.
func useAltScreen(keep bool, mode settings.ScreenMode) bool {
	return keep || mode != settings.Windowed
}

// Fatal returns the error that stopped the program, if any.
func (m Model) Fatal() *fatal.Error { return m.fatal }

// Title returns the last window title set by the game.
func (m Model) Title() string { return m.title }

// Display returns the current resolution and screen mode.
func (m Model) Display() event.SetDisplay { return m.display }

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.handleResize(msg)

	case tea.FocusMsg:
		m.os.Send(event.ApplicationResumed{})

	case tea.BlurMsg:
		m.os.Send(event.ApplicationPaused{})

	case FrameMsg:
		m.frame = msg.Frame

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey forwards a key as a press followed by a release, since
// terminals do not report key-up.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.os.Close()
		m.stopped = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if k, ok := TranslateKey(msg); ok {
		m.os.Send(event.KeyPressed{Key: k})
		m.os.Send(event.KeyReleased{Key: k})
	}
	return m, nil
}

func mouseButton(b tea.MouseButton) core.Button {
	switch b {
	case tea.MouseButtonLeft:
		return core.ButtonLeft
	case tea.MouseButtonMiddle:
		return core.ButtonMiddle
	case tea.MouseButtonRight:
		return core.ButtonRight
	}
	return core.ButtonNone
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.X != m.mouseX || msg.Y != m.mouseY {
		m.mouseX, m.mouseY = msg.X, msg.Y
		m.os.Send(event.CursorMoved{X: msg.X, Y: msg.Y})
	}

	if tea.MouseEvent(msg).IsWheel() {
		var h, v int
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			v = 1
		case tea.MouseButtonWheelDown:
			v = -1
		case tea.MouseButtonWheelLeft:
			h = -1
		case tea.MouseButtonWheelRight:
			h = 1
		}
		m.os.Send(event.MouseWheel{H: h, V: v})
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if b := mouseButton(msg.Button); b != core.ButtonNone {
			m.button = b
			m.os.Send(event.MousePressed{Button: b})
		}
	case tea.MouseActionRelease:
		// Some terminals report releases without the button.
		b := mouseButton(msg.Button)
		if b == core.ButtonNone {
			b = m.button
		}
		if b != core.ButtonNone {
			m.os.Send(event.MouseReleased{Button: b})
		}
		m.button = core.ButtonNone
	}
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.help.Width = msg.Width
	m.sendSize()
}

func (m *Model) sendSize() {
	cols, rows := m.grid(m.display, m.width, max(m.height-helpHeight, 1))
	m.os.Send(event.WindowResized{Width: cols, Height: rows})
}

// applyDisplay switches to d. The grid is recomputed for the current
// terminal size and the alternate screen follows the screen mode.
func (m *Model) applyDisplay(d event.SetDisplay) tea.Cmd {
	if d == m.display {
		return nil
	}
	m.display = d
	if m.width > 0 && m.height > 0 {
		m.sendSize()
	}

	alt := useAltScreen(m.keepAlt, d.Mode)
	if alt == m.alt {
		return nil
	}
	m.alt = alt
	if alt {
		return tea.EnterAltScreen
	}
	return tea.ExitAltScreen
}

// handleTick polls the runtime and marks the end of an event batch.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	st := m.os.Poll()
	if st.Fatal != nil {
		m.fatal = st.Fatal
		m.stopped = true
		return m, tea.Quit
	}
	if st.Quit {
		m.stopped = true
		return m, tea.Quit
	}

	m.os.Send(event.NextMainEvents{At: now})
	m.os.Send(event.MainEventsCleared{})

	cmds := []tea.Cmd{tickCmd(m.tickRate)}
	if st.Title != "" && st.Title != m.title {
		m.title = st.Title
		cmds = append(cmds, tea.SetWindowTitle(st.Title))
	}
	if st.Display != nil {
		if cmd := m.applyDisplay(*st.Display); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

// View renders the last presented frame and the help footer.
func (m Model) View() string {
	if m.stopped || m.frame == nil {
		return ""
	}
	return RenderScreen(m.frame.Screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Program runs the pump and owns the surface the render loop draws to.
type Program struct {
	tea     *tea.Program
	surface *Surface
}

// NewProgram creates the terminal program for o.
func NewProgram(o *app.OS, opts Options) *Program {
	popts := []tea.ProgramOption{tea.WithReportFocus()}
	if useAltScreen(opts.AltScreen, opts.Display.Mode) {
		popts = append(popts, tea.WithAltScreen())
	}
	if opts.Mouse {
		popts = append(popts, tea.WithMouseAllMotion())
	}
	popts = append(popts, opts.ProgramOptions...)

	p := &Program{tea: tea.NewProgram(NewModel(o, opts), popts...)}
	p.surface = NewSurface(p.tea.Send)
	return p
}

// Surface returns the render target.
func (p *Program) Surface() *Surface { return p.surface }

// Run blocks until the program quits. It returns the fatal error that
// stopped the game, if any, and the program's own error.
func (p *Program) Run() (*fatal.Error, error) {
	final, err := p.tea.Run()
	if m, ok := final.(Model); ok {
		return m.Fatal(), err
	}
	return nil, err
}

// Quit stops the program from another goroutine.
func (p *Program) Quit() { p.tea.Quit() }
