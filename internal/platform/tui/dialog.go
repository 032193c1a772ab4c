package tui

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrDeviceInit is returned when stdin or stdout is not a terminal.
var ErrDeviceInit = errors.New("tui: terminal not available")

const dialogWidth = 64

var (
	dialogBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2)
	dialogTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dialogHint  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// IsTerminal reports whether both stdin and stdout are terminals.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// CheckTerminal returns ErrDeviceInit when the game cannot take over the
// terminal.
func CheckTerminal() error {
	if !IsTerminal() {
		return ErrDeviceInit
	}
	return nil
}

// TerminalSize returns the size of stdout in cells.
func TerminalSize() (cols, rows int, ok bool) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// RenderDialog draws the modal box for title and body, at most width cells
// wide.
func RenderDialog(title, body string, width int) string {
	if width <= 0 || width > dialogWidth {
		width = dialogWidth
	}
	inner := max(width-dialogBox.GetHorizontalFrameSize(), 10)
	content := lipgloss.JoinVertical(lipgloss.Left,
		dialogTitle.Render(title),
		"",
		lipgloss.NewStyle().Width(inner).Render(body),
	)
	return dialogBox.Render(content)
}

// Dialog shows fatal errors. On a terminal it runs a small program that
// waits for a key; otherwise it writes the box to Fallback.
type Dialog struct {
	Interactive bool
	In          io.Reader
	Out         io.Writer
	Fallback    io.Writer
}

// NewDialog creates a dialog on the process terminal.
func NewDialog() *Dialog {
	return &Dialog{
		Interactive: IsTerminal(),
		In:          os.Stdin,
		Out:         os.Stdout,
		Fallback:    os.Stderr,
	}
}

// Show blocks until the user dismisses the dialog.
func (d *Dialog) Show(title, body string) error {
	width := dialogWidth
	if cols, _, ok := TerminalSize(); ok {
		width = min(width, cols-2)
	}
	if !d.Interactive {
		_, err := fmt.Fprintln(d.Fallback, RenderDialog(title, body, width))
		return err
	}

	p := tea.NewProgram(dialogModel{title: title, body: body, width: width},
		tea.WithInput(d.In), tea.WithOutput(d.Out))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(d.Fallback, RenderDialog(title, body, width))
		return err
	}
	return nil
}

type dialogModel struct {
	title string
	body  string
	width int
}

func (m dialogModel) Init() tea.Cmd { return nil }

func (m dialogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = min(dialogWidth, msg.Width-2)
	}
	return m, nil
}

func (m dialogModel) View() string {
	return RenderDialog(m.title, m.body, m.width) + "\n" + dialogHint.Render("Press any key to exit.") + "\n"
}
