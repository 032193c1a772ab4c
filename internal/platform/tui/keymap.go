package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/millennium-run/internal/core"
	"github.com/vovakirdan/millennium-run/internal/settings"
)

// KeyMap holds the bindings shown in the help footer. The movement
// bindings follow the user's controls.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Back    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Back, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Confirm, k.Back},
		{k.Help, k.Quit},
	}
}

// bindingKey returns the Bubble Tea key string for a control key.
func bindingKey(k core.Key) string {
	if r := k.Rune(); r != 0 {
		return string(r)
	}
	return ""
}

func movement(control core.Key, arrow, glyph, desc string) key.Binding {
	keys, label := []string{arrow}, glyph
	if s := bindingKey(control); s != "" {
		keys = append(keys, s)
		label = strings.ToUpper(s) + "/" + glyph
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// NewKeyMap builds the key map for the given controls.
func NewKeyMap(c settings.Controls) KeyMap {
	return KeyMap{
		Up:      movement(c.Up, "up", "↑", "up"),
		Down:    movement(c.Down, "down", "↓", "down"),
		Left:    movement(c.Left, "left", "←", "left"),
		Right:   movement(c.Right, "right", "→", "right"),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// TranslateKey maps a terminal key to the game's key. Keys the game does
// not know report false.
func TranslateKey(msg tea.KeyMsg) (core.Key, bool) {
	var k core.Key
	switch msg.Type {
	case tea.KeyUp:
		k = core.ArrowUp
	case tea.KeyDown:
		k = core.ArrowDown
	case tea.KeyLeft:
		k = core.ArrowLeft
	case tea.KeyRight:
		k = core.ArrowRight
	case tea.KeyEnter:
		k = core.KeyEnter
	case tea.KeyEsc:
		k = core.KeyEscape
	case tea.KeySpace:
		k = core.KeySpace
	case tea.KeyBackspace:
		k = core.KeyBackspace
	case tea.KeyTab:
		k = core.KeyTab
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			k = core.KeyFromRune(msg.Runes[0])
		}
	}
	return k, k != core.KeyUnknown
}
