package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Browser layout constants
const (
	minWidthForSidebar = 80
	sidebarWidth       = 20
)

// AssetRow is one line of the asset browser.
type AssetRow struct {
	Path   string
	Class  string
	Size   int64
	Status string
}

// BrowserKeyMap defines the key bindings for the asset browser.
type BrowserKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextClass key.Binding
	PrevClass key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextClass, k.PrevClass, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextClass, k.PrevClass, k.Quit},
	}
}

// DefaultBrowserKeyMap returns default key bindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextClass: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next class"),
		),
		PrevClass: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev class"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// browserClasses are the sidebar filters. The empty filter shows everything.
var browserClasses = []string{"", "Static", "Dynamic", "Optional"}

func classLabel(c string) string {
	if c == "" {
		return "All"
	}
	return c
}

// BrowserModel lists the manifest entries of an asset directory.
type BrowserModel struct {
	rows        []AssetRow
	classCursor int
	table       table.Model
	help        help.Model
	keys        BrowserKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewBrowserModel creates a browser over rows.
func NewBrowserModel(rows []AssetRow, width, height int) BrowserModel {
	m := BrowserModel{
		rows:        rows,
		keys:        DefaultBrowserKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *BrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Path", Width: 28},
		{Title: "Class", Width: 9},
		{Title: "Size", Width: 9},
		{Title: "Status", Width: 12},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if extra := tableWidth - 66; extra > 0 {
		columns[0].Width += min(extra, 24)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Visible returns the rows matching the selected class.
func (m BrowserModel) Visible() []AssetRow {
	class := browserClasses[m.classCursor]
	if class == "" {
		return m.rows
	}
	var out []AssetRow
	for _, r := range m.rows {
		if r.Class == class {
			out = append(out, r)
		}
	}
	return out
}

func (m *BrowserModel) updateTableRows() {
	visible := m.Visible()
	rows := make([]table.Row, len(visible))
	for i, r := range visible {
		size := "-"
		if r.Size >= 0 {
			size = formatSize(r.Size)
		}
		rows[i] = table.Row{r.Path, r.Class, size, r.Status}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}

func (m BrowserModel) Init() tea.Cmd {
	return nil
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextClass):
			m.classCursor = (m.classCursor + 1) % len(browserClasses)
			m.updateTableRows()
			return m, nil

		case key.Matches(msg, m.keys.PrevClass):
			m.classCursor = (m.classCursor + len(browserClasses) - 1) % len(browserClasses)
			m.updateTableRows()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	title := fmt.Sprintf("ASSETS - %s (%d)", classLabel(browserClasses[m.classCursor]), len(m.Visible()))
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableView := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableView))
	} else {
		b.WriteString(tableView)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m BrowserModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Classes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")
	for i, c := range browserClasses {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.classCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + classLabel(c)))
		sidebar.WriteString("\n")
	}
	return sidebarStyle.Render(sidebar.String())
}

func (m BrowserModel) renderTableContent() string {
	if len(m.Visible()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No assets in this class.")
	}
	return m.table.View()
}

func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunBrowser shows the asset browser until the user quits.
func RunBrowser(rows []AssetRow, width, height int) error {
	p := tea.NewProgram(
		NewBrowserModel(rows, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
