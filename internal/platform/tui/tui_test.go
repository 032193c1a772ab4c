package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/millennium-run/internal/app"
	"github.com/vovakirdan/millennium-run/internal/core"
	"github.com/vovakirdan/millennium-run/internal/event"
	"github.com/vovakirdan/millennium-run/internal/fatal"
	"github.com/vovakirdan/millennium-run/internal/lifecycle"
	"github.com/vovakirdan/millennium-run/internal/render"
	"github.com/vovakirdan/millennium-run/internal/settings"
)

func newTestModel(grid func(int, int) (int, int)) (Model, *app.OS) {
	o := &app.OS{Bus: event.NewBus(64), Flag: &lifecycle.Flag{}}
	opts := Options{Controls: settings.Default().Controls}
	if grid != nil {
		opts.Grid = func(_ event.SetDisplay, cols, rows int) (int, int) { return grid(cols, rows) }
	}
	return NewModel(o, opts), o
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want core.Key
		ok   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ArrowUp, true},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.KeyEnter, true},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.KeyEscape, true},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.KeySpace, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'W'}}, core.KeyW, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'7'}}, core.Numpad7, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}, Alt: true}, core.KeyUnknown, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}, core.KeyUnknown, false},
		{tea.KeyMsg{Type: tea.KeyCtrlA}, core.KeyUnknown, false},
	}
	for _, tt := range tests {
		got, ok := TranslateKey(tt.msg)
		assert.Equal(t, tt.want, got, tt.msg.String())
		assert.Equal(t, tt.ok, ok, tt.msg.String())
	}
}

func TestKeyMapFollowsControls(t *testing.T) {
	c := settings.Default().Controls
	c.Up = core.KeyI
	km := NewKeyMap(c)

	assert.Contains(t, km.Up.Keys(), "i")
	assert.Contains(t, km.Up.Keys(), "up")
	assert.Equal(t, "I/↑", km.Up.Help().Key)
	assert.Len(t, km.FullHelp(), 3)
}

func TestRenderScreenSkipsWideRuneTails(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "런ab", core.ColorBrightCyan)
	s.DrawTextColor(0, 1, "xy", core.ColorDarkGray)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "런ab")
	assert.NotContains(t, out, "\x00")
	assert.Contains(t, lines[1], "xy")
}

func TestKeyIsPressedThenReleased(t *testing.T) {
	m, o := newTestModel(nil)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	assert.Nil(t, cmd)

	got := o.Bus.DrainLogic(nil)
	assert.Equal(t, []event.Logic{
		event.KeyPressed{Key: core.KeyS},
		event.KeyReleased{Key: core.KeyS},
	}, got)
}

func TestCtrlCClosesRuntime(t *testing.T) {
	m, o := newTestModel(nil)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))
	assert.False(t, o.Flag.Running())
	assert.Empty(t, m.View())

	assert.Equal(t, []event.Render{event.ApplicationTerminate{}}, o.Bus.DrainRender(nil))
}

func TestMouse(t *testing.T) {
	m, o := newTestModel(nil)
	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
	_, _ = update(t, m, tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})

	assert.Equal(t, []event.Logic{
		event.CursorMoved{X: 3, Y: 4},
		event.MousePressed{Button: core.ButtonLeft},
		event.MouseReleased{Button: core.ButtonLeft},
		event.MouseWheel{V: -1},
	}, o.Bus.DrainLogic(nil))
}

func TestResizeGoesToBothLoops(t *testing.T) {
	m, o := newTestModel(func(cols, rows int) (int, int) { return min(cols, 80), min(rows, 20) })
	_, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	want := event.WindowResized{Width: 80, Height: 20}
	assert.Equal(t, []event.Logic{want}, o.Bus.DrainLogic(nil))
	assert.Equal(t, []event.Render{want}, o.Bus.DrainRender(nil))

	m, o = newTestModel(nil)
	_, _ = update(t, m, tea.WindowSizeMsg{Width: 50, Height: 10})
	assert.Equal(t, []event.Logic{event.WindowResized{Width: 50, Height: 9}}, o.Bus.DrainLogic(nil), "one row is kept for help")
}

func TestFocus(t *testing.T) {
	m, o := newTestModel(nil)
	m, _ = update(t, m, tea.BlurMsg{})
	_, _ = update(t, m, tea.FocusMsg{})
	assert.Equal(t, []event.Logic{event.ApplicationPaused{}, event.ApplicationResumed{}}, o.Bus.DrainLogic(nil))
}

func TestTickMarksEventBatch(t *testing.T) {
	m, o := newTestModel(nil)
	o.Bus.SendCommand(event.SetTitle{Title: "밀레니엄 런"})

	now := time.Unix(100, 0)
	m, cmd := update(t, m, TickMsg(now))
	require.NotNil(t, cmd)
	assert.False(t, isQuit(cmd))
	assert.Equal(t, "밀레니엄 런", m.Title())
	assert.Equal(t, []event.Logic{event.NextMainEvents{At: now}, event.MainEventsCleared{}}, o.Bus.DrainLogic(nil))
}

func TestTickAppliesDisplayChange(t *testing.T) {
	o := &app.OS{Bus: event.NewBus(64), Flag: &lifecycle.Flag{}}
	m := NewModel(o, Options{
		Controls: settings.Default().Controls,
		Display:  event.SetDisplay{Resolution: settings.W1280H720, Mode: settings.Windowed},
		Grid: func(d event.SetDisplay, cols, rows int) (int, int) {
			return app.GridSize(d.Resolution, d.Mode, cols, rows)
		},
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 200, Height: 61})
	assert.Equal(t, []event.Logic{event.WindowResized{Width: 160, Height: 45}}, o.Bus.DrainLogic(nil))
	o.Bus.DrainRender(nil)

	full := event.SetDisplay{Resolution: settings.W1280H720, Mode: settings.FullScreen}
	o.Bus.SendCommand(full)
	m, cmd := update(t, m, TickMsg(time.Unix(1, 0)))
	require.NotNil(t, cmd)
	assert.Equal(t, full, m.Display())
	assert.Contains(t, o.Bus.DrainLogic(nil), event.Logic(event.WindowResized{Width: 200, Height: 60}), "full screen takes the terminal")
	assert.Equal(t, []event.Render{event.WindowResized{Width: 200, Height: 60}}, o.Bus.DrainRender(nil))

	// The same display again changes nothing.
	o.Bus.SendCommand(full)
	_, _ = update(t, m, TickMsg(time.Unix(2, 0)))
	assert.Empty(t, o.Bus.DrainRender(nil))
}

func TestTickStopsOnFatal(t *testing.T) {
	m, o := newTestModel(nil)
	fe := fatal.New("Unexpected error", "boom")
	fatal.Raise(o.Bus, o.Flag, fe)

	m, cmd := update(t, m, TickMsg(time.Now()))
	assert.True(t, isQuit(cmd))
	assert.Same(t, fe, m.Fatal())
}

func TestTickStopsOnTerminate(t *testing.T) {
	m, o := newTestModel(nil)
	o.Bus.SendCommand(event.Terminate{})
	m, cmd := update(t, m, TickMsg(time.Now()))
	assert.True(t, isQuit(cmd))
	assert.Nil(t, m.Fatal())
	assert.False(t, o.Flag.Running())
}

func TestViewShowsPresentedFrame(t *testing.T) {
	var sent []tea.Msg
	s := NewSurface(func(msg tea.Msg) { sent = append(sent, msg) })
	require.NoError(t, s.Configure(10, 2))

	scr := core.NewScreen(10, 2)
	scr.DrawText(0, 0, "hello")
	require.NoError(t, s.Present(&render.Frame{Screen: scr, Seq: 1}))
	require.Len(t, sent, 1)

	m, _ := newTestModel(nil)
	assert.Empty(t, m.View(), "nothing before the first frame")
	m, _ = update(t, m, sent[0])
	view := m.View()
	assert.True(t, strings.HasPrefix(view, "hello"))
	assert.Contains(t, view, "select")
}

func TestSurfaceWithoutProgramIsLost(t *testing.T) {
	s := NewSurface(nil)
	assert.ErrorIs(t, s.Present(&render.Frame{Screen: core.NewScreen(1, 1)}), render.ErrSurfaceLost)
}

func TestDialogWithoutTerminalWritesBox(t *testing.T) {
	var buf bytes.Buffer
	d := &Dialog{Fallback: &buf}
	require.NoError(t, d.Show("Asset verification failed", "images/logo.txt: digest mismatch"))
	out := buf.String()
	assert.Contains(t, out, "Asset verification failed")
	assert.Contains(t, out, "digest mismatch")
}

func TestDialogModelQuitsOnKey(t *testing.T) {
	m := dialogModel{title: "t", body: "b", width: 40}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, isQuit(cmd))
	assert.Contains(t, m.View(), "Press any key")
}

func TestBrowserFiltersByClass(t *testing.T) {
	rows := []AssetRow{
		{Path: "images/logo.txt", Class: "Static", Size: 10, Status: "ok"},
		{Path: "save.dat", Class: "Optional", Size: -1, Status: "absent"},
	}
	m := NewBrowserModel(rows, 100, 30)
	assert.Len(t, m.Visible(), 2)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(BrowserModel)
	assert.Equal(t, rows[:1], m.Visible())
	assert.Contains(t, m.View(), "ASSETS - Static (1)")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.(BrowserModel).Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(BrowserModel)
	assert.Equal(t, rows[1:], m.Visible())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.True(t, isQuit(cmd))
	assert.Empty(t, next.View())
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "2.0 KiB", formatSize(2048))
	assert.Equal(t, "1.5 MiB", formatSize(3<<19))
}
