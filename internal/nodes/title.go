package nodes

import (
	"github.com/vovakirdan/millennium-run/internal/assets"
	"github.com/vovakirdan/millennium-run/internal/audio"
	"github.com/vovakirdan/millennium-run/internal/core"
	"github.com/vovakirdan/millennium-run/internal/event"
	"github.com/vovakirdan/millennium-run/internal/locale"
	"github.com/vovakirdan/millennium-run/internal/scene"
	"github.com/vovakirdan/millennium-run/internal/shared"
)

// titleAssets are preloaded by the intro.
type titleAssets struct {
	art          []string
	artHandle    *assets.Handle
	selectClip   *audio.Clip
	selectHandle *assets.Handle
}

func (a *titleAssets) close() {
	closeAll(a.artHandle, a.selectHandle)
}

// TitleItem is an entry of the title menu.
type TitleItem int

const (
	ItemStart TitleItem = iota
	ItemQuit
)

// Title is the main menu. Quitting asks for confirmation and then pops the
// last scene, which ends the game.
type Title struct {
	scene.Base

	env     *env
	res     *titleAssets
	cursor  TitleItem
	confirm bool
	yes     bool
	items   [2]core.Rect
	mouseX  int
	mouseY  int
}

// NewTitle creates a title scene that loads its assets on Enter.
func NewTitle() *Title {
	return &Title{}
}

func newTitleWith(res *titleAssets) *Title {
	return &Title{res: res}
}

func (*Title) Name() string { return TitleName }

// Cursor returns the highlighted menu entry.
func (t *Title) Cursor() TitleItem { return t.cursor }

// Confirming reports whether the quit prompt is open.
func (t *Title) Confirming() bool { return t.confirm }

func (t *Title) Enter(s *shared.Store) error {
	e, err := lookup(s)
	if err != nil {
		return err
	}
	t.env = e
	if t.res != nil {
		return nil
	}

	res := &titleAssets{}
	h, text, err := load[string](e.cache, titlePath, assets.TextCodec{})
	if err != nil {
		return err
	}
	res.art, res.artHandle = splitLines(text), h

	h, clip, err := load[*audio.Clip](e.cache, selectSound, audio.WavDecoder{})
	if err != nil {
		res.close()
		return err
	}
	res.selectClip, res.selectHandle = clip, h
	t.res = res
	return nil
}

func (t *Title) Exit(*shared.Store) error {
	if t.res != nil {
		t.res.close()
		t.res = nil
	}
	return nil
}

func (t *Title) click() {
	t.env.player.Play(t.res.selectClip, t.env.user.Volumes.Effect)
}

func (t *Title) HandleEvent(s *shared.Store, e event.Logic) error {
	switch ev := e.(type) {
	case event.KeyPressed:
		t.key(s, ev.Key)
	case event.CursorMoved:
		t.mouseX, t.mouseY = ev.X, ev.Y
		for i, r := range t.items {
			if !t.confirm && r.Contains(ev.X, ev.Y) && t.cursor != TitleItem(i) {
				t.cursor = TitleItem(i)
				t.click()
			}
		}
	case event.MousePressed:
		if ev.Button == core.ButtonLeft && !t.confirm && t.items[t.cursor].Contains(t.mouseX, t.mouseY) {
			t.choose(s)
		}
	}
	return nil
}

func (t *Title) key(s *shared.Store, k core.Key) {
	controls := t.env.user.Controls

	if t.confirm {
		switch k {
		case controls.Left, controls.Right, core.ArrowLeft, core.ArrowRight:
			t.yes = !t.yes
			t.click()
		case core.KeyEnter:
			t.confirm = false
			if t.yes {
				t.env.logger.Info("quit from title")
				scene.Request(s, scene.Pop{})
			}
		case core.KeyEscape:
			t.confirm = false
		}
		return
	}

	if step := menuStep(controls, k); step != 0 {
		t.cursor = TitleItem(core.Clamp(int(t.cursor)+step, int(ItemStart), int(ItemQuit)))
		t.click()
		return
	}
	switch k {
	case core.KeyEnter:
		t.choose(s)
	case core.KeyEscape:
		t.confirm, t.yes = true, false
	}
}

func (t *Title) choose(s *shared.Store) {
	switch t.cursor {
	case ItemStart:
		scene.Request(s, scene.Change{Scene: NewInGame()})
	case ItemQuit:
		t.confirm, t.yes = true, false
	}
}

func (t *Title) Draw(*shared.Store) error {
	p := t.env.printer()
	t.env.present(func(scr *core.Screen) {
		drawArt(scr, t.res.art, max(1, scr.Height()/4), core.ColorBrightCyan)

		labels := [2]string{p.Sprintf(locale.StartMenu), p.Sprintf(locale.ExitMenu)}
		y := scr.Height()/2 + 2
		for i, label := range labels {
			text := "  " + label + "  "
			c := core.ColorGray
			if TitleItem(i) == t.cursor {
				text = "> " + label + " <"
				c = core.ColorBrightYellow
			}
			w := core.TextWidth(text)
			t.items[i] = core.NewRect((scr.Width()-w)/2, y+2*i, w, 1)
			scr.DrawTextColor(t.items[i].X, t.items[i].Y, text, c)
		}

		if t.confirm {
			drawConfirm(scr, p.Sprintf(locale.ExitMessage), p.Sprintf(locale.Exit), p.Sprintf(locale.NoExit), t.yes)
		}
	})
	return nil
}

func drawConfirm(scr *core.Screen, question, yes, no string, onYes bool) {
	w := max(core.TextWidth(question)+6, 24)
	box := scr.Bounds().Centered(w, 6)
	scr.DrawRect(box, ' ')
	scr.DrawBox(box, core.ColorWhite)
	scr.DrawTextCentered(box.Y+2, question, core.ColorWhite)

	yesColor, noColor := core.ColorGray, core.ColorBrightYellow
	if onYes {
		yesColor, noColor = noColor, yesColor
	}
	mid := box.X + box.W/2
	scr.DrawTextColor(mid-2-core.TextWidth(yes), box.Y+4, yes, yesColor)
	scr.DrawTextColor(mid+2, box.Y+4, no, noColor)
}
