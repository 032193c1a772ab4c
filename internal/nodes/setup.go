package nodes

import (
	"github.com/vovakirdan/millennium-run/internal/assets"
	"github.com/vovakirdan/millennium-run/internal/audio"
	"github.com/vovakirdan/millennium-run/internal/core"
	"github.com/vovakirdan/millennium-run/internal/event"
	"github.com/vovakirdan/millennium-run/internal/locale"
	"github.com/vovakirdan/millennium-run/internal/scene"
	"github.com/vovakirdan/millennium-run/internal/settings"
	"github.com/vovakirdan/millennium-run/internal/shared"
)

// language is a button of the setup screen.
type language struct {
	locale settings.Locale
	label  string
	rect   core.Rect
}

// Setup asks for the interface language on the first run. The choice is
// written to the settings file and the intro starts.
//
// A mouse selection needs the button to be pressed and released over the
// same button.
type Setup struct {
	scene.Base

	env     *env
	buttons []language
	cursor  int
	pressed int
	mouseX  int
	mouseY  int

	click       *audio.Clip
	clickHandle *assets.Handle
}

// NewSetup creates the scene.
func NewSetup() *Setup {
	return &Setup{
		buttons: []language{{locale: settings.Korean, label: "한국어"}},
		pressed: -1,
	}
}

func (*Setup) Name() string { return SetupName }

func (st *Setup) Enter(s *shared.Store) error {
	e, err := lookup(s)
	if err != nil {
		return err
	}
	st.env = e
	e.command(event.SetTitle{Title: locale.WindowTitle(settings.Unknown)})

	h, clip, err := load[*audio.Clip](e.cache, selectSound, audio.WavDecoder{})
	if err != nil {
		return err
	}
	st.click, st.clickHandle = clip, h
	return nil
}

func (st *Setup) Exit(*shared.Store) error {
	closeAll(st.clickHandle)
	st.clickHandle = nil
	return nil
}

func (st *Setup) hit() int {
	for i, b := range st.buttons {
		if b.rect.Contains(st.mouseX, st.mouseY) {
			return i
		}
	}
	return -1
}

func (st *Setup) HandleEvent(s *shared.Store, e event.Logic) error {
	switch ev := e.(type) {
	case event.KeyPressed:
		if step := menuStep(st.env.user.Controls, ev.Key); step != 0 {
			st.cursor = core.Clamp(st.cursor+step, 0, len(st.buttons)-1)
			return nil
		}
		if ev.Key == core.KeyEnter {
			st.env.player.Play(st.click, st.env.user.Volumes.Effect)
			return st.choose(s, st.buttons[st.cursor].locale)
		}
	case event.CursorMoved:
		st.mouseX, st.mouseY = ev.X, ev.Y
	case event.MousePressed:
		if ev.Button != core.ButtonLeft {
			return nil
		}
		if i := st.hit(); i >= 0 {
			st.pressed, st.cursor = i, i
			st.env.player.Play(st.click, st.env.user.Volumes.Effect)
		}
	case event.MouseReleased:
		if ev.Button != core.ButtonLeft || st.pressed < 0 {
			return nil
		}
		i := st.pressed
		st.pressed = -1
		if st.hit() == i {
			return st.choose(s, st.buttons[i].locale)
		}
	}
	return nil
}

// choose stores the locale, retitles the window and starts the intro.
func (st *Setup) choose(s *shared.Store, l settings.Locale) error {
	st.env.user.Locale = l
	if err := st.env.saveSettings(); err != nil {
		return err
	}

	st.env.logger.Info("language selected", "locale", l)
	st.env.command(event.SetTitle{Title: locale.WindowTitle(l)})
	scene.Request(s, scene.Change{Scene: NewIntroLoading()})
	return nil
}

func (st *Setup) Draw(*shared.Store) error {
	st.env.present(func(scr *core.Screen) {
		mid := scr.Height() / 2
		scr.DrawTextCentered(mid-4, locale.SelectLanguage, core.ColorWhite)

		for i := range st.buttons {
			b := &st.buttons[i]
			w := max(core.TextWidth(b.label)+8, 16)
			b.rect = core.NewRect((scr.Width()-w)/2, mid-1+4*i, w, 3)

			c := core.ColorGray
			if i == st.cursor {
				c = core.ColorBrightYellow
			}
			if i == st.pressed {
				c = core.ColorOrange
			}
			scr.DrawBox(b.rect, c)
			scr.DrawTextColor(b.rect.X+(w-core.TextWidth(b.label))/2, b.rect.Y+1, b.label, c)
		}
	})
	return nil
}
