package nodes

import (
	"fmt"

	"golang.org/x/text/message"

	"github.com/vovakirdan/millennium-run/internal/core"
	"github.com/vovakirdan/millennium-run/internal/event"
	"github.com/vovakirdan/millennium-run/internal/locale"
	"github.com/vovakirdan/millennium-run/internal/scene"
	"github.com/vovakirdan/millennium-run/internal/settings"
	"github.com/vovakirdan/millennium-run/internal/shared"
)

// InGameMode is the layer the in-game scene is showing.
type InGameMode int

const (
	ModeBoard InGameMode = iota
	ModePause
	ModeSettings
)

// PauseItem is an entry of the pause menu.
type PauseItem int

const (
	PauseResume PauseItem = iota
	PauseSettings
	PauseGiveUp
)

// SettingItem is a row of the settings panel.
type SettingItem int

const (
	SettingResolution SettingItem = iota
	SettingScreenMode
	SettingBackground
	SettingEffect
	SettingVoice
)

// volumeStep is how far one Left/Right press moves a volume.
const volumeStep = 10

func (g *InGame) pause() {
	g.mode, g.pauseCursor = ModePause, PauseResume
	g.env.logger.Debug("game paused")
}

func (g *InGame) pauseKey(s *shared.Store, k core.Key) {
	if step := menuStep(g.env.user.Controls, k); step != 0 {
		g.pauseCursor = PauseItem(core.Clamp(int(g.pauseCursor)+step, int(PauseResume), int(PauseGiveUp)))
		g.click()
		return
	}
	switch k {
	case core.KeyEscape:
		g.mode = ModeBoard
	case core.KeyEnter:
		g.click()
		switch g.pauseCursor {
		case PauseResume:
			g.mode = ModeBoard
		case PauseSettings:
			g.mode, g.settingCursor = ModeSettings, SettingResolution
		case PauseGiveUp:
			g.env.logger.Info("gave up, back to title")
			scene.Request(s, scene.Change{Scene: NewTitle()})
		}
	}
}

func (g *InGame) settingKey(k core.Key) error {
	controls := g.env.user.Controls
	if step := menuStep(controls, k); step != 0 {
		g.settingCursor = SettingItem(core.Clamp(int(g.settingCursor)+step, int(SettingResolution), int(SettingVoice)))
		return nil
	}
	switch k {
	case controls.Left, core.ArrowLeft:
		return g.adjust(-1)
	case controls.Right, core.ArrowRight:
		return g.adjust(1)
	case core.KeyEscape:
		g.mode = ModePause
	}
	return nil
}

// adjust moves the selected setting one step in dir and persists the
// result. Display changes are forwarded to the OS side.
func (g *InGame) adjust(dir int) error {
	u := g.env.user
	before := *u

	switch g.settingCursor {
	case SettingResolution:
		if dir < 0 {
			u.Resolution, _ = u.Resolution.Downgrade()
		} else {
			u.Resolution, _ = u.Resolution.Upgrade()
		}
	case SettingScreenMode:
		u.ScreenMode = settings.ScreenMode(core.Clamp(int(u.ScreenMode)+dir, int(settings.Windowed), int(settings.FullScreen)))
	case SettingBackground:
		u.Volumes.Background = u.Volumes.Background.Add(dir * volumeStep)
	case SettingEffect:
		u.Volumes.Effect = u.Volumes.Effect.Add(dir * volumeStep)
	case SettingVoice:
		u.Volumes.Voice = u.Volumes.Voice.Add(dir * volumeStep)
	}
	if *u == before {
		return nil
	}

	if err := g.env.saveSettings(); err != nil {
		return err
	}
	if u.Resolution != before.Resolution || u.ScreenMode != before.ScreenMode {
		g.env.command(event.SetDisplay{Resolution: u.Resolution, Mode: u.ScreenMode})
	}
	g.click()
	g.env.logger.Info("settings changed",
		"resolution", u.Resolution, "screen_mode", u.ScreenMode,
		"background", u.Volumes.Background, "effect", u.Volumes.Effect, "voice", u.Volumes.Voice)
	return nil
}

func drawPause(scr *core.Screen, p *message.Printer, cursor PauseItem) {
	labels := []string{p.Sprintf(locale.ResumeMenu), p.Sprintf(locale.SettingMenu), p.Sprintf(locale.GiveUpMenu)}
	w := 24
	for _, l := range labels {
		w = max(w, core.TextWidth(l)+8)
	}
	box := scr.Bounds().Centered(w, 2*len(labels)+5)
	scr.DrawRect(box, ' ')
	scr.DrawBox(box, core.ColorWhite)
	scr.DrawTextCentered(box.Y+1, p.Sprintf(locale.PauseTitle), core.ColorBrightCyan)

	for i, label := range labels {
		text, c := "  "+label+"  ", core.ColorGray
		if PauseItem(i) == cursor {
			text, c = "> "+label+" <", core.ColorBrightYellow
		}
		scr.DrawTextCentered(box.Y+3+2*i, text, c)
	}
	scr.DrawTextCentered(box.Bottom()-2, p.Sprintf(locale.ResumeHint), core.ColorDarkGray)
}

func (g *InGame) drawSettings(scr *core.Screen, p *message.Printer) {
	u := g.env.user
	w, h := u.Resolution.Size()
	rows := []struct {
		label string
		value string
	}{
		{p.Sprintf(locale.ResolutionOption), fmt.Sprintf("%dx%d", w, h)},
		{p.Sprintf(locale.ScreenModeOption), locale.ScreenMode(p, u.ScreenMode)},
		{p.Sprintf(locale.BackgroundVolume), g.bar.ViewAs(u.Volumes.Background.Norm())},
		{p.Sprintf(locale.EffectVolume), g.bar.ViewAs(u.Volumes.Effect.Norm())},
		{p.Sprintf(locale.VoiceVolume), g.bar.ViewAs(u.Volumes.Voice.Norm())},
	}

	labelW := 0
	for _, r := range rows {
		labelW = max(labelW, core.TextWidth(r.label))
	}
	controls := u.Controls
	hint := p.Sprintf(locale.SettingHint, controls.Up, controls.Down, controls.Left, controls.Right)
	boxW := max(labelW+barWidth+12, core.TextWidth(hint)+4)
	box := scr.Bounds().Centered(boxW, 2*len(rows)+5)
	scr.DrawRect(box, ' ')
	scr.DrawBox(box, core.ColorWhite)
	scr.DrawTextCentered(box.Y+1, p.Sprintf(locale.SettingMenu), core.ColorBrightCyan)

	for i, r := range rows {
		y := box.Y + 3 + 2*i
		prefix, c := "  ", core.ColorGray
		if SettingItem(i) == g.settingCursor {
			prefix, c = "> ", core.ColorBrightYellow
		}
		scr.DrawTextColor(box.X+2, y, prefix+r.label, c)
		scr.DrawTextColor(box.X+6+labelW, y, "< "+r.value+" >", c)
	}
	scr.DrawTextCentered(box.Bottom()-2, hint, core.ColorDarkGray)
}
