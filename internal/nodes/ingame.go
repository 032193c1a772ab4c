package nodes

import (
	"errors"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/vovakirdan/millennium-run/internal/assets"
	"github.com/vovakirdan/millennium-run/internal/audio"
	"github.com/vovakirdan/millennium-run/internal/core"
	"github.com/vovakirdan/millennium-run/internal/event"
	"github.com/vovakirdan/millennium-run/internal/locale"
	"github.com/vovakirdan/millennium-run/internal/save"
	"github.com/vovakirdan/millennium-run/internal/scene"
	"github.com/vovakirdan/millennium-run/internal/shared"
)

// InGame is the stage board: one row per character with the number of
// owned tiles. The save file is written on every change and re-read when
// it changes on disk.
//
// Esc or losing focus opens the pause menu, which leads to the settings
// panel for resolution, screen mode and volumes.
type InGame struct {
	scene.Base

	env    *env
	handle *assets.Handle
	gen    uint64
	data   save.Data
	cursor int
	bar    progress.Model

	mode          InGameMode
	pauseCursor   PauseItem
	settingCursor SettingItem

	clip       *audio.Clip
	clipHandle *assets.Handle
}

// NewInGame creates the scene.
func NewInGame() *InGame {
	return &InGame{bar: newBar(barWidth)}
}

func (*InGame) Name() string { return InGameName }

// Data returns the current save record.
func (g *InGame) Data() save.Data { return g.data }

// Selected returns the highlighted character.
func (g *InGame) Selected() save.Character { return save.Characters[g.cursor] }

// Mode returns the layer on screen.
func (g *InGame) Mode() InGameMode { return g.mode }

func (g *InGame) Enter(s *shared.Store) error {
	e, err := lookup(s)
	if err != nil {
		return err
	}
	g.env = e

	h, err := e.cache.Handle(save.AssetPath)
	if err != nil {
		return err
	}
	g.handle = h
	if err := g.reload(true); err != nil {
		h.Close()
		g.handle = nil
		return err
	}

	ch, clip, err := load[*audio.Clip](e.cache, selectSound, audio.WavDecoder{})
	if err != nil {
		h.Close()
		g.handle = nil
		return err
	}
	g.clip, g.clipHandle = clip, ch
	g.mode = ModeBoard
	return nil
}

func (g *InGame) Exit(*shared.Store) error {
	closeAll(g.handle, g.clipHandle)
	g.handle, g.clipHandle = nil, nil
	return nil
}

func (g *InGame) click() {
	if g.clip != nil {
		g.env.player.Play(g.clip, g.env.user.Volumes.Effect)
	}
}

// reload reads the save file. On first entry a missing file is created
// with the default record.
func (g *InGame) reload(create bool) error {
	var (
		d   save.Data
		err error
	)
	if create {
		d, err = assets.ReadOrDefault(g.handle, save.Codec{}, save.Codec{}, save.Default)
	} else {
		d, err = assets.Read[save.Data](g.handle, save.Codec{})
		if errors.Is(err, assets.ErrEmptyOptional) {
			d, err = save.Default(), nil
		}
	}
	if err != nil {
		return err
	}
	g.data = d
	g.gen = g.handle.Generation()
	return nil
}

func (g *InGame) store() error {
	g.data.Beginner = false
	if err := assets.Write(g.handle, save.Codec{}, &g.data); err != nil {
		return err
	}
	g.gen = g.handle.Generation()
	return nil
}

func (g *InGame) HandleEvent(s *shared.Store, e event.Logic) error {
	if _, ok := e.(event.ApplicationPaused); ok {
		if g.mode == ModeBoard {
			g.pause()
		}
		return nil
	}
	k, ok := pressed(e)
	if !ok {
		return nil
	}
	switch g.mode {
	case ModePause:
		g.pauseKey(s, k)
		return nil
	case ModeSettings:
		return g.settingKey(k)
	}
	return g.boardKey(k)
}

func (g *InGame) boardKey(k core.Key) error {
	controls := g.env.user.Controls
	c := g.Selected()

	if step := menuStep(controls, k); step != 0 {
		g.cursor = core.Clamp(g.cursor+step, 0, len(save.Characters)-1)
		return nil
	}
	switch k {
	case controls.Right, core.ArrowRight:
		g.data.SetStage(c, int(g.data.Stage(c))+1)
		return g.store()
	case controls.Left, core.ArrowLeft:
		g.data.SetStage(c, int(g.data.Stage(c))-1)
		return g.store()
	case core.KeyEnter:
		g.data.SetStage(c, save.NumTiles)
		g.env.logger.Info("stage cleared", "character", c)
		return g.store()
	case core.KeyEscape:
		g.pause()
	}
	return nil
}

func (g *InGame) Update(*shared.Store, float64, float64) error {
	if g.handle.Generation() != g.gen {
		g.env.logger.Info("save file changed on disk, reloading")
		return g.reload(false)
	}
	return nil
}

func (g *InGame) Draw(*shared.Store) error {
	p := g.env.printer()
	g.env.present(func(scr *core.Screen) {
		scr.DrawTextCentered(1, p.Sprintf(locale.GameTitle), core.ColorBrightCyan)

		top := max(3, scr.Height()/2-len(save.Characters))
		for i, c := range save.Characters {
			y := top + 2*i
			name := locale.Character(p, c.String())
			line := p.Sprintf(locale.StageLine, name, g.data.Stage(c), save.NumTiles)
			color := core.ColorWhite
			prefix := "  "
			if i == g.cursor {
				color, prefix = core.ColorBrightYellow, "> "
			}
			if g.data.Cleared(c) {
				color = core.ColorBrightGreen
			}
			x := max(0, (scr.Width()-core.TextWidth(line)-barWidth-4)/2)
			scr.DrawTextColor(x, y, prefix+line, color)
			scr.DrawTextColor(x+core.TextWidth(prefix+line)+2, y, g.bar.ViewAs(float64(g.data.Stage(c))/save.NumTiles), color)
		}

		hint := p.Sprintf(locale.EnterStage)
		if g.data.Beginner {
			controls := g.env.user.Controls
			hint = p.Sprintf(locale.BeginnerHint, controls.Up, controls.Down)
		}
		scr.DrawTextCentered(scr.Height()-3, hint, core.ColorGray)
		scr.DrawTextCentered(scr.Height()-2, p.Sprintf(locale.PauseHint), core.ColorDarkGray)

		switch g.mode {
		case ModePause:
			drawPause(scr, p, g.pauseCursor)
		case ModeSettings:
			g.drawSettings(scr, p)
		}
	})
	return nil
}
