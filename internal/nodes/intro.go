package nodes

import (
	"context"
	"fmt"

	"github.com/vovakirdan/millennium-run/internal/assets"
	"github.com/vovakirdan/millennium-run/internal/audio"
	"github.com/vovakirdan/millennium-run/internal/core"
	"github.com/vovakirdan/millennium-run/internal/event"
	"github.com/vovakirdan/millennium-run/internal/locale"
	"github.com/vovakirdan/millennium-run/internal/save"
	"github.com/vovakirdan/millennium-run/internal/scene"
	"github.com/vovakirdan/millennium-run/internal/shared"
)

// IntroState is a step of the intro. The intro walks the states in order.
type IntroState int

const (
	FadeIn IntroState = iota
	DisplayNotify
	DisappearNotify
	PlayTitleVoice
	AppearLogo
	DisplayLogo
	WaitLoading
	FadeOut
)

var introStateNames = [...]string{
	"FadeIn", "DisplayNotify", "DisappearNotify", "PlayTitleVoice",
	"AppearLogo", "DisplayLogo", "WaitLoading", "FadeOut",
}

func (s IntroState) String() string {
	if s >= 0 && int(s) < len(introStateNames) {
		return introStateNames[s]
	}
	return fmt.Sprintf("IntroState(%d)", int(s))
}

// Timings in seconds.
const (
	fadeDuration   = 0.5
	notifyDuration = 3.0
	logoDuration   = 1.5
)

// Intro shows the notice, plays one title voice at random, shows the logo
// and waits for the title assets before fading out.
type Intro struct {
	scene.Base

	env     *env
	res     *introAssets
	state   IntroState
	elapsed float64
	voice   save.Character
	preload *job
	title   *titleAssets
}

func newIntro(res *introAssets) *Intro {
	return &Intro{res: res}
}

func (*Intro) Name() string { return IntroName }

// State returns the current step.
func (in *Intro) State() IntroState { return in.state }

func (in *Intro) Enter(s *shared.Store) error {
	e, err := lookup(s)
	if err != nil {
		return err
	}
	in.env = e
	in.state = FadeIn
	in.elapsed = 0

	in.title = &titleAssets{}
	t := in.title
	in.preload = spawn(
		func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h, text, err := load[string](e.cache, titlePath, assets.TextCodec{})
			if err != nil {
				return err
			}
			t.art, t.artHandle = splitLines(text), h
			return nil
		},
		func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h, clip, err := load[*audio.Clip](e.cache, selectSound, audio.WavDecoder{})
			if err != nil {
				return err
			}
			t.selectClip, t.selectHandle = clip, h
			return nil
		},
	)
	return nil
}

func (in *Intro) Exit(*shared.Store) error {
	if in.preload != nil {
		in.preload.stop()
	}
	if in.title != nil {
		in.title.close()
	}
	if in.res != nil {
		in.res.close()
	}
	return nil
}

// HandleEvent lets the player skip the notice.
func (in *Intro) HandleEvent(_ *shared.Store, e event.Logic) error {
	k, ok := pressed(e)
	if !ok || in.state != DisplayNotify {
		return nil
	}
	switch k {
	case core.KeyEnter, core.KeySpace, core.KeyEscape:
		in.next(DisappearNotify)
	}
	return nil
}

func (in *Intro) next(state IntroState) {
	in.env.logger.Debug("intro state", "from", in.state, "to", state)
	in.state = state
	in.elapsed = 0
}

func (in *Intro) Update(s *shared.Store, _, elapsed float64) error {
	in.elapsed += elapsed

	switch in.state {
	case FadeIn:
		if in.elapsed >= fadeDuration {
			in.next(DisplayNotify)
		}
	case DisplayNotify:
		if in.elapsed >= notifyDuration {
			in.next(DisappearNotify)
		}
	case DisappearNotify:
		if in.elapsed >= fadeDuration {
			in.next(PlayTitleVoice)
		}
	case PlayTitleVoice:
		in.playVoice()
		in.next(AppearLogo)
	case AppearLogo:
		if in.elapsed >= fadeDuration {
			in.next(DisplayLogo)
		}
	case DisplayLogo:
		if in.elapsed >= logoDuration {
			in.next(WaitLoading)
		}
	case WaitLoading:
		done, err := in.preload.poll()
		if err != nil {
			return err
		}
		if done {
			in.next(FadeOut)
		}
	case FadeOut:
		if in.elapsed >= fadeDuration {
			title := newTitleWith(in.title)
			in.title = nil
			in.preload = nil
			scene.Request(s, scene.Change{Scene: title})
		}
	}
	return nil
}

// playVoice picks one of the four title voices uniformly, plays it and
// drops every voice from the cache.
func (in *Intro) playVoice() {
	in.voice = save.Characters[in.env.rng.Intn(len(save.Characters))]
	in.env.player.Play(in.res.clips[in.voice], in.env.user.Volumes.Voice)
	in.env.logger.Debug("title voice", "character", in.voice)

	for _, c := range save.Characters {
		closeAll(in.res.voices[c])
		in.res.voices[c] = nil
		in.env.cache.Release(voicePath(c))
	}
}

// Voice returns the character whose voice was played.
func (in *Intro) Voice() save.Character { return in.voice }

func (in *Intro) alpha() float64 {
	t := min(in.elapsed/fadeDuration, 1)
	switch in.state {
	case FadeIn, AppearLogo:
		return t
	case DisappearNotify, FadeOut:
		return 1 - t
	case PlayTitleVoice:
		return 0
	}
	return 1
}

func (in *Intro) Draw(*shared.Store) error {
	p := in.env.printer()
	in.env.present(func(scr *core.Screen) {
		switch in.state {
		case FadeIn, DisplayNotify, DisappearNotify:
			drawNotice(scr, p.Sprintf(locale.NotifyTitle), p.Sprintf(locale.NotifyText))
		case AppearLogo, DisplayLogo, WaitLoading, FadeOut:
			top := (scr.Height() - len(in.res.art)) / 2
			drawArt(scr, in.res.art, top, core.ColorBrightCyan)
		}
		scr.Fade(in.alpha())
	})
	return nil
}

func drawNotice(scr *core.Screen, title, text string) {
	width := min(scr.Width()-4, 60)
	lines := wrap(text, width-4)
	box := scr.Bounds().Centered(width, len(lines)+4)
	scr.DrawBox(box, core.ColorGray)
	scr.DrawTextCentered(box.Y+1, title, core.ColorBrightYellow)
	for i, line := range lines {
		x := box.X + (box.W-core.TextWidth(line))/2
		scr.DrawTextColor(x, box.Y+3+i, line, core.ColorWhite)
	}
}
