package nodes

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/millennium-run/internal/assets"
	"github.com/vovakirdan/millennium-run/internal/audio"
	"github.com/vovakirdan/millennium-run/internal/core"
	"github.com/vovakirdan/millennium-run/internal/locale"
	"github.com/vovakirdan/millennium-run/internal/save"
	"github.com/vovakirdan/millennium-run/internal/scene"
	"github.com/vovakirdan/millennium-run/internal/shared"
)

const barWidth = 30

// newBar returns a progress bar that renders plain runes, since frames are
// cell grids and carry their own colors.
func newBar(width int) progress.Model {
	return progress.New(
		progress.WithWidth(width),
		progress.WithoutPercentage(),
		progress.WithColorProfile(termenv.Ascii),
	)
}

// introAssets are loaded before the intro starts.
type introAssets struct {
	logo   *assets.Handle
	art    []string
	voices [4]*assets.Handle
	clips  [4]*audio.Clip
}

func (a *introAssets) close() {
	closeAll(a.logo)
	closeAll(a.voices[:]...)
}

// IntroLoading loads the logo and the four title voices on a worker, then
// changes to Intro.
type IntroLoading struct {
	scene.Base

	env    *env
	job    *job
	loaded atomic.Int32
	res    *introAssets
	bar    progress.Model
}

// NewIntroLoading creates the scene.
func NewIntroLoading() *IntroLoading {
	return &IntroLoading{bar: newBar(barWidth)}
}

func (*IntroLoading) Name() string { return "IntroLoading" }

func (l *IntroLoading) total() int { return 1 + len(save.Characters) }

func (l *IntroLoading) Enter(s *shared.Store) error {
	e, err := lookup(s)
	if err != nil {
		return err
	}
	l.env = e
	l.res = &introAssets{}

	fns := []func(context.Context) error{
		func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h, text, err := load[string](e.cache, logoPath, assets.TextCodec{})
			if err != nil {
				return err
			}
			l.res.logo, l.res.art = h, splitLines(text)
			l.loaded.Add(1)
			return nil
		},
	}
	for _, c := range save.Characters {
		fns = append(fns, func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h, clip, err := load[*audio.Clip](e.cache, voicePath(c), audio.WavDecoder{})
			if err != nil {
				return err
			}
			l.res.voices[c], l.res.clips[c] = h, clip
			l.loaded.Add(1)
			return nil
		})
	}
	l.job = spawn(fns...)
	e.logger.Debug("intro loading started", "assets", l.total())
	return nil
}

func (l *IntroLoading) Exit(*shared.Store) error {
	if l.job != nil {
		l.job.stop()
	}
	if l.res != nil {
		l.res.close()
	}
	return nil
}

func (l *IntroLoading) Update(s *shared.Store, _, _ float64) error {
	done, err := l.job.poll()
	if !done {
		return nil
	}
	if err != nil {
		return err
	}
	scene.Request(s, scene.Change{Scene: newIntro(l.res)})
	l.res = nil
	return nil
}

func (l *IntroLoading) Draw(*shared.Store) error {
	p := l.env.printer()
	frac := float64(l.loaded.Load()) / float64(l.total())
	l.env.present(func(scr *core.Screen) {
		mid := scr.Height() / 2
		scr.DrawTextCentered(mid-1, p.Sprintf(locale.Loading), core.ColorGray)
		scr.DrawTextCentered(mid+1, l.bar.ViewAs(frac), core.ColorWhite)
	})
	return nil
}

// splitLines splits text art into lines, dropping a trailing newline.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}
