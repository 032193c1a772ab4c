// Package nodes contains the game scenes: first-time setup, the intro, the
// title menu and the in-game stage board. Scenes find their collaborators in
// the shared store and register themselves by name so the CLI can start
// from any of them.
package nodes

import (
	"context"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/message"

	"github.com/vovakirdan/millennium-run/internal/assets"
	"github.com/vovakirdan/millennium-run/internal/audio"
	"github.com/vovakirdan/millennium-run/internal/core"
	"github.com/vovakirdan/millennium-run/internal/event"
	"github.com/vovakirdan/millennium-run/internal/locale"
	"github.com/vovakirdan/millennium-run/internal/registry"
	"github.com/vovakirdan/millennium-run/internal/render"
	"github.com/vovakirdan/millennium-run/internal/save"
	"github.com/vovakirdan/millennium-run/internal/scene"
	"github.com/vovakirdan/millennium-run/internal/settings"
	"github.com/vovakirdan/millennium-run/internal/shared"
)

// Registered scene names.
const (
	SetupName  = "FirstTimeSetup"
	IntroName  = "Intro"
	TitleName  = "Title"
	InGameName = "InGame"
)

// Asset paths used by the scenes.
const (
	logoPath    = "images/logo.txt"
	titlePath   = "images/title.txt"
	selectSound = "sounds/title_select.wav"
)

// voicePath returns the title voice of c.
func voicePath(c save.Character) string {
	return "sounds/" + c.String() + "_title.wav"
}

func init() {
	registry.Register(SetupName, "Pick the interface language", func() scene.Scene { return NewSetup() })
	registry.Register(IntroName, "Notice, title voice and logo", func() scene.Scene { return NewIntroLoading() })
	registry.Register(TitleName, "Title menu", func() scene.Scene { return NewTitle() })
	registry.Register(InGameName, "Stage progress board", func() scene.Scene { return NewInGame() })
}

// env is what a scene takes from the shared store when it enters.
type env struct {
	cache  *assets.Cache
	queue  *render.Queue
	bus    *event.Bus
	player audio.Player
	logger *log.Logger
	rng    *rand.Rand
	user   *settings.UserSettings
}

// lookup collects the collaborators. The cache and the render queue are
// required; the rest fall back to inert defaults.
func lookup(s *shared.Store) (*env, error) {
	cache, err := shared.Require[*assets.Cache](s)
	if err != nil {
		return nil, err
	}
	queue, err := shared.Require[*render.Queue](s)
	if err != nil {
		return nil, err
	}

	e := &env{cache: cache, queue: queue}
	e.bus, _ = shared.Get[*event.Bus](s)

	var ok bool
	if e.player, ok = shared.Get[audio.Player](s); !ok || e.player == nil {
		e.player = &audio.NullPlayer{}
	}
	if e.logger, ok = shared.Get[*log.Logger](s); !ok || e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.rng, ok = shared.Get[*rand.Rand](s); !ok || e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.user, ok = shared.GetMut[settings.UserSettings](s); !ok {
		shared.Push(s, settings.Default())
		e.user, _ = shared.GetMut[settings.UserSettings](s)
	}
	return e, nil
}

// printer returns the message printer for the current locale.
func (e *env) printer() *message.Printer {
	return locale.Printer(e.user.Locale)
}

// command sends c to the OS side if a bus is installed.
func (e *env) command(c event.Command) {
	if e.bus != nil {
		e.bus.SendCommand(c)
	}
}

// saveSettings writes the player's settings through the cache.
func (e *env) saveSettings() error {
	h, err := e.cache.Handle(settings.AssetPath)
	if err != nil {
		return err
	}
	defer h.Close()
	return assets.Write(h, settings.Codec{}, e.user)
}

// present draws through fn onto a fresh screen and submits it.
func (e *env) present(fn func(scr *core.Screen)) {
	scr := e.queue.Begin()
	fn(scr)
	e.queue.Submit(scr)
}

// load opens p and decodes it so both the bytes and the value are resident.
// The caller owns the returned handle.
func load[T any](c *assets.Cache, p string, dec assets.Decoder[T]) (*assets.Handle, T, error) {
	var zero T
	h, err := c.Handle(p)
	if err != nil {
		return nil, zero, err
	}
	v, err := assets.Read(h, dec)
	if err != nil {
		h.Close()
		return nil, zero, err
	}
	return h, v, nil
}

func closeAll(hs ...*assets.Handle) {
	for _, h := range hs {
		if h != nil {
			h.Close()
		}
	}
}

// job runs loads in the background. The logic loop polls it once per
// frame and never blocks on it.
type job struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

func spawn(fns ...func(ctx context.Context) error) *job {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		g.Go(func() error { return fn(ctx) })
	}

	j := &job{cancel: cancel, done: make(chan struct{})}
	go func() {
		j.err = g.Wait()
		cancel()
		close(j.done)
	}()
	return j
}

// poll reports whether the job finished and, if so, its first error.
func (j *job) poll() (bool, error) {
	select {
	case <-j.done:
		return true, j.err
	default:
		return false, nil
	}
}

// stop cancels the job and waits for its goroutines.
func (j *job) stop() error {
	j.cancel()
	<-j.done
	return j.err
}

// pressed returns the key of a KeyPressed event.
func pressed(e event.Logic) (core.Key, bool) {
	if k, ok := e.(event.KeyPressed); ok {
		return k.Key, true
	}
	return core.KeyUnknown, false
}

// menuStep maps a key to a cursor move of -1, 0 or +1 using the player's
// up/down bindings and the arrow keys.
func menuStep(c settings.Controls, k core.Key) int {
	switch k {
	case c.Up, core.ArrowUp:
		return -1
	case c.Down, core.ArrowDown:
		return 1
	}
	return 0
}

// wrap breaks text into lines no wider than width cells.
func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case core.TextWidth(line)+1+core.TextWidth(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// drawArt draws multi-line text art centered on scr.
func drawArt(scr *core.Screen, art []string, top int, c core.Color) {
	w := 0
	for _, line := range art {
		w = max(w, core.TextWidth(line))
	}
	x := (scr.Width() - w) / 2
	for i, line := range art {
		scr.DrawTextColor(x, top+i, line, c)
	}
}
