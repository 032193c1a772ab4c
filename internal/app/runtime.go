// Package app assembles the runtime: the asset cache, the shared store, the
// scene dispatcher and the loops that drive them.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/millennium-run/internal/assets"
	"github.com/vovakirdan/millennium-run/internal/audio"
	"github.com/vovakirdan/millennium-run/internal/event"
	"github.com/vovakirdan/millennium-run/internal/fatal"
	"github.com/vovakirdan/millennium-run/internal/lifecycle"
	"github.com/vovakirdan/millennium-run/internal/nodes"
	"github.com/vovakirdan/millennium-run/internal/registry"
	"github.com/vovakirdan/millennium-run/internal/render"
	"github.com/vovakirdan/millennium-run/internal/scene"
	"github.com/vovakirdan/millennium-run/internal/settings"
	"github.com/vovakirdan/millennium-run/internal/shared"
	"github.com/vovakirdan/millennium-run/internal/timer"
)

// pausedSleep is how long the logic loop idles per iteration while the
// application is paused.
const pausedSleep = 10 * time.Millisecond

// Options configures New.
type Options struct {
	// AssetDir overrides the asset directory next to the executable.
	AssetDir string
	Verify   bool
	Watch    bool

	// LogicFPS caps the logic loop. Zero runs uncapped.
	LogicFPS int

	// Scene names a registered scene to start with instead of the default.
	Scene string
	// First overrides Scene.
	First scene.Scene

	// Locale overrides the stored language for this run. It is not saved.
	Locale string

	// Cols and Rows are the terminal size, if known.
	Cols, Rows int

	Player audio.Player
	Logger *log.Logger
	Clock  timer.Clock
	Bus    *event.Bus
	Flag   *lifecycle.Flag
}

// Runtime owns everything shared by the logic, render and OS sides.
type Runtime struct {
	Cache      *assets.Cache
	Watcher    *assets.Watcher
	Bus        *event.Bus
	Flag       *lifecycle.Flag
	Timer      *timer.FrameTimer
	Dispatcher *scene.Dispatcher
	Queue      *render.Queue
	Store      *shared.Store
	Settings   *settings.UserSettings
	Player     audio.Player
	Logger     *log.Logger
	VSync      int

	settingsHandle *assets.Handle
	first          scene.Scene
}

// New resolves and checks the asset directory, loads the user settings and
// prepares the first scene. The scene is entered by RunLogic.
func New(ctx context.Context, opts Options) (*Runtime, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	root, err := openRoot(opts.AssetDir)
	if err != nil {
		return nil, err
	}
	manifest, err := assets.DefaultManifest()
	if err != nil {
		return nil, err
	}
	if opts.Verify {
		keys, err := assets.DefaultKeys()
		if err != nil {
			return nil, err
		}
		if err := assets.Verify(ctx, root, manifest, keys); err != nil {
			return nil, err
		}
		logger.Info("asset files verified", "count", manifest.Len())
	}

	r := &Runtime{
		Cache:  assets.NewCache(root, manifest, logger),
		Bus:    opts.Bus,
		Flag:   opts.Flag,
		Store:  shared.New(),
		Player: opts.Player,
		Logger: logger,
		VSync:  opts.LogicFPS,
	}
	if r.Bus == nil {
		r.Bus = event.NewBus(event.DefaultBufferSize)
	}
	if r.Flag == nil {
		r.Flag = lifecycle.Default
	}
	if r.Player == nil {
		r.Player = &audio.NullPlayer{}
	}
	if opts.Clock != nil {
		r.Timer = timer.NewWithClock(opts.Clock)
	} else {
		r.Timer = timer.New()
	}

	if err := r.loadSettings(opts.Locale); err != nil {
		return nil, err
	}

	cols, rows := GridSize(r.Settings.Resolution, r.Settings.ScreenMode, opts.Cols, opts.Rows)
	r.Queue = render.NewQueue(cols, rows)

	shared.Push(r.Store, r.Cache)
	shared.Push(r.Store, r.Queue)
	shared.Push(r.Store, r.Bus)
	shared.Push(r.Store, r.Player)
	shared.Push(r.Store, logger)
	shared.Push(r.Store, rand.New(rand.NewSource(time.Now().UnixNano())))
	shared.Push(r.Store, *r.Settings)
	// Scenes edit the copy in the store.
	r.Settings, _ = shared.GetMut[settings.UserSettings](r.Store)

	r.Dispatcher = scene.NewDispatcher(r.Store, logger)

	if r.first, err = firstScene(opts, r.Settings.Locale); err != nil {
		r.Close()
		return nil, err
	}

	if opts.Watch {
		if r.Watcher, err = assets.NewWatcher(r.Cache, logger); err != nil {
			r.Close()
			return nil, err
		}
	}

	logger.Info("runtime ready",
		"root", root.Dir(),
		"scene", scene.Name(r.first),
		"locale", r.Settings.Locale,
		"grid", fmt.Sprintf("%dx%d", cols, rows),
	)
	return r, nil
}

func openRoot(dir string) (assets.Root, error) {
	if dir != "" {
		return assets.OpenRoot(dir)
	}
	return assets.ResolveRoot()
}

// loadSettings reads user.setting, creating it with defaults on first run.
func (r *Runtime) loadSettings(override string) error {
	h, err := r.Cache.Handle(settings.AssetPath)
	if err != nil {
		return err
	}
	user, err := assets.ReadOrDefault(h, settings.Codec{}, settings.Codec{}, settings.Default)
	if err != nil {
		h.Close()
		return err
	}
	if override != "" {
		l, err := settings.ParseLocale(override)
		if err != nil {
			h.Close()
			return err
		}
		user.Locale = l
	}
	r.settingsHandle = h
	r.Settings = &user
	return nil
}

// GridSize picks the logical cell grid. Windowed mode keeps the resolution
// grid, shrunk until it fits the terminal; the other modes take the whole
// terminal.
func GridSize(res settings.Resolution, mode settings.ScreenMode, cols, rows int) (int, int) {
	if cols <= 0 || rows <= 0 {
		return res.Cells()
	}
	if mode != settings.Windowed {
		return cols, rows
	}
	w, h := settings.FitResolution(res, cols, rows).Cells()
	return min(w, cols), min(h, rows)
}

func firstScene(opts Options, l settings.Locale) (scene.Scene, error) {
	switch {
	case opts.First != nil:
		return opts.First, nil
	case opts.Scene != "":
		return registry.Create(opts.Scene)
	case l == settings.Unknown:
		return registry.Create(nodes.SetupName)
	default:
		return registry.Create(nodes.IntroName)
	}
}

// StartWatcher runs the asset watcher until the flag drops. It does nothing
// when watching is disabled.
func (r *Runtime) StartWatcher() {
	if r.Watcher != nil {
		r.Watcher.Run(r.Flag)
	}
}

// RunLogic runs the logic loop on the calling goroutine. A failure lowers
// the flag and reaches the OS side as a PanicError command.
func (r *Runtime) RunLogic() {
	if err := r.runLogic(); err != nil {
		r.Logger.Error("logic loop failed", "error", err)
		fatal.Raise(r.Bus, r.Flag, err)
	}
}

func (r *Runtime) runLogic() (err error) {
	defer func() {
		if serr := r.Dispatcher.Shutdown(); err == nil {
			err = serr
		}
	}()

	if err := r.Dispatcher.Start(r.first); err != nil {
		return err
	}
	r.Logger.Info("logic loop started", "vsync", r.VSync)
	defer r.Logger.Info("logic loop stopped")

	fps := rate.Sometimes{Interval: time.Second}
	var events []event.Logic
	for r.Flag.Running() {
		events = r.Bus.DrainLogic(events[:0])
		for _, e := range events {
			switch e := e.(type) {
			case event.ApplicationTerminate:
				return nil
			case event.ApplicationPaused:
				r.Timer.Pause()
				r.Logger.Debug("paused")
			case event.ApplicationResumed:
				r.Logger.Debug("resumed", "after", r.Timer.Resume())
			case event.WindowResized:
				if e.Width > 0 && e.Height > 0 {
					r.Queue.Resize(e.Width, e.Height)
				}
			}
			if err := r.Dispatcher.HandleEvent(e); err != nil {
				return err
			}
		}

		// A paused timer ticks with zero elapsed time, so scenes still
		// update and draw.
		if r.Timer.Paused() {
			time.Sleep(pausedSleep)
		}
		r.Timer.Tick(r.VSync)

		if err := r.Dispatcher.Update(r.Timer.Total(), r.Timer.Elapsed()); err != nil {
			return err
		}
		if err := r.Dispatcher.Draw(); err != nil {
			return err
		}
		if err := r.Dispatcher.Apply(); err != nil {
			if errors.Is(err, scene.ErrStackEmpty) {
				r.Logger.Info("no scene left, quitting")
				r.Bus.SendCommand(event.Terminate{})
				return nil
			}
			return err
		}
		fps.Do(func() { r.Logger.Debug("logic", "fps", r.Timer.FPS()) })
	}
	return nil
}

// Close releases the settings handle, the watcher and the audio device.
func (r *Runtime) Close() {
	if r.Watcher != nil {
		r.Watcher.Close()
	}
	if r.settingsHandle != nil {
		r.settingsHandle.Close()
		r.settingsHandle = nil
	}
	if r.Player != nil {
		if err := r.Player.Close(); err != nil {
			r.Logger.Warn("closing audio", "error", err)
		}
	}
	r.Cache.Prune()
}
