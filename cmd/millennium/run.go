package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/millennium-run/internal/app"
	"github.com/vovakirdan/millennium-run/internal/audio"
	"github.com/vovakirdan/millennium-run/internal/event"
	"github.com/vovakirdan/millennium-run/internal/fatal"
	_ "github.com/vovakirdan/millennium-run/internal/nodes" // registers the scenes
	"github.com/vovakirdan/millennium-run/internal/platform/tui"
	"github.com/vovakirdan/millennium-run/internal/registry"
	"github.com/vovakirdan/millennium-run/internal/render"
	"github.com/vovakirdan/millennium-run/internal/settings"
)

// Summary of the fatal shown when the terminal cannot be used.
const deviceSummary = "Failed to initialize the display"

var (
	flagScene    string
	flagLanguage string
)

func init() {
	rootCmd.Flags().StringVarP(&flagScene, "scene", "s", "", "Start with the named scene (see 'millennium scenes')")
	rootCmd.Flags().StringVarP(&flagLanguage, "language", "l", "", "Language for this run: KOR")
}

func checkGameFlags(cmd *cobra.Command, args []string) error {
	if flagScene != "" && !registry.Exists(flagScene) {
		return fmt.Errorf("unknown scene %q, run 'millennium scenes' to list them", flagScene)
	}
	if flagLanguage != "" {
		l, err := settings.ParseLocale(flagLanguage)
		if err != nil {
			return err
		}
		if l == settings.Unknown {
			return fmt.Errorf("language %q cannot be forced, pick one of: KOR", flagLanguage)
		}
	}
	return nil
}

func runGame(cmd *cobra.Command, args []string) {
	cfg, src, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var logOut io.Writer = os.Stderr
	if f, err := openLogFile(cfg); err == nil {
		defer f.Close()
		logOut = f
	} else {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file, logging disabled: %v\n", err)
		logOut = io.Discard
	}
	logger := newLogger(logOut, cfg)
	logger.Info("starting", "config", src)

	reporter := &fatal.Reporter{Logger: logger, Dialog: tui.NewDialog(), Debug: cfg.Debug}

	if err := tui.CheckTerminal(); err != nil {
		reporter.Abort(fatal.Newf(deviceSummary, "%v", err))
	}
	cols, rows, ok := tui.TerminalSize()
	if ok {
		rows--
	}

	rt, err := app.New(context.Background(), app.Options{
		AssetDir: cfg.Assets.Root,
		Verify:   cfg.Assets.Verify,
		Watch:    cfg.Assets.Watch,
		LogicFPS: cfg.Logic.FPS,
		Scene:    flagScene,
		Locale:   flagLanguage,
		Cols:     cols,
		Rows:     rows,
		Player:   audio.Open(cfg.Audio.Enabled, cfg.Audio.SampleRate, logger),
		Logger:   logger,
	})
	if err != nil {
		reporter.Abort(fatal.Wrap(err))
	}

	user := *rt.Settings
	osSide := app.NewOS(rt)
	prog := tui.NewProgram(osSide, tui.Options{
		TickRate:  cfg.Platform.TickRate,
		AltScreen: cfg.Platform.AltScreen,
		Mouse:     cfg.Platform.Mouse,
		Controls:  user.Controls,
		Display:   event.SetDisplay{Resolution: user.Resolution, Mode: user.ScreenMode},
		Grid: func(d event.SetDisplay, cols, rows int) (int, int) {
			return app.GridSize(d.Resolution, d.Mode, cols, rows)
		},
	})
	loop := &render.Loop{
		Bus:     rt.Bus,
		Flag:    rt.Flag,
		Surface: prog.Surface(),
		Queue:   rt.Queue,
		Logger:  logger,
		FPS:     cfg.Render.FPS,
	}

	var g errgroup.Group
	g.Go(func() error {
		rt.RunLogic()
		return nil
	})
	g.Go(func() error {
		if err := loop.Run(); err != nil {
			logger.Error("render loop failed", "error", err)
			fatal.Raise(rt.Bus, rt.Flag, err)
		}
		return nil
	})
	g.Go(func() error {
		rt.StartWatcher()
		return nil
	})

	fe, err := prog.Run()
	osSide.Close()
	g.Wait()

	if fe == nil {
		fe = osSide.Poll().Fatal
	}
	if fe == nil && err != nil {
		fe = fatal.Newf(deviceSummary, "%v", err)
	}
	rt.Close()
	if fe != nil {
		reporter.Abort(fe)
	}
	logger.Info("bye")
}
