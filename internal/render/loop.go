package render

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/millennium-run/internal/event"
)

// ErrSurfaceLost is returned by Surface.Present when the surface must be
// configured again before the next present.
var ErrSurfaceLost = errors.New("render: surface lost")

// Surface displays frames.
type Surface interface {
	// Configure prepares the surface for the given inner size in cells.
	Configure(width, height int) error
	Present(f *Frame) error
}

// Running is polled after every drained event batch.
type Running interface {
	Running() bool
}

// DefaultFPS is used when Loop.FPS is not positive.
const DefaultFPS = 60

// Loop presents frames until the running flag drops or it receives
// ApplicationTerminate.
type Loop struct {
	Bus     *event.Bus
	Flag    Running
	Surface Surface
	Queue   *Queue
	Logger  *log.Logger
	FPS     int

	width, height int
	presented     uint64
}

// Run executes the loop on the calling goroutine. A non-nil error is fatal.
func (l *Loop) Run() error {
	logger := l.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	fps := l.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	interval := time.Second / time.Duration(fps)

	l.width, l.height = l.Queue.Size()
	if err := l.configure(l.width, l.height); err != nil {
		return err
	}
	logger.Info("render loop started", "fps", fps, "width", l.width, "height", l.height)
	defer logger.Info("render loop stopped", "frames", l.presented)

	var events []event.Render
	for l.Flag.Running() {
		events = l.Bus.DrainRender(events[:0])
		for _, e := range events {
			switch e := e.(type) {
			case event.ApplicationTerminate:
				return nil
			case event.WindowResized:
				if e.Width > 0 && e.Height > 0 {
					if err := l.configure(e.Width, e.Height); err != nil {
						return err
					}
				}
			}
		}
		if !l.Flag.Running() {
			return nil
		}

		f, ok := l.Queue.Wait(interval)
		if !ok {
			continue
		}
		if err := l.present(f); err != nil {
			return err
		}
	}
	return nil
}

// Presented returns the number of frames shown so far.
func (l *Loop) Presented() uint64 { return l.presented }

func (l *Loop) configure(w, h int) error {
	if err := l.Surface.Configure(w, h); err != nil {
		return fmt.Errorf("render: configure surface %dx%d: %w", w, h, err)
	}
	l.width, l.height = w, h
	return nil
}

// present retries once after reconfiguring a lost surface.
func (l *Loop) present(f *Frame) error {
	err := l.Surface.Present(f)
	if errors.Is(err, ErrSurfaceLost) {
		if err := l.configure(l.width, l.height); err != nil {
			return err
		}
		err = l.Surface.Present(f)
	}
	if err != nil {
		return fmt.Errorf("render: present frame %d: %w", f.Seq, err)
	}
	l.presented++
	return nil
}
