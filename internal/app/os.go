package app

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/millennium-run/internal/assets"
	"github.com/vovakirdan/millennium-run/internal/event"
	"github.com/vovakirdan/millennium-run/internal/fatal"
	"github.com/vovakirdan/millennium-run/internal/lifecycle"
)

// Summary and message of the fatal raised when a Static asset changes on
// disk while the game runs.
const (
	CorruptionSummary = "Asset file corruption detection"
	CorruptionMessage = "A game asset was modified while the game was running. Reinstall the game or restore the file."
)

// Status is what the OS side has to act on after a poll.
type Status struct {
	// Fatal is the first unrecoverable error reported since the last poll.
	Fatal *fatal.Error
	// Quit is set once a Terminate command arrived.
	Quit bool
	// Title is the last requested window title, or "".
	Title string
	// Display is the last requested display change, or nil.
	Display *event.SetDisplay
}

// OS is the platform half of the runtime. The platform calls it from the
// goroutine that owns the terminal.
type OS struct {
	Bus    *event.Bus
	Flag   *lifecycle.Flag
	Cache  *assets.Cache
	Logger *log.Logger

	cmds []event.Command
}

// NewOS binds the OS side to a runtime.
func NewOS(r *Runtime) *OS {
	return &OS{Bus: r.Bus, Flag: r.Flag, Cache: r.Cache, Logger: r.Logger}
}

func (o *OS) logger() *log.Logger {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o.Logger
}

// Poll checks the asset integrity flag and drains pending commands.
func (o *OS) Poll() Status {
	var st Status
	if o.Cache != nil && o.Cache.Poisoned() {
		st.Fatal = fatal.New(CorruptionSummary, CorruptionMessage)
		o.Flag.Stop()
	}

	o.cmds = o.Bus.DrainCommands(o.cmds[:0])
	for _, c := range o.cmds {
		switch c := c.(type) {
		case event.PanicError:
			if st.Fatal == nil {
				st.Fatal = c.Err
			}
		case event.Terminate:
			st.Quit = true
		case event.SetTitle:
			st.Title = c.Title
		case event.SetDisplay:
			st.Display = &c
		}
	}
	clear(o.cmds)

	if st.Quit {
		o.Close()
	}
	return st
}

// Send forwards a platform event to the logic loop. Resize and terminate
// events also go to the render loop.
func (o *OS) Send(e event.Logic) {
	if !o.Bus.SendLogic(e) {
		o.logger().Warn("logic event queue full, dropped oldest")
	}
	if r, ok := e.(event.Render); ok {
		if !o.Bus.SendRender(r) {
			o.logger().Warn("render event queue full, dropped oldest")
		}
	}
}

// Close asks both loops to terminate and lowers the flag.
func (o *OS) Close() {
	o.Bus.SendLogic(event.ApplicationTerminate{})
	o.Bus.SendRender(event.ApplicationTerminate{})
	if o.Flag.Stop() {
		o.logger().Info("shutdown requested")
	}
}
