// Package event defines the messages exchanged between the OS goroutine, the
// logic loop and the render loop, and the Bus that carries them.
package event

import (
	"time"

	"github.com/vovakirdan/millennium-run/internal/core"
	"github.com/vovakirdan/millennium-run/internal/fatal"
	"github.com/vovakirdan/millennium-run/internal/settings"
)

// Logic is an event sent from the OS goroutine to the logic loop.
type Logic interface {
	logicEvent()
}

// Render is an event sent from the OS goroutine to the render loop.
type Render interface {
	renderEvent()
}

// Command is a request sent to the OS goroutine.
type Command interface {
	command()
}

// NextMainEvents starts an OS pump iteration.
type NextMainEvents struct {
	At time.Time
}

// MainEventsCleared ends an OS pump iteration.
type MainEventsCleared struct{}

// ApplicationPaused is sent when the window loses focus.
type ApplicationPaused struct{}

// ApplicationResumed is sent when the window regains focus.
type ApplicationResumed struct{}

// ApplicationTerminate asks a loop to return.
type ApplicationTerminate struct{}

// WindowResized carries the new inner size in cells.
type WindowResized struct {
	Width, Height int
}

// WindowMoved carries the new window position.
type WindowMoved struct {
	X, Y int
}

// KeyPressed reports a key going down.
type KeyPressed struct {
	Key core.Key
}

// KeyReleased reports a key going up.
type KeyReleased struct {
	Key core.Key
}

// CursorMoved carries the pointer position in cells.
type CursorMoved struct {
	X, Y int
}

// MouseWheel carries scroll deltas.
type MouseWheel struct {
	H, V int
}

// MousePressed reports a mouse button going down.
type MousePressed struct {
	Button core.Button
}

// MouseReleased reports a mouse button going up.
type MouseReleased struct {
	Button core.Button
}

func (NextMainEvents) logicEvent()       {}
func (MainEventsCleared) logicEvent()    {}
func (ApplicationPaused) logicEvent()    {}
func (ApplicationResumed) logicEvent()   {}
func (ApplicationTerminate) logicEvent() {}
func (WindowResized) logicEvent()        {}
func (WindowMoved) logicEvent()          {}
func (KeyPressed) logicEvent()           {}
func (KeyReleased) logicEvent()          {}
func (CursorMoved) logicEvent()          {}
func (MouseWheel) logicEvent()           {}
func (MousePressed) logicEvent()         {}
func (MouseReleased) logicEvent()        {}

func (ApplicationTerminate) renderEvent() {}
func (WindowResized) renderEvent()        {}

// PanicError carries a fatal error to the OS goroutine, which shows it and
// exits.
type PanicError struct {
	Err *fatal.Error
}

// Terminate asks the OS goroutine for a normal shutdown.
type Terminate struct{}

// SetTitle changes the window title.
type SetTitle struct {
	Title string
}

// SetDisplay applies a new resolution and screen mode to the window.
type SetDisplay struct {
	Resolution settings.Resolution
	Mode       settings.ScreenMode
}

func (PanicError) command() {}
func (Terminate) command()  {}
func (SetTitle) command()   {}
func (SetDisplay) command() {}
