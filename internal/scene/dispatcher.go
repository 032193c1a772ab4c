package scene

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/millennium-run/internal/event"
	"github.com/vovakirdan/millennium-run/internal/shared"
)

// ErrStackEmpty is returned by Apply when the last scene was popped. The
// logic loop treats it as a request to quit.
var ErrStackEmpty = errors.New("scene: stack is empty")

// HookError wraps a failure returned by a scene hook.
type HookError struct {
	Hook  string
	Scene string
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("scene: %s %s: %v", e.Scene, e.Hook, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

// Name returns a printable name for s.
func Name(s Scene) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}

// Dispatcher owns the scene stack. It is confined to the logic goroutine.
type Dispatcher struct {
	store  *shared.Store
	logger *log.Logger
	stack  []Scene
}

// NewDispatcher creates an empty dispatcher. Call Start before ticking.
func NewDispatcher(store *shared.Store, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{store: store, logger: logger}
}

// Start enters the first scene.
func (d *Dispatcher) Start(first Scene) error {
	if len(d.stack) != 0 {
		return errors.New("scene: dispatcher already started")
	}
	return d.push(first)
}

// Top returns the scene receiving events, or nil before Start.
func (d *Dispatcher) Top() Scene {
	if len(d.stack) == 0 {
		return nil
	}
	return d.stack[len(d.stack)-1]
}

// Depth returns the number of scenes on the stack.
func (d *Dispatcher) Depth() int { return len(d.stack) }

// HandleEvent forwards e to the top scene.
func (d *Dispatcher) HandleEvent(e event.Logic) error {
	top := d.Top()
	if top == nil {
		return nil
	}
	return d.wrap(top, "handle_events", top.HandleEvent(d.store, e))
}

// Update ticks the top scene.
func (d *Dispatcher) Update(total, elapsed float64) error {
	top := d.Top()
	if top == nil {
		return nil
	}
	return d.wrap(top, "update", top.Update(d.store, total, elapsed))
}

// Draw asks the top scene to submit its frame.
func (d *Dispatcher) Draw() error {
	top := d.Top()
	if top == nil {
		return nil
	}
	return d.wrap(top, "draw", top.Draw(d.store))
}

// Apply performs the transition requested during this tick.
func (d *Dispatcher) Apply() error {
	switch t := take(d.store).(type) {
	case Keep:
		return nil
	case Pop:
		if err := d.pop(); err != nil {
			return err
		}
		if len(d.stack) == 0 {
			return ErrStackEmpty
		}
		return nil
	case Push:
		return d.push(t.Scene)
	case Change:
		if err := d.pop(); err != nil {
			return err
		}
		return d.push(t.Scene)
	case Reset:
		for len(d.stack) > 0 {
			if err := d.pop(); err != nil {
				return err
			}
		}
		return d.push(t.Scene)
	default:
		return fmt.Errorf("scene: unknown transition %T", t)
	}
}

// Shutdown exits every scene, top first. The first error is returned after
// all scenes have been given a chance to exit.
func (d *Dispatcher) Shutdown() error {
	var errs []error
	for len(d.stack) > 0 {
		errs = append(errs, d.pop())
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) push(s Scene) error {
	if s == nil {
		return errors.New("scene: transition to nil scene")
	}
	d.logger.Debug("enter scene", "scene", Name(s), "depth", len(d.stack)+1)
	if err := s.Enter(d.store); err != nil {
		return d.wrap(s, "enter", err)
	}
	d.stack = append(d.stack, s)
	return nil
}

// pop removes the top scene even when its Exit hook fails.
func (d *Dispatcher) pop() error {
	top := d.Top()
	if top == nil {
		return nil
	}
	d.stack[len(d.stack)-1] = nil
	d.stack = d.stack[:len(d.stack)-1]
	d.logger.Debug("exit scene", "scene", Name(top), "depth", len(d.stack))
	return d.wrap(top, "exit", top.Exit(d.store))
}

func (d *Dispatcher) wrap(s Scene, hook string, err error) error {
	if err == nil {
		return nil
	}
	return &HookError{Hook: hook, Scene: Name(s), Err: err}
}
