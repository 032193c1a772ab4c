// Package scene runs a stack of scenes. Only the top scene receives events
// and ticks. Scenes ask for transitions through the shared store and the
// dispatcher applies them once per logic tick.
package scene

import (
	"github.com/vovakirdan/millennium-run/internal/event"
	"github.com/vovakirdan/millennium-run/internal/shared"
)

// Scene is one unit of the stack. Every hook may fail; the logic loop turns
// a failure into a fatal error.
type Scene interface {
	Enter(s *shared.Store) error
	Exit(s *shared.Store) error
	HandleEvent(s *shared.Store, e event.Logic) error
	Update(s *shared.Store, total, elapsed float64) error
	Draw(s *shared.Store) error
}

// Base implements every hook as a no-op. Embed it and override what the
// scene needs.
type Base struct{}

func (Base) Enter(*shared.Store) error                    { return nil }
func (Base) Exit(*shared.Store) error                     { return nil }
func (Base) HandleEvent(*shared.Store, event.Logic) error { return nil }
func (Base) Update(*shared.Store, float64, float64) error { return nil }
func (Base) Draw(*shared.Store) error                     { return nil }

// Transition is a requested change to the stack.
type Transition interface {
	transition()
}

// Keep leaves the stack alone.
type Keep struct{}

// Pop exits and discards the top scene.
type Pop struct{}

// Push enters Scene and places it on top.
type Push struct{ Scene Scene }

// Change replaces the top scene with Scene.
type Change struct{ Scene Scene }

// Reset exits every scene, top first, then pushes Scene.
type Reset struct{ Scene Scene }

func (Keep) transition()   {}
func (Pop) transition()    {}
func (Push) transition()   {}
func (Change) transition() {}
func (Reset) transition()  {}

type pending struct{ t Transition }

// Request records t to be applied after the current tick. A later request
// in the same tick replaces an earlier one.
func Request(s *shared.Store, t Transition) {
	shared.Push(s, pending{t: t})
}

// take removes the pending transition, defaulting to Keep.
func take(s *shared.Store) Transition {
	p, ok := shared.Pop[pending](s)
	if !ok || p.t == nil {
		return Keep{}
	}
	return p.t
}
