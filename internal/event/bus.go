package event

import (
	"sync"
	"sync/atomic"

	"github.com/vovakirdan/millennium-run/internal/fatal"
)

// DefaultBufferSize is used when NewBus is given a non-positive size.
const DefaultBufferSize = 256

// ring is a bounded FIFO that drops its oldest element instead of
// blocking the sender.
type ring[T any] struct {
	ch      chan T
	dropped atomic.Uint64
}

func newRing[T any](size int) *ring[T] {
	return &ring[T]{ch: make(chan T, size)}
}

// send reports false when an older element was dropped to make room.
func (r *ring[T]) send(v T) bool {
	select {
	case r.ch <- v:
		return true
	default:
	}
	// Buffer full: drop the oldest and retry once.
	select {
	case <-r.ch:
		r.dropped.Add(1)
	default:
	}
	select {
	case r.ch <- v:
	default:
		r.dropped.Add(1)
	}
	return false
}

func (r *ring[T]) drain(dst []T) []T {
	for {
		select {
		case v := <-r.ch:
			dst = append(dst, v)
		default:
			return dst
		}
	}
}

// Bus connects the OS goroutine to the two loops. Logic and render events
// are bounded and drop the oldest entry when a consumer falls behind.
// Commands are never dropped, so a PanicError always reaches the OS
// goroutine.
type Bus struct {
	logic  *ring[Logic]
	render *ring[Render]

	mu       sync.Mutex
	commands []Command
	notify   chan struct{}
}

// NewBus creates a bus whose event channels hold size entries each.
func NewBus(size int) *Bus {
	if size < 1 {
		size = DefaultBufferSize
	}
	return &Bus{
		logic:  newRing[Logic](size),
		render: newRing[Render](size),
		notify: make(chan struct{}, 1),
	}
}

// SendLogic queues e for the logic loop. It never blocks and reports false
// when an older event was dropped.
func (b *Bus) SendLogic(e Logic) bool { return b.logic.send(e) }

// SendRender queues e for the render loop. It never blocks and reports
// false when an older event was dropped.
func (b *Bus) SendRender(e Render) bool { return b.render.send(e) }

// SendCommand queues c for the OS goroutine.
func (b *Bus) SendCommand(c Command) {
	b.mu.Lock()
	b.commands = append(b.commands, c)
	b.mu.Unlock()

	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// NotifyPanic sends a PanicError command.
func (b *Bus) NotifyPanic(e *fatal.Error) {
	b.SendCommand(PanicError{Err: e})
}

// DrainLogic appends every pending logic event to dst in FIFO order
// without blocking.
func (b *Bus) DrainLogic(dst []Logic) []Logic { return b.logic.drain(dst) }

// DrainRender appends every pending render event to dst in FIFO order
// without blocking.
func (b *Bus) DrainRender(dst []Render) []Render { return b.render.drain(dst) }

// DrainCommands appends every pending command to dst in FIFO order
// without blocking.
func (b *Bus) DrainCommands(dst []Command) []Command {
	b.mu.Lock()
	defer b.mu.Unlock()
	dst = append(dst, b.commands...)
	clear(b.commands)
	b.commands = b.commands[:0]
	return dst
}

// CommandReady is signalled after SendCommand. It lets the OS goroutine
// wake up early instead of waiting for its next tick.
func (b *Bus) CommandReady() <-chan struct{} { return b.notify }

// Dropped returns how many logic and render events were discarded.
func (b *Bus) Dropped() (logic, render uint64) {
	return b.logic.dropped.Load(), b.render.dropped.Load()
}
