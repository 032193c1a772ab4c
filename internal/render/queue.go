// Package render owns the presentation side: a mailbox of finished frames
// filled by the logic loop, and the render loop that presents them on a
// Surface.
package render

import (
	"sync"
	"time"

	"github.com/vovakirdan/millennium-run/internal/core"
)

// Frame is a finished screen ready to present.
type Frame struct {
	Screen *core.Screen
	Seq    uint64
}

// Queue hands frames from the logic loop to the render loop. Only the
// newest frame is kept: a slow surface skips frames instead of queueing
// them.
type Queue struct {
	mu     sync.Mutex
	width  int
	height int
	latest *Frame
	seq    uint64
	ready  chan struct{}
}

// NewQueue creates a queue for frames of the given size in cells.
func NewQueue(width, height int) *Queue {
	return &Queue{width: width, height: height, ready: make(chan struct{}, 1)}
}

// Size returns the current frame size.
func (q *Queue) Size() (int, int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.width, q.height
}

// Resize changes the size of frames returned by Begin. Non-positive sizes
// are ignored.
func (q *Queue) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	q.mu.Lock()
	q.width, q.height = width, height
	q.mu.Unlock()
}

// Begin returns a blank screen of the current size to draw into.
func (q *Queue) Begin() *core.Screen {
	w, h := q.Size()
	return core.NewScreen(w, h)
}

// Submit publishes s, replacing any frame not yet presented. The caller
// must not modify s afterwards.
func (q *Queue) Submit(s *core.Screen) uint64 {
	q.mu.Lock()
	q.seq++
	q.latest = &Frame{Screen: s, Seq: q.seq}
	seq := q.seq
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
	return seq
}

// Take returns the newest unpresented frame without waiting.
func (q *Queue) Take() (*Frame, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	f := q.latest
	q.latest = nil
	return f, f != nil
}

// Wait blocks up to timeout for a frame.
func (q *Queue) Wait(timeout time.Duration) (*Frame, bool) {
	if f, ok := q.Take(); ok {
		return f, true
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-q.ready:
		return q.Take()
	case <-t.C:
		return nil, false
	}
}
