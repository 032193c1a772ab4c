// Package timer measures frame time for the logic loop: a smoothed elapsed
// time over the last MaxFrameTimes frames, a once-per-second FPS counter,
// pause/resume, and an optional frame-rate cap.
package timer

import (
	"math"
	"time"
)

// MaxFrameTimes is the number of frame deltas averaged into Elapsed.
const MaxFrameTimes = 50

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock with monotonic time.
var SystemClock Clock = systemClock{}

// FrameTimer is ticked once per logic iteration. It is not safe for
// concurrent use.
type FrameTimer struct {
	clock Clock

	base     time.Time
	previous time.Time
	current  time.Time
	pausedAt time.Time
	paused   bool

	frames [MaxFrameTimes]float64
	count  int

	fpsFrames int
	fpsAccum  float64
	fps       int

	elapsed float64
}

// New creates a timer on the system clock.
func New() *FrameTimer {
	return NewWithClock(SystemClock)
}

// NewWithClock creates a timer on c.
func NewWithClock(c Clock) *FrameTimer {
	now := c.Now()
	return &FrameTimer{
		clock:    c,
		base:     now,
		previous: now,
		current:  now,
	}
}

// Tick advances the timer by one frame. If vsync > 0 it spins until at least
// 1/vsync seconds have passed since the previous frame.
func (t *FrameTimer) Tick(vsync int) {
	if t.paused {
		t.elapsed = 0
		return
	}

	now := t.clock.Now()
	d := now.Sub(t.previous).Seconds()
	if vsync > 0 {
		target := 1.0 / float64(vsync)
		for d < target {
			now = t.clock.Now()
			d = now.Sub(t.previous).Seconds()
		}
	}
	t.previous = now
	t.current = now

	// Outliers (a stall or a debugger break) stay out of the average.
	if math.Abs(t.elapsed-d) < 1.0 {
		copy(t.frames[1:], t.frames[:MaxFrameTimes-1])
		t.frames[0] = d
		t.count = min(t.count+1, MaxFrameTimes)
	}

	t.fpsFrames++
	t.fpsAccum += d
	if t.fpsAccum >= 1.0 {
		t.fps = t.fpsFrames
		t.fpsFrames = 0
		t.fpsAccum -= 1.0
	}

	if t.count > 0 {
		var sum float64
		for _, f := range t.frames[:t.count] {
			sum += f
		}
		t.elapsed = sum / float64(t.count)
	}
}

// Pause stops the timer. Elapsed and FPS read zero until Resume.
func (t *FrameTimer) Pause() {
	if t.paused {
		return
	}
	t.paused = true
	t.pausedAt = t.clock.Now()
	t.elapsed = 0
	t.fps = 0
}

// Resume restarts a paused timer and returns how long it was paused, in
// seconds. The paused span is not counted as a frame.
func (t *FrameTimer) Resume() float64 {
	if !t.paused {
		return 0
	}
	d := t.clock.Now().Sub(t.pausedAt)
	t.previous = t.previous.Add(d)
	t.paused = false
	t.pausedAt = time.Time{}
	return d.Seconds()
}

// Paused reports whether the timer is paused.
func (t *FrameTimer) Paused() bool { return t.paused }

// Total returns the seconds since the timer was created.
func (t *FrameTimer) Total() float64 {
	return t.clock.Now().Sub(t.base).Seconds()
}

// Elapsed returns the smoothed frame time in seconds.
func (t *FrameTimer) Elapsed() float64 { return t.elapsed }

// FPS returns the frame count of the last full second.
func (t *FrameTimer) FPS() int { return t.fps }
