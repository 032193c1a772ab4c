package audio

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/millennium-run/internal/settings"
)

// ErrDeviceInit is returned when the output device cannot be opened.
var ErrDeviceInit = errors.New("audio: failed to initialize output device")

// DefaultSampleRate is the device rate when the config does not set one.
const DefaultSampleRate = 44100

// resampleQuality is passed to beep.Resample.
const resampleQuality = 4

// Player plays clips.
type Player interface {
	Play(c *Clip, v settings.Volume)
	Stop()
	Close() error
}

// Speaker plays clips through the default output device. Every clip goes
// into one mixer that is attached to the speaker once.
type Speaker struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	mixer  *beep.Mixer
	logger *log.Logger
	closed bool
}

// NewSpeaker opens the output device at sampleRate. A non-positive rate
// uses DefaultSampleRate.
func NewSpeaker(sampleRate int, logger *log.Logger) (*Speaker, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	rate := beep.SampleRate(sampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceInit, err)
	}

	s := &Speaker{rate: rate, mixer: &beep.Mixer{}, logger: logger}
	speaker.Play(s.mixer)
	logger.Debug("audio device opened", "sample_rate", sampleRate)
	return s, nil
}

// Play mixes c in at volume v. A zero volume is skipped.
func (s *Speaker) Play(c *Clip, v settings.Volume) {
	if c == nil || v == 0 {
		return
	}

	var stream beep.Streamer = c.Streamer()
	if from := c.Format().SampleRate; from != s.rate {
		stream = beep.Resample(resampleQuality, from, s.rate, stream)
	}
	stream = withVolume(stream, v)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.mixer.Add(stream)
	speaker.Unlock()
}

// Stop cuts every playing clip.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
}

// Close stops playback and releases the device.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	speaker.Clear()
	speaker.Close()
	return nil
}

// withVolume scales s so that MaxVolume is unity gain and every halving of
// the setting halves the amplitude.
func withVolume(s beep.Streamer, v settings.Volume) *effects.Volume {
	n := v.Norm()
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(max(n, 1e-3)),
		Silent:   n == 0,
	}
}

// NullPlayer discards clips. It stands in when audio is disabled or the
// device failed to open.
type NullPlayer struct {
	plays atomic.Int64
}

func (p *NullPlayer) Play(c *Clip, v settings.Volume) {
	if c != nil && v > 0 {
		p.plays.Add(1)
	}
}

func (*NullPlayer) Stop()        {}
func (*NullPlayer) Close() error { return nil }

// Plays returns how many clips would have been audible.
func (p *NullPlayer) Plays() int { return int(p.plays.Load()) }

// Open returns a Speaker, or a NullPlayer if enabled is false or the device
// fails. A device failure is logged, not returned.
func Open(enabled bool, sampleRate int, logger *log.Logger) Player {
	if !enabled {
		return &NullPlayer{}
	}
	s, err := NewSpeaker(sampleRate, logger)
	if err != nil {
		logger.Warn("audio disabled", "err", err)
		return &NullPlayer{}
	}
	return s
}
