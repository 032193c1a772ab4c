// Package audio decodes sound assets and plays them through the system
// speaker.
package audio

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// Clip is a fully decoded sound held in memory.
type Clip struct {
	buf *beep.Buffer
}

// Format returns the sample format of the clip.
func (c *Clip) Format() beep.Format { return c.buf.Format() }

// Len returns the number of samples.
func (c *Clip) Len() int { return c.buf.Len() }

// Duration returns the play time.
func (c *Clip) Duration() time.Duration {
	return c.buf.Format().SampleRate.D(c.buf.Len())
}

// Streamer returns a new stream over the whole clip.
func (c *Clip) Streamer() beep.StreamSeeker {
	return c.buf.Streamer(0, c.buf.Len())
}

// WavDecoder decodes RIFF WAVE bytes into a Clip.
type WavDecoder struct{}

func (WavDecoder) Decode(data []byte) (*Clip, error) {
	s, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("audio: decode wav: %w", err)
	}
	defer s.Close()

	buf := beep.NewBuffer(format)
	buf.Append(s)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("audio: read wav samples: %w", err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("audio: wav has no samples")
	}
	return &Clip{buf: buf}, nil
}
