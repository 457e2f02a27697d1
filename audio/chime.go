// Package audio plays a short chime whenever the donut changes its spin.
package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/lixenwraith/ascii-donut/constants"
)

// Chime signals a re-steer
type Chime interface {
	Play()
	Close() error
}

// silent is the default Chime
type silent struct{}

func (silent) Play()        {}
func (silent) Close() error { return nil }

// Silent returns a Chime that does nothing
func Silent() Chime {
	return silent{}
}

// speakerChime plays through the system audio device
type speakerChime struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	mixer  *beep.Mixer
	closed bool
}

// NewChime opens the speaker; a disabled chime never touches the audio device
func NewChime(enabled bool) (Chime, error) {
	if !enabled {
		return Silent(), nil
	}

	rate := beep.SampleRate(constants.ChimeSampleRate)
	if err := speaker.Init(rate, rate.N(constants.ChimeBufferDuration)); err != nil {
		return nil, errors.Wrap(err, "init speaker")
	}

	c := &speakerChime{
		rate:  rate,
		mixer: &beep.Mixer{},
	}
	speaker.Play(c.mixer)
	return c, nil
}

// Play queues the chime on the mixer without blocking
func (c *speakerChime) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	speaker.Lock()
	c.mixer.Add(chimeSound(c.rate))
	speaker.Unlock()
}

// Close stops playback and releases the audio device
func (c *speakerChime) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	return nil
}

// chimeSound is a rising two-note tone, a fifth apart
func chimeSound(rate beep.SampleRate) beep.Streamer {
	first := note(constants.ChimeFrequency, constants.ChimeDuration, constants.ChimeVolume,
		rate, constants.ChimeAttack, constants.ChimeRelease)
	second := note(constants.ChimeFrequency*1.5, constants.ChimeDuration, constants.ChimeVolume,
		rate, constants.ChimeAttack, constants.ChimeRelease)
	return beep.Seq(first, second)
}
