package constants

import "time"

// Steer Chime
const (
	// ChimeSampleRate is the speaker sample rate in Hz
	ChimeSampleRate = 44100

	// ChimeBufferDuration is the speaker buffer length
	ChimeBufferDuration = 100 * time.Millisecond

	// ChimeFrequency is the tone played when the spin axis is re-steered
	ChimeFrequency = 660.0

	// ChimeDuration is the tone length
	ChimeDuration = 120 * time.Millisecond

	// ChimeRelease is the fade-out tail at the end of the tone
	ChimeRelease = 40 * time.Millisecond

	// ChimeVolume is the beep effects.Volume exponent (base 2), negative is quieter
	ChimeVolume = -2.0
)

// ChimeAttack is the fade-in at the start of each note
const ChimeAttack = 5 * time.Millisecond
