package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
)

// SampleRate is the output rate for every cue
const SampleRate = beep.SampleRate(44100)

// Cue is a short sound tied to a control change
type Cue uint8

const (
	CueShape Cue = iota
	CueProjection
	CueReset
	CueToggle

	cueCount
)

var cueNames = [cueCount]string{
	CueShape:      "shape",
	CueProjection: "projection",
	CueReset:      "reset",
	CueToggle:     "toggle",
}

func (c Cue) String() string {
	if c >= cueCount {
		return fmt.Sprintf("Cue(%d)", uint8(c))
	}
	return cueNames[c]
}

// Build synthesizes the streamer for a cue at the given linear volume
// Returns nil for an unknown cue.
func Build(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueShape:
		// Rising two-note chime
		s = beep.Seq(
			tone(659.25, 60*time.Millisecond, WaveSquare, rate),
			tone(987.77, 90*time.Millisecond, WaveSquare, rate),
		)
	case CueProjection:
		s = beep.Mix(
			newVolume(tone(440, 120*time.Millisecond, WaveSine, rate), 0.7),
			newVolume(tone(880, 120*time.Millisecond, WaveSine, rate), 0.3),
		)
	case CueReset:
		// Noise whoosh
		s = NewEnvelope(NewOscillator(0, 150*time.Millisecond, WaveNoise, rate),
			150*time.Millisecond, 10*time.Millisecond, 120*time.Millisecond, rate)
	case CueToggle:
		s = tone(1200, 30*time.Millisecond, WaveSine, rate)
	default:
		return nil
	}
	return newVolume(s, volume)
}

// tone is an enveloped oscillator with short attack and a release over the back half
func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}
