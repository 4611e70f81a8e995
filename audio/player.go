// Package audio plays short synthesized cues through the system speaker.
package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player plays cues; implementations are safe for concurrent use
type Player interface {
	Play(c Cue)
	SetMuted(muted bool)
	Muted() bool
	Close()
}

// speakerPlayer mixes cues into one long-running speaker stream
type speakerPlayer struct {
	mixer  *beep.Mixer
	volume float64
	muted  atomic.Bool
	once   sync.Once
}

// NewPlayer initializes the speaker and starts the mixer
// On failure the caller should fall back to NewSilentPlayer.
func NewPlayer(volume float64, muted bool) (Player, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	p := &speakerPlayer{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
	p.muted.Store(muted)
	speaker.Play(p.mixer)
	return p, nil
}

func (p *speakerPlayer) Play(c Cue) {
	if p.muted.Load() {
		return
	}
	s := Build(c, SampleRate, p.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

func (p *speakerPlayer) SetMuted(muted bool) {
	p.muted.Store(muted)
	if muted {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
}

func (p *speakerPlayer) Muted() bool {
	return p.muted.Load()
}

func (p *speakerPlayer) Close() {
	p.once.Do(func() {
		speaker.Clear()
		speaker.Close()
	})
}

// silentPlayer records mute state and plays nothing
type silentPlayer struct {
	muted atomic.Bool
}

// NewSilentPlayer returns a player for when no audio device is available
func NewSilentPlayer() Player {
	p := &silentPlayer{}
	p.muted.Store(true)
	return p
}

func (p *silentPlayer) Play(Cue)            {}
func (p *silentPlayer) SetMuted(muted bool) { p.muted.Store(muted) }
func (p *silentPlayer) Muted() bool         { return p.muted.Load() }
func (p *silentPlayer) Close()              {}
