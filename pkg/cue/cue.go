// Package cue plays the short synthesized sounds that accompany model
// switches and the image viewer.
package cue

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

// Kind identifies a cue.
type Kind int

const (
	Switch Kind = iota // model changed
	Open               // viewer opened
	Close              // viewer closed
	Step               // viewer image changed
)

func (k Kind) String() string {
	switch k {
	case Switch:
		return "switch"
	case Open:
		return "open"
	case Close:
		return "close"
	case Step:
		return "step"
	default:
		return "unknown"
	}
}

// Player plays cues through the speaker. The zero value and a nil
// *Player are silent.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	ready  bool
	log    *zap.Logger
}

// NewPlayer creates a player at volume in [0, 1]. Call Init before Play
// to make it audible.
func NewPlayer(volume float64, log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
		log:    log,
	}
}

// Init opens the audio device. On failure the player stays silent and
// the error is returned for the caller to log.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Play queues cue k. It never blocks on the audio device.
func (p *Player) Play(k Kind) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready || p.volume <= 0 {
		return
	}
	s := Sound(k, p.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.log.Debug("cue", zap.Stringer("kind", k))
}

// Close silences anything still playing.
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.ready = false
}

// Sound builds the streamer for cue k at volume.
func Sound(k Kind, volume float64) beep.Streamer {
	switch k {
	case Switch:
		// Rising two-note chime
		first := blip(523.25, 90*time.Millisecond, 5*time.Millisecond, 60*time.Millisecond)
		second := blip(783.99, 140*time.Millisecond, 5*time.Millisecond, 110*time.Millisecond)
		return withVolume(beep.Seq(first, second), volume)
	case Open:
		return withVolume(sweep(220, 660, 180*time.Millisecond), volume*0.8)
	case Close:
		return withVolume(sweep(660, 220, 180*time.Millisecond), volume*0.8)
	case Step:
		return withVolume(blip(1046.5, 60*time.Millisecond, 3*time.Millisecond, 45*time.Millisecond), volume*0.6)
	default:
		return nil
	}
}

func blip(freq float64, d, attack, release time.Duration) beep.Streamer {
	return newEnvelope(newTone(freq, freq, d), d, attack, release)
}

func sweep(from, to float64, d time.Duration) beep.Streamer {
	return newEnvelope(newTone(from, to, d), d, 10*time.Millisecond, d/2)
}

// withVolume scales s linearly. Zero volume is made silent since the
// effect works in log space.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is a sine whose frequency glides linearly from start to end.
type tone struct {
	start, end float64
	phase      float64
	pos, total int
}

func newTone(start, end float64, d time.Duration) *tone {
	return &tone{start: start, end: end, total: sampleRate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		freq := t.start + (t.end-t.start)*float64(t.pos)/float64(t.total)
		v := math.Sin(2 * math.Pi * t.phase)
		samples[i][0] = v
		samples[i][1] = v

		t.phase += freq / float64(sampleRate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope applies a linear attack and release.
type envelope struct {
	s                      beep.Streamer
	pos                    int
	attack, release, total int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration) *envelope {
	return &envelope{
		s:       s,
		attack:  sampleRate.N(attack),
		release: sampleRate.N(release),
		total:   sampleRate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := range n {
		vol := 1.0
		if e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if rel := e.total - e.pos; e.release > 0 && rel < e.release {
			vol = math.Max(float64(rel)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }
