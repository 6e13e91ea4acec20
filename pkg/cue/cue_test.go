package cue

import (
	"math"
	"testing"
	"time"
)

func drain(t *testing.T, k Kind, vol float64) (samples int, peak float64) {
	t.Helper()
	s := Sound(k, vol)
	if s == nil {
		t.Fatalf("no sound for %v", k)
	}
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := range n {
			peak = math.Max(peak, math.Abs(buf[i][0]))
			if buf[i][0] != buf[i][1] {
				t.Fatalf("%v: channels differ at sample %d", k, samples+i)
			}
		}
		samples += n
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		t.Errorf("%v: err = %v", k, err)
	}
	return samples, peak
}

func TestSoundsFinish(t *testing.T) {
	tests := []struct {
		kind Kind
		want time.Duration
	}{
		{Switch, 230 * time.Millisecond},
		{Open, 180 * time.Millisecond},
		{Close, 180 * time.Millisecond},
		{Step, 60 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			n, peak := drain(t, tt.kind, 1)
			if want := sampleRate.N(tt.want); n != want {
				t.Errorf("samples = %d, want %d", n, want)
			}
			if peak <= 0 || peak > 1 {
				t.Errorf("peak = %v, want in (0, 1]", peak)
			}
		})
	}
}

func TestSoundVolume(t *testing.T) {
	_, loud := drain(t, Step, 1)
	_, quiet := drain(t, Step, 0.25)
	if quiet >= loud {
		t.Errorf("quarter volume peak %v not below full %v", quiet, loud)
	}

	_, silent := drain(t, Step, 0)
	if silent != 0 {
		t.Errorf("zero volume peak = %v", silent)
	}
}

func TestUnknownKind(t *testing.T) {
	if Sound(Kind(99), 1) != nil {
		t.Error("unknown cue should have no sound")
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("String = %q", Kind(99).String())
	}
}

func TestEnvelopeEdges(t *testing.T) {
	e := newEnvelope(newTone(440, 440, 10*time.Millisecond), 10*time.Millisecond, 2*time.Millisecond, 2*time.Millisecond)
	buf := make([][2]float64, sampleRate.N(10*time.Millisecond))
	n, _ := e.Stream(buf)
	if n != len(buf) {
		t.Fatalf("n = %d, want %d", n, len(buf))
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %v, want silent attack start", buf[0][0])
	}
	if math.Abs(buf[n-1][0]) > 0.05 {
		t.Errorf("last sample = %v, want faded out", buf[n-1][0])
	}
}

func TestSilentPlayer(t *testing.T) {
	var nilPlayer *Player
	nilPlayer.Play(Switch)
	nilPlayer.Close()

	p := NewPlayer(2, nil)
	if p.volume != 1 {
		t.Errorf("volume = %v, want clamped to 1", p.volume)
	}
	// Not initialised: must not touch the speaker
	p.Play(Open)
	p.Close()
}
