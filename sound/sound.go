// Package sound plays short synthesized cues for host events such as saving
// or spawning. Nothing is loaded from disk.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

type Cue uint8

const (
	CueSave Cue = iota + 1
	CueLoad
	CueSpawn
	CueError
)

type note struct {
	freq float64
	dur  time.Duration
}

var cues = map[Cue][]note{
	CueSave:  {{660, 60 * time.Millisecond}, {880, 90 * time.Millisecond}},
	CueLoad:  {{880, 60 * time.Millisecond}, {660, 90 * time.Millisecond}},
	CueSpawn: {{520, 70 * time.Millisecond}},
	CueError: {{180, 120 * time.Millisecond}, {0, 40 * time.Millisecond}, {180, 120 * time.Millisecond}},
}

// Player is safe to use before Init and after Init fails; it stays silent.
type Player struct {
	// Volume is a gain exponent in base 2: 0 is unchanged, -1 halves.
	Volume float64

	mu    sync.Mutex
	ready bool
}

func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	p.ready = true
	return nil
}

func (p *Player) Play(c Cue) {
	if p == nil {
		return
	}
	p.mu.Lock()
	ready := p.ready
	p.mu.Unlock()
	if !ready {
		return
	}
	if s := p.streamer(c); s != nil {
		speaker.Play(s)
	}
}

func (p *Player) streamer(c Cue) beep.Streamer {
	notes, ok := cues[c]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = newTone(n.freq, sampleRate.N(n.dur), sampleRate)
	}
	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: p.Volume}
}

// tone is a sine wave with a short linear attack and release. A zero
// frequency is a rest.
type tone struct {
	freq  float64
	sr    beep.SampleRate
	n     int
	pos   int
	phase float64
}

const amplitude = 0.25

func newTone(freq float64, n int, sr beep.SampleRate) *tone {
	return &tone{freq: freq, sr: sr, n: n}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.n {
		return 0, false
	}
	ramp := max(1, t.sr.N(5*time.Millisecond))
	i := 0
	for ; i < len(samples) && t.pos < t.n; i++ {
		env := math.Min(1, math.Min(float64(t.pos)/float64(ramp), float64(t.n-t.pos)/float64(ramp)))
		v := amplitude * env * math.Sin(2*math.Pi*t.phase)
		if t.freq == 0 {
			v = 0
		}
		samples[i][0] = v
		samples[i][1] = v
		t.phase += t.freq / float64(t.sr)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return i, true
}

func (t *tone) Err() error { return nil }
