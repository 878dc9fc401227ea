// Package audio plays short synthesized cues for the window front end.
// Everything is generated at runtime; there are no sound files.
package audio

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a sound the game can ask for.
type Cue int

const (
	CueShot Cue = iota
	CueHit
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueShot:
		return "shot"
	case CueHit:
		return "hit"
	case CueGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Tally is the per-frame counters cues are derived from. Collisions and
// Rounds stand in for GameOver under the continue and reset policies.
type Tally struct {
	Shots      int
	Kills      int
	Collisions int
	Rounds     int
	GameOver   bool
}

// Cues returns the cues for what changed between two frames. At most one cue
// of each kind is produced per frame, however many events happened.
func Cues(prev, cur Tally) []Cue {
	var cues []Cue
	if cur.Shots > prev.Shots {
		cues = append(cues, CueShot)
	}
	if cur.Kills > prev.Kills {
		cues = append(cues, CueHit)
	}
	if (cur.GameOver && !prev.GameOver) || cur.Collisions > prev.Collisions || cur.Rounds > prev.Rounds {
		cues = append(cues, CueGameOver)
	}
	return cues
}

// Player mixes cues onto the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	logger      *log.Logger
	initialized bool
	muted       bool
}

// NewPlayer creates a player. Nothing is played until Init succeeds.
func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Init opens the audio device. On failure the player stays silent; the
// error is returned for the caller to log.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// SetMuted silences future cues without closing the device.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Muted reports whether cues are silenced.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Play queues a cue. It is a no-op before Init or while muted.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}

	speaker.Lock()
	p.mixer.Add(cueStreamer(c))
	speaker.Unlock()
	p.logger.Debug("cue", "kind", c)
}

// PlayAll plays every cue in order.
func (p *Player) PlayAll(cues []Cue) {
	for _, c := range cues {
		p.Play(c)
	}
}

// Close stops all sounds and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// cueStreamer builds the finite streamer for a cue.
func cueStreamer(c Cue) beep.Streamer {
	switch c {
	case CueShot:
		return NewBlip(sampleRate, 880, 40*time.Millisecond, 0.12)
	case CueHit:
		return NewBlip(sampleRate, 220, 90*time.Millisecond, 0.25)
	default:
		return beep.Seq(
			NewBlip(sampleRate, 330, 150*time.Millisecond, 0.3),
			NewBlip(sampleRate, 165, 350*time.Millisecond, 0.3),
		)
	}
}

// Blip is a sine tone with a linear decay, ending after its duration.
type Blip struct {
	sr     beep.SampleRate
	freq   float64
	amp    float64
	pos    int
	length int
}

// NewBlip creates a blip of the given frequency, duration and peak amplitude.
func NewBlip(sr beep.SampleRate, freq float64, d time.Duration, amp float64) *Blip {
	return &Blip{
		sr:     sr,
		freq:   freq,
		amp:    math.Min(math.Abs(amp), 1),
		length: sr.N(d),
	}
}

// Stream fills samples until the blip is over.
func (b *Blip) Stream(samples [][2]float64) (n int, ok bool) {
	if b.pos >= b.length {
		return 0, false
	}
	for i := range samples {
		if b.pos >= b.length {
			return i, true
		}
		t := float64(b.pos) / float64(b.sr)
		envelope := 1 - float64(b.pos)/float64(b.length)
		v := b.amp * envelope * math.Sin(2*math.Pi*b.freq*t)
		samples[i][0] = v
		samples[i][1] = v
		b.pos++
	}
	return len(samples), true
}

// Err always returns nil.
func (b *Blip) Err() error {
	return nil
}

// Len returns the total number of samples.
func (b *Blip) Len() int {
	return b.length
}
