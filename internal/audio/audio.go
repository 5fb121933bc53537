// Package audio plays the short synthesized cues used by battle menus.
package audio

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue identifies a sound effect.
type Cue int

const (
	CueConfirm Cue = iota
	CueCancel
	CueCursor
	CueInvalid
	CueFinish
	CueVictory
	CueDefeat
)

// String returns a human-readable cue name.
func (c Cue) String() string {
	switch c {
	case CueConfirm:
		return "confirm"
	case CueCancel:
		return "cancel"
	case CueCursor:
		return "cursor"
	case CueInvalid:
		return "invalid"
	case CueFinish:
		return "finish"
	case CueVictory:
		return "victory"
	case CueDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Player plays cues. Implementations must not block the caller.
type Player interface {
	Play(c Cue)
}

// Nop is a Player that stays silent.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Cue) {}

// note is one tone of a cue.
type note struct {
	freq     float64
	duration time.Duration
}

var cueNotes = map[Cue][]note{
	CueConfirm: {{880, 60 * time.Millisecond}},
	CueCancel:  {{440, 60 * time.Millisecond}, {330, 60 * time.Millisecond}},
	CueCursor:  {{660, 25 * time.Millisecond}},
	CueInvalid: {{110, 150 * time.Millisecond}},
	CueFinish:  {{1320, 40 * time.Millisecond}},
	CueVictory: {{523, 90 * time.Millisecond}, {659, 90 * time.Millisecond}, {784, 180 * time.Millisecond}},
	CueDefeat:  {{392, 150 * time.Millisecond}, {311, 150 * time.Millisecond}, {262, 300 * time.Millisecond}},
}

// Speaker plays cues through the system audio device.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSpeaker creates a speaker. Call Initialize before playing.
func NewSpeaker(volume float64) *Speaker {
	return &Speaker{mixer: &beep.Mixer{}, volume: volume}
}

// Initialize opens the audio device.
func (s *Speaker) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play queues the cue on the mixer.
func (s *Speaker) Play(c Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	notes, ok := cueNotes[c]
	if !ok {
		return
	}
	streamer := cueStreamer(notes, s.volume)
	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

// Close silences everything still playing.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

// New returns a speaker when enabled and the device opens, otherwise a
// silent player. The returned close function is always safe to call.
func New(enabled bool, volume float64, logger *log.Logger) (Player, func()) {
	if !enabled {
		return Nop{}, func() {}
	}
	s := NewSpeaker(volume)
	if err := s.Initialize(); err != nil {
		if logger != nil {
			logger.Printf("Warning: audio disabled: %v", err)
		}
		return Nop{}, func() {}
	}
	return s, s.Close
}

func cueStreamer(notes []note, volume float64) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, beep.Take(sampleRate.N(n.duration), newTone(sampleRate, n.freq)))
	}
	return withVolume(beep.Seq(parts...), volume)
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is a sine generator with a short attack to avoid clicks.
type tone struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func newTone(sr beep.SampleRate, freq float64) *tone {
	return &tone{sr: sr, freq: freq}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		at := float64(t.pos) / float64(t.sr)
		attack := math.Min(at/0.005, 1.0)
		v := 0.25 * attack * math.Sin(2*math.Pi*t.freq*at)
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
