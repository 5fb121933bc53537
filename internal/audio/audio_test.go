package audio

import (
	"testing"
	"time"
)

func TestCueString(t *testing.T) {
	tests := []struct {
		cue      Cue
		expected string
	}{
		{CueConfirm, "confirm"},
		{CueCancel, "cancel"},
		{CueCursor, "cursor"},
		{CueInvalid, "invalid"},
		{CueFinish, "finish"},
		{CueVictory, "victory"},
		{CueDefeat, "defeat"},
		{Cue(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.cue.String(); got != tt.expected {
			t.Errorf("Cue(%d).String() = %q, want %q", tt.cue, got, tt.expected)
		}
	}
}

func TestEveryCueHasNotes(t *testing.T) {
	for c := CueConfirm; c <= CueDefeat; c++ {
		if len(cueNotes[c]) == 0 {
			t.Errorf("cue %s has no notes", c)
		}
	}
}

func TestCueStreamerLength(t *testing.T) {
	notes := []note{{440, 10 * time.Millisecond}, {880, 20 * time.Millisecond}}
	s := cueStreamer(notes, 1)

	want := sampleRate.N(10*time.Millisecond) + sampleRate.N(20*time.Millisecond)
	buf := make([][2]float64, 256)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}
}

func TestToneBounded(t *testing.T) {
	g := newTone(sampleRate, 440)
	buf := make([][2]float64, 1024)
	n, ok := g.Stream(buf)
	if n != len(buf) || !ok {
		t.Fatalf("Stream() = %d, %v", n, ok)
	}
	for i, s := range buf {
		if s[0] > 0.25 || s[0] < -0.25 || s[0] != s[1] {
			t.Fatalf("sample %d out of range: %v", i, s)
		}
	}
}

func TestDisabledPlayerIsSilent(t *testing.T) {
	p, closeFn := New(false, 1, nil)
	if _, ok := p.(Nop); !ok {
		t.Errorf("New(false) = %T, want Nop", p)
	}
	p.Play(CueConfirm)
	closeFn()
}

func TestUninitializedSpeakerIgnoresPlay(t *testing.T) {
	s := NewSpeaker(1)
	s.Play(CueVictory)
	s.Close()
}
