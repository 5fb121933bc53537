package battle

import (
	"log"
	"time"

	"github.com/samdwyer/bandbattle/internal/audio"
	"github.com/samdwyer/bandbattle/internal/combat"
	"github.com/samdwyer/bandbattle/internal/finish"
	"github.com/samdwyer/bandbattle/internal/input"
)

// CommandSelector lets the player choose actions for characters. It reports
// back through Session.NotifyCommandComplete and Session.NotifyCommandCancel.
type CommandSelector interface {
	// Open starts selection for the character. It returns false if the
	// character cannot be served.
	Open(a *combat.Actor) bool
	// Active reports whether a selection is in progress.
	Active() bool
	// Selected returns the character being served, or nil.
	Selected() *combat.Actor
	// Update processes one tick of input while the session is in PhaseCommand.
	Update(s *Session, dt time.Duration, in input.Frame)
	// NotifyActorDeath drops the actor from any menu or target list. If the
	// selected character died the selection ends.
	NotifyActorDeath(a *combat.Actor)
	// CommitInventory makes item consumption of the battle permanent.
	CommitInventory()
	// Close abandons the current selection without notifying the session.
	Close()
}

// Decider picks actions for computer-controlled actors.
type Decider interface {
	Decide(s *Session, a *combat.Actor) combat.Action
}

// Dialogue is a conversation that may run on top of the battle.
type Dialogue interface {
	Active() bool
	Update(dt time.Duration, in input.Frame)
	// HaltsBattle reports whether the battle must stand still while the
	// current line is shown.
	HaltsBattle() bool
}

// Sequence is a cinematic that owns the tick until it finishes.
type Sequence interface {
	Reset()
	// Update advances the sequence and reports whether it has finished.
	Update(dt time.Duration) bool
}

// TimedSequence finishes after a fixed duration.
type TimedSequence struct {
	Duration time.Duration
	elapsed  time.Duration
}

// Reset rewinds the sequence.
func (t *TimedSequence) Reset() { t.elapsed = 0 }

// Update advances the sequence.
func (t *TimedSequence) Update(dt time.Duration) bool {
	if dt > 0 {
		t.elapsed += dt
	}
	return t.elapsed >= t.Duration
}

// Progress returns how far the sequence has run, in [0,1].
func (t *TimedSequence) Progress() float64 {
	if t.Duration <= 0 || t.elapsed >= t.Duration {
		return 1
	}
	return float64(t.elapsed) / float64(t.Duration)
}

// InitHook runs once when the session starts.
type InitHook func(s *Session)

// UpdateHook runs at the start of every tick. Its effects are only visible
// through the session it receives.
type UpdateHook func(s *Session, dt time.Duration)

// Collaborators are the services a session delegates to. Nil fields get
// defaults: no selection, no decisions, no dialogue, timed sequences,
// silent cues and the standard logger.
type Collaborators struct {
	Selector CommandSelector
	Decider  Decider
	Dialogue Dialogue
	Intro    Sequence
	Outro    Sequence
	Rewards  finish.Rewards
	Cues     audio.Player
	Logger   *log.Logger
}

// noSelector refuses every selection.
type noSelector struct{}

func (noSelector) Open(*combat.Actor) bool                     { return false }
func (noSelector) Active() bool                                { return false }
func (noSelector) Selected() *combat.Actor                     { return nil }
func (noSelector) Update(*Session, time.Duration, input.Frame) {}
func (noSelector) NotifyActorDeath(*combat.Actor)              {}
func (noSelector) CommitInventory()                            {}
func (noSelector) Close()                                      {}
