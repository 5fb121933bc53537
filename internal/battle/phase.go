// Package battle runs a single encounter: it owns every actor, grants
// execution through the ready queue, and decides which collaborator owns
// each tick.
package battle

import (
	"fmt"
	"strings"

	"github.com/samdwyer/bandbattle/internal/finish"
)

// Phase is the top-level state of a session.
type Phase int

const (
	// PhaseInvalid - the session has not started.
	PhaseInvalid Phase = iota
	// PhaseInitial - the entry sequence owns the tick.
	PhaseInitial
	// PhaseNormal - actors run and the ready queue is serviced.
	PhaseNormal
	// PhaseCommand - the command selector owns input.
	PhaseCommand
	// PhaseEvent is reserved for scripted events.
	PhaseEvent
	// PhaseVictory - every enemy is dead; the outcome flow owns the tick.
	PhaseVictory
	// PhaseDefeat - every character is dead; the outcome flow owns the tick.
	PhaseDefeat
	// PhaseExiting - the exit sequence owns the tick.
	PhaseExiting
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInvalid:
		return "invalid"
	case PhaseInitial:
		return "initial"
	case PhaseNormal:
		return "normal"
	case PhaseCommand:
		return "command"
	case PhaseEvent:
		return "event"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	case PhaseExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// Pacing decides whether time stops while a character awaits a command.
type Pacing int

const (
	// PacingActive keeps time running during command selection.
	PacingActive Pacing = iota
	// PacingWait stops time whenever a character needs a command.
	PacingWait
)

// String returns a human-readable pacing name.
func (p Pacing) String() string {
	switch p {
	case PacingActive:
		return "active"
	case PacingWait:
		return "wait"
	default:
		return "unknown"
	}
}

// ParsePacing parses "active" or "wait", ignoring case.
func ParsePacing(s string) (Pacing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "":
		return PacingActive, nil
	case "wait":
		return PacingWait, nil
	default:
		return PacingActive, fmt.Errorf("battle: unknown pacing %q", s)
	}
}

// UnmarshalText lets configuration loaders decode pacing names.
func (p *Pacing) UnmarshalText(text []byte) error {
	v, err := ParsePacing(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Request is something the session asks its owner to do.
type Request int

const (
	// RequestNone means the owner has nothing to do.
	RequestNone Request = iota
	// RequestPause asks the owner to push a pause screen.
	RequestPause
	// RequestQuit asks the owner to confirm quitting.
	RequestQuit
)

// Outcome describes how a finished session ended.
type Outcome struct {
	Victory bool
	// Decision is the confirmed defeat option. It is meaningless on victory.
	Decision finish.Option
	// Aborted is set when the session could not start.
	Aborted bool
}
