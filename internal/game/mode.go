// Package game provides the main loop and the stack of screens it drives.
package game

import (
	"time"

	"github.com/samdwyer/bandbattle/internal/input"
	"github.com/samdwyer/bandbattle/internal/ui"
)

// Mode is one screen of the game. Only the top mode of the stack receives
// updates.
type Mode interface {
	Name() string
	Update(g *Game, dt time.Duration, in input.Frame)
	Draw(r *ui.Renderer)
	// Overlay reports whether the mode below is drawn first.
	Overlay() bool
}

// closer is implemented by modes holding resources released when they
// leave the stack.
type closer interface {
	Close(g *Game)
}

// Stack holds the active modes, the top one last.
type Stack struct {
	modes []Mode
}

// Push puts m on top.
func (s *Stack) Push(m Mode) {
	s.modes = append(s.modes, m)
}

// Pop removes and returns the top mode, or nil.
func (s *Stack) Pop() Mode {
	if len(s.modes) == 0 {
		return nil
	}
	m := s.modes[len(s.modes)-1]
	s.modes = s.modes[:len(s.modes)-1]
	return m
}

// Top returns the top mode, or nil.
func (s *Stack) Top() Mode {
	if len(s.modes) == 0 {
		return nil
	}
	return s.modes[len(s.modes)-1]
}

// Len returns the number of modes.
func (s *Stack) Len() int { return len(s.modes) }

// Draw draws the top mode and every overlay-covered mode beneath it,
// bottom first.
func (s *Stack) Draw(r *ui.Renderer) {
	first := len(s.modes) - 1
	for first > 0 && s.modes[first].Overlay() {
		first--
	}
	for i := first; i >= 0 && i < len(s.modes); i++ {
		s.modes[i].Draw(r)
	}
}
