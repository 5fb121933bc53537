package game

import (
	"time"

	"github.com/samdwyer/bandbattle/internal/input"
	"github.com/samdwyer/bandbattle/internal/ui"
)

// pauseMode freezes the mode below it until dismissed.
type pauseMode struct{}

func (pauseMode) Name() string  { return "pause" }
func (pauseMode) Overlay() bool { return true }

func (pauseMode) Update(g *Game, dt time.Duration, in input.Frame) {
	switch {
	case in.Quit:
		g.Stop()
	case in.Pause, in.Confirm, in.Cancel:
		g.pop()
	}
}

func (pauseMode) Draw(r *ui.Renderer) { r.DrawPause() }
