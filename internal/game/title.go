package game

import (
	"time"

	"github.com/samdwyer/bandbattle/internal/audio"
	"github.com/samdwyer/bandbattle/internal/input"
	"github.com/samdwyer/bandbattle/internal/ui"
)

// titleMode lists the encounters and the party.
type titleMode struct {
	g      *Game
	cursor int
}

func (m *titleMode) Name() string  { return "title" }
func (m *titleMode) Overlay() bool { return false }

// options lists every encounter followed by Quit.
func (m *titleMode) options() []string {
	encounters := m.g.catalog.Encounters
	out := make([]string, 0, len(encounters)+1)
	for _, e := range encounters {
		out = append(out, e.Name)
	}
	return append(out, "Quit")
}

func (m *titleMode) Update(g *Game, dt time.Duration, in input.Frame) {
	n := len(m.options())
	if m.cursor >= n {
		m.cursor = n - 1
	}

	switch {
	case in.Quit:
		g.Stop()
	case in.Up || in.Left:
		m.cursor = (m.cursor + n - 1) % n
		g.cues.Play(audio.CueCursor)
	case in.Down || in.Right:
		m.cursor = (m.cursor + 1) % n
		g.cues.Play(audio.CueCursor)
	case in.Confirm:
		if m.cursor == n-1 {
			g.Stop()
			return
		}
		g.cues.Play(audio.CueConfirm)
		if err := g.StartEncounter(g.catalog.Encounters[m.cursor].ID); err != nil {
			g.cues.Play(audio.CueInvalid)
			g.setNotice(err.Error())
		}
	}
}

func (m *titleMode) Draw(r *ui.Renderer) {
	r.DrawTitle(ui.TitleView{
		Options: m.options(),
		Cursor:  m.cursor,
		Party:   m.g.party,
		Notice:  m.g.notice,
	})
}
