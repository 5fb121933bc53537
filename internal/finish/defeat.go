package finish

import (
	"github.com/samdwyer/bandbattle/internal/audio"
	"github.com/samdwyer/bandbattle/internal/input"
)

// defeat runs the retry menu and its yes/no confirmation.
type defeat struct {
	phase       Phase
	cursor      Option
	enabled     [optionCount]bool
	confirmYes  bool
	retriesLeft int
}

func newDefeat(retriesLeft int, canRestore bool) *defeat {
	d := &defeat{phase: PhaseAnnounceResult, retriesLeft: retriesLeft}
	d.enabled[OptionRetry] = retriesLeft > 0
	d.enabled[OptionRestart] = canRestore
	d.enabled[OptionReturn] = true
	d.enabled[OptionQuit] = true
	return d
}

func (d *defeat) update(in input.Frame, cues audio.Player) {
	switch d.phase {
	case PhaseAnnounceResult:
		d.phase = PhaseDefeatSelect
	case PhaseDefeatSelect:
		switch {
		case in.Confirm:
			if !d.enabled[d.cursor] {
				cues.Play(audio.CueInvalid)
				return
			}
			d.phase = PhaseDefeatConfirm
			d.confirmYes = false
			cues.Play(audio.CueConfirm)
		case in.Up || in.Left:
			d.move(-1)
			cues.Play(audio.CueCursor)
		case in.Down || in.Right:
			d.move(1)
			cues.Play(audio.CueCursor)
		}
	case PhaseDefeatConfirm:
		switch {
		case in.Confirm:
			if d.confirmYes {
				d.phase = PhaseEnd
				cues.Play(audio.CueConfirm)
				return
			}
			d.phase = PhaseDefeatSelect
			cues.Play(audio.CueCancel)
		case in.Cancel:
			d.phase = PhaseDefeatSelect
			cues.Play(audio.CueCancel)
		case in.Up || in.Down || in.Left || in.Right:
			d.confirmYes = !d.confirmYes
			cues.Play(audio.CueCursor)
		}
	}
}

func (d *defeat) move(delta int) {
	next := (int(d.cursor) + delta + optionCount) % optionCount
	d.cursor = Option(next)
}
