package finish

import (
	"time"

	"github.com/samdwyer/bandbattle/internal/audio"
	"github.com/samdwyer/bandbattle/internal/input"
)

// victory counts experience out to the survivors, then currency.
type victory struct {
	phase    Phase
	members  []Member
	xp       *Counter
	currency *Counter
	ledger   Ledger
}

func newVictory(cfg Config, report Report, retriesUsed int) *victory {
	share := 0
	if n := len(report.Members); n > 0 {
		share = report.Experience / n
	}
	share = ApplyRetryPenalty(share, retriesUsed, cfg.MaxAttempts)
	currency := ApplyRetryPenalty(report.Currency, retriesUsed, cfg.MaxAttempts)

	v := &victory{
		phase:    PhaseAnnounceResult,
		members:  append([]Member(nil), report.Members...),
		xp:       NewCounter(cfg.Experience, share),
		currency: NewCounter(cfg.Currency, currency),
	}
	v.ledger.Experience = make([]int, len(report.Members))
	v.ledger.Vitality = make([]int, len(report.Members))
	for i, m := range report.Members {
		v.ledger.Vitality[i] = m.HP
	}
	v.ledger.Items = AggregateDrops(report.Drops)
	return v
}

func (v *victory) update(dt time.Duration, in input.Frame, cues audio.Player) {
	switch v.phase {
	case PhaseAnnounceResult:
		v.phase = PhaseVictoryGrowth
	case PhaseVictoryGrowth:
		if v.step(v.xp, dt, in, cues, v.addExperience) {
			v.phase = PhaseVictorySpoils
		}
	case PhaseVictorySpoils:
		if v.step(v.currency, dt, in, cues, v.addCurrency) {
			v.phase = PhaseEnd
		}
	}
}

// step drives one counter and reports whether the player asked to move on.
func (v *victory) step(c *Counter, dt time.Duration, in input.Frame, cues audio.Player, apply func(int)) bool {
	if in.Confirm {
		sig, n := c.Confirm()
		switch sig {
		case SignalDone:
			cues.Play(audio.CueConfirm)
			return true
		case SignalFlushed:
			apply(n)
			cues.Play(audio.CueFinish)
			return false
		}
	}
	if n := c.Update(dt); n > 0 {
		apply(n)
		if c.Done() {
			cues.Play(audio.CueFinish)
		}
	}
	return false
}

func (v *victory) addExperience(n int) {
	for i, m := range v.members {
		if m.Alive {
			v.ledger.Experience[i] += n
		}
	}
}

func (v *victory) addCurrency(n int) {
	v.ledger.Currency += n
}

// flush applies whatever is still pending on both counters.
func (v *victory) flush() {
	if n := v.xp.Flush(); n > 0 {
		v.addExperience(n)
	}
	if n := v.currency.Flush(); n > 0 {
		v.addCurrency(n)
	}
}
