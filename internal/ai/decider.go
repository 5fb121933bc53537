// Package ai picks actions for computer-controlled actors.
package ai

import (
	"github.com/samdwyer/bandbattle/internal/action"
	"github.com/samdwyer/bandbattle/internal/battle"
	"github.com/samdwyer/bandbattle/internal/combat"
	"github.com/samdwyer/bandbattle/internal/gamedata"
)

// healThreshold is the vitality fraction below which an ally is worth healing.
const healThreshold = 0.5

// Decider implements battle.Decider: a random ability that has something to
// do, aimed at the most wounded target.
type Decider struct {
	abilities *gamedata.AbilityRegistry
}

// NewDecider creates a decider over the given abilities.
func NewDecider(abilities *gamedata.AbilityRegistry) *Decider {
	return &Decider{abilities: abilities}
}

// Decide picks an action for a, or nil when it has nothing usable.
func (d *Decider) Decide(s *battle.Session, a *combat.Actor) combat.Action {
	ids := a.Abilities()
	if len(ids) == 0 {
		return nil
	}

	for _, idx := range s.Rand().Perm(len(ids)) {
		def := d.abilities.GetByID(ids[idx])
		if def == nil || !d.worthwhile(s, def, a) {
			continue
		}
		return action.NewAbility(def, s, d.target(s, def, a))
	}
	return nil
}

// worthwhile skips heals when no ally needs one.
func (d *Decider) worthwhile(s *battle.Session, def *gamedata.AbilityDef, a *combat.Actor) bool {
	candidates := action.Targets(def, s, a, nil)
	if len(candidates) == 0 {
		return false
	}
	if def.EffectType != gamedata.EffectHeal {
		return true
	}
	return lowestFraction(action.Candidates(s, a.Side())) < healThreshold
}

func (d *Decider) target(s *battle.Session, def *gamedata.AbilityDef, a *combat.Actor) *combat.Actor {
	if !def.NeedsTarget() {
		return nil
	}
	return LowestHP(action.Candidates(s, action.TargetSide(def, a)), def.EffectType == gamedata.EffectHeal)
}

// LowestHP returns the actor with the least vitality. With byFraction the
// comparison uses vitality relative to maximum. Ties keep formation order.
func LowestHP(actors []*combat.Actor, byFraction bool) *combat.Actor {
	var lowest *combat.Actor
	for _, a := range actors {
		if lowest == nil {
			lowest = a
			continue
		}
		if byFraction {
			if fraction(a) < fraction(lowest) {
				lowest = a
			}
		} else if a.HP() < lowest.HP() {
			lowest = a
		}
	}
	return lowest
}

func fraction(a *combat.Actor) float64 {
	if a.MaxHP() <= 0 {
		return 0
	}
	return float64(a.HP()) / float64(a.MaxHP())
}

func lowestFraction(actors []*combat.Actor) float64 {
	if a := LowestHP(actors, true); a != nil {
		return fraction(a)
	}
	return 1
}

var _ battle.Decider = (*Decider)(nil)
