// Package action provides the combat actions characters and enemies take:
// abilities and consumable items, resolved with the damage and healing
// formulas described in gamedata.
package action

import (
	"github.com/samdwyer/bandbattle/internal/combat"
	"github.com/samdwyer/bandbattle/internal/gamedata"
)

// Damage calculates damage without applying it.
func Damage(def *gamedata.AbilityDef, user, target *combat.Actor) int {
	if def == nil || def.EffectType != gamedata.EffectDamage {
		return 0
	}
	u, t := user.Stats(), target.Stats()

	var damage int
	switch def.DamageType {
	case gamedata.DamageMagical:
		damage = def.BasePower + u.Magic
	case gamedata.DamageTrue:
		// Unmitigated, and may legitimately be zero.
		return max(def.BasePower, 0)
	default:
		damage = def.BasePower + u.Attack - t.Defense
	}
	if damage < 1 {
		damage = 1
	}
	return damage
}

// Healing calculates healing without applying it.
func Healing(def *gamedata.AbilityDef, user *combat.Actor) int {
	if def == nil || def.EffectType != gamedata.EffectHeal {
		return 0
	}
	healing := def.BasePower + user.Stats().Magic
	if healing < 1 {
		healing = 1
	}
	return healing
}

// Result is what happened to one target.
type Result struct {
	Target  *combat.Actor
	Damage  int
	Healing int
}

// resolve applies def from user to every target.
func resolve(def *gamedata.AbilityDef, user *combat.Actor, targets []*combat.Actor) []Result {
	results := make([]Result, 0, len(targets))
	for _, t := range targets {
		r := Result{Target: t}
		switch def.EffectType {
		case gamedata.EffectDamage:
			r.Damage = t.TakeDamage(Damage(def, user, t))
		case gamedata.EffectHeal:
			r.Healing = t.Heal(Healing(def, user))
		}
		results = append(results, r)
	}
	return results
}
