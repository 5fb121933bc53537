package action

import (
	"fmt"
	"strings"
	"time"

	"github.com/samdwyer/bandbattle/internal/combat"
	"github.com/samdwyer/bandbattle/internal/gamedata"
)

// Field is the battlefield an action resolves against. *battle.Session
// satisfies it.
type Field interface {
	Characters() []*combat.Actor
	Enemies() []*combat.Actor
	Announce(msg string)
}

// Ability is a combat.Action backed by an ability definition.
type Ability struct {
	def     *gamedata.AbilityDef
	field   Field
	target  *combat.Actor
	results []Result
}

// NewAbility creates an action using def. target is the chosen actor for
// single-target abilities and is ignored otherwise.
func NewAbility(def *gamedata.AbilityDef, field Field, target *combat.Actor) *Ability {
	return &Ability{def: def, field: field, target: target}
}

// Def returns the ability definition.
func (a *Ability) Def() *gamedata.AbilityDef { return a.def }

// Target returns the chosen target, or nil.
func (a *Ability) Target() *combat.Actor { return a.target }

// Results returns what the last Execute did.
func (a *Ability) Results() []Result { return a.results }

// Name implements combat.Action.
func (a *Ability) Name() string { return a.def.Name }

// WarmUpTime implements combat.Action.
func (a *Ability) WarmUpTime() time.Duration { return a.def.WarmUp() }

// ExecutionTime implements combat.Action.
func (a *Ability) ExecutionTime() time.Duration { return a.def.Execution() }

// Cancel implements combat.Action. Abilities hold nothing.
func (a *Ability) Cancel() {}

// Execute implements combat.Action. A single target that fell while the
// user was warming up is replaced by another valid actor of the same side.
func (a *Ability) Execute(user *combat.Actor) bool {
	targets := Targets(a.def, a.field, user, a.target)
	if len(targets) == 0 {
		a.field.Announce(fmt.Sprintf("%s's %s finds no target.", user.Name(), a.def.Name))
		return false
	}
	a.results = resolve(a.def, user, targets)
	a.field.Announce(describe(user, a.def.Name, a.results))
	return true
}

// Targets returns the valid actors def affects when used by user.
func Targets(def *gamedata.AbilityDef, field Field, user, chosen *combat.Actor) []*combat.Actor {
	if def.TargetType == gamedata.TargetSelf {
		if user.IsValid() {
			return []*combat.Actor{user}
		}
		return nil
	}

	candidates := Candidates(field, TargetSide(def, user))
	if def.HitsAll() {
		return candidates
	}
	if chosen != nil && chosen.IsValid() {
		return []*combat.Actor{chosen}
	}
	if len(candidates) > 0 {
		return candidates[:1]
	}
	return nil
}

// TargetSide returns the side def aims at when used by user.
func TargetSide(def *gamedata.AbilityDef, user *combat.Actor) combat.Side {
	if !def.IsOffensive() {
		return user.Side()
	}
	if user.IsCharacter() {
		return combat.SideEnemy
	}
	return combat.SideCharacter
}

// Candidates returns the valid actors of a side in formation order.
func Candidates(field Field, side combat.Side) []*combat.Actor {
	all := field.Characters()
	if side == combat.SideEnemy {
		all = field.Enemies()
	}
	var out []*combat.Actor
	for _, a := range all {
		if a.IsValid() {
			out = append(out, a)
		}
	}
	return out
}

func describe(user *combat.Actor, name string, results []Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s uses %s", user.Name(), name)
	for i, r := range results {
		if i == 0 {
			b.WriteString(":")
		} else {
			b.WriteString(",")
		}
		switch {
		case r.Damage > 0:
			fmt.Fprintf(&b, " %s -%d", r.Target.Name(), r.Damage)
		case r.Healing > 0:
			fmt.Fprintf(&b, " %s +%d", r.Target.Name(), r.Healing)
		default:
			fmt.Fprintf(&b, " %s unaffected", r.Target.Name())
		}
	}
	return b.String()
}
