package script

import (
	"strings"

	"github.com/d5/tengo/v2"

	"github.com/samdwyer/bandbattle/internal/battle"
	"github.com/samdwyer/bandbattle/internal/combat"
)

// engine exposes the session to a script run.
func engine(s *battle.Session) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["announce"] = &tengo.UserFunction{Name: "announce", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		msg := strings.TrimSpace(objectAsString(args[0]))
		if msg == "" {
			return tengo.FalseValue, nil
		}
		s.Announce(msg)
		return tengo.TrueValue, nil
	}}

	values["elapsed_ms"] = &tengo.UserFunction{Name: "elapsed_ms", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: s.Elapsed().Milliseconds()}, nil
	}}

	values["phase"] = &tengo.UserFunction{Name: "phase", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: s.Phase().String()}, nil
	}}

	values["turns"] = &tengo.UserFunction{Name: "turns", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(s.Turns())}, nil
	}}

	values["alive"] = &tengo.UserFunction{Name: "alive", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return &tengo.Int{Value: 0}, nil
		}
		n := 0
		for _, a := range side(s, args[0]) {
			if a.IsValid() {
				n++
			}
		}
		return &tengo.Int{Value: int64(n)}, nil
	}}

	values["hp"] = &tengo.UserFunction{Name: "hp", Value: func(args ...tengo.Object) (tengo.Object, error) {
		a := pick(s, args)
		if a == nil {
			return &tengo.Int{Value: -1}, nil
		}
		return &tengo.Int{Value: int64(a.HP())}, nil
	}}

	values["damage"] = &tengo.UserFunction{Name: "damage", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(apply(s, args, (*combat.Actor).TakeDamage))}, nil
	}}

	values["heal"] = &tengo.UserFunction{Name: "heal", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(apply(s, args, (*combat.Actor).Heal))}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// apply changes vitality only while actors are running; the outcome flow
// must not see a side come back.
func apply(s *battle.Session, args []tengo.Object, fn func(*combat.Actor, int) int) int {
	if p := s.Phase(); p != battle.PhaseNormal && p != battle.PhaseCommand {
		return 0
	}
	a := pick(s, args)
	if a == nil || len(args) < 3 {
		return 0
	}
	amount, ok := tengo.ToInt(args[2])
	if !ok {
		return 0
	}
	return fn(a, amount)
}

func side(s *battle.Session, obj tengo.Object) []*combat.Actor {
	switch objectAsString(obj) {
	case "character", "characters", "party":
		return s.Characters()
	case "enemy", "enemies":
		return s.Enemies()
	default:
		return nil
	}
}

// pick resolves (side, index) arguments.
func pick(s *battle.Session, args []tengo.Object) *combat.Actor {
	if len(args) < 2 {
		return nil
	}
	actors := side(s, args[0])
	i, ok := tengo.ToInt(args[1])
	if !ok || i < 0 || i >= len(actors) {
		return nil
	}
	return actors[i]
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
