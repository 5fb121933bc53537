package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/bandbattle/internal/battle"
	"github.com/samdwyer/bandbattle/internal/combat"
	"github.com/samdwyer/bandbattle/internal/gamedata"
)

// Enemy is one opponent of an encounter.
type Enemy struct {
	Def    *gamedata.EnemyDef
	Name   string // Display name, suffixed when the lineup repeats a type
	Symbol rune
}

// NewEnemyFromDef creates an enemy from a data-driven definition.
func NewEnemyFromDef(def *gamedata.EnemyDef) *Enemy {
	return &Enemy{
		Def:    def,
		Name:   def.Name,
		Symbol: def.GlyphRune(),
	}
}

// NewLineup builds enemies for the given definitions, lettering
// duplicates ("Goblin A", "Goblin B").
func NewLineup(defs []*gamedata.EnemyDef) []*Enemy {
	total := make(map[string]int)
	for _, d := range defs {
		total[d.ID]++
	}
	seen := make(map[string]int)
	enemies := make([]*Enemy, 0, len(defs))
	for _, d := range defs {
		e := NewEnemyFromDef(d)
		if total[d.ID] > 1 {
			e.Name += " " + string(rune('A'+seen[d.ID]%26))
			seen[d.ID]++
		}
		enemies = append(enemies, e)
	}
	return enemies
}

// Color returns the tcell color for this enemy.
func (e *Enemy) Color() tcell.Color {
	return e.Def.TCellColor()
}

// Setup describes the enemy for a battle session. Drops name items through
// lookup so the outcome screens show display names.
func (e *Enemy) Setup(lookup func(id string) *gamedata.ItemDef) battle.EnemySetup {
	d := e.Def
	s := battle.EnemySetup{
		Spec: combat.Spec{
			Name:      e.Name,
			Side:      combat.SideEnemy,
			Agility:   d.Agility,
			HP:        d.HP,
			Stats:     combat.Stats{Attack: d.Attack, Defense: d.Defense, Magic: d.Magic},
			Abilities: d.Abilities,
		},
		Experience: d.Experience,
		Currency:   d.Currency,
	}
	for _, drop := range d.Drops {
		name := drop.Item
		if lookup != nil {
			if it := lookup(drop.Item); it != nil {
				name = it.Name
			}
		}
		s.Drops = append(s.Drops, battle.DropChance{ItemID: drop.Item, Name: name, Chance: drop.Chance})
	}
	return s
}
