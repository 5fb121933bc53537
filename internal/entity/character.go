// Package entity provides the persistent side of battles: the party's
// characters and pack, and enemies built from their definitions.
package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/bandbattle/internal/combat"
	"github.com/samdwyer/bandbattle/internal/gamedata"
)

// MaxLevel caps character growth.
const MaxLevel = 50

// Character is a party member that persists between battles.
type Character struct {
	Name   string
	Class  *gamedata.ClassDef
	Symbol rune

	Level      int
	Experience int // Total experience earned

	HP, MaxHP int
	Agility   int
	Attack    int
	Defense   int
	Magic     int

	AbilityIDs []string
}

// NewCharacter creates a character of the given class at level 1 and then
// grows it to level.
func NewCharacter(name string, class *gamedata.ClassDef, level int) *Character {
	c := &Character{
		Name:   name,
		Class:  class,
		Symbol: '?',
		Level:  1,
	}
	if class != nil {
		c.Symbol = class.SymbolRune()
		c.MaxHP = class.HP
		c.Agility = class.Agility
		c.Attack = class.Attack
		c.Defense = class.Defense
		c.Magic = class.Magic
		c.AbilityIDs = append([]string(nil), class.Abilities...)
	}
	for c.Level < level && c.Level < MaxLevel {
		c.levelUp()
	}
	c.Experience = ExperienceForLevel(c.Level)
	c.HP = c.MaxHP
	return c
}

// ExperienceForLevel returns the total experience needed to reach level.
func ExperienceForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return 50 * (level - 1) * level
}

// GainExperience adds experience and returns how many levels were gained.
// Fallen characters still learn from a won battle.
func (c *Character) GainExperience(amount int) int {
	if amount <= 0 {
		return 0
	}
	c.Experience += amount
	gained := 0
	for c.Level < MaxLevel && c.Experience >= ExperienceForLevel(c.Level+1) {
		c.levelUp()
		gained++
	}
	return gained
}

func (c *Character) levelUp() {
	c.Level++
	if c.Class == nil {
		return
	}
	g := c.Class.Growth
	c.MaxHP += g.HP
	c.Agility += g.Agility
	c.Attack += g.Attack
	c.Defense += g.Defense
	c.Magic += g.Magic
}

// SetVitality stores the vitality the character ended a battle with.
func (c *Character) SetVitality(hp int) {
	switch {
	case hp < 0:
		hp = 0
	case hp > c.MaxHP:
		hp = c.MaxHP
	}
	c.HP = hp
}

// IsAlive returns true if the character has vitality remaining.
func (c *Character) IsAlive() bool { return c.HP > 0 }

// Spec describes the character as a battle actor. A fallen character enters
// with one point of vitality so it can act and be healed.
func (c *Character) Spec() combat.Spec {
	hp := c.HP
	if hp <= 0 {
		hp = 1
	}
	return combat.Spec{
		Name:      c.Name,
		Side:      combat.SideCharacter,
		Agility:   c.Agility,
		HP:        hp,
		MaxHP:     c.MaxHP,
		Stats:     combat.Stats{Attack: c.Attack, Defense: c.Defense, Magic: c.Magic},
		Abilities: c.AbilityIDs,
	}
}

// Color returns the class color.
func (c *Character) Color() tcell.Color {
	if c.Class == nil {
		return tcell.ColorWhite
	}
	return c.Class.TCellColor()
}
