package action

import (
	"time"

	"github.com/samdwyer/bandbattle/internal/combat"
	"github.com/samdwyer/bandbattle/internal/gamedata"
)

// Stock is the inventory an item action draws from.
type Stock interface {
	Reserve(id string) bool
	Release(id string)
	Use(id string) bool
}

// Item is a combat.Action that consumes an inventory item. The item is
// reserved while the action waits and released if it is cancelled.
type Item struct {
	ability *Ability
	def     *gamedata.ItemDef
	stock   Stock
	settled bool
}

// NewItem reserves one item from stock. It returns nil if none is left.
func NewItem(def *gamedata.ItemDef, stock Stock, field Field, target *combat.Actor) *Item {
	if !stock.Reserve(def.ID) {
		return nil
	}
	return &Item{
		ability: NewAbility(&def.AbilityDef, field, target),
		def:     def,
		stock:   stock,
	}
}

// Def returns the item definition.
func (it *Item) Def() *gamedata.ItemDef { return it.def }

// Name implements combat.Action.
func (it *Item) Name() string { return it.def.Name }

// WarmUpTime implements combat.Action.
func (it *Item) WarmUpTime() time.Duration { return it.ability.WarmUpTime() }

// ExecutionTime implements combat.Action.
func (it *Item) ExecutionTime() time.Duration { return it.ability.ExecutionTime() }

// Execute implements combat.Action. The item is consumed even if its
// effect finds no target.
func (it *Item) Execute(user *combat.Actor) bool {
	if it.settled {
		return false
	}
	it.settled = true
	it.stock.Use(it.def.ID)
	return it.ability.Execute(user)
}

// Cancel implements combat.Action.
func (it *Item) Cancel() {
	if it.settled {
		return
	}
	it.settled = true
	it.stock.Release(it.def.ID)
}

// Ensure the actions implement combat.Action
var (
	_ combat.Action = (*Ability)(nil)
	_ combat.Action = (*Item)(nil)
)
