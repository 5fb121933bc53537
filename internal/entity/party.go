package entity

import (
	"fmt"

	"github.com/samdwyer/bandbattle/internal/battle"
	"github.com/samdwyer/bandbattle/internal/combat"
	"github.com/samdwyer/bandbattle/internal/finish"
	"github.com/samdwyer/bandbattle/internal/gamedata"
)

// Party is the player's band of characters, their pack and their purse.
type Party struct {
	Members   []*Character
	Inventory *Inventory
	Currency  int
}

// NewParty builds the starting party from its definition.
func NewParty(def gamedata.PartyDef, classes func(id string) *gamedata.ClassDef) *Party {
	p := &Party{Inventory: NewInventory(), Currency: def.Currency}
	for _, m := range def.Members {
		var class *gamedata.ClassDef
		if classes != nil {
			class = classes(m.Class)
		}
		p.Members = append(p.Members, NewCharacter(m.Name, class, m.Level))
	}
	for _, s := range def.Inventory {
		p.Inventory.Add(s.Item, s.Count)
	}
	return p
}

// Specs describes the members as battle actors, in formation order.
func (p *Party) Specs() []combat.Spec {
	specs := make([]combat.Spec, len(p.Members))
	for i, m := range p.Members {
		specs[i] = m.Spec()
	}
	return specs
}

// Levels returns member levels in formation order.
func (p *Party) Levels() []int {
	levels := make([]int, len(p.Members))
	for i, m := range p.Members {
		levels[i] = m.Level
	}
	return levels
}

// Setup combines the party with an enemy lineup.
func (p *Party) Setup(enemies []*Enemy, items func(id string) *gamedata.ItemDef) battle.Setup {
	s := battle.Setup{Characters: p.Specs(), Levels: p.Levels()}
	for _, e := range enemies {
		s.Enemies = append(s.Enemies, e.Setup(items))
	}
	return s
}

// AliveMemberCount returns the number of members with vitality left.
func (p *Party) AliveMemberCount() int {
	n := 0
	for _, m := range p.Members {
		if m.IsAlive() {
			n++
		}
	}
	return n
}

// ApplyRewards writes a victory ledger back to the party.
func (p *Party) ApplyRewards(l finish.Ledger) error {
	if len(l.Experience) != len(p.Members) || len(l.Vitality) != len(p.Members) {
		return fmt.Errorf("entity: ledger covers %d members, party has %d", len(l.Experience), len(p.Members))
	}
	for i, m := range p.Members {
		m.SetVitality(l.Vitality[i])
		m.GainExperience(l.Experience[i])
	}
	p.Currency += l.Currency
	for _, it := range l.Items {
		p.Inventory.Add(it.ItemID, it.Count)
	}
	return nil
}
