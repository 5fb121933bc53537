package battle

import (
	"math/rand"

	"github.com/samdwyer/bandbattle/internal/combat"
	"github.com/samdwyer/bandbattle/internal/finish"
)

// DropChance is an item an enemy may leave behind.
type DropChance struct {
	ItemID string
	Name   string
	// Chance is the probability in [0,1].
	Chance float64
}

// EnemySetup describes one opponent and what defeating it is worth.
type EnemySetup struct {
	Spec       combat.Spec
	Experience int
	Currency   int
	Drops      []DropChance
}

// Setup lists the participants of an encounter in formation order.
type Setup struct {
	Characters []combat.Spec
	Enemies    []EnemySetup
	// Levels are the character levels shown on the outcome screens,
	// indexed like Characters.
	Levels []int
}

func (st Setup) specs() []combat.Spec {
	specs := make([]combat.Spec, 0, len(st.Characters)+len(st.Enemies))
	for _, c := range st.Characters {
		c.Side = combat.SideCharacter
		specs = append(specs, c)
	}
	for _, e := range st.Enemies {
		spec := e.Spec
		spec.Side = combat.SideEnemy
		specs = append(specs, spec)
	}
	return specs
}

// rollDrops decides which items each enemy leaves behind.
func (st Setup) rollDrops(rng *rand.Rand) []finish.Drop {
	var drops []finish.Drop
	for _, e := range st.Enemies {
		for _, d := range e.Drops {
			if rng.Float64() < d.Chance {
				drops = append(drops, finish.Drop{ItemID: d.ItemID, Name: d.Name})
			}
		}
	}
	return drops
}

// Formation origins in screen-relative coordinates.
const (
	characterColumn = 0.75
	enemyColumn     = 0.25
	rowTop          = 0.2
	rowSpacing      = 0.15
)

func assignOrigins(actors []*combat.Actor, column float64) {
	for i, a := range actors {
		a.SetOrigin(column, rowTop+float64(i)*rowSpacing)
	}
}
