package action

import (
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/samdwyer/bandbattle/internal/combat"
	"github.com/samdwyer/bandbattle/internal/gamedata"
)

func init() {
	combat.SetLogger(log.New(io.Discard, "", 0))
}

// fakeField is a battlefield backed by an arena.
type fakeField struct {
	arena    *combat.Arena
	messages []string
}

func (f *fakeField) Characters() []*combat.Actor { return f.arena.Characters() }
func (f *fakeField) Enemies() []*combat.Actor    { return f.arena.Enemies() }
func (f *fakeField) Announce(msg string)         { f.messages = append(f.messages, msg) }

func newField() *fakeField {
	specs := []combat.Spec{
		{Name: "Hero", Side: combat.SideCharacter, Agility: 10, HP: 20, Stats: combat.Stats{Attack: 10, Defense: 5, Magic: 8}},
		{Name: "Mage", Side: combat.SideCharacter, Agility: 10, HP: 15, MaxHP: 30, Stats: combat.Stats{Attack: 5, Defense: 2, Magic: 15}},
		{Name: "Goblin", Side: combat.SideEnemy, Agility: 10, HP: 30, Stats: combat.Stats{Attack: 4, Defense: 3}},
		{Name: "Orc", Side: combat.SideEnemy, Agility: 10, HP: 40, Stats: combat.Stats{Attack: 6, Defense: 20}},
	}
	f := &fakeField{arena: combat.NewArena(specs, nil)}
	for _, a := range f.arena.All() {
		a.ChangeState(combat.StateIdle)
	}
	return f
}

func TestDamage(t *testing.T) {
	f := newField()
	hero, goblin, orc := f.Characters()[0], f.Enemies()[0], f.Enemies()[1]

	tests := []struct {
		name     string
		def      gamedata.AbilityDef
		target   *combat.Actor
		expected int
	}{
		{"physical", gamedata.AbilityDef{EffectType: gamedata.EffectDamage, DamageType: gamedata.DamagePhysical, BasePower: 5}, goblin, 12},
		{"physical minimum", gamedata.AbilityDef{EffectType: gamedata.EffectDamage, DamageType: gamedata.DamagePhysical, BasePower: 1}, orc, 1},
		{"default is physical", gamedata.AbilityDef{EffectType: gamedata.EffectDamage, BasePower: 5}, goblin, 12},
		{"magical ignores defense", gamedata.AbilityDef{EffectType: gamedata.EffectDamage, DamageType: gamedata.DamageMagical, BasePower: 10}, orc, 18},
		{"true", gamedata.AbilityDef{EffectType: gamedata.EffectDamage, DamageType: gamedata.DamageTrue, BasePower: 7}, orc, 7},
		{"heal deals none", gamedata.AbilityDef{EffectType: gamedata.EffectHeal, BasePower: 7}, orc, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Damage(&tt.def, hero, tt.target); got != tt.expected {
				t.Errorf("Damage() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestHealing(t *testing.T) {
	f := newField()
	mage := f.Characters()[1]

	tests := []struct {
		name     string
		def      gamedata.AbilityDef
		expected int
	}{
		{"adds magic", gamedata.AbilityDef{EffectType: gamedata.EffectHeal, BasePower: 5}, 20},
		{"minimum one", gamedata.AbilityDef{EffectType: gamedata.EffectHeal, BasePower: -50}, 1},
		{"damage heals none", gamedata.AbilityDef{EffectType: gamedata.EffectDamage, BasePower: 5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Healing(&tt.def, mage); got != tt.expected {
				t.Errorf("Healing() = %d, want %d", got, tt.expected)
			}
		})
	}
}

var strike = &gamedata.AbilityDef{
	ID: "strike", Name: "Strike",
	EffectType: gamedata.EffectDamage, TargetType: gamedata.TargetSingleEnemy,
	DamageType: gamedata.DamageTrue, BasePower: 10,
	WarmUpMS: 300, ExecutionMS: 700,
}

func TestAbilityExecute(t *testing.T) {
	f := newField()
	hero, goblin := f.Characters()[0], f.Enemies()[0]

	a := NewAbility(strike, f, goblin)
	if a.WarmUpTime() != 300*time.Millisecond || a.ExecutionTime() != 700*time.Millisecond {
		t.Errorf("timing = %v/%v", a.WarmUpTime(), a.ExecutionTime())
	}
	if !a.Execute(hero) {
		t.Fatal("Execute() = false")
	}
	if goblin.HP() != 20 {
		t.Errorf("goblin HP = %d, want 20", goblin.HP())
	}
	if len(f.messages) != 1 || !strings.Contains(f.messages[0], "Goblin -10") {
		t.Errorf("messages = %v", f.messages)
	}
}

func TestAbilityRetargetsFallenTarget(t *testing.T) {
	f := newField()
	hero, goblin, orc := f.Characters()[0], f.Enemies()[0], f.Enemies()[1]

	a := NewAbility(strike, f, goblin)
	goblin.TakeDamage(goblin.HP())

	if !a.Execute(hero) {
		t.Fatal("Execute() = false with another enemy standing")
	}
	if orc.HP() != 30 {
		t.Errorf("orc HP = %d, want 30", orc.HP())
	}

	orc.TakeDamage(orc.HP())
	if a.Execute(hero) {
		t.Error("Execute() = true with no enemy standing")
	}
}

func TestAbilityTargetSides(t *testing.T) {
	f := newField()
	hero, mage, goblin, orc := f.Characters()[0], f.Characters()[1], f.Enemies()[0], f.Enemies()[1]

	quake := &gamedata.AbilityDef{Name: "Quake", EffectType: gamedata.EffectDamage, TargetType: gamedata.TargetAllEnemies, DamageType: gamedata.DamageTrue, BasePower: 3}
	prayer := &gamedata.AbilityDef{Name: "Prayer", EffectType: gamedata.EffectHeal, TargetType: gamedata.TargetAllAllies, BasePower: 1}
	focus := &gamedata.AbilityDef{Name: "Focus", EffectType: gamedata.EffectHeal, TargetType: gamedata.TargetSelf}

	tests := []struct {
		name string
		def  *gamedata.AbilityDef
		user *combat.Actor
		want []*combat.Actor
	}{
		{"character offensive hits enemies", quake, hero, []*combat.Actor{goblin, orc}},
		{"enemy offensive hits characters", quake, goblin, []*combat.Actor{hero, mage}},
		{"character support stays on side", prayer, mage, []*combat.Actor{hero, mage}},
		{"enemy support stays on side", prayer, orc, []*combat.Actor{goblin, orc}},
		{"self", focus, mage, []*combat.Actor{mage}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Targets(tt.def, f, tt.user, nil)
			if len(got) != len(tt.want) {
				t.Fatalf("Targets() = %d actors, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Targets()[%d] = %s, want %s", i, got[i].Name(), tt.want[i].Name())
				}
			}
		})
	}
}

func TestAllAlliesHealCapsAtMax(t *testing.T) {
	f := newField()
	hero, mage := f.Characters()[0], f.Characters()[1]
	prayer := &gamedata.AbilityDef{Name: "Prayer", EffectType: gamedata.EffectHeal, TargetType: gamedata.TargetAllAllies, BasePower: 2}

	hero.TakeDamage(3)
	a := NewAbility(prayer, f, nil)
	a.Execute(mage)

	if hero.HP() != hero.MaxHP() {
		t.Errorf("hero HP = %d, want %d", hero.HP(), hero.MaxHP())
	}
	if mage.HP() != 30 {
		t.Errorf("mage HP = %d, want 30", mage.HP())
	}
	if r := a.Results(); len(r) != 2 || r[0].Healing != 3 || r[1].Healing != 15 {
		t.Errorf("Results() = %+v", r)
	}
}

// mockStock records inventory calls.
type mockStock struct {
	available int
	reserved  int
	used      int
	released  int
}

func (m *mockStock) Reserve(string) bool {
	if m.available-m.reserved <= 0 {
		return false
	}
	m.reserved++
	return true
}
func (m *mockStock) Release(string) { m.reserved--; m.released++ }
func (m *mockStock) Use(string) bool {
	m.reserved--
	m.used++
	return true
}

var bomb = &gamedata.ItemDef{AbilityDef: gamedata.AbilityDef{
	ID: "bomb", Name: "Bomb",
	EffectType: gamedata.EffectDamage, TargetType: gamedata.TargetAllEnemies,
	DamageType: gamedata.DamageTrue, BasePower: 12,
}}

func TestItemReservesAndConsumes(t *testing.T) {
	f := newField()
	stock := &mockStock{available: 1}

	it := NewItem(bomb, stock, f, nil)
	if it == nil {
		t.Fatal("NewItem() = nil with stock available")
	}
	if NewItem(bomb, stock, f, nil) != nil {
		t.Error("NewItem() reserved beyond stock")
	}

	if !it.Execute(f.Characters()[0]) {
		t.Fatal("Execute() = false")
	}
	if stock.used != 1 || stock.reserved != 0 {
		t.Errorf("stock = %+v", stock)
	}
	if f.Enemies()[0].HP() != 18 || f.Enemies()[1].HP() != 28 {
		t.Error("bomb did not hit every enemy")
	}

	it.Cancel()
	if stock.released != 0 {
		t.Error("Cancel() after Execute released the item")
	}
}

func TestItemCancelReleases(t *testing.T) {
	f := newField()
	stock := &mockStock{available: 1}

	it := NewItem(bomb, stock, f, nil)
	it.Cancel()
	it.Cancel()
	if stock.released != 1 || stock.reserved != 0 {
		t.Errorf("stock = %+v, want a single release", stock)
	}
	if it.Execute(f.Characters()[0]) {
		t.Error("cancelled item executed")
	}
}
