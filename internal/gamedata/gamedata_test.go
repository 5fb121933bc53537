package gamedata

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadEnemies(t *testing.T) {
	enemies, err := LoadEnemies()
	if err != nil {
		t.Fatalf("Failed to load enemies: %v", err)
	}

	expectedIDs := map[string]bool{"goblin": false, "orc": false, "skeleton": false, "shaman": false}
	for _, e := range enemies {
		if _, ok := expectedIDs[e.ID]; ok {
			expectedIDs[e.ID] = true
		}
		if e.Agility <= 0 {
			t.Errorf("enemy %q has agility %d", e.ID, e.Agility)
		}
	}
	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected enemy %q not found", id)
		}
	}
}

func TestLoadAbilitiesTiming(t *testing.T) {
	abilities, err := LoadAbilities()
	if err != nil {
		t.Fatalf("Failed to load abilities: %v", err)
	}
	reg := NewAbilityRegistry(abilities)

	fire := reg.GetByID("fire")
	if fire == nil {
		t.Fatal("fire not found")
	}
	if fire.WarmUp() != 1200*time.Millisecond || fire.Execution() != 800*time.Millisecond {
		t.Errorf("fire timing = %v/%v", fire.WarmUp(), fire.Execution())
	}
	if !fire.NeedsTarget() || !fire.IsOffensive() || fire.HitsAll() {
		t.Error("fire should be a single-target offensive ability")
	}

	got := reg.GetMultiple([]string{"cure", "missing", "prayer"})
	if len(got) != 2 {
		t.Errorf("GetMultiple returned %d abilities, want 2", len(got))
	}
}

func TestLoadItemsInline(t *testing.T) {
	items, err := LoadItems()
	if err != nil {
		t.Fatalf("Failed to load items: %v", err)
	}
	for _, it := range items {
		if it.ID == "potion" {
			if it.EffectType != EffectHeal || it.BasePower != 25 {
				t.Errorf("potion = %+v", it.AbilityDef)
			}
			return
		}
	}
	t.Error("potion not found")
}

func TestEnemyRegistry(t *testing.T) {
	enemies, err := LoadEnemies()
	if err != nil {
		t.Fatalf("Failed to load enemies: %v", err)
	}
	registry := NewEnemyRegistry(enemies)

	goblin := registry.GetByID("goblin")
	if goblin == nil {
		t.Fatal("Goblin not found by ID")
	}
	if goblin.Name != "Goblin" {
		t.Errorf("Expected name 'Goblin', got %q", goblin.Name)
	}

	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))
	for i := 0; i < 10; i++ {
		a, b := registry.SpawnRandom(rng1).ID, registry.SpawnRandom(rng2).ID
		if a != b {
			t.Errorf("Spawn %d mismatch: %s != %s", i, a, b)
		}
	}

	empty := NewEnemyRegistry(nil)
	if empty.SpawnRandom(rng1) != nil {
		t.Error("empty registry spawned an enemy")
	}
}

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("LoadCatalog() error: %v", err)
	}
	if c.Class("wizard") == nil || c.Item("bomb") == nil || c.Encounter("roadside") == nil {
		t.Error("catalog lookups failed")
	}
	if c.Class("bard") != nil {
		t.Error("unknown class found")
	}
	if len(c.Party.Members) != 4 {
		t.Errorf("party has %d members, want 4", len(c.Party.Members))
	}
	if enc := c.Encounter("roadside"); enc.Script == "" {
		t.Error("roadside encounter lost its script")
	} else if _, err := LoadScript(enc.Script); err != nil {
		t.Errorf("LoadScript(%q) error: %v", enc.Script, err)
	}
}

func TestValidateReportsDanglingReferences(t *testing.T) {
	c := &Catalog{
		Abilities: NewAbilityRegistry([]AbilityDef{{ID: "attack"}}),
		Enemies: NewEnemyRegistry([]EnemyDef{{
			ID: "rat", Agility: 5, Abilities: []string{"gnaw"},
			Drops: []DropDef{{Item: "cheese", Chance: 1}},
		}}),
		Classes:    []ClassDef{{ID: "warrior", Abilities: []string{"attack"}}},
		Encounters: []EncounterDef{{ID: "cellar", Enemies: []string{"rat", "dragon"}}},
		Party: PartyDef{
			Members:   []MemberDef{{Name: "Kael", Class: "bard"}},
			Inventory: []StockDef{{Item: "potion", Count: 1}},
		},
	}

	err := c.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want errors")
	}
	for _, want := range []string{`"gnaw"`, `"cheese"`, `"dragon"`, `"bard"`, `"potion"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error missing %s: %v", want, err)
		}
	}
}

func TestOverrideDirectory(t *testing.T) {
	dir := t.TempDir()
	SetDir(dir)
	t.Cleanup(func() { SetDir("") })

	override := "currency: 999\nmembers:\n  - {name: Solo, class: rogue, level: 5}\n"
	if err := os.WriteFile(filepath.Join(dir, "party.yaml"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	party, err := LoadParty()
	if err != nil {
		t.Fatalf("LoadParty() error: %v", err)
	}
	if party.Currency != 999 || len(party.Members) != 1 {
		t.Errorf("override not used: %+v", party)
	}

	// Files missing from the override directory fall back to the embedded copy.
	if _, err := LoadClasses(); err != nil {
		t.Errorf("LoadClasses() with partial override: %v", err)
	}
}

func TestLoadErrorsAreWrapped(t *testing.T) {
	_, err := Load[PartyDef]("missing.yaml")
	if err == nil || !strings.HasPrefix(err.Error(), "gamedata: load missing.yaml") {
		t.Errorf("Load() error = %v", err)
	}

	dir := t.TempDir()
	SetDir(dir)
	t.Cleanup(func() { SetDir("") })
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("members: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load[PartyDef]("bad.yaml")
	if err == nil || !strings.HasPrefix(err.Error(), "gamedata: unmarshal bad.yaml") {
		t.Errorf("Load() error = %v", err)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00ff00", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false},
		{"#GG0000", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestDefMethods(t *testing.T) {
	e := EnemyDef{Glyph: "T", Color: "#FF0000"}
	if e.GlyphRune() != 'T' {
		t.Errorf("Expected glyph 'T', got %c", e.GlyphRune())
	}
	if (&EnemyDef{}).GlyphRune() != '?' {
		t.Error("empty glyph should render as '?'")
	}
	c := ClassDef{Symbol: "W", Color: "bogus"}
	if c.SymbolRune() != 'W' {
		t.Errorf("Expected symbol 'W', got %c", c.SymbolRune())
	}
	if c.TCellColor() == e.TCellColor() {
		t.Error("malformed class color should fall back to white")
	}
}

func TestIsDataFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"enemies.yaml", true},
		{"x/party.YML", true},
		{"scripts/ambush.tengo", true},
		{"notes.txt", false},
		{"enemies.yaml~", false},
	}
	for _, tt := range tests {
		if got := IsDataFile(tt.path); got != tt.want {
			t.Errorf("IsDataFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "encounters.yaml"), []byte("encounters: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if name != "encounters.yaml" {
			t.Errorf("event for %q, want encounters.yaml", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if _, ok := <-w.Events; ok {
		// Drain any queued event; the channel must close afterwards.
		for range w.Events {
		}
	}
}
