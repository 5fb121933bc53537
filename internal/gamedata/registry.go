package gamedata

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
)

// EnemyRegistry holds loaded enemy definitions and provides spawning utilities.
type EnemyRegistry struct {
	enemies     []EnemyDef
	totalWeight int
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	totalWeight := 0
	for _, e := range enemies {
		totalWeight += e.SpawnWeight
	}
	return &EnemyRegistry{
		enemies:     enemies,
		totalWeight: totalWeight,
	}
}

// SpawnRandom picks a definition for a random encounter slot, weighted by
// spawn_weight. Enemies with zero weight only appear in fixed lineups.
func (r *EnemyRegistry) SpawnRandom(rng *rand.Rand) *EnemyDef {
	if r.totalWeight <= 0 || len(r.enemies) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)
	cumulative := 0
	for i := range r.enemies {
		cumulative += r.enemies[i].SpawnWeight
		if roll < cumulative {
			return &r.enemies[i]
		}
	}
	return &r.enemies[0]
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	for i := range r.enemies {
		if r.enemies[i].ID == id {
			return &r.enemies[i]
		}
	}
	return nil
}

// All returns all enemy definitions.
func (r *EnemyRegistry) All() []EnemyDef {
	return r.enemies
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}

// AbilityRegistry holds loaded ability definitions and provides lookup utilities.
type AbilityRegistry struct {
	abilities map[string]*AbilityDef
	all       []AbilityDef
}

// NewAbilityRegistry creates a registry from loaded ability definitions.
func NewAbilityRegistry(abilities []AbilityDef) *AbilityRegistry {
	registry := &AbilityRegistry{
		abilities: make(map[string]*AbilityDef),
		all:       abilities,
	}
	for i := range abilities {
		registry.abilities[abilities[i].ID] = &abilities[i]
	}
	return registry
}

// GetByID returns the ability definition with the given ID, or nil if not found.
func (r *AbilityRegistry) GetByID(id string) *AbilityDef {
	return r.abilities[id]
}

// GetMultiple returns the definitions of ids in order, skipping unknown
// ones. Actors carry ability ids; menus need the definitions.
func (r *AbilityRegistry) GetMultiple(ids []string) []*AbilityDef {
	result := make([]*AbilityDef, 0, len(ids))
	for _, id := range ids {
		if ability := r.abilities[id]; ability != nil {
			result = append(result, ability)
		}
	}
	return result
}

// Count returns the number of abilities in the registry.
func (r *AbilityRegistry) Count() int {
	return len(r.all)
}

// Catalog is every definition a battle needs, cross-checked on load.
type Catalog struct {
	Abilities  *AbilityRegistry
	Enemies    *EnemyRegistry
	Classes    []ClassDef
	Items      []ItemDef
	Encounters []EncounterDef
	Party      PartyDef
}

// LoadCatalog loads and validates all data files.
func LoadCatalog(ctx context.Context) (*Catalog, error) {
	abilities, err := LoadContext[AbilitiesFile](ctx, "abilities.yaml")
	if err != nil {
		return nil, err
	}
	items, err := LoadContext[ItemsFile](ctx, "items.yaml")
	if err != nil {
		return nil, err
	}
	classes, err := LoadContext[ClassesFile](ctx, "classes.yaml")
	if err != nil {
		return nil, err
	}
	enemies, err := LoadContext[EnemiesFile](ctx, "enemies.yaml")
	if err != nil {
		return nil, err
	}
	encounters, err := LoadContext[EncountersFile](ctx, "encounters.yaml")
	if err != nil {
		return nil, err
	}
	party, err := LoadContext[PartyDef](ctx, "party.yaml")
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		Abilities:  NewAbilityRegistry(abilities.Abilities),
		Enemies:    NewEnemyRegistry(enemies.Enemies),
		Classes:    classes.Classes,
		Items:      items.Items,
		Encounters: encounters.Encounters,
		Party:      party,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Class returns the class with the given ID, or nil.
func (c *Catalog) Class(id string) *ClassDef {
	for i := range c.Classes {
		if c.Classes[i].ID == id {
			return &c.Classes[i]
		}
	}
	return nil
}

// Item returns the item with the given ID, or nil.
func (c *Catalog) Item(id string) *ItemDef {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}
	return nil
}

// Encounter returns the encounter with the given ID, or nil.
func (c *Catalog) Encounter(id string) *EncounterDef {
	for i := range c.Encounters {
		if c.Encounters[i].ID == id {
			return &c.Encounters[i]
		}
	}
	return nil
}

// Validate reports every dangling reference between definitions.
func (c *Catalog) Validate() error {
	var errs []error
	if c.Enemies.Count() == 0 {
		errs = append(errs, errors.New("gamedata: no enemies defined"))
	}
	if len(c.Party.Members) == 0 {
		errs = append(errs, errors.New("gamedata: party has no members"))
	}
	for _, cl := range c.Classes {
		for _, id := range cl.Abilities {
			if c.Abilities.GetByID(id) == nil {
				errs = append(errs, fmt.Errorf("gamedata: class %s: unknown ability %q", cl.ID, id))
			}
		}
	}
	for _, e := range c.Enemies.All() {
		if e.Agility <= 0 {
			errs = append(errs, fmt.Errorf("gamedata: enemy %s: agility must be positive", e.ID))
		}
		for _, id := range e.Abilities {
			if c.Abilities.GetByID(id) == nil {
				errs = append(errs, fmt.Errorf("gamedata: enemy %s: unknown ability %q", e.ID, id))
			}
		}
		for _, d := range e.Drops {
			if c.Item(d.Item) == nil {
				errs = append(errs, fmt.Errorf("gamedata: enemy %s: unknown drop %q", e.ID, d.Item))
			}
		}
	}
	for _, enc := range c.Encounters {
		if len(enc.Enemies) == 0 && enc.RandomEnemies <= 0 {
			errs = append(errs, fmt.Errorf("gamedata: encounter %s: no enemies", enc.ID))
		}
		for _, id := range enc.Enemies {
			if c.Enemies.GetByID(id) == nil {
				errs = append(errs, fmt.Errorf("gamedata: encounter %s: unknown enemy %q", enc.ID, id))
			}
		}
	}
	for _, m := range c.Party.Members {
		if c.Class(m.Class) == nil {
			errs = append(errs, fmt.Errorf("gamedata: party member %s: unknown class %q", m.Name, m.Class))
		}
	}
	for _, s := range c.Party.Inventory {
		if c.Item(s.Item) == nil {
			errs = append(errs, fmt.Errorf("gamedata: party inventory: unknown item %q", s.Item))
		}
	}
	return errors.Join(errs...)
}
