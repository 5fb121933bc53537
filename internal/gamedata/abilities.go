package gamedata

import "time"

// =============================================================================
// ABILITIES AND ITEMS
// =============================================================================
//
// Abilities are data-driven actions used by characters and enemies alike.
// Items share the same effect model and add inventory bookkeeping on top.
//
// EffectType - what the ability does:
//    - damage: reduces target vitality
//    - heal: restores target vitality
//
// TargetType - who it affects, seen from the user's side:
//    - self, single_enemy, all_enemies, single_ally, all_allies
//
// DamageType - how damage is calculated:
//    - physical: basePower + attacker.Attack - target.Defense (min 1)
//    - magical:  basePower + attacker.Magic (min 1)
//    - true:     basePower
//
// Healing is basePower + caster.Magic (min 1).
//
// Timing:
//    - warmup_ms: time from choosing the action until the actor is ready
//    - execution_ms: time the actor spends acting once granted execution
//
// Telemetry:
//    - battle.turn: actor, side, action, turn

// EffectType represents what an ability does.
type EffectType string

const (
	EffectDamage EffectType = "damage"
	EffectHeal   EffectType = "heal"
)

// TargetType represents who an ability can target.
type TargetType string

const (
	TargetSelf        TargetType = "self"
	TargetSingleEnemy TargetType = "single_enemy"
	TargetAllEnemies  TargetType = "all_enemies"
	TargetSingleAlly  TargetType = "single_ally"
	TargetAllAllies   TargetType = "all_allies"
)

// DamageType represents how damage is calculated.
type DamageType string

const (
	DamagePhysical DamageType = "physical"
	DamageMagical  DamageType = "magical"
	DamageTrue     DamageType = "true"
)

// AbilityDef defines an ability loaded from YAML.
type AbilityDef struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	EffectType  EffectType `yaml:"effect_type"`
	TargetType  TargetType `yaml:"target_type"`
	DamageType  DamageType `yaml:"damage_type,omitempty"`
	BasePower   int        `yaml:"base_power"`
	WarmUpMS    int        `yaml:"warmup_ms"`
	ExecutionMS int        `yaml:"execution_ms"`
}

// WarmUp returns the preparation time.
func (a *AbilityDef) WarmUp() time.Duration {
	return time.Duration(a.WarmUpMS) * time.Millisecond
}

// Execution returns the acting time.
func (a *AbilityDef) Execution() time.Duration {
	return time.Duration(a.ExecutionMS) * time.Millisecond
}

// NeedsTarget returns true if the ability requires target selection.
func (a *AbilityDef) NeedsTarget() bool {
	return a.TargetType == TargetSingleEnemy || a.TargetType == TargetSingleAlly
}

// IsOffensive returns true if the ability targets the opposing side.
func (a *AbilityDef) IsOffensive() bool {
	return a.TargetType == TargetSingleEnemy || a.TargetType == TargetAllEnemies
}

// HitsAll returns true if the ability affects a whole side.
func (a *AbilityDef) HitsAll() bool {
	return a.TargetType == TargetAllEnemies || a.TargetType == TargetAllAllies
}

// AbilitiesFile represents the structure of abilities.yaml.
type AbilitiesFile struct {
	Abilities []AbilityDef `yaml:"abilities"`
}

// LoadAbilities loads ability definitions from abilities.yaml.
func LoadAbilities() ([]AbilityDef, error) {
	file, err := Load[AbilitiesFile]("abilities.yaml")
	if err != nil {
		return nil, err
	}
	return file.Abilities, nil
}

// ItemDef is a consumable. Its effect is described like an ability's.
type ItemDef struct {
	AbilityDef `yaml:",inline"`
}

// ItemsFile represents the structure of items.yaml.
type ItemsFile struct {
	Items []ItemDef `yaml:"items"`
}

// LoadItems loads item definitions from items.yaml.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.yaml")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
