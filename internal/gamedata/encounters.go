package gamedata

// EncounterDef describes a battle: a fixed lineup, a number of randomly
// spawned enemies, or both.
type EncounterDef struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Enemies       []string `yaml:"enemies"`
	RandomEnemies int      `yaml:"random_enemies"`
	// Script is an optional battle script under scripts/.
	Script string `yaml:"script"`
	// Pacing overrides the configured pacing ("active" or "wait").
	Pacing string `yaml:"pacing"`
}

// EncountersFile represents the structure of encounters.yaml.
type EncountersFile struct {
	Encounters []EncounterDef `yaml:"encounters"`
}

// LoadEncounters loads encounter definitions from encounters.yaml.
func LoadEncounters() ([]EncounterDef, error) {
	file, err := Load[EncountersFile]("encounters.yaml")
	if err != nil {
		return nil, err
	}
	return file.Encounters, nil
}

// MemberDef is a starting party member.
type MemberDef struct {
	Name  string `yaml:"name"`
	Class string `yaml:"class"`
	Level int    `yaml:"level"`
}

// StockDef is a starting inventory entry.
type StockDef struct {
	Item  string `yaml:"item"`
	Count int    `yaml:"count"`
}

// PartyDef is the starting party loaded from party.yaml.
type PartyDef struct {
	Currency  int         `yaml:"currency"`
	Members   []MemberDef `yaml:"members"`
	Inventory []StockDef  `yaml:"inventory"`
}

// LoadParty loads the starting party from party.yaml.
func LoadParty() (PartyDef, error) {
	return Load[PartyDef]("party.yaml")
}
