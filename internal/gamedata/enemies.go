package gamedata

import "github.com/gdamore/tcell/v2"

// DropDef is an item an enemy may leave behind.
type DropDef struct {
	Item   string  `yaml:"item"`
	Chance float64 `yaml:"chance"` // Probability in [0,1]
}

// EnemyDef defines an enemy type loaded from YAML.
type EnemyDef struct {
	ID          string    `yaml:"id"`           // Unique identifier (e.g., "goblin")
	Name        string    `yaml:"name"`         // Display name (e.g., "Goblin")
	Glyph       string    `yaml:"glyph"`        // Single character for rendering (e.g., "g")
	Color       string    `yaml:"color"`        // Hex color code (e.g., "#00FF00")
	HP          int       `yaml:"hp"`           // Vitality
	Agility     int       `yaml:"agility"`      // Speed rating
	Attack      int       `yaml:"attack"`       // Attack power
	Defense     int       `yaml:"defense"`      // Defense value
	Magic       int       `yaml:"magic"`        // Magic power
	Experience  int       `yaml:"experience"`   // Experience granted on victory
	Currency    int       `yaml:"currency"`     // Currency granted on victory
	SpawnWeight int       `yaml:"spawn_weight"` // Relative spawn frequency (higher = more common)
	Abilities   []string  `yaml:"abilities"`
	Drops       []DropDef `yaml:"drops"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EnemyDef) GlyphRune() rune {
	if len(e.Glyph) == 0 {
		return '?'
	}
	return rune(e.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (e *EnemyDef) TCellColor() tcell.Color {
	return colorOr(e.Color, tcell.ColorWhite)
}

// EnemiesFile represents the structure of enemies.yaml.
type EnemiesFile struct {
	Enemies []EnemyDef `yaml:"enemies"`
}

// LoadEnemies loads enemy definitions from enemies.yaml.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.yaml")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}
