package gamedata

import "github.com/gdamore/tcell/v2"

// Growth is how much each stat rises per level.
type Growth struct {
	HP      int `yaml:"hp"`
	Agility int `yaml:"agility"`
	Attack  int `yaml:"attack"`
	Defense int `yaml:"defense"`
	Magic   int `yaml:"magic"`
}

// ClassDef defines a playable class loaded from YAML.
type ClassDef struct {
	ID        string   `yaml:"id"`      // Unique identifier (e.g., "warrior")
	Name      string   `yaml:"name"`    // Display name (e.g., "Warrior")
	Symbol    string   `yaml:"symbol"`  // Single character for rendering (e.g., "W")
	Color     string   `yaml:"color"`   // Hex color code
	HP        int      `yaml:"hp"`      // Vitality at level 1
	Agility   int      `yaml:"agility"` // Speed rating at level 1
	Attack    int      `yaml:"attack"`
	Defense   int      `yaml:"defense"`
	Magic     int      `yaml:"magic"`
	Abilities []string `yaml:"abilities"`
	Growth    Growth   `yaml:"growth"`
}

// SymbolRune returns the symbol as a rune for rendering.
func (c *ClassDef) SymbolRune() rune {
	if len(c.Symbol) == 0 {
		return '?'
	}
	return rune(c.Symbol[0])
}

// TCellColor returns the class color, white if it is malformed.
func (c *ClassDef) TCellColor() tcell.Color {
	return colorOr(c.Color, tcell.ColorWhite)
}

// ClassesFile represents the structure of classes.yaml.
type ClassesFile struct {
	Classes []ClassDef `yaml:"classes"`
}

// LoadClasses loads class definitions from classes.yaml.
func LoadClasses() ([]ClassDef, error) {
	file, err := Load[ClassesFile]("classes.yaml")
	if err != nil {
		return nil, err
	}
	return file.Classes, nil
}
