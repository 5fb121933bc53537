package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseHexColor converts "#RRGGBB" or "RRGGBB" to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("gamedata: invalid hex color length: %q", hex)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("gamedata: invalid hex color %q: %w", hex, err)
	}
	return tcell.NewHexColor(int32(v)), nil
}

func colorOr(hex string, fallback tcell.Color) tcell.Color {
	c, err := ParseHexColor(hex)
	if err != nil {
		return fallback
	}
	return c
}
