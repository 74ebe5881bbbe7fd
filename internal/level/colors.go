package level

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CharacterKey is the palette entry for the player body
const CharacterKey = "character"

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

// LookupColor resolves a raylib color name, or a #rrggbb / #rrggbbaa hex string.
// Unknown names fall back to the given color.
func LookupColor(name string, fallback rl.Color) rl.Color {
	if name == "" {
		return fallback
	}
	if c, ok := colorByName[name]; ok {
		return c
	}

	var r, g, b uint8
	a := uint8(255)
	if n, _ := fmt.Sscanf(name, "#%02x%02x%02x%02x", &r, &g, &b, &a); n >= 3 {
		return rl.NewColor(r, g, b, a)
	}
	return fallback
}

// Palette maps every named body (and CharacterKey) to its draw color
func (l *Level) Palette() map[string]rl.Color {
	palette := make(map[string]rl.Color, len(l.Platforms)+len(l.Obstacles)+len(l.Targets)+1)
	palette[CharacterKey] = LookupColor(l.Character.Color, rl.Blue)
	for _, p := range l.Platforms {
		palette[p.Name] = LookupColor(p.Color, rl.Gray)
	}
	for _, o := range l.Obstacles {
		palette[o.Name] = LookupColor(o.Color, rl.Brown)
	}
	for _, t := range l.Targets {
		palette[t.Name] = LookupColor(t.Color, rl.Red)
	}
	return palette
}
