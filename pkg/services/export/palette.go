package export

import (
	"fmt"
	"image/color"
)

// Palette is the Set2 qualitative palette. Columns take colors by index, cycling,
// so a given column position always has the same color across tables.
var Palette = []string{
	"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3",
	"#a6d854", "#ffd92f", "#e5c494", "#b3b3b3",
}

func paletteColor(i int) string {
	return Palette[i%len(Palette)]
}

func rgba(hex string) (color.RGBA, error) {
	var c color.RGBA
	c.A = 0xff
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return c, nil
}
