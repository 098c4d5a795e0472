package core

import (
	"fmt"
	"strings"
)

// Color represents a cell color on the play field.
// Uses ANSI 256-color codes for terminal compatibility (see platform/tui).
type Color uint8

// Predefined colors. The first seven after ColorDefault form the tap palette.
const (
	ColorDefault Color = iota
	ColorRed
	ColorOrange
	ColorYellow
	ColorGreen
	ColorBlue
	ColorPurple
	ColorPink
	ColorWhite
	ColorBlack
	ColorGray
)

var colorNames = map[Color]string{
	ColorDefault: "default",
	ColorRed:     "red",
	ColorOrange:  "orange",
	ColorYellow:  "yellow",
	ColorGreen:   "green",
	ColorBlue:    "blue",
	ColorPurple:  "purple",
	ColorPink:    "pink",
	ColorWhite:   "white",
	ColorBlack:   "black",
	ColorGray:    "gray",
}

// String returns the lowercase color name.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// ParseColor resolves a color name such as "purple". Case-insensitive.
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range colorNames {
		if n == name {
			return c, nil
		}
	}
	return ColorDefault, fmt.Errorf("core: unknown color %q", name)
}

// Palette is a fixed, ordered color sequence indexed cyclically.
type Palette []Color

// DefaultPalette returns the seven tap colors in their canonical order.
func DefaultPalette() Palette {
	return Palette{
		ColorRed,
		ColorOrange,
		ColorYellow,
		ColorGreen,
		ColorBlue,
		ColorPurple,
		ColorPink,
	}
}

// At returns the color at index i, wrapping around the palette.
func (p Palette) At(i int) Color {
	if len(p) == 0 {
		return ColorDefault
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

// Next returns the cursor that follows i.
func (p Palette) Next(i int) int {
	if len(p) == 0 {
		return 0
	}
	return (i + 1) % len(p)
}

// Contains reports whether c is part of the palette.
func (p Palette) Contains(c Color) bool {
	for _, pc := range p {
		if pc == c {
			return true
		}
	}
	return false
}
