package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack  = color.RGBA{0, 0, 0, 255}
	ColorWhite  = color.RGBA{255, 255, 255, 255}
	ColorRed    = color.RGBA{255, 0, 0, 255}
	ColorGreen  = color.RGBA{0, 128, 0, 255}
	ColorYellow = color.RGBA{255, 255, 0, 255}
	ColorPurple = color.RGBA{128, 0, 128, 255}
	ColorGray   = color.RGBA{128, 128, 128, 255}
)

// namedColors holds the CSS keywords model colours are usually written in.
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"lime":    "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"magenta": "#ff00ff",
	"cyan":    "#00ffff",
	"pink":    "#ffc0cb",
	"gray":    "#808080",
	"grey":    "#808080",
}

// ParseColor parses a hex colour (#rgb or #rrggbb) or a CSS colour keyword.
func ParseColor(s string) (colorful.Color, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[key]; ok {
		key = hex
	}
	if !strings.HasPrefix(key, "#") {
		return colorful.Color{}, fmt.Errorf("unknown colour %q", s)
	}
	c, err := colorful.Hex(key)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return c, nil
}

// MustColor is ParseColor for literals known to be valid.
func MustColor(s string) colorful.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ToRGBA converts a colorful colour to an opaque RGBA, clamping first.
func ToRGBA(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: 255}
}

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) color.RGBA {
	return color.RGBA{r, g, b, a}
}

// Scale multiplies the colour channels by k, clamping at 255. Alpha is kept.
func Scale(c Color, k float64) Color {
	return Color{
		R: clamp8(float64(c.R) * k),
		G: clamp8(float64(c.G) * k),
		B: clamp8(float64(c.B) * k),
		A: c.A,
	}
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
