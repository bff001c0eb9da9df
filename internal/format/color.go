package format

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor parses #rgb or #rrggbb into a color.
func ParseHexColor(value string) (colorful.Color, error) {
	value = strings.TrimSpace(value)
	if len(value) == 4 && value[0] == '#' {
		// Expand #abc to #aabbcc.
		value = fmt.Sprintf("#%c%c%c%c%c%c", value[1], value[1], value[2], value[2], value[3], value[3])
	}
	return colorful.Hex(strings.ToLower(value))
}

// HexString renders a color as lowercase #rrggbb.
func HexString(c colorful.Color) string {
	return c.Hex()
}

// RGBString renders a color as rgb(r, g, b) with 0-255 channels.
func RGBString(c colorful.Color) string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// HSLString renders a color as hsl(h, s%, l%) with rounded components.
func HSLString(c colorful.Color) string {
	h, s, l := c.Hsl()
	return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", h, s*100, l*100)
}

// ReadableForeground picks black or white text for the given background.
func ReadableForeground(background colorful.Color) colorful.Color {
	_, _, l := background.Hsl()
	if l > 0.5 {
		return colorful.Color{R: 0, G: 0, B: 0}
	}
	return colorful.Color{R: 1, G: 1, B: 1}
}

// Blend mixes two colors in a perceptually even space. t=0 yields a, t=1
// yields b.
func Blend(a, b colorful.Color, t float64) colorful.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return a.BlendLuv(b, t).Clamped()
}
