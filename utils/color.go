package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an RGBA color with every channel normalized to [0,1].
type Color struct {
	R, G, B, A float64
}

var (
	// Transparent is used for the gaps of dashed lines.
	Transparent = Color{}
	// DarkGray is the neutral color of walking segments.
	DarkGray = Color{R: 1.0 / 3, G: 1.0 / 3, B: 1.0 / 3, A: 1}
	// Blue is used for transit lines that publish no color.
	Blue = Color{R: 0, G: 0, B: 1, A: 1}
)

// ParseHexColor parses "#RRGGBB". The leading '#' is optional.
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// RGB builds an opaque color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: 1,
	}
}

// RGB8 returns the channels scaled back to 0-255.
func (c Color) RGB8() (uint8, uint8, uint8) {
	return channel(c.R), channel(c.G), channel(c.B)
}

// Hex encodes the color as "#RRGGBB", alpha dropped.
func (c Color) Hex() string {
	r, g, b := c.RGB8()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// IsTransparent reports whether the color has zero alpha.
func (c Color) IsTransparent() bool {
	return c.A == 0
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
