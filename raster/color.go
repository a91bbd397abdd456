package raster

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor accepts an SVG color name ("yellow") or "#rrggbb"/"#rrggbbaa".
func ParseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("raster: color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	if spec[0] != '#' || (len(spec) != 7 && len(spec) != 9) {
		return color.RGBA{}, fmt.Errorf("raster: invalid color %q", s)
	}
	var r, g, b uint32
	a := uint32(0xff)
	if _, err := fmt.Sscanf(spec[1:7], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("raster: invalid color %q: %w", s, err)
	}
	if len(spec) == 9 {
		if _, err := fmt.Sscanf(spec[7:9], "%02x", &a); err != nil {
			return color.RGBA{}, fmt.Errorf("raster: invalid color %q: %w", s, err)
		}
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}

// MustColor is ParseColor for package-level palettes.
func MustColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
