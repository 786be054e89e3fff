// Package lighting provides the viewer's fixed scene light.
package lighting

import (
	"fmt"
	"strconv"
	"strings"
)

// Hemisphere is a sky/ground light: surfaces facing Up get Sky, surfaces
// facing away get Ground, with a blend in between. The blend itself runs in
// the mesh fragment shader.
type Hemisphere struct {
	Sky       [3]float32
	Ground    [3]float32
	Intensity float32
	Up        [3]float32
}

// DefaultHemisphere returns a white sky over a dark grey ground.
func DefaultHemisphere() Hemisphere {
	return Hemisphere{
		Sky:       MustHex("#ffffff"),
		Ground:    MustHex("#444444"),
		Intensity: 1,
		Up:        [3]float32{0, 1, 0},
	}
}

// ParseHex parses "#rrggbb" into 0..1 components.
func ParseHex(s string) ([3]float32, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return [3]float32{}, fmt.Errorf("lighting: bad color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return [3]float32{}, fmt.Errorf("lighting: bad color %q: %w", s, err)
	}
	return [3]float32{
		float32(v>>16&0xff) / 255,
		float32(v>>8&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}

// MustHex is ParseHex for constants.
func MustHex(s string) [3]float32 {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
