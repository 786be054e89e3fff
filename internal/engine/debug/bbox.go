// Package debug provides debug visualization and capture utilities.
package debug

import "github.com/Faultbox/gltf-viewer/pkg/math"

// BoxVertexCount is the number of line endpoints in a box wireframe (12 edges x 2).
const BoxVertexCount = 24

// DefaultBoxPadding grows the model box slightly so the wireframe does not
// z-fight with faces lying on the bounds.
const DefaultBoxPadding = 0.01

// BoxLines returns line endpoints for the twelve edges of b grown by padding
// on every side. An empty box yields nil.
func BoxLines(b math.Box3, padding float32) []math.Vec3 {
	if b.IsEmpty() {
		return nil
	}
	pad := math.Vec3{X: padding, Y: padding, Z: padding}
	lo, hi := b.Min.Sub(pad), b.Max.Add(pad)

	corner := func(x, y, z bool) math.Vec3 {
		c := lo
		if x {
			c.X = hi.X
		}
		if y {
			c.Y = hi.Y
		}
		if z {
			c.Z = hi.Z
		}
		return c
	}

	return []math.Vec3{
		// Bottom face
		corner(false, false, false), corner(true, false, false),
		corner(true, false, false), corner(true, false, true),
		corner(true, false, true), corner(false, false, true),
		corner(false, false, true), corner(false, false, false),
		// Top face
		corner(false, true, false), corner(true, true, false),
		corner(true, true, false), corner(true, true, true),
		corner(true, true, true), corner(false, true, true),
		corner(false, true, true), corner(false, true, false),
		// Vertical edges
		corner(false, false, false), corner(false, true, false),
		corner(true, false, false), corner(true, true, false),
		corner(true, false, true), corner(true, true, true),
		corner(false, false, true), corner(false, true, true),
	}
}
