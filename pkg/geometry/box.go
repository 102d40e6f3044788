package geometry

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// NewBox returns the closed box spanned by two opposite corners as six
// outward-facing quads in their own BVH, so it can be wrapped in a single
// Translation or Rotation
func NewBox(a, b core.Vec3, material material.Material) *BVH {
	return NewBVH(BoxFaces(a, b, material))
}

// BoxFaces returns the six quads of the box spanned by a and b.
// Every face normal points out of the box.
func BoxFaces(a, b core.Vec3, material material.Material) []Shape {
	min := a.Min(b)
	max := a.Max(b)

	dx := core.NewVec3(max.X-min.X, 0, 0)
	dy := core.NewVec3(0, max.Y-min.Y, 0)
	dz := core.NewVec3(0, 0, max.Z-min.Z)

	return []Shape{
		NewQuad(core.NewVec3(min.X, min.Y, max.Z), dx, dy, material),          // front (+Z)
		NewQuad(core.NewVec3(max.X, min.Y, max.Z), dz.Negate(), dy, material), // right (+X)
		NewQuad(core.NewVec3(max.X, min.Y, min.Z), dx.Negate(), dy, material), // back (-Z)
		NewQuad(core.NewVec3(min.X, min.Y, min.Z), dz, dy, material),          // left (-X)
		NewQuad(core.NewVec3(min.X, max.Y, max.Z), dx, dz.Negate(), material), // top (+Y)
		NewQuad(core.NewVec3(min.X, min.Y, min.Z), dx, dz, material),          // bottom (-Y)
	}
}
