package material

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates between two sources on a grid in surface (u,v) space
type CheckerTexture struct {
	Scale float64 // Number of checks per unit of u and v
	Even  ColorSource
	Odd   ColorSource
}

// NewCheckerTexture creates a UV checker pattern with the given checks per unit
func NewCheckerTexture(scale float64, even, odd core.Vec3) *CheckerTexture {
	return &CheckerTexture{Scale: scale, Even: NewSolidColor(even), Odd: NewSolidColor(odd)}
}

// Evaluate picks the even or odd source from the parity of the scaled UV cell
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	cell := int64(math.Floor(uv.X*c.Scale)) + int64(math.Floor(uv.Y*c.Scale))
	if cell%2 == 0 {
		return c.Even.Evaluate(uv, point)
	}
	return c.Odd.Evaluate(uv, point)
}

// SpatialCheckerTexture alternates between two sources on a 3D grid of world-space cubes
type SpatialCheckerTexture struct {
	InvScale float64
	Even     ColorSource
	Odd      ColorSource
}

// NewSpatialCheckerTexture creates a 3D checker pattern with cubes of the given edge length
func NewSpatialCheckerTexture(cellSize float64, even, odd core.Vec3) *SpatialCheckerTexture {
	return &SpatialCheckerTexture{
		InvScale: 1.0 / cellSize,
		Even:     NewSolidColor(even),
		Odd:      NewSolidColor(odd),
	}
}

// Evaluate picks the even or odd source from the parity of the cube containing point
func (s *SpatialCheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	cell := int64(math.Floor(point.X*s.InvScale)) +
		int64(math.Floor(point.Y*s.InvScale)) +
		int64(math.Floor(point.Z*s.InvScale))
	if cell%2 == 0 {
		return s.Even.Evaluate(uv, point)
	}
	return s.Odd.Evaluate(uv, point)
}
